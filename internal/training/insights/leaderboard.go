package insights

import (
	"sort"
	"strconv"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

const leaderboardSize = 5

// LeaderboardEntry is one player's best value for a metric.
type LeaderboardEntry struct {
	PlayerName string  `json:"playerName"`
	Value      float64 `json:"value"`
	Formatted  string  `json:"formatted"`
}

// Leaderboards holds the top players per metric, derived from each
// player's personal bests.
type Leaderboards struct {
	RunTime      []LeaderboardEntry `json:"runTime"`
	LeftSingle   []LeaderboardEntry `json:"leftSingle"`
	RightSingle  []LeaderboardEntry `json:"rightSingle"`
	DoubleSingle []LeaderboardEntry `json:"doubleSingle"`
	LeftTriple   []LeaderboardEntry `json:"leftTriple"`
	RightTriple  []LeaderboardEntry `json:"rightTriple"`
	DoubleTriple []LeaderboardEntry `json:"doubleTriple"`
	Sprint       []LeaderboardEntry `json:"sprint"`
}

type playerBests struct {
	playerName string
	bests      PersonalBests
}

// BuildLeaderboards ranks all players by their personal bests, top five
// per metric. Run time ranks ascending, everything else descending.
func BuildLeaderboards(players []training.Player, sessions []training.Session) Leaderboards {
	allBests := make([]playerBests, 0, len(players))
	for _, player := range players {
		playerSessions := make([]training.Session, 0)
		for _, s := range sessions {
			if s.PlayerID == player.ID {
				playerSessions = append(playerSessions, s)
			}
		}
		allBests = append(allBests, playerBests{
			playerName: player.Name,
			bests:      GetPersonalBests(playerSessions),
		})
	}

	jumpBoard := func(getBest func(PersonalBests) *BestEntry) []LeaderboardEntry {
		return rankDescending(allBests, getBest, func(v float64) string {
			return formatCm(v)
		})
	}

	return Leaderboards{
		RunTime:      runTimeBoard(allBests),
		LeftSingle:   jumpBoard(func(b PersonalBests) *BestEntry { return b.BestLeftJump }),
		RightSingle:  jumpBoard(func(b PersonalBests) *BestEntry { return b.BestRightJump }),
		DoubleSingle: jumpBoard(func(b PersonalBests) *BestEntry { return b.BestDoubleJump }),
		LeftTriple:   jumpBoard(func(b PersonalBests) *BestEntry { return b.BestLeftTriple }),
		RightTriple:  jumpBoard(func(b PersonalBests) *BestEntry { return b.BestRightTriple }),
		DoubleTriple: jumpBoard(func(b PersonalBests) *BestEntry { return b.BestDoubleTriple }),
		Sprint: rankDescending(allBests,
			func(b PersonalBests) *BestEntry { return b.BestSprint },
			func(v float64) string { return formatFloat(v) + " reps" },
		),
	}
}

func runTimeBoard(allBests []playerBests) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(allBests))
	for _, pb := range allBests {
		if pb.bests.BestRunTime == nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			PlayerName: pb.playerName,
			Value:      float64(pb.bests.BestRunTime.Time),
			Formatted:  pb.bests.BestRunTime.TimeStr,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value < entries[j].Value
	})
	return topN(entries)
}

func rankDescending(
	allBests []playerBests,
	getBest func(PersonalBests) *BestEntry,
	format func(float64) string,
) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(allBests))
	for _, pb := range allBests {
		best := getBest(pb.bests)
		if best == nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			PlayerName: pb.playerName,
			Value:      best.Value,
			Formatted:  format(best.Value),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	return topN(entries)
}

func topN(entries []LeaderboardEntry) []LeaderboardEntry {
	if len(entries) > leaderboardSize {
		return entries[:leaderboardSize]
	}
	return entries
}

func formatCm(v float64) string {
	return formatFloat(v) + " cm"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
