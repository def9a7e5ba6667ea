package insights

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/athletiq/athlete-tracker/internal/telemetry/tracing"
	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=insights_test

type sessionsRepo interface {
	ListAll(ctx context.Context, params training.SessionParams) ([]training.Session, error)
}

type playersRepo interface {
	Get(ctx context.Context, id string) (*training.Player, error)
	List(ctx context.Context) ([]training.Player, error)
}

type matrixRepo interface {
	ListAll(ctx context.Context, playerID string) ([]training.MatrixSession, error)
}

// Analyzer runs the pure calculation pipeline over repo data. It holds
// no state of its own, per-player caching sits in front of it.
type Analyzer struct {
	sessions sessionsRepo
	players  playersRepo
	matrix   matrixRepo
}

func NewAnalyzer(sessions sessionsRepo, players playersRepo, matrix matrixRepo) *Analyzer {
	return &Analyzer{
		sessions: sessions,
		players:  players,
		matrix:   matrix,
	}
}

// PlayerInsights computes the full insights summary for one player.
func (a *Analyzer) PlayerInsights(ctx context.Context, playerID string) (_ *Insights, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.insights.player")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("player_id", playerID))

	if _, err := a.players.Get(ctx, playerID); err != nil {
		return nil, err
	}

	sessions, err := a.sessions.ListAll(ctx, training.SessionParams{PlayerID: playerID})
	if err != nil {
		return nil, err
	}

	insights := CalculateInsights(sessions)
	return &insights, nil
}

// PlayerChartData computes the recent-sessions chart series for one player.
func (a *Analyzer) PlayerChartData(ctx context.Context, playerID string) (_ *ChartData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.insights.charts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("player_id", playerID))

	if _, err := a.players.Get(ctx, playerID); err != nil {
		return nil, err
	}

	sessions, err := a.sessions.ListAll(ctx, training.SessionParams{PlayerID: playerID})
	if err != nil {
		return nil, err
	}

	chartData := BuildChartData(sortSessions(sessions))
	return &chartData, nil
}

// PlayerProgress computes the month-by-month series of one metric for
// one player.
func (a *Analyzer) PlayerProgress(ctx context.Context, playerID, metric string) (_ []MonthlyMetricPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.insights.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("player_id", playerID))
	span.SetAttributes(attribute.String("metric", metric))

	if _, err := a.players.Get(ctx, playerID); err != nil {
		return nil, err
	}

	sessions, err := a.sessions.ListAll(ctx, training.SessionParams{PlayerID: playerID})
	if err != nil {
		return nil, err
	}

	return MonthlyProgress(sessions, metric), nil
}

// Leaderboards computes the team-wide per-metric top lists.
func (a *Analyzer) Leaderboards(ctx context.Context) (_ *Leaderboards, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.insights.leaderboards")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	players, sessions, err := a.playersAndSessions(ctx)
	if err != nil {
		return nil, err
	}

	leaderboards := BuildLeaderboards(players, sessions)
	return &leaderboards, nil
}

// Participation computes every player's participation status relative
// to the supplied "today".
func (a *Analyzer) Participation(ctx context.Context, today string) (_ *Participation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.insights.participation")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	todayDate, ok := ParseLocalDate(today)
	if !ok {
		todayDate, _ = ParseLocalDate(LocalDateString())
	}

	players, sessions, err := a.playersAndSessions(ctx)
	if err != nil {
		return nil, err
	}

	participation := TrackParticipation(players, sessions, todayDate)
	return &participation, nil
}

// Alerts computes the team-wide alert feed.
func (a *Analyzer) Alerts(ctx context.Context) (_ []Alert, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.insights.alerts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	players, sessions, err := a.playersAndSessions(ctx)
	if err != nil {
		return nil, err
	}

	matrixSessions, err := a.matrix.ListAll(ctx, "")
	if err != nil {
		return nil, err
	}

	return BuildAlerts(players, sessions, matrixSessions), nil
}

// Team computes the dashboard team overview relative to the supplied
// "today".
func (a *Analyzer) Team(ctx context.Context, today string) (_ *TeamStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.insights.team")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	todayDate, ok := ParseLocalDate(today)
	if !ok {
		todayDate, _ = ParseLocalDate(LocalDateString())
	}

	players, sessions, err := a.playersAndSessions(ctx)
	if err != nil {
		return nil, err
	}

	stats := TeamOverview(players, sessions, todayDate)
	return &stats, nil
}

func (a *Analyzer) playersAndSessions(ctx context.Context) ([]training.Player, []training.Session, error) {
	players, err := a.players.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	sessions, err := a.sessions.ListAll(ctx, training.SessionParams{})
	if err != nil {
		return nil, nil, err
	}
	return players, sessions, nil
}
