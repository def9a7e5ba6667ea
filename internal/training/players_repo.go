package training

import (
	"context"
	"errors"
	"fmt"

	"github.com/athletiq/athlete-tracker/internal/telemetry/tracing"
	"github.com/athletiq/athlete-tracker/internal/training/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrPlayerNotFound  = model.ErrPlayerNotFound
	ErrSessionNotFound = errors.New("session not found")
)

type PlayersRepo struct {
	db *pgxpool.Pool
}

func NewPlayersRepo(db *pgxpool.Pool) *PlayersRepo {
	return &PlayersRepo{
		db: db,
	}
}

func (r *PlayersRepo) Add(ctx context.Context, player Player) (_ *Player, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.players.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if player.ID == "" {
		player.ID = uuid.NewString()
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO player (id, name, created_at)
				VALUES ($1, $2, $3)
			RETURNING id;`,
		player.ID, player.Name, player.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id string
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.String("player.id", id))

	player.ID = id
	return &player, nil
}

func (r *PlayersRepo) Get(ctx context.Context, id string) (_ *Player, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.players.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, created_at FROM player WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	players, err := r.rows2players(rows)
	if err != nil {
		return nil, err
	}

	if len(players) != 1 {
		return nil, ErrPlayerNotFound
	}

	return &players[0], nil
}

// List returns all players, newest first.
func (r *PlayersRepo) List(ctx context.Context) (_ []Player, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.players.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, created_at FROM player ORDER BY created_at DESC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2players(rows)
}

// Delete removes a player together with all their training and matrix
// sessions.
func (r *PlayersRepo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.players.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM session WHERE player_id = $1;`, id); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM matrix_session WHERE player_id = $1;`, id); err != nil {
		return fmt.Errorf("delete matrix sessions: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM player WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = ErrPlayerNotFound
		return err
	}

	return tx.Commit(ctx)
}

func (r *PlayersRepo) rows2players(rows pgx.Rows) ([]Player, error) {
	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	if players == nil {
		players = make([]Player, 0)
	}

	return players, nil
}
