package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/athletiq/athlete-tracker/internal/telemetry/tracing"
	"github.com/athletiq/athlete-tracker/internal/training/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type SessionParams = model.SessionParams

type SessionListParams struct {
	SessionParams
	Page int
	Size int
}

type SessionsRepo struct {
	db *pgxpool.Pool
}

func NewSessionsRepo(db *pgxpool.Pool) *SessionsRepo {
	return &SessionsRepo{
		db: db,
	}
}

const sessionSelectColumns = `
	s.id, s.player_id, p.name, s.session_date, s.run_time,
	s.left_single, s.right_single, s.double_single,
	s.left_triple, s.right_triple, s.double_triple,
	s.sprints, s.created_at`

func (r *SessionsRepo) Add(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO session
				(id, player_id, session_date, run_time,
				left_single, right_single, double_single,
				left_triple, right_triple, double_triple,
				sprints, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id;`,
		session.ID, session.PlayerID, session.Date, session.RunTime,
		session.BroadJumps.LeftSingle, session.BroadJumps.RightSingle, session.BroadJumps.DoubleSingle,
		session.BroadJumps.LeftTriple, session.BroadJumps.RightTriple, session.BroadJumps.DoubleTriple,
		session.Sprints[:], session.CreatedAt,
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

	span.SetAttributes(attribute.String("session.id", id))

	session.ID = id
	return &session, nil
}

func (r *SessionsRepo) Update(ctx context.Context, session *Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", session.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE session SET
				session_date = $1, run_time = $2,
				left_single = $3, right_single = $4, double_single = $5,
				left_triple = $6, right_triple = $7, double_triple = $8,
				sprints = $9
			WHERE id = $10;`,
		session.Date, session.RunTime,
		session.BroadJumps.LeftSingle, session.BroadJumps.RightSingle, session.BroadJumps.DoubleSingle,
		session.BroadJumps.LeftTriple, session.BroadJumps.RightTriple, session.BroadJumps.DoubleTriple,
		session.Sprints[:], session.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *SessionsRepo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM session WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *SessionsRepo) Get(ctx context.Context, id string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionSelectColumns+`
			FROM session s
			JOIN player p ON s.player_id = p.id
			WHERE s.id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return nil, err
	}

	if len(sessions) != 1 {
		return nil, ErrSessionNotFound
	}

	return &sessions[0], nil
}

// ListAll returns all sessions matching the given filter, newest
// session date first.
func (r *SessionsRepo) ListAll(ctx context.Context, params SessionParams) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("player_id", params.PlayerID))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionSelectColumns+`
			FROM session s
			JOIN player p ON s.player_id = p.id
				WHERE ($1::text = '' OR s.player_id = $1)
				AND ($2::timestamp IS NULL OR s.created_at >= $2)
				AND ($3::timestamp IS NULL OR s.created_at <= $3)
			ORDER BY s.session_date DESC, s.created_at DESC;`,
		params.PlayerID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2sessions: %w", err)
	}
	return sessions, nil
}

// List is like ListAll, but returns a specific page, for pagination.
func (r *SessionsRepo) List(ctx context.Context, params SessionListParams) (_ []Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	span.SetAttributes(attribute.String("player_id", params.PlayerID))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.Count(ctx, params.SessionParams)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionSelectColumns+`
			FROM session s
			JOIN player p ON s.player_id = p.id
				WHERE ($1::text = '' OR s.player_id = $1)
			ORDER BY s.session_date DESC, s.created_at DESC
			LIMIT $2
			OFFSET $3;`,
		params.PlayerID, limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return nil, -1, err
	}
	return sessions, countAll, nil
}

func (r *SessionsRepo) Count(ctx context.Context, params SessionParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM session
			WHERE ($1::text = '' OR player_id = $1)
			AND ($2::timestamp IS NULL OR created_at >= $2)
			AND ($3::timestamp IS NULL OR created_at <= $3);
	`,
		params.PlayerID, params.From, params.To,
	)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get sessions count")
}

func (r *SessionsRepo) rows2sessions(rows pgx.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var s Session
		var sessionDate time.Time
		var sprints []float64
		if err := rows.Scan(
			&s.ID, &s.PlayerID, &s.PlayerName, &sessionDate, &s.RunTime,
			&s.BroadJumps.LeftSingle, &s.BroadJumps.RightSingle, &s.BroadJumps.DoubleSingle,
			&s.BroadJumps.LeftTriple, &s.BroadJumps.RightTriple, &s.BroadJumps.DoubleTriple,
			&sprints, &s.CreatedAt,
		); err != nil {
			return nil, err
		}

		s.Date = sessionDate.Format("2006-01-02")
		copy(s.Sprints[:], sprints)

		sessions = append(sessions, s)
	}

	if sessions == nil {
		sessions = make([]Session, 0)
	}

	return sessions, nil
}
