package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/athletiq/athlete-tracker/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrMatrixSessionNotFound = errors.New("matrix session not found")

type MatrixRepo struct {
	db *pgxpool.Pool
}

func NewMatrixRepo(db *pgxpool.Pool) *MatrixRepo {
	return &MatrixRepo{
		db: db,
	}
}

func (r *MatrixRepo) Add(ctx context.Context, session MatrixSession) (_ *MatrixSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.matrix.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	exercisesJson, err := json.Marshal(session.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO matrix_session (id, player_id, session_date, exercises, created_at)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		session.ID, session.PlayerID, session.Date, exercisesJson, session.CreatedAt,
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

	span.SetAttributes(attribute.String("matrix.id", id))

	session.ID = id
	return &session, nil
}

func (r *MatrixRepo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.matrix.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM matrix_session WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMatrixSessionNotFound
	}
	return nil
}

// ListAll returns all matrix sessions, optionally for one player,
// newest session date first.
func (r *MatrixRepo) ListAll(ctx context.Context, playerID string) (_ []MatrixSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.matrix.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("player_id", playerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT m.id, m.player_id, p.name, m.session_date, m.exercises, m.created_at
			FROM matrix_session m
			JOIN player p ON m.player_id = p.id
				WHERE ($1::text = '' OR m.player_id = $1)
			ORDER BY m.session_date DESC, m.created_at DESC;`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	sessions, err := r.rows2matrixSessions(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2matrixSessions: %w", err)
	}
	return sessions, nil
}

func (r *MatrixRepo) rows2matrixSessions(rows pgx.Rows) ([]MatrixSession, error) {
	var sessions []MatrixSession
	for rows.Next() {
		var m MatrixSession
		var sessionDate time.Time
		var exercisesBytes []byte
		if err := rows.Scan(&m.ID, &m.PlayerID, &m.PlayerName, &sessionDate, &exercisesBytes, &m.CreatedAt); err != nil {
			return nil, err
		}

		m.Date = sessionDate.Format("2006-01-02")

		if len(exercisesBytes) > 0 {
			if err := json.Unmarshal(exercisesBytes, &m.Exercises); err != nil {
				return nil, fmt.Errorf("unmarshal exercises for matrix session %s: %w", m.ID, err)
			}
		}
		if m.Exercises == nil {
			m.Exercises = make(map[string]float64)
		}

		sessions = append(sessions, m)
	}

	if sessions == nil {
		sessions = make([]MatrixSession, 0)
	}

	return sessions, nil
}
