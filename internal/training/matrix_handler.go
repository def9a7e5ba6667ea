package training

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/athletiq/athlete-tracker/internal/telemetry/metrics"
	"github.com/athletiq/athlete-tracker/internal/telemetry/tracing"
	"github.com/athletiq/athlete-tracker/internal/training/validate"
	"github.com/athletiq/athlete-tracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=matrix_mocks_test.go -package=training_test

type matrixRepo interface {
	Add(ctx context.Context, session MatrixSession) (*MatrixSession, error)
	ListAll(ctx context.Context, playerID string) ([]MatrixSession, error)
	Delete(ctx context.Context, id string) error
}

type DeleteMatrixSessionResponse struct {
	DeletedID string `json:"deletedId"`
}

type MatrixHandler struct {
	repo        matrixRepo
	invalidator insightsInvalidator
	metrics     *metrics.Manager
}

func NewMatrixHandler(
	repo matrixRepo,
	invalidator insightsInvalidator,
	metricsManager *metrics.Manager,
) *MatrixHandler {
	return &MatrixHandler{
		repo:        repo,
		invalidator: invalidator,
		metrics:     metricsManager,
	}
}

func (handler *MatrixHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.matrix.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var session MatrixSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Tracef("new matrix session, unmarshal json params: %s", err)
		http.Error(w, "add matrix session failed", http.StatusBadRequest)
		return
	}

	if session.PlayerID == "" {
		http.Error(w, "error, player id empty", http.StatusBadRequest)
		return
	}

	// unknown exercise keys are rejected at entry time
	for exercise := range session.Exercises {
		if !IsMatrixExercise(exercise) {
			http.Error(w, "error, unknown exercise: "+exercise, http.StatusBadRequest)
			return
		}
	}

	if validationErrors := validate.MatrixForm(session, time.Now()); len(validationErrors) > 0 {
		writeValidationErrors(w, validationErrors)
		return
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	addedSession, err := handler.repo.Add(ctx, session)
	if err != nil {
		log.Errorf("failed to add new matrix session for player [%s]: %s", session.PlayerID, err)
		http.Error(w, "error, failed to add new matrix session", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterMatrixSessionsAdded.Inc()

	if err := handler.invalidator.Invalidate(ctx, addedSession.PlayerID); err != nil {
		log.Errorf("failed to invalidate insights for player %s: %s", addedSession.PlayerID, err)
	}

	addedSessionJson, err := json.Marshal(addedSession)
	if err != nil {
		log.Errorf("failed to marshal new matrix session: %s", err)
		http.Error(w, "error, failed to add new matrix session", http.StatusInternalServerError)
		return
	}

	log.Debugf("new matrix session added: %s", addedSessionJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedSessionJson, http.StatusCreated)
}

func (handler *MatrixHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.matrix.listall")
	defer span.End()

	playerID := mux.Vars(r)["playerId"]
	if playerID == "" {
		playerID = r.URL.Query().Get("player_id")
	}

	sessions, err := handler.repo.ListAll(ctx, playerID)
	if err != nil {
		log.Errorf("list matrix sessions error: %s", err)
		http.Error(w, "failed to get matrix sessions", http.StatusInternalServerError)
		return
	}

	sessionsJson, err := json.Marshal(sessions)
	if err != nil {
		log.Errorf("marshal matrix sessions error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionsJson, http.StatusOK)
}

func (handler *MatrixHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.matrix.delete")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	playerID := r.URL.Query().Get("player_id")

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrMatrixSessionNotFound) {
			log.Debugf("matrix session %s not found", id)
			http.Error(w, "matrix session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete matrix session %s: %s", id, err)
		http.Error(w, "matrix session not deleted", http.StatusInternalServerError)
		return
	}

	if playerID != "" {
		if err := handler.invalidator.Invalidate(ctx, playerID); err != nil {
			log.Errorf("failed to invalidate insights for player %s: %s", playerID, err)
		}
	}

	deleteRespJson, err := json.Marshal(DeleteMatrixSessionResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
