package training

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/athletiq/athlete-tracker/internal/telemetry/metrics"
	"github.com/athletiq/athlete-tracker/internal/telemetry/tracing"
	"github.com/athletiq/athlete-tracker/internal/training/validate"
	"github.com/athletiq/athlete-tracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=sessions_mocks_test.go -package=training_test

type sessionsRepo interface {
	Add(ctx context.Context, session Session) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, params SessionListParams) (_ []Session, total int, err error)
	ListAll(ctx context.Context, params SessionParams) ([]Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// insightsInvalidator drops a player's cached insights after their
// data changes.
type insightsInvalidator interface {
	Invalidate(ctx context.Context, playerID string) error
}

type DeleteSessionResponse struct {
	DeletedID string `json:"deletedId"`
}

type UpdateSessionResponse struct {
	UpdatedID string `json:"updatedId"`
}

type SessionListResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type ValidationErrorsResponse struct {
	Errors map[string]string `json:"errors"`
}

type SessionsHandler struct {
	repo        sessionsRepo
	invalidator insightsInvalidator
	metrics     *metrics.Manager
}

func NewSessionsHandler(
	repo sessionsRepo,
	invalidator insightsInvalidator,
	metricsManager *metrics.Manager,
) *SessionsHandler {
	return &SessionsHandler{
		repo:        repo,
		invalidator: invalidator,
		metrics:     metricsManager,
	}
}

func (handler *SessionsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var session Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Tracef("new session, unmarshal json params: %s", err)
		http.Error(w, "add session failed", http.StatusBadRequest)
		return
	}

	if session.PlayerID == "" {
		http.Error(w, "error, player id empty", http.StatusBadRequest)
		return
	}

	if validationErrors := validate.SessionForm(session, time.Now()); len(validationErrors) > 0 {
		writeValidationErrors(w, validationErrors)
		return
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	addedSession, err := handler.repo.Add(ctx, session)
	if err != nil {
		log.Errorf("failed to add new session for player [%s]: %s", session.PlayerID, err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSessionsAdded.Inc()

	if err := handler.invalidator.Invalidate(ctx, addedSession.PlayerID); err != nil {
		log.Errorf("failed to invalidate insights for player %s: %s", addedSession.PlayerID, err)
	}

	addedSessionJson, err := json.Marshal(addedSession)
	if err != nil {
		log.Errorf("failed to marshal new session: %s", err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	log.Debugf("new session added: %s", addedSessionJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedSessionJson, http.StatusCreated)
}

func (handler *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	session, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get session %s: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal session: %s", err)
		http.Error(w, "failed to marshal session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusOK)
}

func (handler *SessionsHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.listall")
	defer span.End()

	sessions, err := handler.repo.ListAll(ctx, SessionParams{
		PlayerID: r.URL.Query().Get("player_id"),
	})
	if err != nil {
		log.Errorf("list sessions error: %s", err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}

	sessionsJson, err := json.Marshal(sessions)
	if err != nil {
		log.Errorf("marshal sessions error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionsJson, http.StatusOK)
}

func (handler *SessionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	vars := mux.Vars(r)
	pageStr := vars["page"]
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		log.Tracef("handle get sessions page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Tracef("handle get sessions page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	sessions, total, err := handler.repo.List(ctx, SessionListParams{
		SessionParams: SessionParams{
			PlayerID: r.URL.Query().Get("player_id"),
		},
		Page: page,
		Size: size,
	})
	if err != nil {
		log.Errorf("list sessions error: %s", err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}

	listRespJson, err := json.Marshal(SessionListResponse{
		Sessions: sessions,
		Total:    total,
	})
	if err != nil {
		log.Errorf("marshal sessions error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}

func (handler *SessionsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var session Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("update session, unmarshal json params: %s", err)
		http.Error(w, "update session failed", http.StatusBadRequest)
		return
	}

	if session.ID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if validationErrors := validate.SessionForm(session, time.Now()); len(validationErrors) > 0 {
		writeValidationErrors(w, validationErrors)
		return
	}

	currentSession, err := handler.repo.Get(ctx, session.ID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			log.Debugf("session %s not found", session.ID)
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get session %s: %s", session.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	session.PlayerID = currentSession.PlayerID

	if err := handler.repo.Update(ctx, &session); err != nil {
		log.Errorf("failed to update session [%s]: %s", session.ID, err)
		http.Error(w, "error, failed to update session", http.StatusInternalServerError)
		return
	}

	if err := handler.invalidator.Invalidate(ctx, session.PlayerID); err != nil {
		log.Errorf("failed to invalidate insights for player %s: %s", session.PlayerID, err)
	}

	updateRespJson, err := json.Marshal(UpdateSessionResponse{
		UpdatedID: session.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	log.Debugf("session updated: [%s] for player [%s]", session.ID, session.PlayerID)
	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *SessionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.delete")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	session, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			log.Debugf("session %s not found", id)
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get session %s: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete session %s: %s", id, err)
		http.Error(w, "session not deleted", http.StatusInternalServerError)
		return
	}

	if err := handler.invalidator.Invalidate(ctx, session.PlayerID); err != nil {
		log.Errorf("failed to invalidate insights for player %s: %s", session.PlayerID, err)
	}

	deleteRespJson, err := json.Marshal(DeleteSessionResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func writeValidationErrors(w http.ResponseWriter, validationErrors map[string]string) {
	respJson, err := json.Marshal(ValidationErrorsResponse{
		Errors: validationErrors,
	})
	if err != nil {
		log.Errorf("failed to marshal validation errors: %s", err)
		http.Error(w, "invalid session data", http.StatusBadRequest)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusBadRequest)
}
