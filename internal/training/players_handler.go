package training

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/athletiq/athlete-tracker/internal/telemetry/tracing"
	"github.com/athletiq/athlete-tracker/internal/training/validate"
	"github.com/athletiq/athlete-tracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=players_mocks_test.go -package=training_test

type playersRepo interface {
	Add(ctx context.Context, player Player) (*Player, error)
	Get(ctx context.Context, id string) (*Player, error)
	List(ctx context.Context) ([]Player, error)
	Delete(ctx context.Context, id string) error
}

type DeletePlayerResponse struct {
	DeletedID string `json:"deletedId"`
}

type PlayersHandler struct {
	repo        playersRepo
	invalidator insightsInvalidator
}

func NewPlayersHandler(repo playersRepo, invalidator insightsInvalidator) *PlayersHandler {
	return &PlayersHandler{
		repo:        repo,
		invalidator: invalidator,
	}
}

func (handler *PlayersHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.players.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var player Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
		log.Tracef("new player, unmarshal json params: %s", err)
		http.Error(w, "add player failed", http.StatusBadRequest)
		return
	}

	if result := validate.PlayerName(player.Name); !result.Valid {
		http.Error(w, result.Error, http.StatusBadRequest)
		return
	}
	player.Name = strings.TrimSpace(player.Name)

	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now()
	}

	addedPlayer, err := handler.repo.Add(ctx, player)
	if err != nil {
		log.Errorf("failed to add new player [%s]: %s", player.Name, err)
		http.Error(w, "error, failed to add new player", http.StatusInternalServerError)
		return
	}

	addedPlayerJson, err := json.Marshal(addedPlayer)
	if err != nil {
		log.Errorf("failed to marshal new player: %s", err)
		http.Error(w, "error, failed to add new player", http.StatusInternalServerError)
		return
	}

	log.Debugf("new player added: %s", addedPlayerJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedPlayerJson, http.StatusCreated)
}

func (handler *PlayersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.players.get")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	player, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get player %s: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	playerJson, err := json.Marshal(player)
	if err != nil {
		log.Errorf("failed to marshal player: %s", err)
		http.Error(w, "failed to marshal player", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, playerJson, http.StatusOK)
}

func (handler *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.players.list")
	defer span.End()

	players, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list players error: %s", err)
		http.Error(w, "failed to get players", http.StatusInternalServerError)
		return
	}

	playersJson, err := json.Marshal(players)
	if err != nil {
		log.Errorf("marshal players error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, playersJson, http.StatusOK)
}

func (handler *PlayersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.players.delete")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			log.Debugf("player %s not found", id)
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete player %s: %s", id, err)
		http.Error(w, "player not deleted", http.StatusInternalServerError)
		return
	}

	if err := handler.invalidator.Invalidate(ctx, id); err != nil {
		// stale cache only, the delete itself went through
		log.Errorf("failed to invalidate insights for player %s: %s", id, err)
	}

	deleteRespJson, err := json.Marshal(DeletePlayerResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
