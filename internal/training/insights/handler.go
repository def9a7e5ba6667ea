package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/athletiq/athlete-tracker/internal/telemetry/metrics"
	"github.com/athletiq/athlete-tracker/internal/telemetry/tracing"
	training "github.com/athletiq/athlete-tracker/internal/training/model"
	"github.com/athletiq/athlete-tracker/pkg"
)

// insightsCache is what the handler needs from the redis cache.
type insightsCache interface {
	Get(ctx context.Context, playerID string) (*Insights, error)
	Set(ctx context.Context, playerID string, insights *Insights) error
}

type Handler struct {
	analyzer *Analyzer
	cache    insightsCache
	metrics  *metrics.Manager
}

func NewHandler(analyzer *Analyzer, cache insightsCache, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		analyzer: analyzer,
		cache:    cache,
		metrics:  metricsManager,
	}
}

func (handler *Handler) HandlePlayerInsights(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.player")
	defer span.End()

	vars := mux.Vars(r)
	playerID := vars["playerId"]
	if playerID == "" {
		http.Error(w, "error, player id empty", http.StatusBadRequest)
		return
	}

	if cached, err := handler.cache.Get(ctx, playerID); err != nil {
		log.Errorf("failed to get cached insights for player %s: %s", playerID, err)
	} else if cached != nil {
		writeJson(w, cached)
		return
	}

	playerInsights, err := handler.analyzer.PlayerInsights(ctx, playerID)
	if err != nil {
		if errors.Is(err, training.ErrPlayerNotFound) {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get insights for player %s: %s", playerID, err)
		http.Error(w, "failed to get player insights", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterInsightsCalculated.Inc()

	if err := handler.cache.Set(ctx, playerID, playerInsights); err != nil {
		log.Errorf("failed to cache insights for player %s: %s", playerID, err)
	}

	writeJson(w, playerInsights)
}

func (handler *Handler) HandlePlayerCharts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.charts")
	defer span.End()

	vars := mux.Vars(r)
	playerID := vars["playerId"]
	if playerID == "" {
		http.Error(w, "error, player id empty", http.StatusBadRequest)
		return
	}

	chartData, err := handler.analyzer.PlayerChartData(ctx, playerID)
	if err != nil {
		if errors.Is(err, training.ErrPlayerNotFound) {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get chart data for player %s: %s", playerID, err)
		http.Error(w, "failed to get player chart data", http.StatusInternalServerError)
		return
	}

	writeJson(w, chartData)
}

func (handler *Handler) HandlePlayerProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.progress")
	defer span.End()

	vars := mux.Vars(r)
	playerID := vars["playerId"]
	if playerID == "" {
		http.Error(w, "error, player id empty", http.StatusBadRequest)
		return
	}

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = ProgressRunTime
	}

	progress, err := handler.analyzer.PlayerProgress(ctx, playerID, metric)
	if err != nil {
		if errors.Is(err, training.ErrPlayerNotFound) {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get progress for player %s: %s", playerID, err)
		http.Error(w, "failed to get player progress", http.StatusInternalServerError)
		return
	}

	writeJson(w, progress)
}

func (handler *Handler) HandleLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.leaderboards")
	defer span.End()

	leaderboards, err := handler.analyzer.Leaderboards(ctx)
	if err != nil {
		log.Errorf("failed to get leaderboards: %s", err)
		http.Error(w, "failed to get leaderboards", http.StatusInternalServerError)
		return
	}

	writeJson(w, leaderboards)
}

func (handler *Handler) HandleParticipation(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.participation")
	defer span.End()

	today := r.URL.Query().Get("today")
	if today == "" {
		today = LocalDateString()
	}

	participation, err := handler.analyzer.Participation(ctx, today)
	if err != nil {
		log.Errorf("failed to get participation: %s", err)
		http.Error(w, "failed to get participation", http.StatusInternalServerError)
		return
	}

	writeJson(w, participation)
}

func (handler *Handler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.alerts")
	defer span.End()

	alerts, err := handler.analyzer.Alerts(ctx)
	if err != nil {
		log.Errorf("failed to get alerts: %s", err)
		http.Error(w, "failed to get alerts", http.StatusInternalServerError)
		return
	}

	writeJson(w, alerts)
}

func (handler *Handler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.team")
	defer span.End()

	today := r.URL.Query().Get("today")
	if today == "" {
		today = LocalDateString()
	}

	teamStats, err := handler.analyzer.Team(ctx, today)
	if err != nil {
		log.Errorf("failed to get team overview: %s", err)
		http.Error(w, "failed to get team overview", http.StatusInternalServerError)
		return
	}

	writeJson(w, teamStats)
}

func writeJson(w http.ResponseWriter, payload any) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("failed to marshal insights response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, payloadJson, http.StatusOK)
}
