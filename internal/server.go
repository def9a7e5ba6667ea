package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/athletiq/athlete-tracker/internal/auth"
	"github.com/athletiq/athlete-tracker/internal/config"
	"github.com/athletiq/athlete-tracker/internal/db"
	"github.com/athletiq/athlete-tracker/internal/middleware"
	"github.com/athletiq/athlete-tracker/internal/telemetry/metrics"
	"github.com/athletiq/athlete-tracker/internal/telemetry/tracing"
	"github.com/athletiq/athlete-tracker/internal/training"
	"github.com/athletiq/athlete-tracker/internal/training/insights"
	"github.com/athletiq/athlete-tracker/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	CoachUsername           string
	CoachPasswordHash       string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "athlete_tracker_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("athletetracker", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(&auth.Coach{
		Username:     params.CoachUsername,
		PasswordHash: params.CoachPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "athlete-tracker", rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("athlete-tracker-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "POST", "OPTIONS").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	insightsCache := insights.NewCache(
		s.redisClient,
		time.Duration(s.config.InsightsCacheTTLMinutes)*time.Minute,
		s.metricsManager,
	)

	playersRepo := training.NewPlayersRepo(s.dbPool)
	sessionsRepo := training.NewSessionsRepo(s.dbPool)
	matrixRepo := training.NewMatrixRepo(s.dbPool)

	playersHandler := training.NewPlayersHandler(playersRepo, insightsCache)
	r.HandleFunc("/players", playersHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-player")
	r.HandleFunc("/players", playersHandler.HandleList).Methods("GET", "OPTIONS").Name("list-players")
	r.HandleFunc("/players/{id}", playersHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-player")
	r.HandleFunc("/players/{id}", playersHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-player")

	sessionsHandler := training.NewSessionsHandler(sessionsRepo, insightsCache, s.metricsManager)
	r.HandleFunc("/sessions", sessionsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/sessions", sessionsHandler.HandleListAll).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/sessions", sessionsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-session")
	r.HandleFunc("/sessions/list/page/{page}/size/{size}", sessionsHandler.HandleList).Methods("GET", "OPTIONS").Name("sessions-page")
	r.HandleFunc("/sessions/{id}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/sessions/{id}", sessionsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")

	matrixHandler := training.NewMatrixHandler(matrixRepo, insightsCache, s.metricsManager)
	r.HandleFunc("/matrix", matrixHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-matrix-session")
	r.HandleFunc("/matrix", matrixHandler.HandleListAll).Methods("GET", "OPTIONS").Name("list-matrix-sessions")
	r.HandleFunc("/matrix/player/{playerId}", matrixHandler.HandleListAll).Methods("GET", "OPTIONS").Name("player-matrix-sessions")
	r.HandleFunc("/matrix/{id}", matrixHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-matrix-session")

	insightsAnalyzer := insights.NewAnalyzer(sessionsRepo, playersRepo, matrixRepo)
	insightsHandler := insights.NewHandler(insightsAnalyzer, insightsCache, s.metricsManager)
	r.HandleFunc("/insights/player/{playerId}", insightsHandler.HandlePlayerInsights).Methods("GET", "OPTIONS").Name("player-insights")
	r.HandleFunc("/insights/player/{playerId}/charts", insightsHandler.HandlePlayerCharts).Methods("GET", "OPTIONS").Name("player-charts")
	r.HandleFunc("/insights/player/{playerId}/progress", insightsHandler.HandlePlayerProgress).Methods("GET", "OPTIONS").Name("player-progress")
	r.HandleFunc("/insights/leaderboard", insightsHandler.HandleLeaderboards).Methods("GET", "OPTIONS").Name("leaderboard")
	r.HandleFunc("/insights/participation", insightsHandler.HandleParticipation).Methods("GET", "OPTIONS").Name("participation")
	r.HandleFunc("/insights/alerts", insightsHandler.HandleAlerts).Methods("GET", "OPTIONS").Name("alerts")
	r.HandleFunc("/insights/team", insightsHandler.HandleTeam).Methods("GET", "OPTIONS").Name("team-overview")

	authHandler := auth.NewHandler(s.authService)
	loginSubrouter := r.PathPrefix("/a").Subrouter()
	loginSubrouter.HandleFunc("/login", authHandler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.HandleFunc("/logout", authHandler.HandleLogout).Methods("GET", "OPTIONS").Name("logout")

	// rate limit the /login and /logout endpoints to prevent abuse
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	loginSubrouter.Use(middleware.RateLimit(reqRateLimiter, "login", s.config.LoginRateLimitAllowedPerMin, s.metricsManager))
	loginSubrouter.Use(middleware.Cors())

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
