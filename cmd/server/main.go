package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/queuewise/mlservice/internal/api"
	"github.com/queuewise/mlservice/internal/auth"
	"github.com/queuewise/mlservice/internal/config"
	"github.com/queuewise/mlservice/internal/demand"
	"github.com/queuewise/mlservice/internal/emergency"
	"github.com/queuewise/mlservice/internal/feedback"
	"github.com/queuewise/mlservice/internal/insights"
	"github.com/queuewise/mlservice/internal/metrics"
	"github.com/queuewise/mlservice/internal/noshow"
	"github.com/queuewise/mlservice/internal/storage"
	"github.com/queuewise/mlservice/internal/waittime"
	"github.com/queuewise/mlservice/internal/websocket"
	"github.com/queuewise/mlservice/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Msg("starting queuewise ml service")

	// Create context for services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create storage (DynamoDB or noop depending on config)
	store, err := storage.NewStore(ctx, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// Initialize JWKS for admin auth when an issuer is configured
	if cfg.AuthIssuer != "" {
		if err := auth.InitJWKS(cfg.AuthIssuer); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize JWKS")
		}
	} else if !cfg.SkipAuth {
		log.Warn().Msg("no AUTH_ISSUER configured, admin routes require SKIP_AUTH=true for local use")
	}

	// Create the estimators
	waitEstimator := waittime.NewEstimator(log.Logger)
	noShowScorer := noshow.NewRuleScorer()
	forecaster := demand.NewRuleForecaster()
	classifier := emergency.NewRuleClassifier()

	// Create insights aggregator
	aggregator := insights.NewAggregator(forecaster, noShowScorer, cfg.OverviewHours, cfg.StaffPlanHours, log.Logger)

	// Create WebSocket hub and live insights broadcaster
	hub := websocket.NewHub(log.Logger)
	go hub.Run()

	wsHandler := websocket.NewHandler(hub, cfg, log.Logger)

	broadcaster := insights.NewBroadcaster(aggregator, hub, cfg.DefaultServiceID, cfg.BroadcastInterval, log.Logger)
	go broadcaster.Start(ctx)

	// Create handlers
	predictHandler := api.NewPredictHandler(waitEstimator, noShowScorer, forecaster, log.Logger)
	emergencyHandler := api.NewEmergencyHandler(classifier, log.Logger)
	insightsHandler := api.NewInsightsHandler(aggregator, cfg.DefaultServiceID, log.Logger)
	adminHandler := api.NewAdminHandler(waitEstimator, store, log.Logger)
	infoHandler := api.NewInfoHandler(waitEstimator)
	feedbackReceiver := feedback.NewReceiver(store, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public routes
	r.Get("/", infoHandler.HandleRoot)
	r.Get("/health", infoHandler.HandleHealth)
	r.Get("/models/info", infoHandler.HandleModelsInfo)
	r.Get("/metrics", metrics.Get().Handler())
	r.Get("/ws", wsHandler.ServeHTTP)

	// Prediction routes
	r.Route("/predict", func(r chi.Router) {
		r.Post("/wait-time", predictHandler.HandleWaitTime)
		r.Post("/no-show", predictHandler.HandleNoShow)
		r.Post("/demand", predictHandler.HandleDemand)
	})

	// Emergency claim routes
	r.Post("/classify/emergency", emergencyHandler.HandleClassify)
	r.Post("/verify/senior", emergencyHandler.HandleVerifySenior)
	r.Post("/validate/id", emergencyHandler.HandleValidateID)

	// Insights routes
	r.Route("/insights", func(r chi.Router) {
		r.Get("/overview", insightsHandler.HandleOverview)
		r.Get("/staff-plan", insightsHandler.HandleStaffPlan)
	})

	// Feedback routes
	r.Post("/feedback", feedbackReceiver.HandleFeedback)
	r.Get("/feedback/stats", feedbackReceiver.GetStats)

	// Admin routes (JWT protected)
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Use(api.RequireAdmin)
		r.Post("/train/wait-time", adminHandler.HandleTrainWaitTime)
		r.Get("/calibration", adminHandler.HandleGetCalibration)
		r.Delete("/calibration", adminHandler.HandleResetCalibration)
		r.Get("/feedback/events", adminHandler.HandleGetFeedbackEvents)
		r.Delete("/data", adminHandler.HandleResetData)
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Stop the broadcaster
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
