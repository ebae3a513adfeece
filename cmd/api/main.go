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
	"github.com/rs/zerolog/log"

	"github.com/schoolhub/schoolhub-api/internal/config"
	"github.com/schoolhub/schoolhub-api/internal/domain/content"
	"github.com/schoolhub/schoolhub-api/internal/domain/filter"
	"github.com/schoolhub/schoolhub-api/internal/domain/notification"
	"github.com/schoolhub/schoolhub-api/internal/domain/report"
	"github.com/schoolhub/schoolhub-api/internal/domain/user"
	"github.com/schoolhub/schoolhub-api/internal/middleware"
	"github.com/schoolhub/schoolhub-api/internal/pkg/database"
	"github.com/schoolhub/schoolhub-api/internal/pkg/jwt"
	"github.com/schoolhub/schoolhub-api/internal/pkg/logger"
	"github.com/schoolhub/schoolhub-api/internal/pkg/ratelimit"
	"github.com/schoolhub/schoolhub-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting schoolhub API")

	// Database
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	// Redis (optional; limiter and notifications degrade gracefully without it)
	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	// Services
	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	policy := filter.DefaultPolicy()
	if cfg.PolicyFile != "" {
		policy, err = filter.LoadPolicy(cfg.PolicyFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.PolicyFile).Msg("Failed to load moderation policy")
		}
	}
	classifier := filter.NewClassifier(policy, filter.ParseTier(cfg.PolicyTier))

	limiter := &reportLimiter{
		limiter: ratelimit.NewLimiter(redisClient),
		rule: ratelimit.Rule{
			Key:    "rl:report:",
			Limit:  cfg.ReportRateLimit,
			Window: cfg.ReportRateWindow,
		},
	}

	// Repositories
	userRepo := user.NewRepository(db)
	contentRepo := content.NewRepository(db)
	reportRepo := report.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	notifier := notification.NewService(notificationRepo, redisClient)

	reportService := report.NewService(reportRepo, userRepo, contentRepo, classifier, limiter, notifier, report.Config{
		SLAWindow:       cfg.SLAWindow,
		TempBanDuration: cfg.TempBanDuration,
	})
	reportHandler := report.NewHandler(reportService)

	// SLA sweep runs until shutdown
	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	slaMonitor := report.NewSLAMonitor(reportRepo, notifier, cfg.SLASweepInterval)
	go slaMonitor.Start(monitorCtx)

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		report.RegisterRoutes(r, reportHandler, jwtService)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	stopMonitor()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// reportLimiter binds the generic limiter to the report submission rule.
type reportLimiter struct {
	limiter *ratelimit.Limiter
	rule    ratelimit.Rule
}

func (l *reportLimiter) Allow(ctx context.Context, reporterID string) (bool, error) {
	return l.limiter.Allow(ctx, reporterID, l.rule)
}
