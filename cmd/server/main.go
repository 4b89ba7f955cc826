package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/job-tracker/config"
	"github.com/ErlanBelekov/job-tracker/internal/auth"
	"github.com/ErlanBelekov/job-tracker/internal/health"
	"github.com/ErlanBelekov/job-tracker/internal/infrastructure"
	ctxlog "github.com/ErlanBelekov/job-tracker/internal/log"
	"github.com/ErlanBelekov/job-tracker/internal/metrics"
	"github.com/ErlanBelekov/job-tracker/internal/stats"
	httptransport "github.com/ErlanBelekov/job-tracker/internal/transport/http"
	"github.com/ErlanBelekov/job-tracker/internal/transport/http/handler"
	"github.com/ErlanBelekov/job-tracker/internal/usecase"
	"github.com/ErlanBelekov/job-tracker/internal/validate"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store, err := infrastructure.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		stop()
		log.Fatalf("store: %v", err)
	}
	defer store.Close()
	logger.Info("store opened", "backend", store.Backend)

	metrics.Register(prometheus.DefaultRegisterer)
	checker := health.NewChecker(map[string]health.Pinger{"store": store}, logger, prometheus.DefaultRegisterer)

	tokens := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTLifetime.Duration())
	v := validate.New()

	// Auth
	authUsecase := usecase.NewAuthUsecase(store.Users, auth.NewHasher(auth.DefaultCost), tokens, v, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Jobs
	jobUsecase := usecase.NewJobUsecase(store.Jobs, v)
	jobHandler := handler.NewJobHandler(jobUsecase, logger)

	router, err := httptransport.NewRouter(logger, httptransport.Options{
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimit:       cfg.RateLimitRequests,
		RateLimitWindow: cfg.RateLimitWindow,
		TrustedProxies:  cfg.TrustedProxies,
	}, authHandler, jobHandler, tokens)
	if err != nil {
		stop()
		log.Fatalf("router: %v", err)
	}

	collector, err := stats.NewCollector(store.Jobs, logger, cfg.StatsCron)
	if err != nil {
		stop()
		log.Fatalf("stats: %v", err)
	}

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		collector.Start(ctx)
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	<-collectorDone
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
