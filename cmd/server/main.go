package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/tomboulier/choix-stage-desar/config"
	"github.com/tomboulier/choix-stage-desar/internal/api/handler"
	"github.com/tomboulier/choix-stage-desar/internal/api/middleware"
	"github.com/tomboulier/choix-stage-desar/internal/api/router"
	"github.com/tomboulier/choix-stage-desar/internal/repository"
	"github.com/tomboulier/choix-stage-desar/internal/service"
	"github.com/tomboulier/choix-stage-desar/pkg/database"
	applogger "github.com/tomboulier/choix-stage-desar/pkg/logger"
	"github.com/tomboulier/choix-stage-desar/pkg/metrics"
	"github.com/tomboulier/choix-stage-desar/pkg/redis"
)

func main() {
	// 1. configuration
	cfg, err := config.Load(os.Getenv("CHOIX_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("admin_enabled", cfg.Admin.Enabled),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	// 4. Redis (optional: without it the token routes are not rate limited)
	var (
		rdb     *redis.Client
		limiter middleware.RateLimiter
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			limiter = rdb
		}
	}

	// 5. metrics
	var (
		collector *metrics.Collector
		recorder  metrics.Recorder = metrics.Nop{}
	)
	if cfg.Metrics.Enabled {
		collector = metrics.NewPrometheus(prometheus.NewRegistry(), cfg.Metrics.Namespace)
		recorder = collector
	}

	// 6. wiring: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, recorder, logger)
	h := handler.NewHandler(svc, logger)

	// 7. routes
	engine, err := router.Setup(cfg, h, db, limiter, collector, logger)
	if err != nil {
		logger.Fatal("router setup failed", zap.Error(err))
	}

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr), zap.String("base_url", cfg.Server.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 9. wait for a signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	sqlDB.Close()

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
