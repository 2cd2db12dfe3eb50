package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	adapterHTTP "github.com/comitanigiacomo/habitly/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habitly/internal/adapters/cache"
	"github.com/comitanigiacomo/habitly/internal/adapters/repository"
	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/core/services"
	"github.com/comitanigiacomo/habitly/internal/core/workers"
	"github.com/comitanigiacomo/habitly/internal/infra/config"
	"github.com/comitanigiacomo/habitly/internal/infra/logger"
	"github.com/comitanigiacomo/habitly/internal/infra/scheduler"
)

// server bundles the router with the background components it feeds.
type server struct {
	router    *gin.Engine
	worker    *workers.StreakWorker
	scheduler *scheduler.StreakScheduler
}

func newServer(cfg *config.AppConfig, db *sqlx.DB, rdb *redis.Client, startTime time.Time) *server {
	var habitRepo domain.HabitRepository = repository.NewSQLHabitRepository(db)
	if rdb != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb)
	}
	eventRepo := repository.NewSQLEventRepository(db)
	userRepo := repository.NewSQLUserRepository(db)

	worker := workers.NewStreakWorker(habitRepo, eventRepo)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, userRepo)
	habitService := services.NewHabitService(habitRepo)
	eventService := services.NewEventService(eventRepo, habitRepo, worker)
	analyticsService := services.NewAnalyticsService(habitRepo, eventRepo, userRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService, tokenService),
		HabitHandler:     adapterHTTP.NewHabitHandler(habitService),
		EventHandler:     adapterHTTP.NewEventHandler(eventService),
		AnalyticsHandler: adapterHTTP.NewAnalyticsHandler(analyticsService),
		Tokens:           tokenService,
		DB:               db,
		Redis:            rdb,
		RateLimit:        cfg.RateLimit,
		RateWindow:       cfg.RateWindow,
		StartTime:        startTime,
	})

	return &server{
		router:    router,
		worker:    worker,
		scheduler: scheduler.NewStreakScheduler(habitRepo, worker, cfg.CronSpecStreakRefresh),
	}
}

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Critical: invalid configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Environment)
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.Log.WithField("component", "main")
	log.WithField("driver", cfg.DB.Driver).Info("Connecting to database...")

	db, err := repository.OpenPostgres(context.Background(), cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		log.WithError(err).Fatal("Critical: failed to connect to database")
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		log.WithError(err).Fatal("Critical: migrations failed")
	}
	log.Info("Database connected and migrated.")

	rdb, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without cache and rate limiting")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	srv := newServer(cfg, db, rdb, startTime)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	srv.worker.Start(workerCtx)

	if err := srv.scheduler.Start(); err != nil {
		log.WithError(err).Fatal("Critical: scheduler failed to start")
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Habitly API running on http://localhost:%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Critical server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}

	srv.scheduler.Stop()
	stopWorker()
	srv.worker.Wait()

	log.Info("Server stopped gracefully.")
}
