package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/habitloop/streakboard/internal/adapters/cache"
	adapterHTTP "github.com/habitloop/streakboard/internal/adapters/handler/http"
	"github.com/habitloop/streakboard/internal/adapters/repository"
	"github.com/habitloop/streakboard/internal/core/domain"
	"github.com/habitloop/streakboard/internal/core/services"
	"github.com/habitloop/streakboard/internal/core/workers"
	"github.com/habitloop/streakboard/internal/logger"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	if err := logger.Init(logger.Config{
		Level:    envOr("LOG_LEVEL", "info"),
		FilePath: os.Getenv("LOG_FILE"),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.L.Sync() }()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOr("DB_USER", "streakboard"),
		envOr("DB_PASSWORD", ""),
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_NAME", "streakboard"),
	)

	logger.S.Info("connecting to database")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		logger.S.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	redisDB, _ := strconv.Atoi(envOr("REDIS_DB", "0"))
	redisClient, err := cache.NewRedisClient(
		envOr("REDIS_HOST", "localhost"),
		envOr("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		redisDB,
	)
	if err != nil {
		// the API works without redis, just slower and unthrottled
		logger.S.Warnw("redis unavailable, running without cache", "error", err)
		redisClient = nil
	}

	challengeRepo := repository.NewPostgresChallengeRepository(db)
	membershipRepo := repository.NewPostgresMembershipRepository(db)
	checkInRepo := repository.NewPostgresCheckInRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	achievementRepo := repository.NewPostgresAchievementRepository(db)

	metricsRepo := repository.NewPostgresMetricsRepository(db)
	var metricsStore domain.MetricsRepository = metricsRepo
	if redisClient != nil {
		metricsStore = repository.NewCachedMetricsRepository(metricsRepo, redisClient)
	}

	metricsService := services.NewMetricsService(checkInRepo, metricsStore)
	checkInService := services.NewCheckInService(checkInRepo, membershipRepo, metricsService)
	freezeService := services.NewFreezeService(checkInRepo, membershipRepo)
	challengeService := services.NewChallengeService(challengeRepo, membershipRepo)
	leaderboardService := services.NewLeaderboardService(challengeRepo, metricsStore, userRepo, achievementRepo)
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(
		envOr("JWT_SECRET", "dev-secret-change-me"),
		"streakboard",
		24*time.Hour,
		userRepo,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reconciler := workers.NewReconcileWorker(metricsService, membershipRepo)
	if err := reconciler.Start(ctx); err != nil {
		logger.S.Fatalw("failed to start reconcile worker", "error", err)
	}
	defer reconciler.Stop()

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(authService, tokenService),
		ChallengeHandler:   adapterHTTP.NewChallengeHandler(challengeService),
		CheckInHandler:     adapterHTTP.NewCheckInHandler(checkInService, freezeService, metricsService),
		LeaderboardHandler: adapterHTTP.NewLeaderboardHandler(leaderboardService),
		TokenService:       tokenService,
		DB:                 db,
		Redis:              redisClient,
		StartTime:          startTime,
	})

	srv := &http.Server{
		Addr:         ":" + envOr("PORT", "8080"),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.S.Infow("streakboard api listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.S.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.S.Info("stop signal received, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.S.Fatalw("forced shutdown", "error", err)
	}

	logger.S.Info("server stopped gracefully")
}
