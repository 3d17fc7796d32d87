package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identitylab/account-system/internal/api"
	"github.com/identitylab/account-system/internal/core/ports"
	"github.com/identitylab/account-system/internal/core/service"
	"github.com/identitylab/account-system/internal/infrastructure/config"
	memorydb "github.com/identitylab/account-system/internal/infrastructure/db/memory"
	mongodb "github.com/identitylab/account-system/internal/infrastructure/db/mongo"
	redisdb "github.com/identitylab/account-system/internal/infrastructure/db/redis"
	"github.com/identitylab/account-system/internal/infrastructure/queue"
	"github.com/identitylab/account-system/internal/security"
	"github.com/identitylab/account-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Account directory ---
	var (
		repo    ports.AccountRepository
		mongoDB *mongo.Database
	)
	switch cfg.Store {
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		repo = mongodb.NewAccountRepository(db)
		mongoDB = db
	default:
		repo = memorydb.NewAccountRepository()
	}

	// --- Login throttle (optional) ---
	var (
		throttle    service.LoginThrottle
		redisClient *redis.Client
	)
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = client.Close() }()
		throttle = redisdb.NewLoginThrottle(client, cfg.Throttle.MaxAttempts, cfg.Throttle.Window)
		redisClient = client
	}

	// --- Core services ---
	deps := service.AggregateDeps{
		Hasher:         security.BcryptHasher{},
		Tokens:         security.RandomTokenGenerator{},
		SessionTTL:     cfg.SessionTTL,
		ImageProcessor: service.SimulatedImageProcessor{},
		Log:            log,
	}

	sink := service.NewAnalyticsRecorder(repo, deps, log)
	dispatcher := queue.NewDispatcher(0, sink, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(repo, deps, cfg.JWTSecret, throttle, dispatcher, log)
	accountService := service.NewAccountProvider(repo, deps, log)

	// --- HTTP server ---
	e := api.NewRouter(api.RouterDeps{
		AuthService:    authService,
		AccountService: accountService,
		Events:         dispatcher,
		MongoDB:        mongoDB,
		RedisClient:    redisClient,
		JWTSecret:      cfg.JWTSecret,
		Log:            log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("store", cfg.Store).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}
