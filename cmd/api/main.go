package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/angelmondragon/pawhaven-backend/api/responses"
	"github.com/angelmondragon/pawhaven-backend/api/routes"
	"github.com/angelmondragon/pawhaven-backend/internal/adoptions"
	"github.com/angelmondragon/pawhaven-backend/internal/auth"
	"github.com/angelmondragon/pawhaven-backend/internal/entities"
	"github.com/angelmondragon/pawhaven-backend/internal/pets"
	"github.com/angelmondragon/pawhaven-backend/internal/users"
	"github.com/angelmondragon/pawhaven-backend/pkg/config"
	"github.com/angelmondragon/pawhaven-backend/pkg/db"
	"github.com/angelmondragon/pawhaven-backend/pkg/env"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
	"github.com/angelmondragon/pawhaven-backend/pkg/migrate"
	"github.com/angelmondragon/pawhaven-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	if cfg.JWT.UsesDevSecret() {
		logg.Warn(context.Background(), "using the built-in development JWT secret; set PAWHAVEN_JWT_SECRET")
	}
	responses.ExposeDiagnostics(!cfg.App.IsProd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.Open(ctx, cfg, logg)
	requireResource(ctx, logg, "database", err)

	requireResource(ctx, logg, "migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
	} else {
		logg.Info(ctx, "redis not configured; auth rate limiting disabled")
	}

	userRepo := users.NewRepository(dbClient.DB())
	petRepo := pets.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	requireResource(ctx, logg, "auth service", err)

	entityService, err := entities.NewService(entities.ServiceParams{Repo: entities.NewRepository(dbClient.DB())})
	requireResource(ctx, logg, "entities service", err)

	userService, err := users.NewService(users.ServiceParams{UserRepo: userRepo, Entities: entityService})
	requireResource(ctx, logg, "users service", err)

	petService, err := pets.NewService(pets.ServiceParams{Repo: petRepo})
	requireResource(ctx, logg, "pets service", err)

	adoptionService, err := adoptions.NewService(adoptions.ServiceParams{
		Requests: adoptions.NewRepository(dbClient.DB()),
		Pets:     petRepo,
		Logger:   logg,
	})
	requireResource(ctx, logg, "adoptions service", err)

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"sqlite": cfg.FeatureFlags.UseSQLite,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Auth:      authService,
			Users:     userService,
			Entities:  entityService,
			Pets:      petService,
			Adoptions: adoptionService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			closeAll(ctx, logg, dbClient, redisClient)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(context.WithoutCancel(ctx), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	err = server.Shutdown(shutdownCtx)
	if closeErr := closeAll(shutdownCtx, logg, dbClient, redisClient); closeErr != nil {
		err = multierr.Append(err, closeErr)
	}
	if err != nil {
		logg.Error(shutdownCtx, "shutdown finished with errors", err)
		os.Exit(1)
	}
	logg.Info(shutdownCtx, "api server stopped")
}

func closeAll(ctx context.Context, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) error {
	var err error
	if redisClient != nil {
		err = multierr.Append(err, redisClient.Close())
	}
	err = multierr.Append(err, dbClient.Close())
	if err != nil {
		logg.Warn(ctx, "error closing resources")
	}
	return err
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
