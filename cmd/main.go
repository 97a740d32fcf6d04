package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Ibrahim4Grace/spot/config"
	"github.com/Ibrahim4Grace/spot/db"
	"github.com/Ibrahim4Grace/spot/internal/auth/handler"
	repo "github.com/Ibrahim4Grace/spot/internal/auth/repository/postgres"
	"github.com/Ibrahim4Grace/spot/internal/auth/service"
	"github.com/Ibrahim4Grace/spot/internal/mailer"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	mailQueue := mailer.NewQueue(rdb)
	mailWorker := mailer.NewWorker(rdb, mailer.LogDelivery(logger), logger)

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go mailWorker.Run(workerCtx)

	store := repo.NewStore(dbPool)
	tokenService := service.NewTokenService(service.TokenConfig{
		AuthSecret:    cfg.AuthTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		EmailSecret:   cfg.EmailTokenSecret,
		AccessExpiry:  cfg.AccessTokenExpiry,
		RefreshExpiry: cfg.RefreshTokenExpiry,
		EmailExpiry:   cfg.EmailTokenExpiry,
	})
	passwordService := service.NewPasswordService(cfg.BcryptCost)
	otpService := service.NewOtpService(store.Otps())
	authService := service.NewAuthService(store, tokenService, passwordService, otpService, mailQueue, logger)

	authHandler := handler.NewAuthHandler(authService)
	guard := handler.NewAuthGuard(tokenService, handler.PublicPaths()...)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, guard)

	logger.Info("starting auth service", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
