package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"notekeeper/internal/config"
	"notekeeper/internal/db"
	apihttp "notekeeper/internal/http"
	"notekeeper/internal/repository"
	"notekeeper/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := db.RunMigrations(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	noteRepo := repository.NewPgNoteRepository(pool)

	jwtSvc := service.NewJWTService(cfg.JWTSecret)
	userSvc := service.NewUserService(logger, userRepo)
	noteSvc := service.NewNoteService(logger, noteRepo)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	noteHandler := apihttp.NewNoteHandler(logger, noteSvc)
	router := apihttp.NewRouter(logger, userHandler, noteHandler, jwtSvc, userSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
