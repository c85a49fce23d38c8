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
	"github.com/sirupsen/logrus"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/handler"
	"github.com/taskhub/backend/internal/service"
)

// @title Task API
// @version 1.0
// @description User registration/login with JWT access and refresh tokens, and a per-user task list.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found")
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	store := &db.Postgres{Pool: pool}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.EnsureUserSchema(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to ensure user schema: %v", err)
	}
	if err := store.EnsureTaskSchema(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to ensure task schema: %v", err)
	}
	cancel()

	tokens, err := service.NewTokenService(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to init token service: %v", err)
	}

	authService := service.NewAuthService(store, tokens, log)
	userService := service.NewUserService(store)
	taskService := service.NewTaskService(store)

	router := handler.NewRouter(
		log,
		store,
		tokens,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewTaskHandler(taskService),
		cfg.Server.AllowedOrigins,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}
}
