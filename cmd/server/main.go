package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/logger"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/server"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	userService := services.NewUserService(repository.NewUserRepository(db), zlog)
	projectService := services.NewProjectService(repository.NewProjectRepository(db), userService, zlog)
	taskService := services.NewTaskService(repository.NewTaskRepository(db), userService, projectService, zlog)
	keyRepo := repository.NewAPIKeyRepository(db)

	deps := server.Deps{
		Users:    userService,
		Projects: projectService,
		Tasks:    taskService,
	}

	switch cfg.AuthMode {
	case config.AuthModeJWT:
		tokens := services.NewTokenAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiresIn, userService)
		deps.Authenticator = tokens
		deps.Auth = services.NewAuthService(userService, tokens, keyRepo, zlog)
		zlog.Warn("token login checks only the email address",
			zap.Bool("release_mode", cfg.IsProduction()),
			zap.Bool("allow_email_login", cfg.AllowEmailLogin),
		)
	default:
		deps.Authenticator = services.NewAPIKeyAuthenticator(keyRepo, zlog)
		deps.Auth = services.NewAuthService(userService, nil, keyRepo, zlog)
	}

	router, err := server.NewRouter(cfg, deps, zlog)
	if err != nil {
		zlog.Fatal("failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server starting", zap.String("addr", srv.Addr), zap.String("auth_mode", cfg.AuthMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
