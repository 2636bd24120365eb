// Command apikey administers the keys accepted by the server in API key mode.
//
//	apikey create
//	apikey revoke <id>
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/logger"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	userService := services.NewUserService(repository.NewUserRepository(db), zlog)
	authService := services.NewAuthService(userService, nil, repository.NewAPIKeyRepository(db), zlog)
	ctx := context.Background()

	switch os.Args[1] {
	case "create":
		key, err := authService.GenerateAPIKey(ctx)
		if err != nil {
			zlog.Fatal("failed to create api key", zap.Error(err))
		}
		fmt.Println(key.ID)
	case "revoke":
		if len(os.Args) != 3 {
			usage()
		}
		id, err := uuid.Parse(os.Args[2])
		if err != nil {
			log.Fatalf("Invalid key id %q: %v", os.Args[2], err)
		}
		if err := authService.DeactivateAPIKey(ctx, id); err != nil {
			zlog.Fatal("failed to revoke api key", zap.String("id", id.String()), zap.Error(err))
		}
		fmt.Printf("revoked %s\n", id)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: apikey create | apikey revoke <id>")
	os.Exit(2)
}
