package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/tasktrack-dev/tasktrack/db"
	"github.com/tasktrack-dev/tasktrack/internal/auth"
	"github.com/tasktrack-dev/tasktrack/internal/config"
	"github.com/tasktrack-dev/tasktrack/internal/handlers"
	"github.com/tasktrack-dev/tasktrack/internal/middleware"
	"github.com/tasktrack-dev/tasktrack/internal/router"
	"github.com/tasktrack-dev/tasktrack/internal/service"
	"github.com/tasktrack-dev/tasktrack/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gdb, err := db.Connect(cfg.DatabaseDSN)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration())

	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	userStore := store.NewUserStore(gdb)
	taskStore := store.NewTaskStore(gdb)

	userService := service.NewUserService(userStore)
	taskService := service.NewTaskService(taskStore)

	r := router.New(cfg, router.Deps{
		Auth:   handlers.NewAuthHandler(userService, tokens, cfg.CookieDomain),
		Tasks:  handlers.NewTaskHandler(taskService),
		Users:  handlers.NewUserHandler(userService),
		Health: handlers.NewHealthHandler(gdb),
		AuthMW: middleware.Auth(tokens, userStore),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
