package main

import (
	"context"
	"log"

	"github.com/arman-y/MentorHubBack/internal/app"
	"github.com/arman-y/MentorHubBack/internal/config"
	"github.com/arman-y/MentorHubBack/internal/database"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	// 2. Connect to Database
	pool, err := database.Connect(context.Background(), cfg.DBUrl)
	if err != nil {
		zapLogger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	// 3. Wire the service layer
	core := app.New(cfg, pool, zapLogger)

	// 4. Setup Fiber
	srv := fiber.New()

	srv.Use(cors.New())
	srv.Use(logger.New())
	srv.Use(recover.New())

	// The routing layer is mounted externally; it pulls the services out of
	// locals.
	srv.Use(func(c *fiber.Ctx) error {
		c.Locals("core", core)
		return c.Next()
	})

	srv.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	// 5. Start Server
	zapLogger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := srv.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server failed to start", zap.Error(err))
	}
}
