// Package api assembles the Fiber application: middleware, static file
// mounts and the REST/GraphQL routes.
package api

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mycms/portfolio-backend/internal/config"
	"github.com/mycms/portfolio-backend/restapi"
)

// NewFiberApp creates and configures a Fiber app with the CMS routes.
func NewFiberApp(cfg *config.Config, services restapi.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "portfolio-backend API v1.0",
		BodyLimit:   10 * 1024 * 1024, // 10MB
		ReadTimeout: 60 * time.Second, // seconds
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000,http://127.0.0.1:3000",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowMethods: "GET, POST, HEAD, PUT, DELETE, PATCH, OPTIONS",
	}))

	app.Use(logger.New())

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	// Static mounts: uploaded profile images, placeholder assets, and
	// the rendered pages themselves when the local driver is active.
	app.Static("/uploads", services.UploadDir)
	app.Static("/static", filepath.Join(cfg.Storage.LocalDir, "static"))
	if cfg.Storage.Driver == "local" {
		app.Static("/portfolios", filepath.Join(cfg.Storage.LocalDir, "portfolios"))
	}

	restapi.SetupRoutes(app, services)

	return app
}
