// package main wires up and serves the portfolio CMS backend: account
// signup/login, template-driven portfolio page generation, and CRUD
// over the stored pages and their metadata.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/mycms/portfolio-backend/database"
	gqlschema "github.com/mycms/portfolio-backend/graphql"
	"github.com/mycms/portfolio-backend/internal/api"
	"github.com/mycms/portfolio-backend/internal/blobstore"
	"github.com/mycms/portfolio-backend/internal/config"
	"github.com/mycms/portfolio-backend/internal/render"
	"github.com/mycms/portfolio-backend/internal/repository"
	"github.com/mycms/portfolio-backend/internal/services"
	"github.com/mycms/portfolio-backend/restapi"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := database.InitLogger()
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	// Initialize database connection
	db := database.InitializeDatabase(cfg.Arango)

	blobs, err := blobstore.New(context.Background(), cfg.Storage)
	if err != nil {
		sugar.Fatalf("Failed to initialize blob store: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		sugar.Fatalf("Failed to create upload directory: %v", err)
	}

	renderer := render.New(cfg.TemplateDir)
	usersRepo := repository.NewArangoUsers(db)
	portfoliosRepo := repository.NewArangoPortfolios(db)

	// Initialize GraphQL schema
	schema, err := gqlschema.NewSchema(usersRepo, portfoliosRepo)
	if err != nil {
		sugar.Fatalf("Failed to create GraphQL schema: %v", err)
	}

	app := api.NewFiberApp(cfg, restapi.Services{
		Portfolios: services.NewPortfolioService(portfoliosRepo, blobs, renderer, sugar),
		Accounts:   services.NewAccountService(usersRepo, sugar),
		Renderer:   renderer,
		Schema:     schema,
		UploadDir:  cfg.UploadDir,
	})

	sugar.Infof("Starting server on port %s (storage driver: %s)", cfg.Port, cfg.Storage.Driver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		sugar.Fatalf("Failed to start server: %v", err)
	}
}
