package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/mycms/portfolio-backend/internal/render"
	"github.com/mycms/portfolio-backend/internal/services"
	"github.com/mycms/portfolio-backend/restapi/modules/portfolios"
	"github.com/mycms/portfolio-backend/restapi/modules/uploads"
	"github.com/mycms/portfolio-backend/restapi/modules/users"
)

// Services bundles everything the routes need, wired at startup.
type Services struct {
	Portfolios *services.PortfolioService
	Accounts   *services.AccountService
	Renderer   *render.Renderer
	Schema     graphql.Schema
	UploadDir  string
}

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, s Services) {
	// Portfolio lifecycle
	api := app.Group("/api")
	api.Post("/portfolios", portfolios.Create(s.Portfolios))
	api.Get("/portfolios", portfolios.List(s.Portfolios))
	api.Get("/portfolios/:filename", portfolios.Read(s.Portfolios))
	api.Put("/portfolios/:filename", portfolios.Update(s.Portfolios))
	api.Delete("/portfolios/:filename", portfolios.Delete(s.Portfolios))

	// Template catalog and read-only GraphQL
	api.Get("/templates", portfolios.Templates(s.Renderer))
	api.Post("/graphql", GraphQLHandler(s.Schema))

	// Accounts
	app.Post("/users/signup", users.Signup(s.Accounts))
	app.Post("/users/login", users.Login(s.Accounts))
	api.Put("/users/:username", users.UpdateProfile(s.Accounts))

	// Profile image upload
	app.Post("/upload-profile", uploads.ProfilePic(s.UploadDir))
}
