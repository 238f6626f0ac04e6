// Package portfolios implements the REST API handlers for portfolio
// generation and management.
package portfolios

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mycms/portfolio-backend/internal/common"
	"github.com/mycms/portfolio-backend/internal/render"
	"github.com/mycms/portfolio-backend/internal/services"
)

// CreateRequest is the body of POST /api/portfolios.
type CreateRequest struct {
	Template string   `json:"template"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
	Projects []string `json:"projects"`
	Email    string   `json:"email"`
	Github   string   `json:"github"`
	Blog     string   `json:"blog"`
	Message  string   `json:"message"`
	Quests   []string `json:"quests"`
}

// UpdateRequest is the body of PUT /api/portfolios/:filename.
type UpdateRequest struct {
	HTML string `json:"html"`
}

// Create handles POST /api/portfolios: render, store, record.
func Create(svc *services.PortfolioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
			})
		}

		p, err := svc.Create(c.Context(), services.CreateInput{
			Template: req.Template,
			Username: req.Username,
			Fields: render.Fields{
				Name:     req.Name,
				Bio:      req.Bio,
				Email:    req.Email,
				Github:   req.Github,
				Blog:     req.Blog,
				Message:  req.Message,
				Skills:   req.Skills,
				Projects: req.Projects,
				Quests:   req.Quests,
			},
		})
		if err != nil {
			if errors.Is(err, common.ErrValidation) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Required fields are missing",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to create portfolio",
			})
		}

		return c.JSON(fiber.Map{
			"message": "Portfolio created",
			"link":    p.URL,
		})
	}
}

// List handles GET /api/portfolios?user= with derived thumbnails.
func List(svc *services.PortfolioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Query("user")
		if user == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "user query parameter is required",
			})
		}

		items, err := svc.List(c.Context(), user)
		if err != nil {
			return c.Status(common.HTTPStatus(err)).JSON(fiber.Map{
				"message": "Failed to list portfolios",
			})
		}

		return c.JSON(items)
	}
}

// Read handles GET /api/portfolios/:filename, returning the page as
// raw HTML rather than JSON.
func Read(svc *services.PortfolioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		content, err := svc.Read(c.Context(), c.Params("filename"))
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"message": "Portfolio not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to load portfolio",
			})
		}

		c.Set(fiber.HeaderContentType, "text/html; charset=utf-8")
		return c.Send(content)
	}
}

// Update handles PUT /api/portfolios/:filename: full overwrite of the
// stored page. Metadata is intentionally left untouched.
func Update(svc *services.PortfolioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
			})
		}

		if err := svc.Update(c.Context(), c.Params("filename"), req.HTML); err != nil {
			if errors.Is(err, common.ErrValidation) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Nothing to update",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to update portfolio",
			})
		}

		return c.JSON(fiber.Map{"message": "Portfolio updated"})
	}
}

// Delete handles DELETE /api/portfolios/:filename: blob first, then
// metadata. A blob delete failure aborts before the record is touched.
func Delete(svc *services.PortfolioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("filename")); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to delete portfolio",
			})
		}
		return c.JSON(fiber.Map{"message": "Portfolio deleted"})
	}
}

// Templates handles GET /api/templates: the selectable template catalog.
func Templates(renderer *render.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(renderer.ListTemplates())
	}
}
