// Package users implements the REST API handlers for account signup,
// login and profile updates.
package users

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mycms/portfolio-backend/internal/common"
	"github.com/mycms/portfolio-backend/internal/services"
	"github.com/mycms/portfolio-backend/model"
)

// SignupRequest is the body of POST /users/signup.
type SignupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Realname  string `json:"realname"`
	Birthdate string `json:"birthdate"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles POST /users/signup.
func Signup(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
			})
		}

		userID, err := svc.Signup(c.Context(), req.Username, req.Password, req.Realname, req.Birthdate)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrValidation):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "All fields are required and the password must be at least 8 characters with upper, lower and digit",
				})
			case errors.Is(err, common.ErrConflict):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"message": "Username is already taken",
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Signup failed",
				})
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Signup complete",
			"userId":  userID,
		})
	}
}

// Login handles POST /users/login. Bad credentials get one generic
// message regardless of whether the username exists.
func Login(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
			})
		}

		view, err := svc.Login(c.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrValidation):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Username and password are required",
				})
			case errors.Is(err, common.ErrUnauthorized):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid username or password",
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Login failed",
				})
			}
		}

		return c.JSON(fiber.Map{
			"message": "Login successful",
			"user":    view,
		})
	}
}

// UpdateProfile handles PUT /api/users/:username. Empty body fields
// leave the stored values unchanged.
func UpdateProfile(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch model.UserPatch
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
			})
		}

		user, err := svc.UpdateProfile(c.Context(), c.Params("username"), patch)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"message": "User not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to update profile",
			})
		}

		return c.JSON(user)
	}
}
