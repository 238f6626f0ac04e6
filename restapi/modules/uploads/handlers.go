// Package uploads implements the profile image upload handler.
package uploads

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ProfilePic handles POST /upload-profile: saves the multipart
// "profilePic" file under the upload directory with a timestamped name
// and returns its public URL. The directory is served statically at
// /uploads.
func ProfilePic(uploadDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("profilePic")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "No file uploaded",
			})
		}

		name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
		if err := c.SaveFile(file, filepath.Join(uploadDir, name)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to save file",
			})
		}

		return c.JSON(fiber.Map{
			"message": "Upload successful",
			"url":     "/uploads/" + name,
		})
	}
}
