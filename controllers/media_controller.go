package controller

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"teamtrack/config"
)

// ServeMedia streams a stored attachment. The requested path is resolved
// against the media root and must stay inside it.
func ServeMedia(c *fiber.Ctx) error {
	requested := c.Params("*")
	if requested == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found",
		})
	}

	root, err := filepath.Abs(config.AppConfig.MediaRoot)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve media root",
		})
	}

	full := filepath.Join(root, filepath.Clean("/"+requested))
	if !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Invalid file path",
		})
	}

	if info, err := os.Stat(full); err != nil || info.IsDir() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found",
		})
	}

	return c.SendFile(full)
}
