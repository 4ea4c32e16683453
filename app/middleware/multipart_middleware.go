package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireMultipart rejects requests that cannot carry a file upload.
func RequireMultipart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
		if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
			return fiber.NewError(fiber.StatusUnsupportedMediaType, "expected multipart/form-data upload")
		}
		return c.Next()
	}
}
