package handlers

import (
	"github.com/ecosortapp/ecosort/internal/types"
	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's ID from the request context.
// Routes behind the auth middleware always have it; a missing value means the
// route was wired without the middleware.
func currentUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return "", &types.AppError{
			Code:    fiber.StatusUnauthorized,
			Message: "No authenticated user on request",
			Type:    "auth.context.missing",
		}
	}
	return userID, nil
}
