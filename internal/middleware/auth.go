package middleware

import (
	"fmt"
	"log"

	"github.com/ecosortapp/ecosort/internal/services"
	"github.com/ecosortapp/ecosort/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthAdmin validates that the request has admin role authorization
func AuthAdmin(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, db, []string{"admin"}, "auth.authorization.admin")
	}
}

// AuthUser validates that the request has user role authorization
func AuthUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, db, []string{"user"}, "auth.authorization.user")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, db *gorm.DB, roles []string, errorType string) error {
	// Get session cookie
	session := c.Cookies("cookie_session")
	if session == "" {
		return &types.AppError{
			Code:    fiber.StatusForbidden,
			Message: "Authorizer cookie \"cookie_session\" not found",
			Type:    errorType,
		}
	}

	// Validate session
	identity, err := services.ValidateSession(session, roles)
	if err != nil {
		return &types.AppError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	// Keep the local user projection current for leaderboard joins. A failed
	// upsert does not block the request.
	if err := services.EnsureUser(db, identity); err != nil {
		log.Printf("Failed to upsert user %s: %v", identity.ID, err)
	}

	c.Locals("userID", identity.ID)
	c.Locals("userEmail", identity.Email)

	return c.Next()
}
