package middleware

import (
	"github.com/alertaya/safezone-backend/internal/authz"
	"github.com/alertaya/safezone-backend/internal/config"
	"github.com/alertaya/safezone-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// ModeratorRequired gates the moderation surface. It accepts either the ops
// bootstrap token (X-Admin-Token) or a JWT whose user passes the capability
// check in the database.
func ModeratorRequired(authorizer authz.Authorizer, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		allowed, err := authorizer.CanModerate(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Authorization check failed",
			})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Moderator access required",
			})
		}
		return c.Next()
	}
}
