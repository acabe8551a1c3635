package handlers

import (
	"github.com/alertaya/safezone-backend/internal/dto"
	"github.com/alertaya/safezone-backend/internal/middleware"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/alertaya/safezone-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InteractionHandler struct {
	interactionService *services.InteractionService
}

func NewInteractionHandler(interactionService *services.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

func (h *InteractionHandler) Toggle(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	state, err := h.interactionService.Toggle(c.UserContext(), userID, req.TargetID, models.EntityType(req.EntityType))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

// Status returns the caller's current relation to the target plus the
// denormalized count, for rendering like/follow buttons.
func (h *InteractionHandler) Status(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	targetID, err := uuid.Parse(c.Query("target_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid target ID",
		})
	}
	entityType := models.EntityType(c.Query("entity_type"))

	ctx := c.UserContext()
	liked, err := h.interactionService.HasLiked(ctx, userID, targetID, entityType)
	if err != nil {
		return respondError(c, err)
	}
	count, err := h.interactionService.Count(ctx, targetID, entityType)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.InteractionStatusResponse{Liked: liked, Count: count})
}
