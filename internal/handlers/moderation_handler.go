package handlers

import (
	"errors"

	"github.com/alertaya/safezone-backend/internal/dto"
	"github.com/alertaya/safezone-backend/internal/middleware"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/alertaya/safezone-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ModerationHandler struct {
	reportService      *services.ReportService
	moderationService  *services.ModerationService
	interactionService *services.InteractionService
}

func NewModerationHandler(reportService *services.ReportService, moderationService *services.ModerationService, interactionService *services.InteractionService) *ModerationHandler {
	return &ModerationHandler{
		reportService:      reportService,
		moderationService:  moderationService,
		interactionService: interactionService,
	}
}

// UpdateReportStatus moves a report along the status machine. The service
// performs its own capability check on the acting user; the route-level
// moderator gate is defense in depth.
func (h *ModerationHandler) UpdateReportStatus(c *fiber.Ctx) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reportService.UpdateStatus(c.UserContext(), reportID, models.ReportStatus(req.Status), actorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.reportService.View(report, true))
}

func (h *ModerationHandler) BlockUser(c *fiber.Ctx) error {
	blockerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.BlockUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.moderationService.BlockUser(c.UserContext(), blockerID, req.BlockedID); err != nil {
		if errors.Is(err, services.ErrSelfBlock) || errors.Is(err, services.ErrAlreadyBlocked) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User blocked successfully"})
}

func (h *ModerationHandler) UnblockUser(c *fiber.Ctx) error {
	blockerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	blockedID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	if err := h.moderationService.UnblockUser(c.UserContext(), blockerID, blockedID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User unblocked successfully"})
}

func (h *ModerationHandler) BanUser(c *fiber.Ctx) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	if err := h.moderationService.BanUser(c.UserContext(), actorID, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User banned"})
}

// ReconcileCounters recomputes every denormalized counter from authoritative
// rows, repairing drift left by true races.
func (h *ModerationHandler) ReconcileCounters(c *fiber.Ctx) error {
	if err := h.interactionService.Reconcile(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Counters reconciled"})
}
