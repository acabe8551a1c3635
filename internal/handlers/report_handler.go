package handlers

import (
	"github.com/alertaya/safezone-backend/internal/authz"
	"github.com/alertaya/safezone-backend/internal/dto"
	"github.com/alertaya/safezone-backend/internal/middleware"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/alertaya/safezone-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService *services.ReportService
	authorizer    authz.Authorizer
}

func NewReportHandler(reportService *services.ReportService, authorizer authz.Authorizer) *ReportHandler {
	return &ReportHandler{reportService: reportService, authorizer: authorizer}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reportService.Submit(c.UserContext(), services.SubmitReportInput{
		AffairID:    req.AffairID,
		Description: req.Description,
		Location:    req.Location,
		ImageRef:    req.ImageRef,
		ReporterID:  &userID,
		Anonymous:   req.Anonymous,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.reportService.View(report, h.viewerIsModerator(c)))
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var reports []models.Report
	var err error
	if status := c.Query("status", ""); status != "" {
		reports, err = h.reportService.ListByStatus(ctx, models.ReportStatus(status))
	} else {
		reports, err = h.reportService.ListAll(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}

	isModerator := h.viewerIsModerator(c)
	views := make([]dto.ReportView, len(reports))
	for i := range reports {
		views[i] = h.reportService.View(&reports[i], isModerator)
	}

	return c.JSON(fiber.Map{
		"reports": views,
		"total":   len(views),
	})
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, err := h.reportService.GetByID(c.UserContext(), reportID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(h.reportService.View(report, h.viewerIsModerator(c)))
}

func (h *ReportHandler) viewerIsModerator(c *fiber.Ctx) bool {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return false
	}
	allowed, err := h.authorizer.CanModerate(c.UserContext(), userID)
	return err == nil && allowed
}
