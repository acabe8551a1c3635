package handlers

import (
	"github.com/alertaya/safezone-backend/internal/dto"
	"github.com/alertaya/safezone-backend/internal/middleware"
	"github.com/alertaya/safezone-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SurveyHandler struct {
	surveyService *services.SurveyService
}

func NewSurveyHandler(surveyService *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

func (h *SurveyHandler) List(c *fiber.Ctx) error {
	surveys, err := h.surveyService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"surveys": surveys, "total": len(surveys)})
}

func (h *SurveyHandler) Get(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid survey ID",
		})
	}

	survey, err := h.surveyService.GetWithQuestions(c.UserContext(), surveyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(survey)
}

// Responded tells the client whether to render the input form. The answer is
// advisory; a submit racing past it is still rejected by the storage layer.
func (h *SurveyHandler) Responded(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid survey ID",
		})
	}

	responded, err := h.surveyService.HasResponded(c.UserContext(), surveyID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RespondedResponse{Responded: responded})
}

// Progress scores a draft answer set against the survey's questions without
// persisting anything, so the client can render a completion indicator.
func (h *SurveyHandler) Progress(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid survey ID",
		})
	}

	var req dto.SubmitResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	survey, err := h.surveyService.GetWithQuestions(c.UserContext(), surveyID)
	if err != nil {
		return respondError(c, err)
	}

	answered, total := services.ComputeProgress(survey.Questions, req.Answers)
	return c.JSON(dto.ProgressResponse{Answered: answered, Total: total})
}

func (h *SurveyHandler) SubmitResponses(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid survey ID",
		})
	}

	var req dto.SubmitResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	response, err := h.surveyService.SubmitResponses(c.UserContext(), surveyID, userID, req.Answers)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}
