package handlers

import (
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AffairHandler struct {
	db *gorm.DB
}

func NewAffairHandler(db *gorm.DB) *AffairHandler {
	return &AffairHandler{db: db}
}

func (h *AffairHandler) List(c *fiber.Ctx) error {
	var affairs []models.Affair
	if err := h.db.WithContext(c.UserContext()).Order("name ASC").Find(&affairs).Error; err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"affairs": affairs})
}
