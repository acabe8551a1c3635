package services

import (
	"context"
	"errors"

	"github.com/alertaya/safezone-backend/internal/apperrors"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsService serves the community news feed.
type NewsService struct {
	db *gorm.DB
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

func (s *NewsService) GetFeed(ctx context.Context, page, limit int) ([]models.NewsPost, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var posts []models.NewsPost
	var total int64

	if err := s.db.WithContext(ctx).Model(&models.NewsPost{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Backend("count news", err)
	}

	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, apperrors.Backend("list news", err)
	}
	return posts, total, nil
}

func (s *NewsService) GetByID(ctx context.Context, postID uuid.UUID) (*models.NewsPost, error) {
	var post models.NewsPost
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Backend("load news post", err)
	}
	return &post, nil
}
