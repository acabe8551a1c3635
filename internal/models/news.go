package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsPost is an item in the community news feed.
type NewsPost struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	ImageRef   *string        `gorm:"size:500" json:"image_ref,omitempty"`
	AuthorID   *uuid.UUID     `gorm:"type:uuid;index" json:"author_id,omitempty"`
	LikesCount int            `gorm:"default:0" json:"likes_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
