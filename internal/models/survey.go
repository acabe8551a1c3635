package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuestionType enumerates the supported answer formats.
type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionNumber         QuestionType = "number"
	QuestionBoolean        QuestionType = "boolean"
	QuestionMultipleChoice QuestionType = "multiple_choice"
)

type Survey struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	LikesCount  int        `gorm:"default:0" json:"likes_count"`
	CreatedAt   time.Time  `json:"created_at"`
	Questions   []Question `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`
}

// Question belongs to a survey. Options holds the choice list for
// multiple_choice questions as a JSON string array, empty otherwise.
type Question struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID uuid.UUID      `gorm:"type:uuid;not null;index" json:"survey_id"`
	Text     string         `gorm:"size:500;not null" json:"text"`
	Type     QuestionType   `gorm:"size:20;not null" json:"type"`
	Required bool           `gorm:"default:false" json:"required"`
	Options  datatypes.JSON `json:"options,omitempty"`
	Position int            `gorm:"not null;default:0" json:"position"`
}
