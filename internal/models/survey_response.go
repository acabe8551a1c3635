package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SurveyResponse is insert-only. The composite unique index on
// (survey_id, user_id) is the storage-level guarantee behind the
// one-response-per-user rule; the application-level existence check is
// advisory only.
type SurveyResponse struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_responses_survey_user" json:"survey_id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_responses_survey_user" json:"user_id"`
	Answers     datatypes.JSONMap `json:"answers"`
	SubmittedAt time.Time         `gorm:"not null" json:"submitted_at"`
}
