package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	AffairID    uuid.UUID `json:"affair_id"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ImageRef    *string   `json:"image_ref,omitempty"`
	Anonymous   bool      `json:"anonymous"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status"`
}

// ReportView is the outward shape of a report. ReporterID is present only
// when the report is not anonymous or the viewer holds the moderator
// capability.
type ReportView struct {
	ID          uuid.UUID  `json:"id"`
	AffairID    uuid.UUID  `json:"affair_id"`
	ReporterID  *uuid.UUID `json:"reporter_id,omitempty"`
	IsAnonymous bool       `json:"is_anonymous"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	ImageRef    *string    `json:"image_ref,omitempty"`
	Status      string     `json:"status"`
	LikesCount  int        `json:"likes_count"`
	CreatedAt   time.Time  `json:"created_at"`
}
