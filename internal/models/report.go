package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the lifecycle state of an incident report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInProgress ReportStatus = "in_progress"
	StatusCompleted  ReportStatus = "completed"
	StatusCancelled  ReportStatus = "cancelled"
)

// permittedTransitions is the full edge set of the status machine. Completed
// and cancelled are terminal; nothing ever returns to pending.
var permittedTransitions = map[ReportStatus][]ReportStatus{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known status value.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the edge s -> next is permitted.
// Self-transitions are not.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, t := range permittedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s ReportStatus) Terminal() bool {
	return len(permittedTransitions[s]) == 0
}

// Report is a citizen incident report. Reports are never hard-deleted;
// cancelled is the terminal soft delete.
type Report struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	AffairID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"affair_id"`
	ReporterID  *uuid.UUID   `gorm:"type:uuid;index" json:"-"`
	IsAnonymous bool         `gorm:"default:false" json:"is_anonymous"`
	Description string       `gorm:"type:text" json:"description"`
	Location    string       `gorm:"size:500" json:"location"`
	ImageRef    *string      `gorm:"size:500" json:"image_ref,omitempty"`
	Status      ReportStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	LikesCount  int          `gorm:"default:0" json:"likes_count"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Affair      Affair       `gorm:"foreignKey:AffairID" json:"-"`
}
