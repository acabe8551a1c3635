package models

import (
	"time"

	"github.com/google/uuid"
)

// Affair is the classification of an incident report
// (e.g. "Vandalism", "Infrastructure").
type Affair struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DefaultAffairs are seeded at boot when the table is empty.
var DefaultAffairs = []string{
	"Vandalism",
	"Infrastructure",
	"Public Lighting",
	"Waste Collection",
	"Traffic",
	"Noise",
	"Water and Drainage",
	"Public Safety",
	"Other",
}
