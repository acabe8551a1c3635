package models

import (
	"time"

	"github.com/google/uuid"
)

// EntityType discriminates what an interaction record targets.
type EntityType string

const (
	EntitySurvey EntityType = "survey" // survey like
	EntityNews   EntityType = "news"   // news post like
	EntityReport EntityType = "report" // report like
	EntityUser   EntityType = "user"   // profile follow
)

func (t EntityType) Valid() bool {
	switch t {
	case EntitySurvey, EntityNews, EntityReport, EntityUser:
		return true
	}
	return false
}

// InteractionRecord models both likes and follows. Presence of a row means
// liked/following, absence means not; the composite unique index keeps the
// relation binary under concurrent toggles.
type InteractionRecord struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_interactions_actor_target" json:"actor_id"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_interactions_actor_target" json:"target_id"`
	EntityType EntityType `gorm:"size:20;not null;uniqueIndex:idx_interactions_actor_target" json:"entity_type"`
	CreatedAt  time.Time  `json:"created_at"`
}
