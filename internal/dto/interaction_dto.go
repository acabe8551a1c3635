package dto

import "github.com/google/uuid"

type ToggleRequest struct {
	TargetID   uuid.UUID `json:"target_id"`
	EntityType string    `json:"entity_type"`
}

type InteractionStatusResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

type BlockUserRequest struct {
	BlockedID uuid.UUID `json:"blocked_id"`
}
