package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role tiers. Anything at RoleModerator or above may change report status
// and ban users.
const (
	RoleCitizen    = 1
	RoleModerator  = 2
	RoleGovernment = 3
	RoleAdmin      = 4
)

type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Name           string         `gorm:"size:100" json:"name"`
	Role           int            `gorm:"default:1" json:"role"`
	PhotoRef       *string        `gorm:"size:500" json:"photo_ref,omitempty"`
	FollowersCount int            `gorm:"default:0" json:"followers_count"`
	Banned         bool           `gorm:"default:false" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsModerator reports whether the user holds a government/moderator tier.
func (u *User) IsModerator() bool {
	return u.Role >= RoleModerator
}
