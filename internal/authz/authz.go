// Package authz answers capability questions about actors. It is passed
// explicitly into services instead of being read from any session global.
package authz

import (
	"context"
	"errors"

	"github.com/alertaya/safezone-backend/internal/apperrors"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Authorizer answers "may this actor moderate" for report status changes
// and bans.
type Authorizer interface {
	CanModerate(ctx context.Context, actorID uuid.UUID) (bool, error)
}

// DBAuthorizer checks the user's role tier in the database.
type DBAuthorizer struct {
	db *gorm.DB
}

func NewDBAuthorizer(db *gorm.DB) *DBAuthorizer {
	return &DBAuthorizer{db: db}
}

func (a *DBAuthorizer) CanModerate(ctx context.Context, actorID uuid.UUID) (bool, error) {
	var user models.User
	err := a.db.WithContext(ctx).Select("id", "role", "banned").First(&user, "id = ?", actorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Backend("authz: load user", err)
	}
	if user.Banned {
		return false, nil
	}
	return user.IsModerator(), nil
}
