package authz

import (
	"context"
	"testing"

	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role int, banned bool) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Role:     role,
		Banned:   banned,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestDBAuthorizer(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	authorizer := NewDBAuthorizer(db)

	cases := []struct {
		name   string
		role   int
		banned bool
		want   bool
	}{
		{"citizen", models.RoleCitizen, false, false},
		{"moderator", models.RoleModerator, false, true},
		{"government", models.RoleGovernment, false, true},
		{"admin", models.RoleAdmin, false, true},
		{"banned moderator", models.RoleModerator, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := createUser(t, db, tc.role, tc.banned)
			got, err := authorizer.CanModerate(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unknown actor", func(t *testing.T) {
		got, err := authorizer.CanModerate(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, got, "an unknown actor is not a moderator, and not an error")
	})
}
