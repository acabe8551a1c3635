package services

import (
	"context"
	"testing"
	"time"

	"github.com/alertaya/safezone-backend/internal/apperrors"
	"github.com/alertaya/safezone-backend/internal/config"
	"github.com/alertaya/safezone-backend/internal/dto"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
	return NewAuthService(db, cfg), db
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates citizen account", func(t *testing.T) {
		svc, _ := newAuthService(t)

		resp, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:    "ana@example.com",
			Password: "longenough",
			Name:     "Ana",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, models.RoleCitizen, resp.User.Role)
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "short"})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newAuthService(t)
		req := &dto.RegisterRequest{Email: "dup@example.com", Password: "longenough"}

		_, err := svc.Register(ctx, req)
		require.NoError(t, err)
		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, db := newAuthService(t)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "ana@example.com", Password: "longenough"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "longenough"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrongpass!"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "longenough"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("banned account", func(t *testing.T) {
		require.NoError(t, db.Model(&models.User{}).
			Where("email = ?", "ana@example.com").
			Update("banned", true).Error)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "longenough"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Email: "ana@example.com", Password: "longenough"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old token was rotated out.
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Email: "ana@example.com", Password: "longenough"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: registered.RefreshToken}))

	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	svc, db := newAuthService(t)

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Email: "ana@example.com", Password: "longenough"})
	require.NoError(t, err)
	userID := registered.User.ID

	// The user's report and survey response must survive deletion.
	affair := createTestAffair(t, db)
	report := &models.Report{ID: uuid.New(), AffairID: affair.ID, ReporterID: &userID, Description: "kept"}
	require.NoError(t, db.Create(report).Error)

	t.Run("wrong password", func(t *testing.T) {
		err := svc.DeleteAccount(ctx, userID, "wrongpass!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deletes user and tokens, keeps reports", func(t *testing.T) {
		require.NoError(t, svc.DeleteAccount(ctx, userID, "longenough"))

		_, err := svc.GetProfile(ctx, userID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		var tokens int64
		require.NoError(t, db.Model(&models.RefreshToken{}).Where("user_id = ?", userID).Count(&tokens).Error)
		assert.EqualValues(t, 0, tokens)

		var kept models.Report
		require.NoError(t, db.First(&kept, "id = ?", report.ID).Error)
		assert.Equal(t, userID, *kept.ReporterID)
	})
}
