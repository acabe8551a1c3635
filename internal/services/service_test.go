package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alertaya/safezone-backend/internal/events"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. TranslateError is
// on, same as production, so unique-index violations surface as
// gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Affair{},
		&models.Report{},
		&models.Survey{},
		&models.Question{},
		&models.SurveyResponse{},
		&models.InteractionRecord{},
		&models.NewsPost{},
		&models.Block{},
		&models.RefreshToken{},
	))

	return db
}

// stubAuthorizer answers the moderator check from a fixed set, without a
// users table lookup.
type stubAuthorizer struct {
	moderators map[uuid.UUID]bool
	all        bool
	err        error
}

func (a *stubAuthorizer) CanModerate(_ context.Context, actorID uuid.UUID) (bool, error) {
	if a.err != nil {
		return false, a.err
	}
	if a.all {
		return true, nil
	}
	return a.moderators[actorID], nil
}

func allowAll() *stubAuthorizer {
	return &stubAuthorizer{all: true}
}

func allow(ids ...uuid.UUID) *stubAuthorizer {
	m := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return &stubAuthorizer{moderators: m}
}

// recordingBus wraps a real bus and keeps every published event for
// assertions.
type recordingBus struct {
	bus    *events.Bus
	events []any
}

func newRecordingBus() *recordingBus {
	r := &recordingBus{bus: events.NewBus()}
	r.bus.Subscribe(func(_ context.Context, event any) {
		r.events = append(r.events, event)
	})
	return r
}

func createTestUser(t *testing.T, db *gorm.DB, role int) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Name:     "Test User",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestAffair(t *testing.T, db *gorm.DB) *models.Affair {
	t.Helper()
	affair := &models.Affair{
		ID:   uuid.New(),
		Name: "Vandalism " + uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(affair).Error)
	return affair
}

func createTestReport(t *testing.T, db *gorm.DB, affairID uuid.UUID, status models.ReportStatus) *models.Report {
	t.Helper()
	report := &models.Report{
		ID:          uuid.New(),
		AffairID:    affairID,
		Description: "broken streetlight on main square",
		Location:    "Main Square",
		Status:      status,
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

func mustOptions(t *testing.T, options ...string) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(options)
	require.NoError(t, err)
	return datatypes.JSON(raw)
}

// createTestSurvey seeds a survey with one question of each type. Questions
// come back ordered by position.
func createTestSurvey(t *testing.T, db *gorm.DB) (*models.Survey, []models.Question) {
	t.Helper()
	survey := &models.Survey{
		ID:    uuid.New(),
		Title: "Neighborhood Safety",
	}
	require.NoError(t, db.Create(survey).Error)

	questions := []models.Question{
		{ID: uuid.New(), SurveyID: survey.ID, Text: "Describe the issue", Type: models.QuestionText, Required: true, Position: 0},
		{ID: uuid.New(), SurveyID: survey.ID, Text: "How many incidents?", Type: models.QuestionNumber, Required: true, Position: 1},
		{ID: uuid.New(), SurveyID: survey.ID, Text: "Do you feel safe?", Type: models.QuestionBoolean, Required: true, Position: 2},
		{ID: uuid.New(), SurveyID: survey.ID, Text: "Time of day", Type: models.QuestionMultipleChoice, Required: false, Position: 3, Options: mustOptions(t, "morning", "afternoon", "night")},
	}
	for i := range questions {
		require.NoError(t, db.Create(&questions[i]).Error)
	}
	return survey, questions
}
