package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/alertaya/safezone-backend/internal/apperrors"
	"github.com/alertaya/safezone-backend/internal/events"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SurveyService enforces the one-response-per-user rule and answer
// validation. The existence check in SubmitResponses is advisory; the
// composite unique index on survey_responses is what actually arbitrates a
// concurrent double submit.
type SurveyService struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewSurveyService(db *gorm.DB, bus *events.Bus) *SurveyService {
	return &SurveyService{db: db, bus: bus}
}

// List returns all surveys, newest first, without questions.
func (s *SurveyService) List(ctx context.Context) ([]models.Survey, error) {
	var surveys []models.Survey
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&surveys).Error
	if err != nil {
		return nil, apperrors.Backend("list surveys", err)
	}
	return surveys, nil
}

// GetWithQuestions loads a survey and its questions in display order.
func (s *SurveyService) GetWithQuestions(ctx context.Context, surveyID uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&survey, "id = ?", surveyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Backend("load survey", err)
	}
	return &survey, nil
}

// HasResponded reports whether a response row exists for (survey, user).
// Absence means the user may still submit; the result is a snapshot, not a
// reservation.
func (s *SurveyService) HasResponded(ctx context.Context, surveyID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.SurveyResponse{}).
		Where("survey_id = ? AND user_id = ?", surveyID, userID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Backend("check response existence", err)
	}
	return count > 0, nil
}

// SubmitResponses validates and persists the single response a user may give
// to a survey. Validation names every missing required question and every
// type-invalid answer; nothing is coerced. A duplicate submission, whether
// detected up front or by the unique index during a race, fails with
// ErrAlreadyResponded and writes nothing.
func (s *SurveyService) SubmitResponses(ctx context.Context, surveyID, userID uuid.UUID, answers map[uuid.UUID]string) (*models.SurveyResponse, error) {
	survey, err := s.GetWithQuestions(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	responded, err := s.HasResponded(ctx, surveyID, userID)
	if err != nil {
		return nil, err
	}
	if responded {
		return nil, apperrors.ErrAlreadyResponded
	}

	if verr := validateAnswers(survey.Questions, answers); verr != nil {
		return nil, verr
	}

	stored := make(datatypes.JSONMap, len(answers))
	for questionID, answer := range answers {
		stored[questionID.String()] = answer
	}

	response := models.SurveyResponse{
		ID:          uuid.New(),
		SurveyID:    surveyID,
		UserID:      userID,
		Answers:     stored,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&response).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent submit for the same pair.
			return nil, apperrors.ErrAlreadyResponded
		}
		return nil, apperrors.Backend("create survey response", err)
	}

	s.bus.Publish(ctx, events.SurveyResponseSubmitted{SurveyID: surveyID, UserID: userID})
	return &response, nil
}

func validateAnswers(questions []models.Question, answers map[uuid.UUID]string) error {
	known := make(map[uuid.UUID]models.Question, len(questions))
	for _, q := range questions {
		known[q.ID] = q
	}

	verr := &apperrors.ValidationError{Message: "survey answers failed validation"}

	for _, q := range questions {
		answer := answers[q.ID]
		if strings.TrimSpace(answer) == "" {
			if q.Required {
				verr.MissingQuestionIDs = append(verr.MissingQuestionIDs, q.ID)
			}
			continue
		}
		if !answerMatchesType(q, answer) {
			verr.InvalidQuestionIDs = append(verr.InvalidQuestionIDs, q.ID)
		}
	}

	for questionID := range answers {
		if _, ok := known[questionID]; !ok {
			verr.InvalidQuestionIDs = append(verr.InvalidQuestionIDs, questionID)
		}
	}

	if len(verr.MissingQuestionIDs) > 0 || len(verr.InvalidQuestionIDs) > 0 {
		return verr
	}
	return nil
}

func answerMatchesType(q models.Question, answer string) bool {
	switch q.Type {
	case models.QuestionText:
		return true
	case models.QuestionNumber:
		_, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		return err == nil
	case models.QuestionBoolean:
		v := strings.ToLower(strings.TrimSpace(answer))
		return v == "true" || v == "false"
	case models.QuestionMultipleChoice:
		var options []string
		if err := json.Unmarshal(q.Options, &options); err != nil {
			return false
		}
		for _, opt := range options {
			if answer == opt {
				return true
			}
		}
		return false
	}
	return false
}

// ComputeProgress counts non-blank answers against the question total.
// A whitespace-only answer is unanswered, not "answered with empty string".
func ComputeProgress(questions []models.Question, answers map[uuid.UUID]string) (answered, total int) {
	total = len(questions)
	for _, q := range questions {
		if strings.TrimSpace(answers[q.ID]) != "" {
			answered++
		}
	}
	return answered, total
}
