package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alertaya/safezone-backend/internal/apperrors"
	"github.com/alertaya/safezone-backend/internal/authz"
	"github.com/alertaya/safezone-backend/internal/dto"
	"github.com/alertaya/safezone-backend/internal/events"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService owns the incident report lifecycle: submission and the
// status state machine. Status changes are moderator-only and go through
// the permitted-transition table on models.ReportStatus.
type ReportService struct {
	db         *gorm.DB
	authorizer authz.Authorizer
	moderation *ModerationService
	bus        *events.Bus
}

func NewReportService(db *gorm.DB, authorizer authz.Authorizer, moderation *ModerationService, bus *events.Bus) *ReportService {
	return &ReportService{db: db, authorizer: authorizer, moderation: moderation, bus: bus}
}

type SubmitReportInput struct {
	AffairID    uuid.UUID
	Description string
	Location    string
	ImageRef    *string
	ReporterID  *uuid.UUID
	Anonymous   bool
}

// Submit creates a report in the pending state. A blank description is
// accepted only when an image reference is attached; the rule is enforced
// here so it holds regardless of client-side checks.
func (s *ReportService) Submit(ctx context.Context, in SubmitReportInput) (*models.Report, error) {
	if in.AffairID == uuid.Nil {
		return nil, apperrors.Validation("affair category is required", "affair_id")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" && in.ImageRef == nil {
		return nil, apperrors.Validation("description is required unless an image is attached", "description")
	}
	if s.moderation != nil && description != "" {
		if ok, reason := s.moderation.FilterContent(description); !ok {
			return nil, apperrors.Validation(s.moderation.GetRejectionMessage(reason), "description")
		}
	}

	var affair models.Affair
	if err := s.db.WithContext(ctx).First(&affair, "id = ?", in.AffairID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("unknown affair category", "affair_id")
		}
		return nil, apperrors.Backend("load affair", err)
	}

	report := models.Report{
		ID:          uuid.New(),
		AffairID:    in.AffairID,
		ReporterID:  in.ReporterID,
		IsAnonymous: in.Anonymous,
		Description: description,
		Location:    strings.TrimSpace(in.Location),
		ImageRef:    in.ImageRef,
		Status:      models.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, apperrors.Backend("create report", err)
	}
	return &report, nil
}

// UpdateStatus moves a report along the state machine. The actor must hold
// the moderator capability; an illegal edge fails with ErrInvalidTransition
// and leaves the stored status untouched.
func (s *ReportService) UpdateStatus(ctx context.Context, reportID uuid.UUID, newStatus models.ReportStatus, actorID uuid.UUID) (*models.Report, error) {
	if !newStatus.Valid() {
		return nil, apperrors.Validation("unknown status value", "status")
	}

	allowed, err := s.authorizer.CanModerate(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrNotModerator
	}

	var report models.Report
	oldStatus := models.ReportStatus("")
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return apperrors.Backend("load report", err)
		}

		oldStatus = report.Status
		if !oldStatus.CanTransitionTo(newStatus) {
			return apperrors.ErrInvalidTransition
		}

		if err := tx.Model(&report).Update("status", newStatus).Error; err != nil {
			return apperrors.Backend("update report status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.ReportStatusChanged{
		ReportID:  report.ID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	})
	return &report, nil
}

// GetByID loads a single report.
func (s *ReportService) GetByID(ctx context.Context, reportID uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.WithContext(ctx).First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Backend("load report", err)
	}
	return &report, nil
}

// ListByStatus returns reports in one status, newest first.
func (s *ReportService) ListByStatus(ctx context.Context, status models.ReportStatus) ([]models.Report, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("unknown status value", "status")
	}
	var reports []models.Report
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, apperrors.Backend("list reports", err)
	}
	return reports, nil
}

// ListAll returns every report, newest first.
func (s *ReportService) ListAll(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error
	if err != nil {
		return nil, apperrors.Backend("list reports", err)
	}
	return reports, nil
}

// View redacts the reporter of an anonymous report for non-moderator viewers.
func (s *ReportService) View(report *models.Report, viewerIsModerator bool) dto.ReportView {
	view := dto.ReportView{
		ID:          report.ID,
		AffairID:    report.AffairID,
		IsAnonymous: report.IsAnonymous,
		Description: report.Description,
		Location:    report.Location,
		ImageRef:    report.ImageRef,
		Status:      string(report.Status),
		LikesCount:  report.LikesCount,
		CreatedAt:   report.CreatedAt,
	}
	if report.ReporterID != nil && (!report.IsAnonymous || viewerIsModerator) {
		view.ReporterID = report.ReporterID
	}
	return view
}
