package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/alertaya/safezone-backend/internal/apperrors"
	"github.com/alertaya/safezone-backend/internal/events"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// counterTarget binds an entity type to the table carrying its denormalized
// counter.
type counterTarget struct {
	model  interface{}
	table  string
	column string
}

var counterTargets = map[models.EntityType]counterTarget{
	models.EntitySurvey: {&models.Survey{}, "surveys", "likes_count"},
	models.EntityNews:   {&models.NewsPost{}, "news_posts", "likes_count"},
	models.EntityReport: {&models.Report{}, "reports", "likes_count"},
	models.EntityUser:   {&models.User{}, "users", "followers_count"},
}

// ToggleState is the post-toggle snapshot returned to the caller.
type ToggleState struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// InteractionService implements the like/follow toggle. A row in
// interaction_records plus the counter adjustment are applied in one
// transaction; the composite unique index keeps the relation binary when two
// sessions toggle the same pair at once.
type InteractionService struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewInteractionService(db *gorm.DB, bus *events.Bus) *InteractionService {
	return &InteractionService{db: db, bus: bus}
}

// HasLiked reports whether actor currently likes/follows the target.
func (s *InteractionService) HasLiked(ctx context.Context, actorID, targetID uuid.UUID, entityType models.EntityType) (bool, error) {
	if !entityType.Valid() {
		return false, apperrors.Validation("unknown entity type", "entity_type")
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.InteractionRecord{}).
		Where("actor_id = ? AND target_id = ? AND entity_type = ?", actorID, targetID, entityType).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Backend("check interaction", err)
	}
	return count > 0, nil
}

// Count returns the denormalized counter, not a row count.
func (s *InteractionService) Count(ctx context.Context, targetID uuid.UUID, entityType models.EntityType) (int, error) {
	target, ok := counterTargets[entityType]
	if !ok {
		return 0, apperrors.Validation("unknown entity type", "entity_type")
	}
	var counts []int
	err := s.db.WithContext(ctx).
		Model(target.model).
		Where("id = ?", targetID).
		Pluck(target.column, &counts).Error
	if err != nil {
		return 0, apperrors.Backend("read counter", err)
	}
	if len(counts) == 0 {
		return 0, apperrors.ErrNotFound
	}
	return counts[0], nil
}

// Toggle flips the interaction for (actor, target, entityType): absent
// becomes present with a +1 on the counter, present becomes absent with a
// -1. Both writes happen in the same transaction, so a failure part way
// leaves nothing applied.
func (s *InteractionService) Toggle(ctx context.Context, actorID, targetID uuid.UUID, entityType models.EntityType) (ToggleState, error) {
	target, ok := counterTargets[entityType]
	if !ok {
		return ToggleState{}, apperrors.Validation("unknown entity type", "entity_type")
	}
	if entityType == models.EntityUser && actorID == targetID {
		return ToggleState{}, apperrors.Validation("cannot follow yourself", "target_id")
	}

	var state ToggleState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(target.model).Where("id = ?", targetID).Count(&exists).Error; err != nil {
			return apperrors.Backend("load toggle target", err)
		}
		if exists == 0 {
			return apperrors.ErrNotFound
		}

		res := tx.Where("actor_id = ? AND target_id = ? AND entity_type = ?", actorID, targetID, entityType).
			Delete(&models.InteractionRecord{})
		if res.Error != nil {
			return apperrors.Backend("delete interaction", res.Error)
		}

		if res.RowsAffected > 0 {
			state.Active = false
			if err := adjustCounter(tx, target, targetID, -1); err != nil {
				return err
			}
		} else {
			record := models.InteractionRecord{
				ID:         uuid.New(),
				ActorID:    actorID,
				TargetID:   targetID,
				EntityType: entityType,
			}
			err := tx.Create(&record).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent toggle-on won between our delete and insert;
				// this call deterministically lands on toggle-off.
				res := tx.Where("actor_id = ? AND target_id = ? AND entity_type = ?", actorID, targetID, entityType).
					Delete(&models.InteractionRecord{})
				if res.Error != nil {
					return apperrors.Backend("delete interaction", res.Error)
				}
				state.Active = false
				if res.RowsAffected > 0 {
					if err := adjustCounter(tx, target, targetID, -1); err != nil {
						return err
					}
				}
			} else if err != nil {
				return apperrors.Backend("create interaction", err)
			} else {
				state.Active = true
				if err := adjustCounter(tx, target, targetID, +1); err != nil {
					return err
				}
			}
		}

		var counts []int
		if err := tx.Model(target.model).Where("id = ?", targetID).Pluck(target.column, &counts).Error; err != nil {
			return apperrors.Backend("read counter", err)
		}
		if len(counts) > 0 {
			state.Count = counts[0]
		}
		return nil
	})
	if err != nil {
		return ToggleState{}, err
	}

	s.bus.Publish(ctx, events.InteractionToggled{
		TargetID:   targetID,
		EntityType: entityType,
		Active:     state.Active,
		Count:      state.Count,
	})
	return state, nil
}

func adjustCounter(tx *gorm.DB, target counterTarget, targetID uuid.UUID, delta int) error {
	expr := gorm.Expr(target.column+" + ?", delta)
	if delta < 0 {
		// Clamp at zero in case of pre-existing drift.
		expr = gorm.Expr("CASE WHEN "+target.column+" > 0 THEN "+target.column+" - 1 ELSE 0 END")
	}
	err := tx.Model(target.model).
		Where("id = ?", targetID).
		UpdateColumn(target.column, expr).Error
	if err != nil {
		return apperrors.Backend("adjust counter", err)
	}
	return nil
}

// Reconcile recomputes every denormalized counter from authoritative
// interaction rows. Exposed on the moderation surface as the on-demand
// repair for counter drift under true races.
func (s *InteractionService) Reconcile(ctx context.Context) error {
	for entityType, target := range counterTargets {
		subquery := fmt.Sprintf(
			"(SELECT COUNT(*) FROM interaction_records WHERE interaction_records.target_id = %s.id AND interaction_records.entity_type = '%s')",
			target.table, entityType,
		)
		err := s.db.WithContext(ctx).
			Model(target.model).
			Where("1 = 1").
			UpdateColumn(target.column, gorm.Expr(subquery)).Error
		if err != nil {
			return apperrors.Backend("reconcile counters", err)
		}
	}
	return nil
}
