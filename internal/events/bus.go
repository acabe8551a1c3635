// Package events exposes side effects of the core workflows to collaborators
// (notification delivery, UI refresh) without implementing them here.
// Delivery is synchronous and in-process; handlers run after the triggering
// transaction has committed.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/google/uuid"
)

type ReportStatusChanged struct {
	ReportID  uuid.UUID
	OldStatus models.ReportStatus
	NewStatus models.ReportStatus
}

type SurveyResponseSubmitted struct {
	SurveyID uuid.UUID
	UserID   uuid.UUID
}

type InteractionToggled struct {
	TargetID   uuid.UUID
	EntityType models.EntityType
	Active     bool
	Count      int
}

// Handler receives every published event; it switches on the concrete type.
type Handler func(ctx context.Context, event any)

type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers event to every subscriber. A panicking subscriber is
// recovered and logged; it must not poison a committed write.
func (b *Bus) Publish(ctx context.Context, event any) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("event handler panicked", "event", event, "panic", r)
				}
			}()
			h(ctx, event)
		}()
	}
}

// LogSubscriber returns a handler that records every event via slog, the
// default collaborator when no notifier is wired.
func LogSubscriber() Handler {
	return func(_ context.Context, event any) {
		switch e := event.(type) {
		case ReportStatusChanged:
			slog.Info("report status changed",
				"report_id", e.ReportID, "old_status", e.OldStatus, "new_status", e.NewStatus)
		case SurveyResponseSubmitted:
			slog.Info("survey response submitted", "survey_id", e.SurveyID, "user_id", e.UserID)
		case InteractionToggled:
			slog.Info("interaction toggled",
				"target_id", e.TargetID, "entity_type", e.EntityType, "active", e.Active, "count", e.Count)
		}
	}
}
