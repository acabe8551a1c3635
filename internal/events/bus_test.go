package events

import (
	"context"
	"testing"

	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var first, second []any
	bus.Subscribe(func(_ context.Context, event any) { first = append(first, event) })
	bus.Subscribe(func(_ context.Context, event any) { second = append(second, event) })

	evt := ReportStatusChanged{
		ReportID:  uuid.New(),
		OldStatus: models.StatusPending,
		NewStatus: models.StatusInProgress,
	}
	bus.Publish(context.Background(), evt)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, evt, first[0])
	assert.Equal(t, evt, second[0])
}

func TestPublishWithNoSubscribers(t *testing.T) {
	bus := NewBus()
	// Must not block or panic.
	bus.Publish(context.Background(), SurveyResponseSubmitted{SurveyID: uuid.New(), UserID: uuid.New()})
}

func TestPanickingSubscriberDoesNotStopDelivery(t *testing.T) {
	bus := NewBus()

	bus.Subscribe(func(_ context.Context, _ any) { panic("boom") })

	var delivered bool
	bus.Subscribe(func(_ context.Context, _ any) { delivered = true })

	bus.Publish(context.Background(), InteractionToggled{TargetID: uuid.New(), EntityType: models.EntitySurvey, Active: true, Count: 1})
	assert.True(t, delivered, "handlers after a panicking one must still run")
}
