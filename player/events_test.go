// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekrp/openform/models"
	"github.com/vivekrp/openform/validate"
)

func TestHandle_KeyAdvanceValidates(t *testing.T) {
	s := newTestSession(t, &fakeGateway{})
	ctx := context.Background()

	s.Handle(ctx, NavigationEvent{Source: SourceKey, Action: ActionAdvance})
	view := s.View()
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, validate.MsgRequired, view.Error)

	require.NoError(t, s.SetAnswer(ctx, "q-name", models.TextAnswer("Ada")))
	s.Handle(ctx, NavigationEvent{Source: SourceKey, Action: ActionAdvance})
	assert.Equal(t, 1, s.View().Index)
}

func TestHandle_PointerRetreat(t *testing.T) {
	s := newTestSession(t, &fakeGateway{})
	ctx := context.Background()

	require.NoError(t, s.SetAnswer(ctx, "q-name", models.TextAnswer("Ada")))
	s.Handle(ctx, NavigationEvent{Source: SourceKey, Action: ActionAdvance})
	require.Equal(t, 1, s.View().Index)

	s.Handle(ctx, NavigationEvent{Source: SourcePointer, Action: ActionRetreat})
	assert.Equal(t, 0, s.View().Index)
}

func TestHandle_WheelBelowThresholdDropped(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Type: models.TypeShortText, Title: "One"},
		{ID: "q2", Type: models.TypeShortText, Title: "Two"},
	}
	s, err := NewSession("form-1", questions, &fakeGateway{})
	require.NoError(t, err)

	base := time.Now()
	s.Handle(context.Background(), NavigationEvent{Source: SourceWheel, Delta: 49.9, At: base})
	assert.Equal(t, 0, s.View().Index, "below-threshold wheel events are dropped")

	s.Handle(context.Background(), NavigationEvent{Source: SourceWheel, Delta: 50, At: base})
	assert.Equal(t, 1, s.View().Index)
}

func TestHandle_WheelCooldown(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Type: models.TypeShortText, Title: "One"},
		{ID: "q2", Type: models.TypeShortText, Title: "Two"},
		{ID: "q3", Type: models.TypeShortText, Title: "Three"},
	}
	s, err := NewSession("form-1", questions, &fakeGateway{})
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Now()
	s.Handle(ctx, NavigationEvent{Source: SourceWheel, Delta: 120, At: base})
	require.Equal(t, 1, s.View().Index)

	// Inside the 500ms window: dropped.
	s.Handle(ctx, NavigationEvent{Source: SourceWheel, Delta: 120, At: base.Add(100 * time.Millisecond)})
	s.Handle(ctx, NavigationEvent{Source: SourceWheel, Delta: 120, At: base.Add(499 * time.Millisecond)})
	assert.Equal(t, 1, s.View().Index)

	// Past the window: accepted again.
	s.Handle(ctx, NavigationEvent{Source: SourceWheel, Delta: 120, At: base.Add(600 * time.Millisecond)})
	assert.Equal(t, 2, s.View().Index)
}

func TestHandle_WheelDroppedEventDoesNotResetCooldown(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Type: models.TypeShortText, Title: "One"},
		{ID: "q2", Type: models.TypeShortText, Title: "Two"},
		{ID: "q3", Type: models.TypeShortText, Title: "Three"},
	}
	s, err := NewSession("form-1", questions, &fakeGateway{})
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Now()
	s.Handle(ctx, NavigationEvent{Source: SourceWheel, Delta: 120, At: base})
	s.Handle(ctx, NavigationEvent{Source: SourceWheel, Delta: 120, At: base.Add(400 * time.Millisecond)})
	// The dropped event at +400ms must not push the window forward.
	s.Handle(ctx, NavigationEvent{Source: SourceWheel, Delta: 120, At: base.Add(550 * time.Millisecond)})
	assert.Equal(t, 2, s.View().Index)
}

func TestHandle_WheelDirectionFromDeltaSign(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Type: models.TypeShortText, Title: "One"},
		{ID: "q2", Type: models.TypeShortText, Title: "Two"},
	}
	s, err := NewSession("form-1", questions, &fakeGateway{})
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Now()
	s.Handle(ctx, NavigationEvent{Source: SourceWheel, Delta: 100, At: base})
	require.Equal(t, 1, s.View().Index)

	s.Handle(ctx, NavigationEvent{Source: SourceWheel, Delta: -100, At: base.Add(time.Second)})
	assert.Equal(t, 0, s.View().Index, "negative delta retreats")
}

func TestHandle_WheelAdvanceStillValidates(t *testing.T) {
	s := newTestSession(t, &fakeGateway{})

	s.Handle(context.Background(), NavigationEvent{Source: SourceWheel, Delta: 200, At: time.Now()})
	view := s.View()
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, validate.MsgRequired, view.Error, "wheel advances use the validating path")
}

func TestHandle_KeyEventsAreNotRateLimited(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Type: models.TypeShortText, Title: "One"},
		{ID: "q2", Type: models.TypeShortText, Title: "Two"},
		{ID: "q3", Type: models.TypeShortText, Title: "Three"},
	}
	s, err := NewSession("form-1", questions, &fakeGateway{})
	require.NoError(t, err)
	ctx := context.Background()

	// Back-to-back key presses all land; only wheel input is gated.
	s.Handle(ctx, NavigationEvent{Source: SourceKey, Action: ActionAdvance})
	s.Handle(ctx, NavigationEvent{Source: SourceKey, Action: ActionAdvance})
	assert.Equal(t, 2, s.View().Index)
}
