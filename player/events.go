// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package player

import (
	"context"
	"math"
	"time"
)

// Wheel gating. Raw wheel events fire far faster than
// one-question-per-gesture feels natural, so events inside the
// cooldown window or below the magnitude threshold are dropped.
const (
	WheelCooldown  = 500 * time.Millisecond
	WheelThreshold = 50.0
)

// Event sources and actions.
const (
	SourceKey     = "key"
	SourceWheel   = "wheel"
	SourcePointer = "pointer"

	ActionAdvance = "advance"
	ActionRetreat = "retreat"
)

// NavigationEvent is one discrete navigation request from an input
// producer. Keyboard and pointer events carry an explicit action;
// wheel events carry a signed Delta whose sign picks the direction
// (positive advances, like scrolling down). At defaults to the
// session clock when zero.
type NavigationEvent struct {
	Source string
	Action string
	Delta  float64
	At     time.Time
}

// Handle is the single entry point for all navigation input. Keyboard
// and pointer requests pass straight through in dispatch order; wheel
// requests are gated by the cooldown and magnitude threshold here, in
// exactly one place. Advances triggered this way always validate;
// only commit-on-change surfaces bypass validation, via SetAnswer.
func (s *Session) Handle(ctx context.Context, ev NavigationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	action := ev.Action
	if ev.Source == SourceWheel {
		at := ev.At
		if at.IsZero() {
			at = s.now()
		}
		if math.Abs(ev.Delta) < WheelThreshold {
			return
		}
		if at.Sub(s.lastNav) < WheelCooldown {
			return
		}
		s.lastNav = at
		if ev.Delta > 0 {
			action = ActionAdvance
		} else {
			action = ActionRetreat
		}
	}

	switch action {
	case ActionAdvance:
		s.advance(ctx, false)
	case ActionRetreat:
		s.retreat()
	}
}
