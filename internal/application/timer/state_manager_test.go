package timer

import (
	"testing"
	"time"

	"github.com/penwyp/go-lap-timer/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestNewStateManager(t *testing.T) {
	sm := NewStateManager(model.LayoutCompact, true)
	state := sm.GetInteractionState()

	assert.Equal(t, -1, state.Selected)
	assert.Equal(t, model.LayoutCompact, state.LayoutStyle)
	assert.True(t, state.NewestFirst)
}

func TestStatusExpiry(t *testing.T) {
	sm := NewStateManager(model.LayoutFull, false)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	sm.SetStatus("Lap 1 recorded", now)
	sm.ExpireStatus(now.Add(time.Second))
	assert.Equal(t, "Lap 1 recorded", sm.GetInteractionState().StatusMessage)

	sm.ExpireStatus(now.Add(statusTTL))
	assert.Empty(t, sm.GetInteractionState().StatusMessage)
}

func TestMoveSelection(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		delta    int
		rows     int
		expected int
	}{
		{"first down selects top", -1, 1, 3, 0},
		{"first up selects bottom", -1, -1, 3, 2},
		{"down", 0, 1, 3, 1},
		{"down at bottom stays", 2, 1, 3, 2},
		{"up at top stays", 0, -1, 3, 0},
		{"no rows", 1, 1, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewStateManager(model.LayoutFull, false)
			sm.UpdateInteractionState(func(s *model.InteractionState) { s.Selected = tt.start })
			sm.MoveSelection(tt.delta, tt.rows)
			assert.Equal(t, tt.expected, sm.GetInteractionState().Selected)
		})
	}
}

func TestClampSelection(t *testing.T) {
	sm := NewStateManager(model.LayoutFull, false)
	sm.UpdateInteractionState(func(s *model.InteractionState) { s.Selected = 5 })

	sm.ClampSelection(3)
	assert.Equal(t, 2, sm.GetInteractionState().Selected)

	sm.ClampSelection(0)
	assert.Equal(t, -1, sm.GetInteractionState().Selected)
}
