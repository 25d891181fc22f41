package timer

import (
	"sync"
	"time"

	"github.com/penwyp/go-lap-timer/internal/core/model"
)

// statusTTL is how long a status message stays on screen
const statusTTL = 3 * time.Second

// StateManager manages interaction state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	interactionState model.InteractionState
	statusExpiry     time.Time
}

// NewStateManager creates a StateManager with nothing selected
func NewStateManager(layout model.LayoutStyle, newestFirst bool) *StateManager {
	return &StateManager{
		interactionState: model.InteractionState{
			Selected:    -1,
			LayoutStyle: layout,
			NewestFirst: newestFirst,
		},
	}
}

// GetInteractionState returns a copy of the interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.interactionState
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	updateFunc(&sm.interactionState)
}

// SetStatus shows a status message until statusTTL after now
func (sm *StateManager) SetStatus(message string, now time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.interactionState.StatusMessage = message
	sm.statusExpiry = now.Add(statusTTL)
}

// ExpireStatus clears the status message once it has timed out
func (sm *StateManager) ExpireStatus(now time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.interactionState.StatusMessage != "" && !now.Before(sm.statusExpiry) {
		sm.interactionState.StatusMessage = ""
	}
}

// ClampSelection keeps the selection inside [0, rows) or -1 when empty
func (sm *StateManager) ClampSelection(rows int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	switch {
	case rows == 0:
		sm.interactionState.Selected = -1
	case sm.interactionState.Selected >= rows:
		sm.interactionState.Selected = rows - 1
	}
}

// MoveSelection shifts the selection by delta within [0, rows)
func (sm *StateManager) MoveSelection(delta, rows int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if rows == 0 {
		sm.interactionState.Selected = -1
		return
	}
	next := sm.interactionState.Selected + delta
	if sm.interactionState.Selected < 0 {
		next = 0
		if delta < 0 {
			next = rows - 1
		}
	}
	if next < 0 {
		next = 0
	}
	if next >= rows {
		next = rows - 1
	}
	sm.interactionState.Selected = next
}
