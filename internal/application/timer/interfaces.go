package timer

import (
	"github.com/penwyp/go-lap-timer/internal/core/model"
	"github.com/penwyp/go-lap-timer/internal/presentation/interaction"
	"github.com/penwyp/go-lap-timer/internal/presentation/view"
)

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// Render draws the board with the given interaction state
	Render(board view.Board, state model.InteractionState)
}

// InputHandler processes keyboard and other input events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}
