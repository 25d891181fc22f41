package layout

import (
	"io"

	"github.com/penwyp/go-lap-timer/internal/core/model"
	"github.com/penwyp/go-lap-timer/internal/presentation/view"
)

// Param carries per-frame drawing parameters
type Param struct {
	Selected int
	Width    int
	Height   int
}

// LayoutStrategy draws a board in one visual style
type LayoutStrategy interface {
	Render(w io.Writer, board view.Board, param Param)
	GetName() string
}

// GetLayoutStrategy returns the strategy for a layout style
func GetLayoutStrategy(style model.LayoutStyle) LayoutStrategy {
	switch style {
	case model.LayoutCompact:
		return &CompactLayoutStrategy{}
	default:
		return &FullLayoutStrategy{}
	}
}
