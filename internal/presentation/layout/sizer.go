package layout

import (
	"os"

	"github.com/penwyp/go-lap-timer/internal/util"
	"golang.org/x/term"
)

const (
	fallbackWidth  = 74
	fallbackHeight = 24
	minWidth       = 40
	maxWidth       = 100
)

// Sizer reports the usable drawing area of the terminal
type Sizer struct {
	// fixed dimensions override the terminal query when non-zero
	width  int
	height int
}

// NewFixedSizer returns a sizer that always reports the given size
func NewFixedSizer(width, height int) *Sizer {
	return &Sizer{width: width, height: height}
}

func (s *Sizer) size() (int, int) {
	if s.width > 0 && s.height > 0 {
		return s.width, s.height
	}
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// GetMaxWidth returns the content width, clamped to a readable range
func (s *Sizer) GetMaxWidth() int {
	w, _ := s.size()
	width := w - 2
	if width < minWidth {
		width = minWidth
	}
	if width > maxWidth {
		width = maxWidth
	}
	return width
}

// GetHeight returns the number of terminal rows
func (s *Sizer) GetHeight() int {
	_, h := s.size()
	return h
}

// PadString pads a string to a display width
func (s *Sizer) PadString(text string, width int, leftAlign bool) string {
	if leftAlign {
		return util.PadRight(text, width)
	}
	return util.PadLeft(text, width)
}
