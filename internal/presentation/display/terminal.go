package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/penwyp/go-lap-timer/internal/core/model"
	"github.com/penwyp/go-lap-timer/internal/presentation/layout"
	"github.com/penwyp/go-lap-timer/internal/presentation/view"
	"github.com/penwyp/go-lap-timer/internal/util"
)

const dialogWidth = 50

type TerminalDisplay struct {
	out               io.Writer
	sizer             *layout.Sizer
	inAlternateScreen bool
	isFirstRender     bool
	currentMode       model.DisplayMode
	lastLayoutStyle   model.LayoutStyle
}

func NewTerminalDisplay() *TerminalDisplay {
	return NewTerminalDisplayWithWriter(os.Stdout, &layout.Sizer{})
}

// NewTerminalDisplayWithWriter draws to w using the given sizer
func NewTerminalDisplayWithWriter(w io.Writer, sizer *layout.Sizer) *TerminalDisplay {
	return &TerminalDisplay{
		out:           w,
		sizer:         sizer,
		isFirstRender: true,
		currentMode:   model.ModeNormal,
	}
}

// EnterAlternateScreen switches to the alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.EnterAltScreen, util.ClearScreen, util.MoveCursorHome, util.HideCursor)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to the normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen, util.MoveCursorHome, util.ShowCursor, util.ExitAltScreen)
	td.inAlternateScreen = false
}

// Render draws one frame. The frame is assembled in memory and written at
// once; the screen is only fully cleared on mode or layout changes.
func (td *TerminalDisplay) Render(board view.Board, state model.InteractionState) {
	var frame strings.Builder

	mode := state.Mode()
	if td.isFirstRender || mode != td.currentMode || state.LayoutStyle != td.lastLayoutStyle {
		frame.WriteString(util.ClearScreen)
		td.isFirstRender = false
		td.currentMode = mode
		td.lastLayoutStyle = state.LayoutStyle
	}
	frame.WriteString(util.MoveCursorHome)

	width := td.sizer.GetMaxWidth()
	height := td.sizer.GetHeight()

	switch mode {
	case model.ModeDialog:
		td.renderConfirmDialog(&frame, state.ConfirmDialog, width)
	case model.ModeHelp:
		td.renderHelp(&frame, width)
	default:
		strategy := layout.GetLayoutStrategy(state.LayoutStyle)
		strategy.Render(&frame, board, layout.Param{
			Selected: state.Selected,
			Width:    width,
			Height:   height,
		})
		if state.StatusMessage != "" {
			td.renderStatusMessage(&frame, state.StatusMessage, width)
		}
	}

	frame.WriteString(util.ClearToScreenEnd)
	io.WriteString(td.out, frame.String())
}

func (td *TerminalDisplay) renderHelp(w *strings.Builder, width int) {
	lines := []string{
		util.FormatHeaderTitle("Lap Timer - Help"),
		strings.Repeat("═", width),
		"",
		"Keyboard Shortcuts:",
		"",
		"  space       - Start or stop the stopwatch",
		"  l / Enter   - Record a lap (while running)",
		"  ↑/k  ↓/j    - Select a lap",
		"  s           - Skip the selected lap, or count it again",
		"  x           - Split the selected lap in two",
		"  r           - Reset the session (asks for confirmation)",
		"  o           - Toggle newest-first ordering",
		"  t           - Change layout style (Full / Compact)",
		"  h           - Show this help",
		"  q / Ctrl+C  - Quit",
		"  Esc         - Close help or dialog (or quit if nothing is open)",
		"",
		"Skipped laps keep their times but are left out of the average.",
		"Splitting divides a lap's split time into two equal halves.",
		"",
		strings.Repeat("═", width),
		"Press 'h' to return...",
	}
	for _, line := range lines {
		w.WriteString(line + util.ClearLineFromCursor + "\n")
	}
}

func (td *TerminalDisplay) renderConfirmDialog(w *strings.Builder, dialog *model.ConfirmDialog, width int) {
	boxWidth := dialogWidth
	if boxWidth > width {
		boxWidth = width
	}
	padding := strings.Repeat(" ", (width-boxWidth)/2)
	inner := boxWidth - 2

	w.WriteString("\n\n\n")
	fmt.Fprintf(w, "%s╔%s╗\n", padding, strings.Repeat("═", inner))
	fmt.Fprintf(w, "%s║%s║\n", padding, util.CenterText(dialog.Title, inner))
	fmt.Fprintf(w, "%s╠%s╣\n", padding, strings.Repeat("═", inner))
	fmt.Fprintf(w, "%s║%s║\n", padding, strings.Repeat(" ", inner))
	for _, line := range wrapText(dialog.Message, inner-2) {
		fmt.Fprintf(w, "%s║ %s ║\n", padding, util.PadRight(line, inner-2))
	}
	fmt.Fprintf(w, "%s║%s║\n", padding, strings.Repeat(" ", inner))
	fmt.Fprintf(w, "%s║%s║\n", padding, util.CenterText("(Y)es / (N)o", inner))
	fmt.Fprintf(w, "%s╚%s╝\n", padding, strings.Repeat("═", inner))
}

func (td *TerminalDisplay) renderStatusMessage(w *strings.Builder, message string, width int) {
	text := util.Truncate("  Status: "+message, width)
	w.WriteString(util.Colorize(text, util.ColorYellow) + util.ClearLineFromCursor + "\n")
}

// wrapText wraps text on word boundaries to fit the given display width
func wrapText(text string, width int) []string {
	if text == "" {
		return []string{}
	}
	if util.GetDisplayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case util.GetDisplayWidth(current)+1+util.GetDisplayWidth(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
