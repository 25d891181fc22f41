package layout

import (
	"fmt"
	"io"
	"strconv"

	"github.com/penwyp/go-lap-timer/internal/presentation/view"
	"github.com/penwyp/go-lap-timer/internal/util"
)

const (
	colNumber = 5
	colTotal  = 9
	colSplit  = 10
)

// BaseStrategy provides helpers shared by the layouts
type BaseStrategy struct{}

// Line writes one screen line and clears whatever a longer previous frame left behind
func (b *BaseStrategy) Line(w io.Writer, text string) {
	fmt.Fprint(w, text, util.ClearLineFromCursor, "\n")
}

func (b *BaseStrategy) StateBadge(board view.Board) string {
	if board.Running {
		return util.Colorize("RUNNING", util.ColorBold+util.ColorGreen)
	}
	return util.Colorize("STOPPED", util.ColorBold+util.ColorYellow)
}

// LapHeader renders the column titles of the lap list
func (b *BaseStrategy) LapHeader() string {
	return "  " + util.PadRight("Lap", colNumber) +
		util.PadLeft("Total", colTotal) +
		util.PadLeft("Split (s)", colSplit+2) + "  Status"
}

// LapRow renders one lap. The selected row is drawn in reverse video and
// skipped rows are dimmed and struck through.
func (b *BaseStrategy) LapRow(row view.Row, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	status := ""
	if row.Skipped {
		status = "skipped"
	}

	text := util.PadRight(strconv.Itoa(row.Number), colNumber) +
		util.PadLeft(row.Total, colTotal) +
		util.PadLeft(row.Split, colSplit+2)

	switch {
	case selected:
		return marker + util.Colorize(text, util.ColorReverse) + "  " + status
	case row.Skipped:
		return marker + util.Colorize(text, util.ColorDim+util.ColorStrike) + "  " + status
	default:
		return marker + text
	}
}

// VisibleRange picks the slice of rows that fits in capacity lines while
// keeping the selected row on screen
func (b *BaseStrategy) VisibleRange(total, selected, capacity int) (int, int) {
	if capacity <= 0 {
		return 0, 0
	}
	if total <= capacity {
		return 0, total
	}
	start := 0
	if selected >= capacity {
		start = selected - capacity + 1
	}
	if start+capacity > total {
		start = total - capacity
	}
	return start, start + capacity
}

func (b *BaseStrategy) Separator(width int) string {
	return util.FormatSectionSeparator(width)
}

func (b *BaseStrategy) KeyHints(width int) string {
	hints := "space start/stop  l lap  s skip  x split  r reset  h help  q quit"
	return util.Colorize(util.Truncate(hints, width), util.ColorDim)
}
