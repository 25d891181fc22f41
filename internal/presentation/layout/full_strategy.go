package layout

import (
	"fmt"
	"io"

	"github.com/penwyp/go-lap-timer/internal/presentation/view"
	"github.com/penwyp/go-lap-timer/internal/util"
)

// header, separator, three stat lines, separator, column header,
// separator, key hints and the status line
const fullChromeLines = 10

// FullLayoutStrategy draws the clock, statistics and the lap list
type FullLayoutStrategy struct {
	BaseStrategy
}

func (s *FullLayoutStrategy) GetName() string {
	return "Full"
}

func (s *FullLayoutStrategy) Render(w io.Writer, board view.Board, param Param) {
	width := param.Width

	title := util.FormatHeaderTitle("Lap Timer")
	badge := s.StateBadge(board)
	gap := width - util.GetDisplayWidth("Lap Timer") - util.GetDisplayWidth("RUNNING")
	if gap < 1 {
		gap = 1
	}
	s.Line(w, fmt.Sprintf("%s%*s%s", title, gap, "", badge))
	s.Line(w, s.Separator(width))

	s.Line(w, s.statLine("Time", util.Colorize(board.Clock, util.ColorBold+util.ColorCyan), "Current lap", board.CurrentSplit))
	s.Line(w, s.statLine("Laps", fmt.Sprintf("%d (%d active)", board.TotalLaps, board.ActiveLaps), "Average", board.AverageSplit))
	s.Line(w, s.statLine("Fastest", board.FastestSplit+" s", "Slowest", board.SlowestSplit+" s"))
	s.Line(w, s.Separator(width))

	s.Line(w, util.FormatDataTitle(s.LapHeader()))
	capacity := param.Height - fullChromeLines
	if len(board.Rows) == 0 {
		s.Line(w, util.Colorize("  No laps yet. Press space to start and l to record a lap.", util.ColorDim))
	} else {
		start, end := s.VisibleRange(len(board.Rows), param.Selected, capacity)
		for i := start; i < end; i++ {
			s.Line(w, s.LapRow(board.Rows[i], i == param.Selected))
		}
	}

	s.Line(w, s.Separator(width))
	s.Line(w, s.KeyHints(width))
}

func (s *FullLayoutStrategy) statLine(leftLabel, leftValue, rightLabel, rightValue string) string {
	return "  " + util.PadRight(leftLabel, 9) + util.PadRight(leftValue, 20) +
		util.PadRight(rightLabel, 13) + rightValue
}
