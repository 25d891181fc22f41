package layout

import (
	"fmt"
	"io"

	"github.com/penwyp/go-lap-timer/internal/presentation/view"
	"github.com/penwyp/go-lap-timer/internal/util"
)

// compactRows is how many laps the compact layout shows
const compactRows = 3

// CompactLayoutStrategy fits the timer in a few lines
type CompactLayoutStrategy struct {
	BaseStrategy
}

func (s *CompactLayoutStrategy) GetName() string {
	return "Compact"
}

func (s *CompactLayoutStrategy) Render(w io.Writer, board view.Board, param Param) {
	line := fmt.Sprintf("%s %s | lap %s | %d/%d laps | avg %s",
		s.StateBadge(board),
		util.Colorize(board.Clock, util.ColorBold),
		board.CurrentSplit,
		board.ActiveLaps,
		board.TotalLaps,
		board.AverageSplit)
	s.Line(w, line)

	capacity := compactRows
	if param.Height > 0 && param.Height-2 < capacity {
		capacity = param.Height - 2
	}
	start, end := s.VisibleRange(len(board.Rows), param.Selected, capacity)
	for i := start; i < end; i++ {
		s.Line(w, s.LapRow(board.Rows[i], i == param.Selected))
	}
}
