package layout

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/penwyp/go-lap-timer/internal/core/model"
	"github.com/penwyp/go-lap-timer/internal/presentation/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard(laps int) view.Board {
	board := view.Board{
		State:        "running",
		Running:      true,
		Clock:        "00:16.4",
		CurrentSplit: "00:01.4",
		ActiveLaps:   laps,
		TotalLaps:    laps,
		AverageSplit: "0:05.0",
		FastestSplit: "4.00",
		SlowestSplit: "6.00",
	}
	for i := 1; i <= laps; i++ {
		board.Rows = append(board.Rows, view.Row{
			ID:     fmt.Sprintf("lap-%d", i),
			Number: i,
			Total:  fmt.Sprintf("T%03d", i),
			Split:  "5.00",
		})
	}
	return board
}

func TestGetLayoutStrategy(t *testing.T) {
	assert.IsType(t, &FullLayoutStrategy{}, GetLayoutStrategy(model.LayoutFull))
	assert.IsType(t, &CompactLayoutStrategy{}, GetLayoutStrategy(model.LayoutCompact))
	assert.Equal(t, "Full", GetLayoutStrategy(model.LayoutFull).GetName())
	assert.Equal(t, "Compact", GetLayoutStrategy(model.LayoutCompact).GetName())
}

func TestFullLayoutRender(t *testing.T) {
	var buf bytes.Buffer
	board := sampleBoard(2)
	board.Rows[1].Skipped = true

	(&FullLayoutStrategy{}).Render(&buf, board, Param{Selected: 0, Width: 70, Height: 24})
	out := buf.String()

	assert.Contains(t, out, "Lap Timer")
	assert.Contains(t, out, "RUNNING")
	assert.Contains(t, out, "00:16.4")
	assert.Contains(t, out, "00:01.4")
	assert.Contains(t, out, "2 (2 active)")
	assert.Contains(t, out, "0:05.0")
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "q quit")
}

func TestFullLayoutEmpty(t *testing.T) {
	var buf bytes.Buffer
	board := sampleBoard(0)
	board.Running = false

	(&FullLayoutStrategy{}).Render(&buf, board, Param{Selected: -1, Width: 70, Height: 24})

	assert.Contains(t, buf.String(), "STOPPED")
	assert.Contains(t, buf.String(), "No laps yet")
}

func TestFullLayoutScrollsToSelection(t *testing.T) {
	var buf bytes.Buffer
	board := sampleBoard(30)

	(&FullLayoutStrategy{}).Render(&buf, board, Param{Selected: 29, Width: 70, Height: 20})
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.LessOrEqual(t, len(lines), 20)
	assert.Contains(t, out, "T030")
	assert.Contains(t, out, "T021")
	assert.NotContains(t, out, "T020")
	assert.NotContains(t, out, "T001")
}

func TestCompactLayoutRender(t *testing.T) {
	var buf bytes.Buffer
	(&CompactLayoutStrategy{}).Render(&buf, sampleBoard(5), Param{Selected: 0, Width: 70, Height: 24})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+compactRows)
	assert.Contains(t, lines[0], "5/5 laps")
	assert.Contains(t, lines[0], "avg 0:05.0")
}

func TestVisibleRange(t *testing.T) {
	b := &BaseStrategy{}
	tests := []struct {
		name                      string
		total, selected, capacity int
		wantStart, wantEnd        int
	}{
		{"fits", 3, 0, 10, 0, 3},
		{"selection at top", 20, 0, 5, 0, 5},
		{"selection below window", 20, 7, 5, 3, 8},
		{"selection at end", 20, 19, 5, 15, 20},
		{"no selection", 20, -1, 5, 0, 5},
		{"no room", 20, 3, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := b.VisibleRange(tt.total, tt.selected, tt.capacity)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestSizer(t *testing.T) {
	s := NewFixedSizer(200, 50)
	assert.Equal(t, maxWidth, s.GetMaxWidth())
	assert.Equal(t, 50, s.GetHeight())

	s = NewFixedSizer(20, 10)
	assert.Equal(t, minWidth, s.GetMaxWidth())

	assert.Equal(t, "ab   ", s.PadString("ab", 5, true))
	assert.Equal(t, "   ab", s.PadString("ab", 5, false))
}
