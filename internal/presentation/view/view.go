// Package view projects ledger state into display rows shared by the
// terminal and browser front ends.
package view

import (
	"github.com/penwyp/go-lap-timer/internal/core/ledger"
	"github.com/penwyp/go-lap-timer/internal/util"
)

const DefaultSplitDecimals = 2

// Options controls the projection
type Options struct {
	SplitDecimals int
	NewestFirst   bool
}

// Row is one lap as displayed
type Row struct {
	ID        string
	Number    int
	Total     string
	Split     string
	Skipped   bool
	SkipLabel string
	CanSplit  bool
}

// Board is everything a front end needs to draw the timer
type Board struct {
	State        string
	Running      bool
	Clock        string
	CurrentSplit string
	ActiveLaps   int
	TotalLaps    int
	AverageSplit string
	FastestSplit string
	SlowestSplit string
	Rows         []Row
}

// Build turns a snapshot into a Board. It has no side effects.
func Build(snap ledger.Snapshot, opts Options) Board {
	decimals := opts.SplitDecimals
	if decimals < 0 {
		decimals = DefaultSplitDecimals
	}

	board := Board{
		State:        snap.State.String(),
		Running:      snap.State == ledger.StateRunning,
		Clock:        util.FormatClock(snap.Elapsed),
		CurrentSplit: util.FormatClock(snap.CurrentSplit),
		ActiveLaps:   snap.Stats.ActiveLapCount,
		TotalLaps:    snap.Stats.TotalLapCount,
		AverageSplit: util.FormatLapTime(snap.Stats.AverageSplit),
		FastestSplit: util.FormatSeconds(snap.Stats.FastestSplit, decimals),
		SlowestSplit: util.FormatSeconds(snap.Stats.SlowestSplit, decimals),
		Rows:         make([]Row, 0, len(snap.Laps)),
	}

	for _, lap := range snap.Laps {
		row := Row{
			ID:        lap.ID,
			Number:    lap.Number,
			Total:     util.FormatLapTime(lap.TotalTime),
			Split:     util.FormatSeconds(lap.SplitTime, decimals),
			Skipped:   lap.IsSkipped,
			SkipLabel: "Skip",
			CanSplit:  !lap.IsSkipped && lap.SplitTime > 0,
		}
		if lap.IsSkipped {
			row.SkipLabel = "Undo"
		}
		board.Rows = append(board.Rows, row)
	}

	if opts.NewestFirst {
		for i, j := 0, len(board.Rows)-1; i < j; i, j = i+1, j-1 {
			board.Rows[i], board.Rows[j] = board.Rows[j], board.Rows[i]
		}
	}

	return board
}

// RowID returns the lap id at a display index, or "" when out of range
func (b Board) RowID(index int) string {
	if index < 0 || index >= len(b.Rows) {
		return ""
	}
	return b.Rows[index].ID
}
