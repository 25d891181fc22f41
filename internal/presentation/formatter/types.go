package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-lap-timer/internal/core/ledger"
)

// Formatter writes a session report in one output format
type Formatter interface {
	Format(w io.Writer, report Report) error
}

// Supported output formats
const (
	FormatTable   = "table"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatSummary = "summary"
	FormatXLSX    = "xlsx"
)

// Report is a point-in-time view of a timing session
type Report struct {
	GeneratedAt   time.Time
	State         string
	Elapsed       time.Duration
	Laps          []ledger.Lap
	Stats         ledger.Stats
	SplitDecimals int
}

// NewReport builds a report from a ledger snapshot
func NewReport(snap ledger.Snapshot, generatedAt time.Time, splitDecimals int) Report {
	return Report{
		GeneratedAt:   generatedAt,
		State:         snap.State.String(),
		Elapsed:       snap.Elapsed,
		Laps:          snap.Laps,
		Stats:         snap.Stats,
		SplitDecimals: splitDecimals,
	}
}

// SkippedCount counts the skipped laps in the report
func (r Report) SkippedCount() int {
	return r.Stats.TotalLapCount - r.Stats.ActiveLapCount
}

// New returns the formatter for a format name
func New(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatTable, "":
		return NewTableFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatCSV:
		return NewCSVFormatter(), nil
	case FormatSummary:
		return NewSummaryFormatter(), nil
	case FormatXLSX:
		return NewXLSXFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format '%s': must be one of table, json, csv, summary, xlsx", format)
	}
}

// ContentType returns the MIME type and file extension for a format
func ContentType(format string) (string, string) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return "application/json", "json"
	case FormatCSV:
		return "text/csv; charset=utf-8", "csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	default:
		return "text/plain; charset=utf-8", "txt"
	}
}

func lapStatus(lap ledger.Lap) string {
	if lap.IsSkipped {
		return "skipped"
	}
	return "counted"
}
