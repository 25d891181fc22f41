package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-lap-timer/internal/util"
)

// SummaryFormatter writes a short plain-text session summary
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Format(w io.Writer, report Report) error {
	var b strings.Builder
	dec := report.SplitDecimals

	b.WriteString(strings.Repeat("=", 48) + "\n")
	b.WriteString("Lap Timer Session Summary\n")
	b.WriteString(strings.Repeat("=", 48) + "\n\n")

	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated:      %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "State:          %s\n", report.State)
	fmt.Fprintf(&b, "Session time:   %s (%s)\n", util.FormatLapTime(report.Elapsed), util.FormatDuration(report.Elapsed))
	fmt.Fprintf(&b, "Laps recorded:  %d\n", report.Stats.TotalLapCount)
	fmt.Fprintf(&b, "Active laps:    %d\n", report.Stats.ActiveLapCount)
	fmt.Fprintf(&b, "Skipped laps:   %d\n", report.SkippedCount())

	if report.Stats.ActiveLapCount > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Average split:  %s s\n", util.FormatSeconds(report.Stats.AverageSplit, dec))
		fmt.Fprintf(&b, "Fastest split:  %s s\n", util.FormatSeconds(report.Stats.FastestSplit, dec))
		fmt.Fprintf(&b, "Slowest split:  %s s\n", util.FormatSeconds(report.Stats.SlowestSplit, dec))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
