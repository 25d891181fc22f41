package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-lap-timer/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"Lap", "Total", "Split (s)", "Status"},
	}
}

func (f *TableFormatter) Format(w io.Writer, report Report) error {
	rows := make([][]string, 0, len(report.Laps))
	for _, lap := range report.Laps {
		rows = append(rows, []string{
			strconv.Itoa(lap.Number),
			util.FormatLapTime(lap.TotalTime),
			util.FormatSeconds(lap.SplitTime, report.SplitDecimals),
			lapStatus(lap),
		})
	}
	footer := []string{
		"Avg",
		util.FormatLapTime(report.Stats.AverageSplit),
		util.FormatSeconds(report.Stats.AverageSplit, report.SplitDecimals),
		fmt.Sprintf("%d active", report.Stats.ActiveLapCount),
	}

	widths := f.calculateColumnWidths(rows, footer)

	var b strings.Builder
	f.writeBorder(&b, widths, "top")
	f.writeRow(&b, f.headers, widths)
	f.writeBorder(&b, widths, "middle")
	for _, row := range rows {
		f.writeRow(&b, row, widths)
	}
	f.writeBorder(&b, widths, "middle")
	f.writeRow(&b, footer, widths)
	f.writeBorder(&b, widths, "bottom")

	_, err := io.WriteString(w, b.String())
	return err
}

// calculateColumnWidths sizes each column to its widest cell
func (f *TableFormatter) calculateColumnWidths(rows [][]string, footer []string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}

	measure := func(values []string) {
		for i, value := range values {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for _, row := range rows {
		measure(row)
	}
	measure(footer)

	return widths
}

func (f *TableFormatter) writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

// writeRow left-aligns the status column and right-aligns the numeric ones
func (f *TableFormatter) writeRow(b *strings.Builder, values []string, widths []int) {
	b.WriteString("│")
	for i, value := range values {
		if i == len(values)-1 {
			b.WriteString(" " + util.PadRight(value, widths[i]) + " │")
		} else {
			b.WriteString(" " + util.PadLeft(value, widths[i]) + " │")
		}
	}
	b.WriteString("\n")
}
