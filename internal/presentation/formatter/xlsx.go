package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-lap-timer/internal/util"
	"github.com/xuri/excelize/v2"
)

const (
	lapsSheet    = "Laps"
	summarySheet = "Summary"
)

// XLSXFormatter writes a spreadsheet with a lap sheet and a summary sheet
type XLSXFormatter struct{}

func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

func (f *XLSXFormatter) Format(w io.Writer, report Report) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", lapsSheet); err != nil {
		return err
	}
	if _, err := book.NewSheet(summarySheet); err != nil {
		return err
	}

	headerStyle, err := book.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"1c399e"},
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Color: "ffffff"},
	})
	if err != nil {
		return err
	}
	skippedStyle, err := book.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"999999"},
		},
		Font: &excelize.Font{Italic: true, Strike: true},
	})
	if err != nil {
		return err
	}

	headers := []interface{}{"Lap", "Total", "Total (s)", "Split (s)", "Status"}
	if err := book.SetSheetRow(lapsSheet, "A1", &headers); err != nil {
		return err
	}
	if err := book.SetCellStyle(lapsSheet, "A1", "E1", headerStyle); err != nil {
		return err
	}

	for i, lap := range report.Laps {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{
			lap.Number,
			util.FormatLapTime(lap.TotalTime),
			lap.TotalTime.Seconds(),
			lap.SplitTime.Seconds(),
			lapStatus(lap),
		}
		if err := book.SetSheetRow(lapsSheet, cell, &values); err != nil {
			return err
		}
		if lap.IsSkipped {
			end := fmt.Sprintf("E%d", row)
			if err := book.SetCellStyle(lapsSheet, cell, end, skippedStyle); err != nil {
				return err
			}
		}
	}
	if err := book.SetColWidth(lapsSheet, "A", "E", 12); err != nil {
		return err
	}

	summary := [][]interface{}{
		{"State", report.State},
		{"Session time (s)", report.Elapsed.Seconds()},
		{"Laps recorded", report.Stats.TotalLapCount},
		{"Active laps", report.Stats.ActiveLapCount},
		{"Skipped laps", report.SkippedCount()},
		{"Average split (s)", report.Stats.AverageSplit.Seconds()},
		{"Fastest split (s)", report.Stats.FastestSplit.Seconds()},
		{"Slowest split (s)", report.Stats.SlowestSplit.Seconds()},
	}
	if !report.GeneratedAt.IsZero() {
		summary = append(summary, []interface{}{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05")})
	}
	for i, values := range summary {
		cell := fmt.Sprintf("A%d", i+1)
		if err := book.SetSheetRow(summarySheet, cell, &values); err != nil {
			return err
		}
	}
	if err := book.SetColWidth(summarySheet, "A", "A", 20); err != nil {
		return err
	}

	return book.Write(w)
}
