package formatter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/penwyp/go-lap-timer/internal/util"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)

	headers := []string{"Lap", "Total", "Total (s)", "Split (s)", "Skipped", "ID"}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, lap := range report.Laps {
		record := []string{
			strconv.Itoa(lap.Number),
			util.FormatLapTime(lap.TotalTime),
			util.FormatSeconds(lap.TotalTime, 3),
			util.FormatSeconds(lap.SplitTime, report.SplitDecimals),
			strconv.FormatBool(lap.IsSkipped),
			lap.ID,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
