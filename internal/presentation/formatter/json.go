package formatter

import (
	"io"
	"time"

	"github.com/bytedance/sonic"
)

// ReportJSON is the wire shape of a report. Durations are seconds.
type ReportJSON struct {
	GeneratedAt         time.Time `json:"generatedAt"`
	State               string    `json:"state"`
	ElapsedSeconds      float64   `json:"elapsedSeconds"`
	ActiveLapCount      int       `json:"activeLapCount"`
	TotalLapCount       int       `json:"totalLapCount"`
	AverageSplitSeconds float64   `json:"averageSplitSeconds"`
	FastestSplitSeconds float64   `json:"fastestSplitSeconds"`
	SlowestSplitSeconds float64   `json:"slowestSplitSeconds"`
	Laps                []LapJSON `json:"laps"`
}

type LapJSON struct {
	ID           string  `json:"id"`
	Number       int     `json:"number"`
	TotalSeconds float64 `json:"totalSeconds"`
	SplitSeconds float64 `json:"splitSeconds"`
	IsSkipped    bool    `json:"isSkipped"`
}

// ToJSON converts a report to its wire shape
func (r Report) ToJSON() ReportJSON {
	out := ReportJSON{
		GeneratedAt:         r.GeneratedAt,
		State:               r.State,
		ElapsedSeconds:      r.Elapsed.Seconds(),
		ActiveLapCount:      r.Stats.ActiveLapCount,
		TotalLapCount:       r.Stats.TotalLapCount,
		AverageSplitSeconds: r.Stats.AverageSplit.Seconds(),
		FastestSplitSeconds: r.Stats.FastestSplit.Seconds(),
		SlowestSplitSeconds: r.Stats.SlowestSplit.Seconds(),
		Laps:                make([]LapJSON, 0, len(r.Laps)),
	}
	for _, lap := range r.Laps {
		out.Laps = append(out.Laps, LapJSON{
			ID:           lap.ID,
			Number:       lap.Number,
			TotalSeconds: lap.TotalTime.Seconds(),
			SplitSeconds: lap.SplitTime.Seconds(),
			IsSkipped:    lap.IsSkipped,
		})
	}
	return out
}

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(w io.Writer, report Report) error {
	data, err := sonic.MarshalIndent(report.ToJSON(), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
