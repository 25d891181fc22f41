package ledger

import "time"

// Stats holds statistics derived from the lap sequence
type Stats struct {
	ActiveLapCount int           `json:"activeLapCount"`
	TotalLapCount  int           `json:"totalLapCount"`
	AverageSplit   time.Duration `json:"averageSplit"`
	FastestSplit   time.Duration `json:"fastestSplit"`
	SlowestSplit   time.Duration `json:"slowestSplit"`
}

// Snapshot is a read-only copy of the ledger state
type Snapshot struct {
	State        State         `json:"state"`
	StartedAt    time.Time     `json:"startedAt"`
	Elapsed      time.Duration `json:"elapsed"`
	CurrentSplit time.Duration `json:"currentSplit"`
	Laps         []Lap         `json:"laps"`
	Stats        Stats         `json:"stats"`
}

// ActiveLapCount counts the laps that are not skipped
func (l *Ledger) ActiveLapCount() int {
	count := 0
	for _, lap := range l.laps {
		if !lap.IsSkipped {
			count++
		}
	}
	return count
}

// AverageSplitTime is the mean split time of the active laps, 0 if none
func (l *Ledger) AverageSplitTime() time.Duration {
	var sum time.Duration
	count := 0
	for _, lap := range l.laps {
		if lap.IsSkipped {
			continue
		}
		sum += lap.SplitTime
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / time.Duration(count)
}

func (l *Ledger) Stats() Stats {
	stats := Stats{
		ActiveLapCount: l.ActiveLapCount(),
		TotalLapCount:  len(l.laps),
		AverageSplit:   l.AverageSplitTime(),
	}

	first := true
	for _, lap := range l.laps {
		if lap.IsSkipped {
			continue
		}
		if first || lap.SplitTime < stats.FastestSplit {
			stats.FastestSplit = lap.SplitTime
		}
		if first || lap.SplitTime > stats.SlowestSplit {
			stats.SlowestSplit = lap.SplitTime
		}
		first = false
	}
	return stats
}

func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		State:        l.State(),
		StartedAt:    l.startedAt,
		Elapsed:      l.Elapsed(),
		CurrentSplit: l.CurrentSplit(),
		Laps:         l.Laps(),
		Stats:        l.Stats(),
	}
}
