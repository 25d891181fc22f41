package util

import (
	"fmt"
	"strconv"
	"time"
)

// FormatLapTime formats a duration as minutes:seconds.tenths, rounded to the
// nearest tenth, e.g. 0:05.3 or 12:00.0.
func FormatLapTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int64((d + 50*time.Millisecond) / (100 * time.Millisecond))
	minutes := tenths / 600
	rem := tenths % 600
	return fmt.Sprintf("%d:%02d.%d", minutes, rem/10, rem%10)
}

// FormatSeconds formats a duration as plain seconds with fixed decimals
func FormatSeconds(d time.Duration, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(d.Seconds(), 'f', decimals, 64)
}

// FormatClock formats a running stopwatch reading. It truncates rather than
// rounds so the display never runs ahead of the recorded lap.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int64(d / (100 * time.Millisecond))
	hours := tenths / 36000
	minutes := (tenths / 600) % 60
	secs := (tenths / 10) % 60
	frac := tenths % 10

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%d", hours, minutes, secs, frac)
	}
	return fmt.Sprintf("%02d:%02d.%d", minutes, secs, frac)
}

// FormatDuration formats a duration for summaries, e.g. 1h 5m, 3m 12s, 42s
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
