package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0:00.0"},
		{"tenths", 5300 * time.Millisecond, "0:05.3"},
		{"rounds to nearest tenth", 12460 * time.Millisecond, "0:12.5"},
		{"rounding carries into minutes", 59960 * time.Millisecond, "1:00.0"},
		{"over a minute", 62500 * time.Millisecond, "1:02.5"},
		{"over an hour", 61 * time.Minute, "61:00.0"},
		{"negative clamps", -time.Second, "0:00.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatLapTime(tt.duration))
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "2.50", FormatSeconds(2500*time.Millisecond, 2))
	assert.Equal(t, "10.0", FormatSeconds(10*time.Second, 1))
	assert.Equal(t, "3", FormatSeconds(3200*time.Millisecond, 0))
	assert.Equal(t, "3", FormatSeconds(3200*time.Millisecond, -1))
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "00:00.0"},
		{5990 * time.Millisecond, "00:05.9"},
		{83*time.Second + 400*time.Millisecond, "01:23.4"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03.0"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatClock(tt.duration))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "42s", FormatDuration(42*time.Second))
	assert.Equal(t, "3m 12s", FormatDuration(3*time.Minute+12*time.Second))
	assert.Equal(t, "1h 5m", FormatDuration(time.Hour+5*time.Minute+30*time.Second))
}

func TestCenterAndPad(t *testing.T) {
	assert.Equal(t, "  ab  ", CenterText("ab", 6))
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
	assert.Equal(t, 2, GetDisplayWidth("界"))
}
