package formatter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter().Format(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "Lap Timer Session Summary")
	assert.Contains(t, out, "Generated:      2026-03-14 09:30:00")
	assert.Contains(t, out, "Session time:   0:16.4 (16s)")
	assert.Contains(t, out, "Laps recorded:  3")
	assert.Contains(t, out, "Active laps:    2")
	assert.Contains(t, out, "Skipped laps:   1")
	assert.Contains(t, out, "Average split:  3.75 s")
	assert.Contains(t, out, "Fastest split:  2.50 s")
	assert.Contains(t, out, "Slowest split:  5.00 s")
}

func TestSummaryFormatterNoActiveLaps(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter().Format(&buf, Report{State: "idle"}))

	assert.Contains(t, buf.String(), "Laps recorded:  0")
	assert.NotContains(t, buf.String(), "Average split")
	assert.NotContains(t, buf.String(), "Generated")
}
