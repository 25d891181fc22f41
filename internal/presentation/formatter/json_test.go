package formatter

import (
	"bytes"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, sampleReport()))

	var got ReportJSON
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "idle", got.State)
	assert.Equal(t, 2, got.ActiveLapCount)
	assert.Equal(t, 3, got.TotalLapCount)
	assert.InDelta(t, 3.75, got.AverageSplitSeconds, 1e-9)
	assert.InDelta(t, 16.4, got.ElapsedSeconds, 1e-9)
	assert.Contains(t, buf.String(), `"elapsedSeconds": 16.4,`)
	require.Len(t, got.Laps, 3)
	assert.Equal(t, "lap-2", got.Laps[1].ID)
	assert.True(t, got.Laps[1].IsSkipped)
	assert.InDelta(t, 7.5, got.Laps[1].SplitSeconds, 1e-9)
}

func TestJSONFormatterEmptyLaps(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, Report{State: "idle"}))

	assert.Contains(t, buf.String(), `"laps": []`)
}
