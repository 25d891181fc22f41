package timer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/penwyp/go-lap-timer/internal/application/tracker"
	"github.com/penwyp/go-lap-timer/internal/config"
	"github.com/penwyp/go-lap-timer/internal/core/ledger"
	"github.com/penwyp/go-lap-timer/internal/core/model"
	"github.com/penwyp/go-lap-timer/internal/presentation/interaction"
	"github.com/penwyp/go-lap-timer/internal/presentation/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeDisplay struct {
	mu      sync.Mutex
	entered int
	exited  int
	boards  []view.Board
	states  []model.InteractionState
}

func (d *fakeDisplay) EnterAlternateScreen() {
	d.mu.Lock()
	d.entered++
	d.mu.Unlock()
}

func (d *fakeDisplay) ExitAlternateScreen() {
	d.mu.Lock()
	d.exited++
	d.mu.Unlock()
}

func (d *fakeDisplay) Render(board view.Board, state model.InteractionState) {
	d.mu.Lock()
	d.boards = append(d.boards, board)
	d.states = append(d.states, state)
	d.mu.Unlock()
}

type fakeInput struct {
	events chan interaction.KeyEvent
	closed bool
}

func newFakeInput(keys ...interaction.KeyEvent) *fakeInput {
	in := &fakeInput{events: make(chan interaction.KeyEvent, len(keys)+1)}
	for _, k := range keys {
		in.events <- k
	}
	return in
}

func (f *fakeInput) Events() <-chan interaction.KeyEvent { return f.events }

func (f *fakeInput) Close() error {
	f.closed = true
	return nil
}

func char(r rune) interaction.KeyEvent {
	return interaction.KeyEvent{Key: r, Type: interaction.KeyChar}
}

func newTestOrchestrator(t *testing.T, cfg *TimerConfig) (*Orchestrator, *fakeClock, *fakeDisplay) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	n := 0
	tr := tracker.New(clock, ledger.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("lap-%d", n)
	}))
	display := &fakeDisplay{}
	o, err := NewOrchestrator(cfg, tr, display)
	require.NoError(t, err)
	return o, clock, display
}

func (o *Orchestrator) press(keys ...interaction.KeyEvent) bool {
	exit := false
	for _, k := range keys {
		exit = o.handleKeyboard(k)
	}
	return exit
}

func TestRecordLapsFromKeyboard(t *testing.T) {
	o, clock, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})

	o.press(char(' '))
	assert.True(t, o.tracker.Snapshot().State == ledger.StateRunning)
	assert.Equal(t, "Timer started", o.stateManager.GetInteractionState().StatusMessage)

	clock.Advance(2500 * time.Millisecond)
	o.press(char('l'))
	clock.Advance(time.Second)
	o.press(interaction.KeyEvent{Type: interaction.KeyEnter, Key: '\r'})

	snap := o.tracker.Snapshot()
	require.Len(t, snap.Laps, 2)
	assert.Equal(t, 2500*time.Millisecond, snap.Laps[0].SplitTime)
	assert.Equal(t, time.Second, snap.Laps[1].SplitTime)

	state := o.stateManager.GetInteractionState()
	assert.Equal(t, 1, state.Selected)
	assert.Equal(t, "Lap 2 recorded (1.00 s)", state.StatusMessage)
}

func TestRecordLapWhileIdle(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})

	o.press(char('l'))

	assert.Empty(t, o.tracker.Snapshot().Laps)
	assert.Contains(t, o.stateManager.GetInteractionState().StatusMessage, "not running")
}

func TestStopRecordsFinalLap(t *testing.T) {
	o, clock, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})

	o.press(char(' '))
	clock.Advance(3 * time.Second)
	o.press(char(' '))

	snap := o.tracker.Snapshot()
	require.Len(t, snap.Laps, 1)
	assert.Equal(t, ledger.StateIdle, snap.State)
	assert.Equal(t, 0, o.stateManager.GetInteractionState().Selected)
	assert.Equal(t, "Timer stopped", o.stateManager.GetInteractionState().StatusMessage)
}

func TestSkipAndSplitSelectedLap(t *testing.T) {
	o, clock, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})

	o.press(char(' '))
	clock.Advance(2 * time.Second)
	o.press(char('l'))
	clock.Advance(4 * time.Second)
	o.press(char('l'))

	// select lap 2 then split it
	o.press(char('x'))
	snap := o.tracker.Snapshot()
	require.Len(t, snap.Laps, 3)
	assert.Equal(t, 2*time.Second, snap.Laps[1].SplitTime)
	assert.Equal(t, 2*time.Second, snap.Laps[2].SplitTime)
	assert.Equal(t, "Lap split into laps 2 and 3", o.stateManager.GetInteractionState().StatusMessage)

	// move to lap 1 and skip it
	o.press(char('k'), interaction.KeyEvent{Type: interaction.KeyUp})
	assert.Equal(t, 0, o.stateManager.GetInteractionState().Selected)
	o.press(char('s'))
	snap = o.tracker.Snapshot()
	assert.True(t, snap.Laps[0].IsSkipped)
	assert.Equal(t, 2, snap.Stats.ActiveLapCount)
	assert.Equal(t, "Lap 1 skipped", o.stateManager.GetInteractionState().StatusMessage)

	// splitting a skipped lap is rejected
	o.press(char('x'))
	assert.Len(t, o.tracker.Snapshot().Laps, 3)
	assert.Contains(t, o.stateManager.GetInteractionState().StatusMessage, "Cannot split")

	o.press(char('s'))
	assert.False(t, o.tracker.Snapshot().Laps[0].IsSkipped)
	assert.Equal(t, "Lap 1 counted again", o.stateManager.GetInteractionState().StatusMessage)
}

func TestActionWithoutSelection(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})

	o.press(char('s'))

	assert.Contains(t, o.stateManager.GetInteractionState().StatusMessage, "Select a lap")
}

func TestResetConfirmation(t *testing.T) {
	o, clock, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})
	o.press(char(' '))
	clock.Advance(time.Second)
	o.press(char('l'))

	o.press(char('r'))
	assert.NotNil(t, o.stateManager.GetInteractionState().ConfirmDialog)

	// other keys are ignored while the dialog is open
	assert.False(t, o.press(char('q')))
	o.press(char('n'))
	assert.Nil(t, o.stateManager.GetInteractionState().ConfirmDialog)
	assert.Len(t, o.tracker.Snapshot().Laps, 1)

	o.press(char('r'), char('y'))
	state := o.stateManager.GetInteractionState()
	assert.Nil(t, state.ConfirmDialog)
	assert.Equal(t, -1, state.Selected)
	assert.Equal(t, "Session reset", state.StatusMessage)
	snap := o.tracker.Snapshot()
	assert.Empty(t, snap.Laps)
	assert.Equal(t, ledger.StateIdle, snap.State)

	o.press(char('r'), interaction.KeyEvent{Type: interaction.KeyEscape, Key: 27})
	assert.Nil(t, o.stateManager.GetInteractionState().ConfirmDialog)
}

func TestToggleOrderKeepsSelectedLap(t *testing.T) {
	o, clock, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})
	o.press(char(' '))
	for i := 0; i < 3; i++ {
		clock.Advance(time.Second)
		o.press(char('l'))
	}
	o.press(char('k'))
	require.Equal(t, 1, o.stateManager.GetInteractionState().Selected)
	o.press(char('k'))
	require.Equal(t, 0, o.stateManager.GetInteractionState().Selected)

	o.press(char('o'))
	state := o.stateManager.GetInteractionState()
	assert.True(t, state.NewestFirst)
	assert.Equal(t, 2, state.Selected)
	assert.Equal(t, "lap-1", o.board(state).RowID(state.Selected))
}

func TestViewKeys(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})

	o.press(char('t'))
	assert.Equal(t, model.LayoutCompact, o.stateManager.GetInteractionState().LayoutStyle)
	o.press(char('t'))
	assert.Equal(t, model.LayoutFull, o.stateManager.GetInteractionState().LayoutStyle)

	o.press(char('h'))
	assert.True(t, o.stateManager.GetInteractionState().ShowHelp)
	assert.False(t, o.press(interaction.KeyEvent{Type: interaction.KeyEscape, Key: 27}))
	assert.False(t, o.stateManager.GetInteractionState().ShowHelp)
}

func TestExitKeys(t *testing.T) {
	tests := []struct {
		name  string
		event interaction.KeyEvent
	}{
		{"q", char('q')},
		{"Q", char('Q')},
		{"ctrl c", char(3)},
		{"escape", interaction.KeyEvent{Type: interaction.KeyEscape, Key: 27}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})
			assert.True(t, o.press(tt.event))
		})
	}
}

func TestRunQuitsAndWritesReport(t *testing.T) {
	o, _, display := newTestOrchestrator(t, &TimerConfig{OutputFormat: "summary"})
	var report bytes.Buffer
	o.SetReportWriter(&report)

	input := newFakeInput(char(' '), char('l'), char('q'))
	require.NoError(t, o.Run(context.Background(), input))

	assert.True(t, input.closed)
	assert.Equal(t, 1, display.entered)
	assert.Equal(t, 1, display.exited)
	assert.NotEmpty(t, display.boards)
	assert.Contains(t, report.String(), "Laps recorded:  1")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	o, _, display := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, o.Run(ctx, newFakeInput()))
	assert.Equal(t, 1, display.exited)
}

func TestApplyConfig(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &TimerConfig{RefreshPerSecond: 10})

	cfg := config.Defaults()
	cfg.Display.SplitDecimals = 1
	cfg.UI.Layout = "compact"
	assert.False(t, o.applyConfig(cfg))
	assert.Equal(t, 1, o.config.SplitDecimals)
	assert.Equal(t, model.LayoutCompact, o.stateManager.GetInteractionState().LayoutStyle)

	cfg.UI.RefreshPerSecond = 2
	assert.True(t, o.applyConfig(cfg))

	cfg.UI.RefreshPerSecond = 100
	assert.False(t, o.applyConfig(cfg))
	assert.Equal(t, 2.0, o.config.RefreshPerSecond)
}

func TestWriteReportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "laps.csv")
	o, clock, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2, OutputFormat: "csv", OutputFile: path})
	o.press(char(' '))
	clock.Advance(time.Second)
	o.press(char(' '))

	require.NoError(t, o.WriteReport())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,0:01.0,1.000,1.00,false,lap-1")
}

func TestWriteReportDisabled(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &TimerConfig{SplitDecimals: 2})
	var report bytes.Buffer
	o.SetReportWriter(&report)

	require.NoError(t, o.WriteReport())
	assert.Zero(t, report.Len())
}

func TestTimerConfigValidate(t *testing.T) {
	cfg := &TimerConfig{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10.0, cfg.RefreshPerSecond)
	assert.Equal(t, "full", cfg.Layout)
	assert.Equal(t, 100*time.Millisecond, cfg.RefreshInterval())

	assert.Error(t, (&TimerConfig{RefreshPerSecond: 50}).Validate())
	assert.Error(t, (&TimerConfig{SplitDecimals: 5}).Validate())
	assert.Error(t, (&TimerConfig{OutputFormat: "xlsx"}).Validate())
	assert.NoError(t, (&TimerConfig{OutputFormat: "xlsx", OutputFile: "laps.xlsx"}).Validate())
}

func TestNewTimerConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.UI.NewestFirst = true
	cfg.Output.Format = "json"

	tc := NewTimerConfig(cfg)
	assert.True(t, tc.NewestFirst)
	assert.Equal(t, "json", tc.OutputFormat)
	assert.Equal(t, 2, tc.SplitDecimals)
}
