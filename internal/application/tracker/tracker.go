// Package tracker guards a lap ledger for concurrent callers and records
// metrics and logs for every state change.
package tracker

import (
	"sync"
	"time"

	"github.com/penwyp/go-lap-timer/internal/core/ledger"
	"github.com/penwyp/go-lap-timer/internal/metrics"
	"github.com/penwyp/go-lap-timer/internal/util"
)

type Tracker struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	clock  ledger.Clock
}

// New wraps a fresh ledger. The clock stamps both lap boundaries and
// reports; nil means the system clock.
func New(clock ledger.Clock, opts ...ledger.Option) *Tracker {
	if clock == nil {
		clock = ledger.SystemClock{}
	}
	opts = append([]ledger.Option{ledger.WithClock(clock)}, opts...)
	t := &Tracker{
		clock:  clock,
		ledger: ledger.New(opts...),
	}
	metrics.ObserveSession(false, 0)
	return t
}

// Now reads the tracker's clock
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

func (t *Tracker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ledger.Start(); err != nil {
		return err
	}
	util.LogInfo("Session started")
	t.observe()
	return nil
}

func (t *Tracker) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopLocked()
}

func (t *Tracker) stopLocked() error {
	if !t.ledger.IsRunning() {
		return nil
	}
	if err := t.ledger.Stop(); err != nil {
		return err
	}
	metrics.RecordLap()
	util.LogInfo("Session stopped", util.F("laps", len(t.ledger.Laps())))
	t.observe()
	return nil
}

// Toggle starts an idle session or stops a running one and reports whether
// the session is running afterwards
func (t *Tracker) Toggle() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ledger.IsRunning() {
		return false, t.stopLocked()
	}
	if err := t.ledger.Start(); err != nil {
		return false, err
	}
	util.LogInfo("Session started")
	t.observe()
	return true, nil
}

func (t *Tracker) RecordLap() (ledger.Lap, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lap, err := t.ledger.RecordLap()
	if err != nil {
		return ledger.Lap{}, err
	}
	metrics.RecordLap()
	util.LogDebug("Lap recorded", util.F("number", lap.Number), util.F("split", lap.SplitTime.String()))
	t.observe()
	return lap, nil
}

func (t *Tracker) ToggleSkip(id string) (ledger.Lap, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lap, err := t.ledger.ToggleSkip(id)
	if err != nil {
		return ledger.Lap{}, err
	}
	metrics.RecordSkipToggle(lap.IsSkipped)
	util.LogDebug("Lap skip toggled", util.F("number", lap.Number), util.F("skipped", lap.IsSkipped))
	t.observe()
	return lap, nil
}

func (t *Tracker) SplitLap(id string) ([2]ledger.Lap, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	halves, err := t.ledger.SplitLap(id)
	if err != nil {
		return halves, err
	}
	metrics.RecordSplit()
	util.LogDebug("Lap split", util.F("number", halves[0].Number))
	t.observe()
	return halves, nil
}

func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ledger.Reset()
	metrics.RecordReset()
	util.LogInfo("Session reset")
	t.observe()
}

func (t *Tracker) Snapshot() ledger.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Snapshot()
}

func (t *Tracker) observe() {
	metrics.ObserveSession(t.ledger.IsRunning(), t.ledger.ActiveLapCount())
}
