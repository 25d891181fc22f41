package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a lap id does not identify a lap in the ledger
	ErrNotFound = errors.New("lap not found")
	// ErrInvalidState is returned when an operation is called in the wrong session state
	ErrInvalidState = errors.New("invalid session state")
	// ErrInvalidOperation is returned when an operation cannot be applied to the target lap
	ErrInvalidOperation = errors.New("invalid operation")
)

// State represents the session state of the ledger
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Lap is one recorded interval between two timing boundaries
type Lap struct {
	ID        string        `json:"id"`
	Number    int           `json:"number"`
	TotalTime time.Duration `json:"totalTime"`
	SplitTime time.Duration `json:"splitTime"`
	IsSkipped bool          `json:"isSkipped"`
}

// Clock provides the current instant
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which carries a monotonic reading
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Option configures a Ledger
type Option func(*Ledger)

// WithClock overrides the clock used for lap boundaries
func WithClock(clock Clock) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithIDGenerator overrides the lap id generator
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) {
		l.newID = gen
	}
}

// Ledger owns the ordered lap sequence and the session clock state.
// It is not safe for concurrent use.
type Ledger struct {
	clock Clock
	newID func() string

	laps         []Lap
	running      bool
	startedAt    time.Time
	lastBoundary time.Time
}

// New creates an idle ledger with an empty lap sequence
func New(opts ...Option) *Ledger {
	l := &Ledger{
		clock: SystemClock{},
		newID: uuid.NewString,
		laps:  make([]Lap, 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start begins a session. The first lap boundary is the start instant.
func (l *Ledger) Start() error {
	if l.running {
		return fmt.Errorf("%w: session already running", ErrInvalidState)
	}

	now := l.clock.Now()
	l.running = true
	l.startedAt = now
	l.lastBoundary = now
	return nil
}

// Stop records the final lap and ends the session. Stopping an idle ledger is a no-op.
func (l *Ledger) Stop() error {
	if !l.running {
		return nil
	}
	if _, err := l.RecordLap(); err != nil {
		return err
	}
	l.running = false
	return nil
}

// Toggle starts an idle session or stops a running one
func (l *Ledger) Toggle() error {
	if l.running {
		return l.Stop()
	}
	return l.Start()
}

// RecordLap appends a lap ending now
func (l *Ledger) RecordLap() (Lap, error) {
	if !l.running {
		return Lap{}, fmt.Errorf("%w: cannot record a lap while idle", ErrInvalidState)
	}

	now := l.clock.Now()
	boundary := l.lastBoundary
	if boundary.IsZero() {
		boundary = l.startedAt
	}

	lap := Lap{
		ID:        l.newID(),
		Number:    len(l.laps) + 1,
		TotalTime: nonNegative(now.Sub(l.startedAt)),
		SplitTime: nonNegative(now.Sub(boundary)),
	}
	l.laps = append(l.laps, lap)
	l.lastBoundary = now
	return lap, nil
}

// ToggleSkip flips the skipped flag of one lap. Times of the lap and its
// neighbours are left untouched.
func (l *Ledger) ToggleSkip(id string) (Lap, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return Lap{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	l.laps[idx].IsSkipped = !l.laps[idx].IsSkipped
	l.renumber()
	return l.laps[idx], nil
}

// SplitLap replaces a lap with two halves sharing its split time. The second
// half keeps the original total time.
func (l *Ledger) SplitLap(id string) ([2]Lap, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return [2]Lap{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	original := l.laps[idx]
	if original.IsSkipped {
		return [2]Lap{}, fmt.Errorf("%w: lap %d is skipped", ErrInvalidOperation, original.Number)
	}
	if original.SplitTime <= 0 {
		return [2]Lap{}, fmt.Errorf("%w: lap %d has no duration to split", ErrInvalidOperation, original.Number)
	}

	firstSplit := original.SplitTime / 2
	halves := [2]Lap{
		{
			ID:        l.newID(),
			Number:    original.Number,
			TotalTime: original.TotalTime - (original.SplitTime - firstSplit),
			SplitTime: firstSplit,
		},
		{
			ID:        l.newID(),
			Number:    original.Number + 1,
			TotalTime: original.TotalTime,
			SplitTime: original.SplitTime - firstSplit,
		},
	}

	laps := make([]Lap, 0, len(l.laps)+1)
	laps = append(laps, l.laps[:idx]...)
	laps = append(laps, halves[0], halves[1])
	laps = append(laps, l.laps[idx+1:]...)
	l.laps = laps
	l.renumber()

	return [2]Lap{l.laps[idx], l.laps[idx+1]}, nil
}

// Reset clears the lap sequence and returns to idle
func (l *Ledger) Reset() {
	l.laps = make([]Lap, 0)
	l.running = false
	l.startedAt = time.Time{}
	l.lastBoundary = time.Time{}
}

// Laps returns a copy of the lap sequence in recording order
func (l *Ledger) Laps() []Lap {
	laps := make([]Lap, len(l.laps))
	copy(laps, l.laps)
	return laps
}

// Lap looks up a lap by id
func (l *Ledger) Lap(id string) (Lap, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return Lap{}, false
	}
	return l.laps[idx], true
}

func (l *Ledger) State() State {
	if l.running {
		return StateRunning
	}
	return StateIdle
}

func (l *Ledger) IsRunning() bool {
	return l.running
}

// StartedAt returns the session start instant, zero when reset
func (l *Ledger) StartedAt() time.Time {
	return l.startedAt
}

// Elapsed returns the live session time while running and the time of the
// last boundary once stopped.
func (l *Ledger) Elapsed() time.Duration {
	if l.startedAt.IsZero() {
		return 0
	}
	if l.running {
		return nonNegative(l.clock.Now().Sub(l.startedAt))
	}
	return nonNegative(l.lastBoundary.Sub(l.startedAt))
}

// CurrentSplit returns the time since the last boundary of a running session
func (l *Ledger) CurrentSplit() time.Duration {
	if !l.running {
		return 0
	}
	return nonNegative(l.clock.Now().Sub(l.lastBoundary))
}

func (l *Ledger) indexOf(id string) int {
	for i, lap := range l.laps {
		if lap.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) renumber() {
	for i := range l.laps {
		l.laps[i].Number = i + 1
	}
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
