package timer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-lap-timer/internal/application/tracker"
	"github.com/penwyp/go-lap-timer/internal/config"
	"github.com/penwyp/go-lap-timer/internal/core/ledger"
	"github.com/penwyp/go-lap-timer/internal/core/model"
	"github.com/penwyp/go-lap-timer/internal/presentation/formatter"
	"github.com/penwyp/go-lap-timer/internal/presentation/interaction"
	"github.com/penwyp/go-lap-timer/internal/presentation/view"
	"github.com/penwyp/go-lap-timer/internal/util"
)

// Orchestrator coordinates the ledger, keyboard and display of the
// interactive timer
type Orchestrator struct {
	config       *TimerConfig
	tracker      *tracker.Tracker
	stateManager *StateManager
	display      DisplayController

	configUpdates <-chan config.Config
	reportWriter  io.Writer
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(cfg *TimerConfig, tr *tracker.Tracker, display DisplayController) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Orchestrator{
		config:       cfg,
		tracker:      tr,
		stateManager: NewStateManager(model.ParseLayoutStyle(cfg.Layout), cfg.NewestFirst),
		display:      display,
		reportWriter: os.Stdout,
	}, nil
}

// SetConfigUpdates subscribes the timer to reloaded configurations
func (o *Orchestrator) SetConfigUpdates(updates <-chan config.Config) {
	o.configUpdates = updates
}

// SetReportWriter sets where the exit report goes when no output file is set
func (o *Orchestrator) SetReportWriter(w io.Writer) {
	o.reportWriter = w
}

// Run drives the timer until the user quits or ctx is cancelled, then
// writes the exit report if one is configured
func (o *Orchestrator) Run(ctx context.Context, input InputHandler) error {
	util.LogInfo("Starting lap timer", util.F("layout", o.config.Layout), util.F("refresh_hz", o.config.RefreshPerSecond))
	defer input.Close()

	o.display.EnterAlternateScreen()
	o.loop(ctx, input)
	o.display.ExitAlternateScreen()

	return o.WriteReport()
}

func (o *Orchestrator) loop(ctx context.Context, input InputHandler) {
	uiTicker := time.NewTicker(o.config.RefreshInterval())
	defer uiTicker.Stop()

	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down lap timer")
			return

		case <-uiTicker.C:
			o.stateManager.ExpireStatus(o.tracker.Now())
			o.updateDisplay()

		case cfg := <-o.configUpdates:
			if o.applyConfig(cfg) {
				uiTicker.Reset(o.config.RefreshInterval())
			}
			o.updateDisplay()

		case event, ok := <-input.Events():
			if !ok {
				return
			}
			if o.handleKeyboard(event) {
				util.LogInfo("Quit requested")
				return
			}
			o.updateDisplay()
		}
	}
}

func (o *Orchestrator) board(state model.InteractionState) view.Board {
	return view.Build(o.tracker.Snapshot(), view.Options{
		SplitDecimals: o.config.SplitDecimals,
		NewestFirst:   state.NewestFirst,
	})
}

func (o *Orchestrator) updateDisplay() {
	state := o.stateManager.GetInteractionState()
	o.display.Render(o.board(state), state)
}

// handleKeyboard handles keyboard events and reports whether to exit
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	state := o.stateManager.GetInteractionState()

	// dialog keys take precedence over everything else
	if state.ConfirmDialog != nil {
		switch {
		case event.Type == interaction.KeyChar && (event.Key == 'y' || event.Key == 'Y'):
			if state.ConfirmDialog.OnConfirm != nil {
				state.ConfirmDialog.OnConfirm()
			}
		case event.Type == interaction.KeyEscape,
			event.Type == interaction.KeyChar && (event.Key == 'n' || event.Key == 'N'):
			if state.ConfirmDialog.OnCancel != nil {
				state.ConfirmDialog.OnCancel()
			}
		case event.IsCtrlC():
			return true
		}
		return false
	}

	switch event.Type {
	case interaction.KeyEnter:
		o.recordLap()
	case interaction.KeyUp:
		o.moveSelection(-1)
	case interaction.KeyDown:
		o.moveSelection(1)
	case interaction.KeyEscape:
		if !state.ShowHelp {
			return true
		}
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = false
		})
	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q', 3:
			return true
		case ' ':
			o.toggleRunning()
		case 'l', 'L':
			o.recordLap()
		case 'k':
			o.moveSelection(-1)
		case 'j':
			o.moveSelection(1)
		case 's', 'S':
			o.toggleSkip()
		case 'x', 'X':
			o.splitLap()
		case 'r', 'R':
			o.confirmReset()
		case 'o', 'O':
			o.toggleOrder()
		case 't', 'T':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.LayoutStyle = s.LayoutStyle.Next()
			})
		case 'h', 'H', '?':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ShowHelp = !s.ShowHelp
			})
		}
	}

	return false
}

func (o *Orchestrator) toggleRunning() {
	running, err := o.tracker.Toggle()
	if err != nil {
		o.showError(err)
		return
	}
	if running {
		o.setStatus("Timer started")
		return
	}
	o.selectNewest()
	o.setStatus("Timer stopped")
}

func (o *Orchestrator) recordLap() {
	lap, err := o.tracker.RecordLap()
	if err != nil {
		o.showError(err)
		return
	}
	o.selectNewest()
	o.setStatus(fmt.Sprintf("Lap %d recorded (%s s)", lap.Number, util.FormatSeconds(lap.SplitTime, o.config.SplitDecimals)))
}

func (o *Orchestrator) toggleSkip() {
	id, ok := o.selectedLapID()
	if !ok {
		return
	}
	lap, err := o.tracker.ToggleSkip(id)
	if err != nil {
		o.showError(err)
		return
	}
	if lap.IsSkipped {
		o.setStatus(fmt.Sprintf("Lap %d skipped", lap.Number))
	} else {
		o.setStatus(fmt.Sprintf("Lap %d counted again", lap.Number))
	}
}

func (o *Orchestrator) splitLap() {
	id, ok := o.selectedLapID()
	if !ok {
		return
	}
	halves, err := o.tracker.SplitLap(id)
	if err != nil {
		o.showError(err)
		return
	}
	o.setStatus(fmt.Sprintf("Lap split into laps %d and %d", halves[0].Number, halves[1].Number))
}

func (o *Orchestrator) confirmReset() {
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.ConfirmDialog = &model.ConfirmDialog{
			Title:   "Reset Session",
			Message: "This will stop the timer and discard all recorded laps. Continue?",
			OnConfirm: func() {
				o.tracker.Reset()
				o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
					s.ConfirmDialog = nil
					s.Selected = -1
				})
				o.setStatus("Session reset")
			},
			OnCancel: func() {
				o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
					s.ConfirmDialog = nil
				})
			},
		}
	})
}

// toggleOrder flips the row order and keeps the same lap selected
func (o *Orchestrator) toggleOrder() {
	rows := len(o.tracker.Snapshot().Laps)
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.NewestFirst = !s.NewestFirst
		if s.Selected >= 0 && s.Selected < rows {
			s.Selected = rows - 1 - s.Selected
		}
	})
}

func (o *Orchestrator) moveSelection(delta int) {
	o.stateManager.MoveSelection(delta, len(o.tracker.Snapshot().Laps))
}

// selectNewest moves the selection to the most recent lap
func (o *Orchestrator) selectNewest() {
	rows := len(o.tracker.Snapshot().Laps)
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		switch {
		case rows == 0:
			s.Selected = -1
		case s.NewestFirst:
			s.Selected = 0
		default:
			s.Selected = rows - 1
		}
	})
}

func (o *Orchestrator) selectedLapID() (string, bool) {
	state := o.stateManager.GetInteractionState()
	id := o.board(state).RowID(state.Selected)
	if id == "" {
		o.setStatus("Select a lap first (↑/↓)")
		return "", false
	}
	return id, true
}

func (o *Orchestrator) setStatus(message string) {
	o.stateManager.SetStatus(message, o.tracker.Now())
}

func (o *Orchestrator) showError(err error) {
	util.LogDebug("Action rejected", util.F("error", err.Error()))
	o.setStatus(statusForError(err))
}

func statusForError(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidState):
		return "Timer is not running. Press space to start."
	case errors.Is(err, ledger.ErrNotFound):
		return "That lap no longer exists"
	case errors.Is(err, ledger.ErrInvalidOperation):
		return "Cannot split: " + strings.TrimPrefix(err.Error(), ledger.ErrInvalidOperation.Error()+": ")
	default:
		return err.Error()
	}
}

// applyConfig adopts a reloaded configuration and reports whether the
// refresh rate changed. Layout and ordering are only touched when the file
// changed them, so interactive toggles survive unrelated edits.
func (o *Orchestrator) applyConfig(cfg config.Config) bool {
	next := NewTimerConfig(cfg)
	if err := next.Validate(); err != nil {
		util.LogWarn("Ignoring reloaded timer config", util.F("error", err.Error()))
		return false
	}

	previous := o.config
	o.config = next

	if next.Layout != previous.Layout {
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.LayoutStyle = model.ParseLayoutStyle(next.Layout)
		})
	}
	if next.NewestFirst != previous.NewestFirst && next.NewestFirst != o.stateManager.GetInteractionState().NewestFirst {
		o.toggleOrder()
	}

	o.setStatus("Configuration reloaded")
	return next.RefreshPerSecond != previous.RefreshPerSecond
}

// WriteReport writes the session report in the configured format
func (o *Orchestrator) WriteReport() error {
	if o.config.OutputFormat == "" {
		return nil
	}

	f, err := formatter.New(o.config.OutputFormat)
	if err != nil {
		return err
	}
	report := formatter.NewReport(o.tracker.Snapshot(), o.tracker.Now(), o.config.SplitDecimals)

	if o.config.OutputFile == "" {
		return f.Format(o.reportWriter, report)
	}

	if err := os.MkdirAll(filepath.Dir(o.config.OutputFile), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	file, err := os.Create(o.config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := f.Format(file, report); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	util.LogInfo("Report written", util.F("path", o.config.OutputFile), util.F("format", o.config.OutputFormat))
	return nil
}
