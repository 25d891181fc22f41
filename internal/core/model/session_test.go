package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutStyleCycle(t *testing.T) {
	assert.Equal(t, LayoutCompact, LayoutFull.Next())
	assert.Equal(t, LayoutFull, LayoutCompact.Next())
	assert.Equal(t, "full", LayoutFull.String())
	assert.Equal(t, "compact", LayoutCompact.String())
}

func TestParseLayoutStyle(t *testing.T) {
	assert.Equal(t, LayoutCompact, ParseLayoutStyle("compact"))
	assert.Equal(t, LayoutFull, ParseLayoutStyle("full"))
	assert.Equal(t, LayoutFull, ParseLayoutStyle(""))
}

func TestInteractionStateMode(t *testing.T) {
	state := InteractionState{}
	assert.Equal(t, ModeNormal, state.Mode())

	state.ShowHelp = true
	assert.Equal(t, ModeHelp, state.Mode())

	state.ConfirmDialog = &ConfirmDialog{Title: "Reset", Message: "Clear all laps?"}
	assert.Equal(t, ModeDialog, state.Mode(), "dialog wins over help")
}

func TestConfirmDialogCallbacks(t *testing.T) {
	confirmCalled := false
	cancelCalled := false

	dialog := ConfirmDialog{
		Title:     "Reset Session",
		Message:   "Clear all laps?",
		OnConfirm: func() { confirmCalled = true },
		OnCancel:  func() { cancelCalled = true },
	}

	dialog.OnConfirm()
	assert.True(t, confirmCalled)
	assert.False(t, cancelCalled)

	dialog.OnCancel()
	assert.True(t, cancelCalled)
}
