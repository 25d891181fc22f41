package model

// LayoutStyle selects how the terminal view is drawn
type LayoutStyle int

const (
	LayoutFull LayoutStyle = iota
	LayoutCompact
	layoutCount
)

func (s LayoutStyle) String() string {
	switch s {
	case LayoutCompact:
		return "compact"
	default:
		return "full"
	}
}

// Next cycles to the following layout
func (s LayoutStyle) Next() LayoutStyle {
	return (s + 1) % layoutCount
}

// ParseLayoutStyle maps a config value to a layout, defaulting to full
func ParseLayoutStyle(name string) LayoutStyle {
	if name == "compact" {
		return LayoutCompact
	}
	return LayoutFull
}

// DisplayMode is the screen currently shown by the terminal display
type DisplayMode int

const (
	ModeNormal DisplayMode = iota
	ModeHelp
	ModeDialog
)

// InteractionState represents the current UI interaction state
type InteractionState struct {
	Selected      int // index into the displayed rows, -1 when nothing is selected
	ShowHelp      bool
	NewestFirst   bool
	LayoutStyle   LayoutStyle
	StatusMessage string
	ConfirmDialog *ConfirmDialog
}

// Mode reports which screen the state asks for. Dialogs take priority over help.
func (s InteractionState) Mode() DisplayMode {
	if s.ConfirmDialog != nil {
		return ModeDialog
	}
	if s.ShowHelp {
		return ModeHelp
	}
	return ModeNormal
}

// ConfirmDialog represents a confirmation dialog
type ConfirmDialog struct {
	Title     string
	Message   string
	OnConfirm func()
	OnCancel  func()
}
