package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal colors
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"
	ColorReverse = "\033[7m"
	ColorStrike  = "\033[9m"
)

// Terminal control sequences
const (
	ClearScreen         = "\033[2J"
	ClearLine           = "\033[2K"
	ClearLineFromCursor = "\033[0K"
	ClearToScreenEnd    = "\033[J"
	ClearScrollback     = "\033[3J"
	EnterAltScreen      = "\033[?1049h"
	ExitAltScreen       = "\033[?1049l"
	MoveCursorHome      = "\033[H"
	HideCursor          = "\033[?25l"
	ShowCursor          = "\033[?25h"
)

// GetDisplayWidth calculates the display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to the given display width
func PadRight(text string, width int) string {
	w := GetDisplayWidth(text)
	if w >= width {
		return text
	}
	return text + strings.Repeat(" ", width-w)
}

// PadLeft right-aligns text within the given display width
func PadLeft(text string, width int) string {
	w := GetDisplayWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", width-w) + text
}

// Truncate cuts text to the given display width, adding an ellipsis
func Truncate(text string, width int) string {
	return runewidth.Truncate(text, width, "…")
}

// Colorize wraps text in the given color sequence
func Colorize(text, color string) string {
	return fmt.Sprintf("%s%s%s", color, text, ColorReset)
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatDataTitle formats data section titles (Green + Bold)
func FormatDataTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorGreen, title, ColorReset)
}

// FormatSectionSeparator creates a separator line of the given width
func FormatSectionSeparator(width int) string {
	return fmt.Sprintf("%s%s%s", ColorCyan, strings.Repeat("─", width), ColorReset)
}

// CenterText centers text within the given display width
func CenterText(text string, width int) string {
	w := GetDisplayWidth(text)
	if w >= width {
		return Truncate(text, width)
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-padding-w)
}
