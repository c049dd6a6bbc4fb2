package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// ButtonID identifies a button by its position in the bar.
type ButtonID int

const (
	ButtonNone ButtonID = iota - 1
	ButtonFirst
	ButtonSecond
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with focus tracking and consistent
// styling.
type ButtonBar struct {
	buttons  []Button
	focusIdx int // -1 when no button is focused
	width    int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons:  buttons,
		focusIdx: -1,
		width:    60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() {
	for i := range b.buttons {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return
		}
	}
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() {
	for i := len(b.buttons) - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return
		}
	}
}

// FocusNext moves focus to the next enabled button. Returns false when focus
// would move past the last button.
func (b *ButtonBar) FocusNext() bool {
	for i := b.focusIdx + 1; i < len(b.buttons); i++ {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return true
		}
	}
	return false
}

// FocusPrev moves focus to the previous enabled button. Returns false when
// focus would move before the first button.
func (b *ButtonBar) FocusPrev() bool {
	for i := b.focusIdx - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return true
		}
	}
	return false
}

// Blur clears button focus.
func (b *ButtonBar) Blur() {
	if b.focusIdx >= 0 && b.focusIdx < len(b.buttons) {
		b.buttons[b.focusIdx].State = ButtonNormal
	}
	b.focusIdx = -1
}

// FocusedButton returns the ID of the currently focused button.
func (b *ButtonBar) FocusedButton() ButtonID {
	if b.focusIdx < 0 || b.focusIdx >= len(b.buttons) {
		return ButtonNone
	}
	return ButtonID(b.focusIdx)
}

func (b *ButtonBar) setFocus(idx int) {
	if b.focusIdx >= 0 && b.focusIdx < len(b.buttons) {
		b.buttons[b.focusIdx].State = ButtonNormal
	}
	b.focusIdx = idx
	b.buttons[idx].State = ButtonFocused
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	// Define button styles
	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#cdd6f4")).
		Background(lipgloss.Color("#313244")).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	disabledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6c7086")).
		Background(lipgloss.Color("#181825")).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1e1e2e")).
		Background(lipgloss.Color("#b4befe")).
		Bold(true).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	// Render each button
	var renderedButtons []string
	for _, btn := range b.buttons {
		var rendered string
		switch btn.State {
		case ButtonDisabled:
			rendered = disabledStyle.Render(btn.Label)
		case ButtonFocused:
			rendered = focusedStyle.Render(btn.Label)
		default: // ButtonNormal
			rendered = normalStyle.Render(btn.Label)
		}
		renderedButtons = append(renderedButtons, rendered)
	}

	// Join buttons with spacing
	result := strings.Join(renderedButtons, "")

	// Center the button bar
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, result)
}
