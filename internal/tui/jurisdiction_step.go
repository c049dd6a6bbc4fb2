package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/tui/theme"
)

// jurisdictionVisibleRows is the number of states shown at once.
const jurisdictionVisibleRows = 9

// JurisdictionStep lets the claimant pick their state of residence from the
// fixed list of US states, with substring filtering.
type JurisdictionStep struct {
	filterInput textinput.Model
	filtered    []string
	selectedIdx int
	offset      int // First visible row
	err         string
	width       int
	height      int
}

// NewJurisdictionStep creates the step with defaultState preselected.
func NewJurisdictionStep(defaultState string) *JurisdictionStep {
	input := textinput.New()
	input.Placeholder = "Type to filter states..."
	input.Prompt = "Search: "
	input.Focus()

	s := &JurisdictionStep{
		filterInput: input,
		filtered:    claim.USStates,
	}
	for i, state := range claim.USStates {
		if state == defaultState {
			s.selectedIdx = i
			break
		}
	}
	s.scrollToSelection()
	return s
}

// Init initializes the jurisdiction step.
func (j *JurisdictionStep) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the jurisdiction step.
func (j *JurisdictionStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.PasteMsg:
		clean := sanitizeSingleLine(msg.Content)
		var cmd tea.Cmd
		j.filterInput, cmd = j.filterInput.Update(tea.PasteMsg{Content: clean})
		j.applyFilter()
		return cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up":
			if j.selectedIdx > 0 {
				j.selectedIdx--
				j.scrollToSelection()
			}
			return nil
		case "down":
			if j.selectedIdx < len(j.filtered)-1 {
				j.selectedIdx++
				j.scrollToSelection()
			}
			return nil
		case "enter":
			return j.Submit()
		}
	}

	before := j.filterInput.Value()
	var cmd tea.Cmd
	j.filterInput, cmd = j.filterInput.Update(msg)
	if j.filterInput.Value() != before {
		j.applyFilter()
	}
	return cmd
}

// Submit emits StateChosenMsg for the highlighted state.
func (j *JurisdictionStep) Submit() tea.Cmd {
	if len(j.filtered) == 0 {
		j.err = "no state matches your filter"
		return nil
	}
	state := j.filtered[j.selectedIdx]
	j.err = ""
	return func() tea.Msg {
		return StateChosenMsg{State: state}
	}
}

// Selected returns the currently highlighted state, or "" when the filter
// matches nothing.
func (j *JurisdictionStep) Selected() string {
	if len(j.filtered) == 0 {
		return ""
	}
	return j.filtered[j.selectedIdx]
}

// SetError displays a selection error.
func (j *JurisdictionStep) SetError(msg string) {
	j.err = msg
}

func (j *JurisdictionStep) applyFilter() {
	previous := j.Selected()
	query := strings.ToLower(strings.TrimSpace(j.filterInput.Value()))

	if query == "" {
		j.filtered = claim.USStates
	} else {
		var matches []string
		for _, state := range claim.USStates {
			if strings.Contains(strings.ToLower(state), query) {
				matches = append(matches, state)
			}
		}
		j.filtered = matches
	}

	// Keep the previous highlight when it survives the filter.
	j.selectedIdx = 0
	for i, state := range j.filtered {
		if state == previous {
			j.selectedIdx = i
			break
		}
	}
	if len(j.filtered) > 0 {
		j.err = ""
	}
	j.scrollToSelection()
}

func (j *JurisdictionStep) scrollToSelection() {
	if j.selectedIdx < j.offset {
		j.offset = j.selectedIdx
	}
	if j.selectedIdx >= j.offset+jurisdictionVisibleRows {
		j.offset = j.selectedIdx - jurisdictionVisibleRows + 1
	}
	if j.offset < 0 {
		j.offset = 0
	}
}

// SetSize updates the size of the jurisdiction step.
func (j *JurisdictionStep) SetSize(width, height int) {
	j.width = width
	j.height = height
}

// View renders the jurisdiction step content.
func (j *JurisdictionStep) View() string {
	currentTheme := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgBase)).
		Render("Select your state of residence. This determines the governing law of your release.")

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.BgBase)).
		Background(lipgloss.Color(currentTheme.Primary)).
		Bold(true)
	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgBase))

	var rows []string
	end := j.offset + jurisdictionVisibleRows
	if end > len(j.filtered) {
		end = len(j.filtered)
	}
	for i := j.offset; i < end; i++ {
		state := j.filtered[i]
		if i == j.selectedIdx {
			rows = append(rows, selectedStyle.Render("▸ "+state))
		} else {
			rows = append(rows, normalStyle.Render("  "+state))
		}
	}
	if len(rows) == 0 {
		rows = append(rows, currentTheme.S().HintText.Render("  (no matches)"))
	}

	listStyle := lipgloss.NewStyle().
		Width(40).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(currentTheme.BorderDefault))

	count := currentTheme.S().HintText.Render(
		fmt.Sprintf("%d of %d states", len(j.filtered), len(claim.USStates)))

	parts := []string{
		instruction,
		"",
		j.filterInput.View(),
		listStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
		count,
	}

	if j.err != "" {
		parts = append(parts, currentTheme.S().ErrorText.Render("✗ "+j.err))
	}

	parts = append(parts, "",
		renderHintBar("↑↓", "navigate", "enter", "confirm"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
