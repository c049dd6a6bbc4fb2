package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/poweradmin/settleport/internal/claim"
)

func TestJurisdictionStep_DefaultPreselected(t *testing.T) {
	step := NewJurisdictionStep("Florida")
	require.Equal(t, "Florida", step.Selected())

	// Unknown default falls back to the first state.
	step = NewJurisdictionStep("Atlantis")
	require.Equal(t, claim.USStates[0], step.Selected())
}

func TestJurisdictionStep_FilterNarrowsList(t *testing.T) {
	step := NewJurisdictionStep("Florida")

	step.filterInput.SetValue("new")
	step.applyFilter()

	require.Equal(t, []string{"New Hampshire", "New Jersey", "New Mexico", "New York"}, step.filtered)
	require.Equal(t, "New Hampshire", step.Selected())
}

func TestJurisdictionStep_FilterPreservesHighlight(t *testing.T) {
	step := NewJurisdictionStep("New York")

	step.filterInput.SetValue("new")
	step.applyFilter()

	require.Equal(t, "New York", step.Selected())
}

func TestJurisdictionStep_Navigation(t *testing.T) {
	step := NewJurisdictionStep(claim.USStates[0])

	step.Update(tea.KeyPressMsg{Text: "down"})
	require.Equal(t, claim.USStates[1], step.Selected())

	step.Update(tea.KeyPressMsg{Text: "up"})
	step.Update(tea.KeyPressMsg{Text: "up"}) // Already at the top
	require.Equal(t, claim.USStates[0], step.Selected())
}

func TestJurisdictionStep_SubmitEmitsState(t *testing.T) {
	step := NewJurisdictionStep("Wyoming")

	cmd := step.Submit()
	require.NotNil(t, cmd)

	msg, ok := cmd().(StateChosenMsg)
	require.True(t, ok)
	require.Equal(t, "Wyoming", msg.State)
}

func TestJurisdictionStep_SubmitWithNoMatches(t *testing.T) {
	step := NewJurisdictionStep("Florida")
	step.filterInput.SetValue("zzz")
	step.applyFilter()

	cmd := step.Submit()

	require.Nil(t, cmd)
	require.NotEmpty(t, step.err)
}
