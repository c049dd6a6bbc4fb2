package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/poweradmin/settleport/internal/backend"
)

func TestReleaseText(t *testing.T) {
	text := releaseText(backend.DemoClaimant(), "Florida")

	require.Contains(t, text, "FULL AND FINAL RELEASE OF ALL CLAIMS")
	require.Contains(t, text, "Jane Doe")
	require.Contains(t, text, "laws of the State of Florida")
	require.Contains(t, text, backend.DemoUniqueID)
}

func TestReleaseStep_TabCyclesZones(t *testing.T) {
	step := NewReleaseStep(backend.DemoClaimant(), "Florida")
	require.Equal(t, releaseFocusText, step.focusZone)

	step.Update(tea.KeyPressMsg{Text: "tab"})
	require.Equal(t, releaseFocusSignature, step.focusZone)

	step.Update(tea.KeyPressMsg{Text: "tab"})
	require.Equal(t, releaseFocusConsent, step.focusZone)

	step.Update(tea.KeyPressMsg{Text: "tab"})
	require.Equal(t, releaseFocusText, step.focusZone)
}

func TestReleaseStep_SpaceTogglesConsent(t *testing.T) {
	step := NewReleaseStep(backend.DemoClaimant(), "Florida")
	step.Update(tea.KeyPressMsg{Text: "tab"})
	step.Update(tea.KeyPressMsg{Text: "tab"}) // Consent zone

	require.False(t, step.Agreed())
	step.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	require.True(t, step.Agreed())
	step.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	require.False(t, step.Agreed())
}

func TestReleaseStep_SubmitCarriesFormState(t *testing.T) {
	step := NewReleaseStep(backend.DemoClaimant(), "Florida")
	step.sigInput.SetValue("  Jane Doe  ")
	step.agreed = true
	step.scrolled = true

	cmd := step.Submit()
	require.NotNil(t, cmd)

	msg, ok := cmd().(ReleaseSignedMsg)
	require.True(t, ok)
	require.Equal(t, "Jane Doe", msg.Signature)
	require.True(t, msg.Agreed)
	require.True(t, msg.Scrolled)
}

func TestReleaseStep_ScrolledTracksBottom(t *testing.T) {
	step := NewReleaseStep(backend.DemoClaimant(), "Florida")
	step.SetSize(64, 14)

	step.viewport.GotoBottom()
	require.True(t, step.Scrolled())
}

func TestReleaseStep_SignaturePasteCollapsed(t *testing.T) {
	step := NewReleaseStep(backend.DemoClaimant(), "Florida")
	step.Update(tea.KeyPressMsg{Text: "tab"}) // Signature zone

	step.Update(tea.PasteMsg{Content: "Jane\nDoe"})

	require.Equal(t, "Jane Doe", step.Signature())
}

func TestReleaseStep_ErrorShownInView(t *testing.T) {
	step := NewReleaseStep(backend.DemoClaimant(), "Florida")
	step.SetSize(64, 20)
	step.SetError("signature must be longer than 2 characters")

	view := step.View()

	require.True(t, strings.Contains(view, "signature must be longer than 2 characters"))
}
