package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/require"

	"github.com/poweradmin/settleport/internal/backend"
)

func TestStatementStep_ShowsAccounting(t *testing.T) {
	step := NewStatementStep(backend.DemoClaimant(), "Florida")
	step.SetSize(64, 20)

	view := step.View()

	require.Contains(t, view, "Jane Doe")
	require.Contains(t, view, "Florida")
	require.Contains(t, view, "$1,500.00")
	require.Contains(t, view, "$500.00")
	require.Contains(t, view, "$50.00")
	require.Contains(t, view, "$950.00")
}

func TestStatementStep_AcknowledgeEmitsMsg(t *testing.T) {
	step := NewStatementStep(backend.DemoClaimant(), "Florida")

	cmd := step.Update(tea.KeyPressMsg{Text: "enter"})
	require.NotNil(t, cmd)

	_, ok := cmd().(StatementAcknowledgedMsg)
	require.True(t, ok)
}

func TestStatementStep_DistributionBarWidth(t *testing.T) {
	step := NewStatementStep(backend.DemoClaimant(), "Florida")

	bar := step.distributionBar(40)

	require.Equal(t, 40, lipgloss.Width(bar))
}
