package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/poweradmin/settleport/internal/claim"
)

func TestPaymentStep_MethodSelection(t *testing.T) {
	step := NewPaymentStep("Florida", false)
	require.Equal(t, claim.MethodZelle, step.Method())

	step.Update(tea.KeyPressMsg{Text: "right"})
	require.Equal(t, claim.MethodVenmo, step.Method())

	step.Update(tea.KeyPressMsg{Text: "left"})
	step.Update(tea.KeyPressMsg{Text: "left"})
	require.Equal(t, claim.MethodCheck, step.Method())
}

func TestPaymentStep_FieldCountPerMethod(t *testing.T) {
	step := NewPaymentStep("Florida", false)
	require.Equal(t, 2, step.fieldCount())

	step.methodIdx = len(claim.PaymentMethods) - 1 // CHECK
	require.Equal(t, 3, step.fieldCount())
}

func TestPaymentStep_FormLocksJurisdiction(t *testing.T) {
	step := NewPaymentStep("Wyoming", false)
	step.identifier.SetValue("jane@example.com")
	step.confirm.SetValue("jane@example.com")

	form := step.Form()

	require.Equal(t, claim.MethodZelle, form.Method)
	require.Equal(t, "jane@example.com", form.Identifier)
	require.Equal(t, "Wyoming", form.State)
}

func TestPaymentStep_ConfirmFieldRejectsPaste(t *testing.T) {
	step := NewPaymentStep("Florida", false)
	step.Update(tea.KeyPressMsg{Text: "tab"}) // Identifier
	step.Update(tea.KeyPressMsg{Text: "tab"}) // Confirmation

	step.Update(tea.PasteMsg{Content: "jane@example.com"})

	require.Empty(t, step.confirm.Value())
	require.NotEmpty(t, step.err)
}

func TestPaymentStep_ConfirmPasteAllowedByPolicy(t *testing.T) {
	step := NewPaymentStep("Florida", true)
	step.Update(tea.KeyPressMsg{Text: "tab"})
	step.Update(tea.KeyPressMsg{Text: "tab"})

	step.Update(tea.PasteMsg{Content: "jane@example.com"})

	require.Equal(t, "jane@example.com", step.confirm.Value())
	require.Empty(t, step.err)
}

func TestPaymentStep_IdentifierPasteAllowed(t *testing.T) {
	step := NewPaymentStep("Florida", false)
	step.Update(tea.KeyPressMsg{Text: "tab"}) // Identifier

	step.Update(tea.PasteMsg{Content: "jane@example.com"})

	require.Equal(t, "jane@example.com", step.identifier.Value())
}

func TestPaymentStep_SubmitEmitsForm(t *testing.T) {
	step := NewPaymentStep("Florida", false)
	step.identifier.SetValue("@jane")
	step.confirm.SetValue("@jane")
	step.methodIdx = 1 // VENMO

	cmd := step.Submit()
	require.NotNil(t, cmd)

	msg, ok := cmd().(PaymentFormSubmittedMsg)
	require.True(t, ok)
	require.Equal(t, claim.MethodVenmo, msg.Form.Method)
	require.Equal(t, "@jane", msg.Form.Identifier)
}

func TestPaymentStep_SubmittingLocksInput(t *testing.T) {
	step := NewPaymentStep("Florida", false)

	cmd := step.SetSubmitting(true)
	require.NotNil(t, cmd) // Spinner tick
	require.True(t, step.Submitting())

	require.Nil(t, step.Update(tea.KeyPressMsg{Text: "enter"}))
	require.Nil(t, step.Update(tea.KeyPressMsg{Text: "right"}))
	require.Equal(t, claim.MethodZelle, step.Method())
}

func TestPaymentStep_MethodChangeUpdatesPlaceholder(t *testing.T) {
	step := NewPaymentStep("Florida", false)
	require.Equal(t, claim.MethodZelle.IdentifierLabel(), step.identifier.Placeholder)

	step.Update(tea.KeyPressMsg{Text: "right"})

	require.Equal(t, claim.MethodVenmo.IdentifierLabel(), step.identifier.Placeholder)
}
