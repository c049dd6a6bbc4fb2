package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/poweradmin/settleport/internal/backend"
	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/tui/theme"
)

// SuccessStep shows the confirmation receipt after the payment gateway
// accepts the disbursement instruction. This step is terminal: the only
// actions are saving the receipt and exiting.
type SuccessStep struct {
	receipt   backend.Receipt
	buttonBar *ButtonBar
	savedPath string
	err       string
	width     int
	height    int
}

// NewSuccessStep creates the success step from the completed receipt.
func NewSuccessStep(receipt backend.Receipt) *SuccessStep {
	bar := NewButtonBar([]Button{
		{Label: "Save Receipt", State: ButtonNormal},
		{Label: "Exit", State: ButtonNormal},
	})
	bar.FocusFirst()

	return &SuccessStep{
		receipt:   receipt,
		buttonBar: bar,
	}
}

// Init initializes the success step.
func (s *SuccessStep) Init() tea.Cmd {
	return nil
}

// Update handles messages for the success step.
func (s *SuccessStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "right":
			if !s.buttonBar.FocusNext() {
				s.buttonBar.FocusFirst()
			}
			return nil
		case "shift+tab", "left":
			if !s.buttonBar.FocusPrev() {
				s.buttonBar.FocusLast()
			}
			return nil
		case "d":
			return func() tea.Msg {
				return SaveReceiptMsg{}
			}
		case "q":
			return tea.Quit
		case "enter", " ":
			return s.activateButton(s.buttonBar.FocusedButton())
		}

	case ReceiptSavedMsg:
		s.savedPath = msg.Path
		s.err = ""
		return nil

	case ReceiptSaveFailedMsg:
		s.err = msg.Err.Error()
		return nil
	}
	return nil
}

func (s *SuccessStep) activateButton(id ButtonID) tea.Cmd {
	switch id {
	case ButtonFirst:
		return func() tea.Msg {
			return SaveReceiptMsg{}
		}
	case ButtonSecond:
		return tea.Quit
	}
	return nil
}

// SavedPath returns the path the receipt was written to, if any.
func (s *SuccessStep) SavedPath() string {
	return s.savedPath
}

// SetSize updates the size of the success step.
func (s *SuccessStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.buttonBar.SetWidth(width)
}

// View renders the success step content.
func (s *SuccessStep) View() string {
	currentTheme := theme.Current()
	var b strings.Builder

	b.WriteString(currentTheme.S().SuccessText.Render("✓ Payment Submitted Successfully!"))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgMuted)).
		Width(20)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgBase))
	refStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.Primary)).
		Bold(true)

	row := func(label, value string, style lipgloss.Style) string {
		return labelStyle.Render(label) + style.Render(value) + "\n"
	}

	b.WriteString(row("Reference", s.receipt.Reference, refStyle))
	b.WriteString(row("Claimant", s.receipt.Claimant.FullName(), valueStyle))
	b.WriteString(row("Net Amount", claim.FormatUSD(s.receipt.Claimant.NetAmount), currentTheme.S().NetAmount))
	b.WriteString(row("Method", s.receipt.Payment.Method.DisplayName(), valueStyle))
	b.WriteString(row("Delivery", s.receipt.Payment.Method.DeliveryEstimate(), valueStyle))
	b.WriteString(row("Sent To", s.receipt.Payment.AccountIdentifier, valueStyle))
	b.WriteString("\n")

	if s.savedPath != "" {
		b.WriteString(currentTheme.S().SuccessText.Render("Receipt saved: "))
		b.WriteString(refStyle.Render(s.savedPath))
		b.WriteString("\n\n")
	} else if s.err != "" {
		b.WriteString(currentTheme.S().ErrorText.Render("✗ failed to save receipt: " + s.err))
		b.WriteString("\n\n")
	}

	b.WriteString(s.buttonBar.Render())
	b.WriteString("\n\n")
	b.WriteString(renderHintBar(
		"tab", "navigate",
		"d", "save receipt",
		"q", "exit",
	))

	return b.String()
}
