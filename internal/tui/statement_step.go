package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/shopspring/decimal"

	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/tui/theme"
)

// StatementStep shows the settlement accounting: gross amount, deductions,
// and the resulting net payout, with a proportional distribution bar.
type StatementStep struct {
	claimant     claim.Claimant
	jurisdiction string
	buttonBar    *ButtonBar
	width        int
	height       int
}

// NewStatementStep creates the statement step for a verified claimant.
func NewStatementStep(claimant claim.Claimant, jurisdiction string) *StatementStep {
	bar := NewButtonBar([]Button{
		{Label: "Acknowledge & Continue", State: ButtonNormal},
	})
	bar.FocusFirst()

	return &StatementStep{
		claimant:     claimant,
		jurisdiction: jurisdiction,
		buttonBar:    bar,
	}
}

// Init initializes the statement step.
func (s *StatementStep) Init() tea.Cmd {
	return nil
}

// Update handles messages for the statement step.
func (s *StatementStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter", " ":
			return func() tea.Msg {
				return StatementAcknowledgedMsg{}
			}
		}
	}
	return nil
}

// SetSize updates the size of the statement step.
func (s *StatementStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.buttonBar.SetWidth(width)
}

// distributionBar renders a proportional bar: gross is split into attorney
// fees, admin fees, and the net payout, each colored distinctly. The net
// segment gets a subtle gradient.
func (s *StatementStep) distributionBar(width int) string {
	currentTheme := theme.Current()
	if width < 10 {
		width = 10
	}

	ratio := func(part decimal.Decimal) float64 {
		if s.claimant.SettlementAmount.IsZero() {
			return 0
		}
		f, _ := part.Div(s.claimant.SettlementAmount).Float64()
		return f
	}

	attorneyCells := int(ratio(s.claimant.AttorneyFees) * float64(width))
	adminCells := int(ratio(s.claimant.AdminFees) * float64(width))
	netCells := width - attorneyCells - adminCells
	if netCells < 0 {
		netCells = 0
	}

	var b strings.Builder
	attorneyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(currentTheme.AmountAttorney))
	adminStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(currentTheme.AmountAdmin))
	b.WriteString(attorneyStyle.Render(strings.Repeat("█", attorneyCells)))
	b.WriteString(adminStyle.Render(strings.Repeat("█", adminCells)))

	for i := 0; i < netCells; i++ {
		pos := 0.0
		if netCells > 1 {
			pos = float64(i) / float64(netCells-1)
		}
		color := theme.InterpolateColor(currentTheme.AmountNet, currentTheme.Tertiary, pos)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
	}

	return b.String()
}

// View renders the statement step content.
func (s *StatementStep) View() string {
	currentTheme := theme.Current()

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgSubtle)).
		Width(26)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgBase)).
		Width(14).
		Align(lipgloss.Right)
	deductionStyle := valueStyle.
		Foreground(lipgloss.Color(currentTheme.Error))

	row := func(label string, value string, style lipgloss.Style) string {
		return labelStyle.Render(label) + style.Render(value)
	}

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgBase)).
		Render("Settlement statement for " + s.claimant.FullName() +
			" (" + s.jurisdiction + ")")

	divider := currentTheme.S().HintText.Render(strings.Repeat("─", 40))

	rows := []string{
		header,
		"",
		row("Gross Settlement", claim.FormatUSD(s.claimant.SettlementAmount), valueStyle),
		row("Attorney Fees", "-"+claim.FormatUSD(s.claimant.AttorneyFees), deductionStyle),
		row("Administration Fees", "-"+claim.FormatUSD(s.claimant.AdminFees), deductionStyle),
		divider,
		row("Net Payout to You", claim.FormatUSD(s.claimant.NetAmount),
			currentTheme.S().NetAmount.Width(14).Align(lipgloss.Right)),
		"",
		s.distributionBar(40),
		currentTheme.S().HintText.Render("fees ▪ administration ▪ your payout"),
		"",
		s.buttonBar.Render(),
		"",
		renderHintBar("enter", "acknowledge statement"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
