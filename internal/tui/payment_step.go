package tui

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/tui/theme"
	"github.com/poweradmin/settleport/internal/validate"
)

// paymentFocusMethod is the method selector row; form fields follow.
const paymentFocusMethod = 0

// PaymentStep collects the disbursement method and its details. Electronic
// methods require the account identifier typed twice; the confirmation
// field rejects pasted input unless the operator enabled it. Checks take a
// mailing address with the state locked to the confirmed jurisdiction.
type PaymentStep struct {
	methodIdx int

	identifier textinput.Model
	confirm    textinput.Model
	address    textinput.Model
	city       textinput.Model
	zip        textinput.Model

	jurisdiction        string
	allowPasteOnConfirm bool

	focusIdx   int
	submitting bool
	spinner    spinner.Model
	err        string
	width      int
	height     int
}

// NewPaymentStep creates the payment step. The mailing-address state field
// is fixed to the claimant's confirmed jurisdiction.
func NewPaymentStep(jurisdiction string, allowPasteOnConfirm bool) *PaymentStep {
	identifier := textinput.New()
	identifier.CharLimit = 120

	confirm := textinput.New()
	confirm.Placeholder = "Re-enter to confirm"
	confirm.CharLimit = 120

	address := textinput.New()
	address.Placeholder = "Street Address"
	address.CharLimit = 120

	city := textinput.New()
	city.Placeholder = "City"
	city.CharLimit = 60

	zip := textinput.New()
	zip.Placeholder = "ZIP Code"
	zip.CharLimit = 10

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	p := &PaymentStep{
		identifier:          identifier,
		confirm:             confirm,
		address:             address,
		city:                city,
		zip:                 zip,
		jurisdiction:        jurisdiction,
		allowPasteOnConfirm: allowPasteOnConfirm,
		spinner:             s,
	}
	p.identifier.Placeholder = p.Method().IdentifierLabel()
	return p
}

// Method returns the currently selected payment method.
func (p *PaymentStep) Method() claim.PaymentMethod {
	return claim.PaymentMethods[p.methodIdx]
}

// fieldCount returns the number of form fields below the method selector.
func (p *PaymentStep) fieldCount() int {
	if p.Method().Electronic() {
		return 2 // identifier + confirmation
	}
	return 3 // address + city + zip
}

// focusedInput returns the text input for the current focus position, or
// nil when the method selector is focused.
func (p *PaymentStep) focusedInput() *textinput.Model {
	if p.focusIdx == paymentFocusMethod {
		return nil
	}
	if p.Method().Electronic() {
		switch p.focusIdx {
		case 1:
			return &p.identifier
		case 2:
			return &p.confirm
		}
		return nil
	}
	switch p.focusIdx {
	case 1:
		return &p.address
	case 2:
		return &p.city
	case 3:
		return &p.zip
	}
	return nil
}

// Init initializes the payment step.
func (p *PaymentStep) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the payment step.
func (p *PaymentStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if p.submitting {
			var cmd tea.Cmd
			p.spinner, cmd = p.spinner.Update(msg)
			return cmd
		}
		return nil

	case tea.PasteMsg:
		if p.submitting {
			return nil
		}
		input := p.focusedInput()
		if input == nil {
			return nil
		}
		if input == &p.confirm && !p.allowPasteOnConfirm {
			p.err = "pasting is disabled for the confirmation field; please type it"
			return nil
		}
		p.err = ""
		var cmd tea.Cmd
		*input, cmd = input.Update(tea.PasteMsg{Content: sanitizeSingleLine(msg.Content)})
		return cmd

	case tea.KeyPressMsg:
		if p.submitting {
			// Input is locked while the submission is in flight.
			return nil
		}
		switch msg.String() {
		case "left":
			if p.focusIdx == paymentFocusMethod {
				p.selectMethod(-1)
				return nil
			}
		case "right":
			if p.focusIdx == paymentFocusMethod {
				p.selectMethod(1)
				return nil
			}
		case "tab", "down":
			p.cycleFocus(1)
			return nil
		case "shift+tab", "up":
			p.cycleFocus(-1)
			return nil
		case "enter":
			return p.Submit()
		default:
			if p.err != "" {
				p.err = ""
			}
		}
	}

	if input := p.focusedInput(); input != nil {
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		return cmd
	}
	return nil
}

func (p *PaymentStep) selectMethod(dir int) {
	n := len(claim.PaymentMethods)
	p.methodIdx = (p.methodIdx + dir + n) % n
	p.identifier.Placeholder = p.Method().IdentifierLabel()
	p.err = ""
}

func (p *PaymentStep) cycleFocus(dir int) {
	if input := p.focusedInput(); input != nil {
		input.Blur()
	}
	total := p.fieldCount() + 1
	p.focusIdx = (p.focusIdx + dir + total) % total
	if input := p.focusedInput(); input != nil {
		input.Focus()
	}
}

// Submit emits PaymentFormSubmittedMsg with the current form values.
func (p *PaymentStep) Submit() tea.Cmd {
	form := p.Form()
	return func() tea.Msg {
		return PaymentFormSubmittedMsg{Form: form}
	}
}

// Form builds the payment form from the current inputs.
func (p *PaymentStep) Form() validate.PaymentForm {
	return validate.PaymentForm{
		Method:            p.Method(),
		Identifier:        strings.TrimSpace(p.identifier.Value()),
		ConfirmIdentifier: strings.TrimSpace(p.confirm.Value()),
		Address:           strings.TrimSpace(p.address.Value()),
		City:              strings.TrimSpace(p.city.Value()),
		State:             p.jurisdiction,
		Zip:               strings.TrimSpace(p.zip.Value()),
	}
}

// SetSubmitting toggles the in-flight indicator. Returns the spinner tick
// command when submission starts.
func (p *PaymentStep) SetSubmitting(v bool) tea.Cmd {
	p.submitting = v
	if v {
		return p.spinner.Tick
	}
	return nil
}

// Submitting reports whether a submission is in flight.
func (p *PaymentStep) Submitting() bool {
	return p.submitting
}

// SetError displays a validation or submission failure.
func (p *PaymentStep) SetError(msg string) {
	p.err = msg
}

// SetSize updates the size of the payment step.
func (p *PaymentStep) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the payment step content.
func (p *PaymentStep) View() string {
	currentTheme := theme.Current()
	var b strings.Builder

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgBase)).
		Render("Choose how you would like to receive your payment:")
	b.WriteString(instruction)
	b.WriteString("\n\n")

	// Method selector row
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.BgBase)).
		Background(lipgloss.Color(currentTheme.Primary)).
		Bold(true).
		Padding(0, 1)
	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgSubtle)).
		Padding(0, 1)

	var tabs []string
	for i, method := range claim.PaymentMethods {
		if i == p.methodIdx {
			tabs = append(tabs, selectedStyle.Render(method.DisplayName()))
		} else {
			tabs = append(tabs, normalStyle.Render(method.DisplayName()))
		}
	}
	methodRow := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if p.focusIdx == paymentFocusMethod {
		methodRow = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(currentTheme.BorderFocus)).
			Render(methodRow)
	} else {
		methodRow = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(currentTheme.BorderDefault)).
			Render(methodRow)
	}
	b.WriteString(methodRow)
	b.WriteString("\n")
	b.WriteString(currentTheme.S().HintText.Render(p.Method().DeliveryEstimate()))
	b.WriteString("\n\n")

	// Form fields
	if p.Method().Electronic() {
		b.WriteString(p.renderField(p.Method().IdentifierLabel(), p.identifier, 1))
		b.WriteString(p.renderField("Confirm "+p.Method().IdentifierLabel(), p.confirm, 2))
	} else {
		b.WriteString(p.renderField("Street Address", p.address, 1))
		b.WriteString(p.renderField("City", p.city, 2))

		stateLabel := lipgloss.NewStyle().
			Foreground(lipgloss.Color(currentTheme.FgSubtle)).
			Render("State: " + p.jurisdiction + " (from your confirmed jurisdiction)")
		b.WriteString(stateLabel)
		b.WriteString("\n")

		b.WriteString(p.renderField("ZIP Code", p.zip, 3))
	}

	if p.submitting {
		b.WriteString("\n")
		b.WriteString(p.spinner.View() + " " +
			currentTheme.S().StepLabel.Render("Submitting your disbursement request..."))
		b.WriteString("\n")
	} else if p.err != "" {
		b.WriteString("\n")
		b.WriteString(currentTheme.S().ErrorText.Render("✗ " + p.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHintBar(
		"←→", "method",
		"tab", "next field",
		"enter", "submit",
		"esc", "back",
	))

	return b.String()
}

func (p *PaymentStep) renderField(label string, input textinput.Model, idx int) string {
	currentTheme := theme.Current()

	border := lipgloss.Color(currentTheme.BorderDefault)
	if p.focusIdx == idx {
		border = lipgloss.Color(currentTheme.BorderFocus)
	}
	boxStyle := lipgloss.NewStyle().
		Width(44).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)

	labelText := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgBase)).
		Render(label)

	return labelText + "\n" + boxStyle.Render(input.View()) + "\n"
}
