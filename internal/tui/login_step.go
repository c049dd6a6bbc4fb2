package tui

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/poweradmin/settleport/internal/backend"
	"github.com/poweradmin/settleport/internal/tui/theme"
)

const (
	loginFieldID = iota
	loginFieldPIN
)

// LoginStep handles the claimant ID and PIN form.
type LoginStep struct {
	idInput   textinput.Model
	pinInput  textinput.Model
	focusIdx  int
	verifying bool
	spinner   spinner.Model
	err       string
	width     int
	height    int
}

// NewLoginStep creates a new login step with the ID field focused.
func NewLoginStep() *LoginStep {
	id := textinput.New()
	id.Placeholder = "e.g., CLM-1001"
	id.CharLimit = 40
	id.Focus()

	pin := textinput.New()
	pin.Placeholder = "6-digit PIN"
	pin.CharLimit = 6
	pin.EchoMode = textinput.EchoPassword
	pin.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	return &LoginStep{
		idInput:  id,
		pinInput: pin,
		spinner:  s,
	}
}

// Init initializes the login step.
func (l *LoginStep) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login step.
func (l *LoginStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if l.verifying {
			var cmd tea.Cmd
			l.spinner, cmd = l.spinner.Update(msg)
			return cmd
		}
		return nil

	case tea.PasteMsg:
		if l.verifying {
			return nil
		}
		l.err = ""
		clean := sanitizeSingleLine(msg.Content)
		if clean == "" {
			return nil
		}
		return l.forwardToFocused(tea.PasteMsg{Content: clean})

	case tea.KeyPressMsg:
		if l.verifying {
			// Input is locked while the identity check is in flight.
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			l.cycleFocus(1)
			return nil
		case "shift+tab", "up":
			l.cycleFocus(-1)
			return nil
		case "ctrl+d":
			// Demo credentials for reviewers.
			l.idInput.SetValue(backend.DemoUniqueID)
			l.pinInput.SetValue(backend.DemoPIN)
			l.err = ""
			return nil
		case "enter":
			return l.Submit()
		default:
			if l.err != "" {
				l.err = ""
			}
		}
	}

	return l.forwardToFocused(msg)
}

func (l *LoginStep) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if l.focusIdx == loginFieldID {
		l.idInput, cmd = l.idInput.Update(msg)
	} else {
		l.pinInput, cmd = l.pinInput.Update(msg)
	}
	return cmd
}

func (l *LoginStep) cycleFocus(dir int) {
	l.focusIdx = (l.focusIdx + dir + 2) % 2
	if l.focusIdx == loginFieldID {
		l.idInput.Focus()
		l.pinInput.Blur()
	} else {
		l.pinInput.Focus()
		l.idInput.Blur()
	}
}

// Submit validates the form locally and emits CredentialsSubmittedMsg.
func (l *LoginStep) Submit() tea.Cmd {
	id := strings.TrimSpace(l.idInput.Value())
	pin := strings.TrimSpace(l.pinInput.Value())

	var missing []string
	if id == "" {
		missing = append(missing, "claimant ID")
	}
	if pin == "" {
		missing = append(missing, "PIN")
	}
	if len(missing) > 0 {
		l.err = "please enter your " + strings.Join(missing, " and ")
		return nil
	}

	l.err = ""
	return func() tea.Msg {
		return CredentialsSubmittedMsg{UniqueID: id, PIN: pin}
	}
}

// SetVerifying toggles the in-flight indicator. Returns the spinner tick
// command when verification starts.
func (l *LoginStep) SetVerifying(v bool) tea.Cmd {
	l.verifying = v
	if v {
		return l.spinner.Tick
	}
	return nil
}

// Verifying reports whether an identity check is in flight.
func (l *LoginStep) Verifying() bool {
	return l.verifying
}

// SetError displays a verification failure message.
func (l *LoginStep) SetError(msg string) {
	l.err = msg
}

// Values returns the trimmed form values.
func (l *LoginStep) Values() (uniqueID, pin string) {
	return strings.TrimSpace(l.idInput.Value()), strings.TrimSpace(l.pinInput.Value())
}

// SetSize updates the size of the login step.
func (l *LoginStep) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// View renders the login step content.
func (l *LoginStep) View() string {
	currentTheme := theme.Current()

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgBase))

	inputStyle := lipgloss.NewStyle().
		Width(44).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(currentTheme.BorderDefault))
	focusedInputStyle := inputStyle.
		BorderForeground(lipgloss.Color(currentTheme.BorderFocus))

	idBox := inputStyle
	pinBox := inputStyle
	if l.focusIdx == loginFieldID {
		idBox = focusedInputStyle
	} else {
		pinBox = focusedInputStyle
	}

	parts := []string{
		labelStyle.Render("Claimant ID"),
		idBox.Render(l.idInput.View()),
		"",
		labelStyle.Render("Secure PIN"),
		pinBox.Render(l.pinInput.View()),
	}

	if l.verifying {
		parts = append(parts, "",
			l.spinner.View()+" "+currentTheme.S().StepLabel.Render("Verifying your identity..."))
	} else if l.err != "" {
		parts = append(parts, "",
			currentTheme.S().ErrorText.Bold(true).Render("✗ "+l.err))
	}

	parts = append(parts, "",
		renderHintBar("tab", "switch field", "enter", "sign in", "ctrl+d", "demo login"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
