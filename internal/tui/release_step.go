package tui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"

	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/tui/theme"
)

// Focus zones within the release step.
const (
	releaseFocusText = iota
	releaseFocusSignature
	releaseFocusConsent
)

// ReleaseStep shows the release of claims and collects the claimant's typed
// signature and consent. The component survives back navigation from the
// payment step, so a typed signature is not lost.
type ReleaseStep struct {
	viewport  viewport.Model
	content   string // Raw release markdown
	sigInput  textinput.Model
	agreed    bool
	scrolled  bool // Claimant reached the end of the text
	focusZone int
	err       string
	width     int
	height    int
}

// releaseText builds the release of claims for the claimant. The governing
// law follows the selected jurisdiction.
func releaseText(claimant claim.Claimant, jurisdiction string) string {
	return fmt.Sprintf(`# FULL AND FINAL RELEASE OF ALL CLAIMS

IN CONSIDERATION of the payment of the Net Settlement Amount set forth in
the Settlement Statement, receipt of which is hereby acknowledged, I,
**%s** ("Claimant"), hereby release, acquit, and forever discharge the
settlement administrator, the Defendant(s), and their respective agents,
employees, successors, insurers, and assigns (collectively, the "Released
Parties") from any and all actions, causes of action, claims, demands,
damages, costs, loss of services, expenses, and compensation, on account
of, or in any way growing out of, any and all known and unknown personal
injuries and property damage resulting or to result from the incident that
is the subject of the arbitration.

I understand that this is a full and final compromise adjustment and
settlement of any and all claims, disputed or otherwise, and that the
payment of said amount is not to be construed as an admission of liability
on the part of the Released Parties, by whom liability is expressly denied.

I further declare and represent that no promise, inducement or agreement
not herein expressed has been made to me, and that this Release contains
the entire agreement between the parties hereto, and that the terms of
this Release are contractual and not a mere recital.

This Release shall be governed by the laws of the State of %s.

THE UNDERSIGNED HAS READ THE FOREGOING RELEASE AND FULLY UNDERSTANDS IT.

ID: %s | DATE: %s`,
		claimant.FullName(),
		jurisdiction,
		claimant.UniqueID,
		time.Now().Format("01/02/2006"),
	)
}

// NewReleaseStep creates the release step for a verified claimant.
func NewReleaseStep(claimant claim.Claimant, jurisdiction string) *ReleaseStep {
	content := releaseText(claimant, jurisdiction)

	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(10),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	vp.SetContent(renderMarkdown(content, 60))

	sig := textinput.New()
	sig.Placeholder = "Type your full legal name"
	sig.CharLimit = 80

	return &ReleaseStep{
		viewport: vp,
		content:  content,
		sigInput: sig,
		width:    60,
		height:   20,
	}
}

// renderMarkdown renders markdown content using glamour.
// Falls back to plain text if rendering fails.
func renderMarkdown(content string, width int) string {
	// Cap width to 120 for readability
	if width > 120 {
		width = 120
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fallback to plain text
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		// Fallback to plain text
		return content
	}

	return strings.TrimSuffix(rendered, "\n")
}

// Init initializes the release step.
func (r *ReleaseStep) Init() tea.Cmd {
	return nil
}

// Update handles messages for the release step.
func (r *ReleaseStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.PasteMsg:
		if r.focusZone == releaseFocusSignature {
			r.err = ""
			var cmd tea.Cmd
			r.sigInput, cmd = r.sigInput.Update(tea.PasteMsg{Content: sanitizeSingleLine(msg.Content)})
			return cmd
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			r.cycleFocus(1)
			return nil
		case "shift+tab":
			r.cycleFocus(-1)
			return nil
		case "enter":
			return r.Submit()
		case "space":
			if r.focusZone == releaseFocusConsent {
				r.agreed = !r.agreed
				r.err = ""
				return nil
			}
		}

		if r.focusZone == releaseFocusSignature {
			if r.err != "" {
				r.err = ""
			}
			var cmd tea.Cmd
			r.sigInput, cmd = r.sigInput.Update(msg)
			return cmd
		}
	}

	// Scrolling keys and mouse wheel go to the viewport.
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	if r.viewport.AtBottom() {
		r.scrolled = true
	}
	return cmd
}

func (r *ReleaseStep) cycleFocus(dir int) {
	r.focusZone = (r.focusZone + dir + 3) % 3
	if r.focusZone == releaseFocusSignature {
		r.sigInput.Focus()
	} else {
		r.sigInput.Blur()
	}
}

// Submit emits ReleaseSignedMsg with the current form state.
func (r *ReleaseStep) Submit() tea.Cmd {
	signature := strings.TrimSpace(r.sigInput.Value())
	agreed := r.agreed
	scrolled := r.scrolled || r.viewport.AtBottom()
	return func() tea.Msg {
		return ReleaseSignedMsg{
			Signature: signature,
			Agreed:    agreed,
			Scrolled:  scrolled,
		}
	}
}

// SetError displays validation failures from the signing guard.
func (r *ReleaseStep) SetError(msg string) {
	r.err = msg
}

// Signature returns the trimmed signature text.
func (r *ReleaseStep) Signature() string {
	return strings.TrimSpace(r.sigInput.Value())
}

// Agreed reports the consent checkbox state.
func (r *ReleaseStep) Agreed() bool {
	return r.agreed
}

// Scrolled reports whether the claimant has reached the end of the text.
func (r *ReleaseStep) Scrolled() bool {
	return r.scrolled || r.viewport.AtBottom()
}

// SetSize updates the dimensions for the release step.
func (r *ReleaseStep) SetSize(width, height int) {
	r.width = width
	r.height = height

	r.viewport.SetWidth(width)

	// Reserve space for the signature form and hints.
	viewportHeight := height - 9
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	r.viewport.SetHeight(viewportHeight)

	r.viewport.SetContent(renderMarkdown(r.content, width))
	if r.viewport.AtBottom() {
		r.scrolled = true
	}
}

// View renders the release step content.
func (r *ReleaseStep) View() string {
	currentTheme := theme.Current()
	var b strings.Builder

	textBorder := lipgloss.Color(currentTheme.BorderDefault)
	if r.focusZone == releaseFocusText {
		textBorder = lipgloss.Color(currentTheme.BorderFocus)
	}
	textStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(textBorder)
	b.WriteString(textStyle.Render(r.viewport.View()))
	b.WriteString("\n")

	if !r.Scrolled() {
		b.WriteString(currentTheme.S().HintText.Render("↓ scroll to read the full release"))
	} else {
		b.WriteString(currentTheme.S().HintText.Render("  end of release reached"))
	}
	b.WriteString("\n\n")

	sigLabel := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgBase)).
		Render("Digital Signature")
	b.WriteString(sigLabel)
	b.WriteString("\n")

	sigBorder := lipgloss.Color(currentTheme.BorderDefault)
	if r.focusZone == releaseFocusSignature {
		sigBorder = lipgloss.Color(currentTheme.BorderFocus)
	}
	sigStyle := lipgloss.NewStyle().
		Width(44).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(sigBorder)
	b.WriteString(sigStyle.Render(r.sigInput.View()))
	b.WriteString("\n")
	b.WriteString(currentTheme.S().HintText.Render("By typing your name, you are executing this release electronically."))
	b.WriteString("\n\n")

	checkbox := "[ ]"
	if r.agreed {
		checkbox = "[x]"
	}
	consentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(currentTheme.FgBase))
	if r.focusZone == releaseFocusConsent {
		consentStyle = consentStyle.Foreground(lipgloss.Color(currentTheme.BorderFocus)).Bold(true)
	}
	b.WriteString(consentStyle.Render(checkbox + " I agree to the terms of the release."))
	b.WriteString("\n")

	if r.err != "" {
		b.WriteString("\n")
		b.WriteString(currentTheme.S().ErrorText.Render("✗ " + r.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHintBar(
		"↑↓", "scroll",
		"tab", "next field",
		"space", "toggle consent",
		"enter", "sign",
		"esc", "back",
	))

	return b.String()
}
