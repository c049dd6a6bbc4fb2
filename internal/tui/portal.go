// Package tui implements the claimant-facing portal: a centered modal
// wizard that walks through login, jurisdiction selection, the settlement
// statement, release signing, payment selection, and the confirmation
// receipt. All transition decisions live in the controller; this package
// only renders state and translates keys into controller operations.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/poweradmin/settleport/internal/backend"
	"github.com/poweradmin/settleport/internal/config"
	"github.com/poweradmin/settleport/internal/controller"
	"github.com/poweradmin/settleport/internal/flow"
	"github.com/poweradmin/settleport/internal/logger"
	"github.com/poweradmin/settleport/internal/tui/theme"
)

// Modal layout constants
const (
	modalWidth        = 70                                                       // Total modal width including border
	modalPadding      = 2                                                        // Horizontal padding on each side
	modalBorderWidth  = 1                                                        // Border width on each side
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2) // 64
)

// PortalModel is the main BubbleTea model for the claimant portal.
type PortalModel struct {
	ctrl      *controller.Controller
	cfg       *config.Config
	ctx       context.Context
	cancelled bool
	width     int
	height    int

	// Step components
	loginStep        *LoginStep
	jurisdictionStep *JurisdictionStep
	statementStep    *StatementStep
	releaseStep      *ReleaseStep
	paymentStep      *PaymentStep
	successStep      *SuccessStep
}

// NewPortalModel creates the portal model at the login step.
func NewPortalModel(ctx context.Context, cfg *config.Config, ctrl *controller.Controller) *PortalModel {
	return &PortalModel{
		ctrl: ctrl,
		cfg:  cfg,
		ctx:  ctx,
	}
}

// Run is the entry point for the claimant portal.
// It creates a standalone BubbleTea program, runs it, and returns any error.
func Run(cfg *config.Config, ctrl *controller.Controller) error {
	m := NewPortalModel(context.Background(), cfg, ctrl)

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("portal failed: %w", err)
	}

	portal, ok := finalModel.(*PortalModel)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}

	if portal.cancelled {
		return fmt.Errorf("portal cancelled by user")
	}

	return nil
}

// Init initializes the portal model.
func (m *PortalModel) Init() tea.Cmd {
	m.loginStep = NewLoginStep()
	return m.loginStep.Init()
}

// Update handles messages for the portal.
func (m *PortalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			return m.handleEscape()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateCurrentStepSize()
		return m, nil

	case CredentialsSubmittedMsg:
		if m.loginStep == nil || m.loginStep.Verifying() {
			return m, nil
		}
		spinCmd := m.loginStep.SetVerifying(true)
		return m, tea.Batch(spinCmd, m.verifyCmd(msg.UniqueID, msg.PIN))

	case VerifiedMsg:
		m.jurisdictionStep = NewJurisdictionStep(m.cfg.DefaultState)
		m.updateCurrentStepSize()
		return m, m.jurisdictionStep.Init()

	case VerifyFailedMsg:
		if m.loginStep != nil {
			m.loginStep.SetVerifying(false)
			m.loginStep.SetError(errorMessage(msg.Err))
		}
		return m, nil

	case StateChosenMsg:
		if err := m.ctrl.SelectState(msg.State); err != nil {
			if m.jurisdictionStep != nil {
				m.jurisdictionStep.SetError(errorMessage(err))
			}
			return m, nil
		}
		snap := m.ctrl.Snapshot()
		m.statementStep = NewStatementStep(*snap.Claimant, snap.Jurisdiction)
		m.updateCurrentStepSize()
		return m, m.statementStep.Init()

	case StatementAcknowledgedMsg:
		if err := m.ctrl.AcknowledgeStatement(); err != nil {
			logger.Warn("Statement acknowledgment rejected: %v", err)
			return m, nil
		}
		// Reuse the release step when it exists so a typed signature
		// survives statement review via back navigation.
		if m.releaseStep == nil {
			snap := m.ctrl.Snapshot()
			m.releaseStep = NewReleaseStep(*snap.Claimant, snap.Jurisdiction)
		}
		m.updateCurrentStepSize()
		return m, m.releaseStep.Init()

	case ReleaseSignedMsg:
		if err := m.ctrl.SignRelease(msg.Signature, msg.Agreed, msg.Scrolled); err != nil {
			if m.releaseStep != nil {
				m.releaseStep.SetError(errorMessage(err))
			}
			return m, nil
		}
		if m.paymentStep == nil {
			snap := m.ctrl.Snapshot()
			m.paymentStep = NewPaymentStep(snap.Jurisdiction, m.cfg.AllowPasteOnConfirm)
		}
		m.updateCurrentStepSize()
		return m, m.paymentStep.Init()

	case PaymentFormSubmittedMsg:
		if m.paymentStep == nil || m.paymentStep.Submitting() {
			return m, nil
		}
		spinCmd := m.paymentStep.SetSubmitting(true)
		return m, tea.Batch(spinCmd, m.submitCmd(msg))

	case PaymentAcceptedMsg:
		snap := m.ctrl.Snapshot()
		if snap.Claimant == nil || snap.Payment == nil {
			logger.Error("Payment accepted with incomplete session state")
			return m, nil
		}
		m.successStep = NewSuccessStep(backend.Receipt{
			Claimant:     *snap.Claimant,
			Payment:      *snap.Payment,
			Jurisdiction: snap.Jurisdiction,
			Reference:    msg.Reference,
			IssuedAt:     time.Now(),
		})
		m.updateCurrentStepSize()
		return m, m.successStep.Init()

	case PaymentFailedMsg:
		if m.paymentStep != nil {
			m.paymentStep.SetSubmitting(false)
			m.paymentStep.SetError(errorMessage(msg.Err))
		}
		return m, nil

	case SaveReceiptMsg:
		if m.successStep == nil {
			return m, nil
		}
		receipt := m.successStep.receipt
		dir := m.cfg.ReceiptDir
		return m, func() tea.Msg {
			path, err := receipt.Write(dir)
			if err != nil {
				logger.Error("Failed to write receipt: %v", err)
				return ReceiptSaveFailedMsg{Err: err}
			}
			return ReceiptSavedMsg{Path: path}
		}
	}

	// Forward messages to the current step
	return m, m.updateCurrentStep(msg)
}

// verifyCmd runs identity verification against the controller.
func (m *PortalModel) verifyCmd(uniqueID, pin string) tea.Cmd {
	ctrl := m.ctrl
	ctx := m.ctx
	return func() tea.Msg {
		if err := ctrl.Login(ctx, uniqueID, pin); err != nil {
			return VerifyFailedMsg{Err: err}
		}
		if ctrl.Current() != flow.StepJurisdiction {
			// The completion was discarded as stale; nothing to show.
			return nil
		}
		return VerifiedMsg{}
	}
}

// submitCmd runs payment submission against the controller.
func (m *PortalModel) submitCmd(msg PaymentFormSubmittedMsg) tea.Cmd {
	ctrl := m.ctrl
	ctx := m.ctx
	return func() tea.Msg {
		if err := ctrl.SubmitPayment(ctx, msg.Form); err != nil {
			return PaymentFailedMsg{Err: err}
		}
		snap := ctrl.Snapshot()
		if snap.Step != flow.StepSuccess {
			return nil
		}
		return PaymentAcceptedMsg{Reference: snap.Reference}
	}
}

// handleEscape maps ESC to cancel on the login step and to back navigation
// on the steps that have a back edge.
func (m *PortalModel) handleEscape() (tea.Model, tea.Cmd) {
	step := m.ctrl.Current()
	switch step {
	case flow.StepLogin:
		m.cancelled = true
		return m, tea.Quit
	case flow.StepRelease, flow.StepPayment:
		if m.paymentStep != nil && m.paymentStep.Submitting() {
			// No navigation while a submission is in flight.
			return m, nil
		}
		if err := m.ctrl.Back(); err != nil {
			logger.Warn("Back navigation rejected: %v", err)
			return m, nil
		}
		m.updateCurrentStepSize()
		return m, nil
	}
	return m, nil
}

// errorMessage turns a wizard error into a line the claimant can act on.
func errorMessage(err error) string {
	var valErr *flow.ValidationError
	if errors.As(err, &valErr) {
		return strings.Join(valErr.Reasons, "; ")
	}

	var verErr *flow.VerificationError
	if errors.As(err, &verErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			return "verification timed out, please try again"
		}
		return "we couldn't verify your identity, please check your ID and PIN"
	}

	var subErr *flow.SubmissionError
	if errors.As(err, &subErr) {
		if subErr.Retryable {
			return "submission didn't go through, please try again"
		}
		return "your payment could not be processed: " + subErr.Cause.Error()
	}

	return err.Error()
}

// View renders the portal.
func (m *PortalModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		// Not ready to render
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := m.renderCurrentStep()

	// Center on screen
	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	// Draw to canvas using ultraviolet
	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// stepTitle returns the modal title for the current step.
func stepTitle(step flow.Step) string {
	switch step {
	case flow.StepLogin:
		return "Settlement Portal - Claimant Login"
	case flow.StepJurisdiction:
		return "Settlement Portal - State of Residence"
	case flow.StepStatement:
		return "Settlement Portal - Settlement Statement"
	case flow.StepRelease:
		return "Settlement Portal - Release of Claims"
	case flow.StepPayment:
		return "Settlement Portal - Payment Method"
	case flow.StepSuccess:
		return "Settlement Portal - Confirmation"
	}
	return "Settlement Portal"
}

// renderProgress renders the progress line for interior steps. The login
// step shows no progress; later steps fill a quarter at a time.
func (m *PortalModel) renderProgress(step flow.Step) string {
	progress := step.Progress()
	if progress == 0 {
		return ""
	}
	currentTheme := theme.Current()

	const barWidth = modalContentWidth - 10
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	var b strings.Builder
	for i := 0; i < filled; i++ {
		pos := float64(i) / float64(barWidth-1)
		color := theme.InterpolateColor(currentTheme.Secondary, currentTheme.Primary, pos)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("━"))
	}
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(currentTheme.BgSurface1))
	b.WriteString(empty.Render(strings.Repeat("━", barWidth-filled)))

	label := currentTheme.S().StepLabel.Render(fmt.Sprintf(" %d%%", int(progress*100)))
	return b.String() + label
}

// renderCurrentStep renders the modal content for the current step.
func (m *PortalModel) renderCurrentStep() string {
	currentTheme := theme.Current()
	step := m.ctrl.Current()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(currentTheme.Primary)).
		MarginBottom(1)
	title := titleStyle.Render(stepTitle(step))

	var stepContent string
	switch step {
	case flow.StepLogin:
		if m.loginStep != nil {
			stepContent = m.loginStep.View()
		}
	case flow.StepJurisdiction:
		if m.jurisdictionStep != nil {
			stepContent = m.jurisdictionStep.View()
		}
	case flow.StepStatement:
		if m.statementStep != nil {
			stepContent = m.statementStep.View()
		}
	case flow.StepRelease:
		if m.releaseStep != nil {
			stepContent = m.releaseStep.View()
		}
	case flow.StepPayment:
		if m.paymentStep != nil {
			stepContent = m.paymentStep.View()
		}
	case flow.StepSuccess:
		if m.successStep != nil {
			stepContent = m.successStep.View()
		}
	}

	parts := []string{title}
	if progress := m.renderProgress(step); progress != "" {
		parts = append(parts, progress, "")
	}
	parts = append(parts, stepContent)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(currentTheme.BorderDefault))

	// Constrain height on the release step so the legal text scrolls.
	if step == flow.StepRelease {
		modalHeight := m.height - 4
		if modalHeight < 20 {
			modalHeight = 20
		}
		if modalHeight > 40 {
			modalHeight = 40
		}
		modalStyle = modalStyle.Height(modalHeight)
	}

	return modalStyle.Render(content)
}

// updateCurrentStep forwards a message to the current step.
func (m *PortalModel) updateCurrentStep(msg tea.Msg) tea.Cmd {
	switch m.ctrl.Current() {
	case flow.StepLogin:
		if m.loginStep != nil {
			return m.loginStep.Update(msg)
		}
	case flow.StepJurisdiction:
		if m.jurisdictionStep != nil {
			return m.jurisdictionStep.Update(msg)
		}
	case flow.StepStatement:
		if m.statementStep != nil {
			return m.statementStep.Update(msg)
		}
	case flow.StepRelease:
		if m.releaseStep != nil {
			return m.releaseStep.Update(msg)
		}
	case flow.StepPayment:
		if m.paymentStep != nil {
			return m.paymentStep.Update(msg)
		}
	case flow.StepSuccess:
		if m.successStep != nil {
			return m.successStep.Update(msg)
		}
	}
	return nil
}

// getModalContentSize returns the internal content dimensions for the modal.
func (m *PortalModel) getModalContentSize() (width, height int) {
	width = modalContentWidth

	height = m.height - 4 // Terminal margin
	if height < 20 {
		height = 20
	}
	if height > 40 {
		height = 40
	}
	// Subtract modal chrome: padding (2*2) + border (2) + title (~2) + progress (~2)
	height = height - 10
	if height < 10 {
		height = 10
	}
	return width, height
}

// updateCurrentStepSize updates the size of the current step.
func (m *PortalModel) updateCurrentStepSize() {
	contentWidth, contentHeight := m.getModalContentSize()

	switch m.ctrl.Current() {
	case flow.StepLogin:
		if m.loginStep != nil {
			m.loginStep.SetSize(contentWidth, contentHeight)
		}
	case flow.StepJurisdiction:
		if m.jurisdictionStep != nil {
			m.jurisdictionStep.SetSize(contentWidth, contentHeight)
		}
	case flow.StepStatement:
		if m.statementStep != nil {
			m.statementStep.SetSize(contentWidth, contentHeight)
		}
	case flow.StepRelease:
		if m.releaseStep != nil {
			m.releaseStep.SetSize(contentWidth, contentHeight)
		}
	case flow.StepPayment:
		if m.paymentStep != nil {
			m.paymentStep.SetSize(contentWidth, contentHeight)
		}
	case flow.StepSuccess:
		if m.successStep != nil {
			m.successStep.SetSize(contentWidth, contentHeight)
		}
	}
}
