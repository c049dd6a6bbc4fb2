package theme

import "charm.land/lipgloss/v2"

// Styles contains the pre-built lipgloss styles shared across steps.
// Step-local styles live next to the step components.
type Styles struct {
	HeaderTitle lipgloss.Style
	StepLabel   lipgloss.Style
	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style
	HintText    lipgloss.Style
	NetAmount   lipgloss.Style
}
