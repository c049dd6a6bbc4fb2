package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the portal TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is a string type
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgOverlay  string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Settlement accounting colors, used for the distribution bar and
	// amount highlights on the statement step.
	AmountGross    string
	AmountAttorney string
	AmountAdmin    string
	AmountNet      string

	// Border colors
	BorderDefault string
	BorderFocus   string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	currentMu sync.RWMutex
	current   *Theme
)

// Current returns the active theme, defaulting to Catppuccin Mocha.
func Current() *Theme {
	currentMu.RLock()
	t := current
	currentMu.RUnlock()
	if t != nil {
		return t
	}

	currentMu.Lock()
	defer currentMu.Unlock()
	if current == nil {
		current = NewCatppuccinMocha()
	}
	return current
}

// SetCurrent replaces the active theme.
func SetCurrent(t *Theme) {
	currentMu.Lock()
	current = t
	currentMu.Unlock()
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		StepLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		ErrorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)),
		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		HintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		NetAmount: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.AmountNet)).
			Bold(true),
	}
}
