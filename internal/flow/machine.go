// Package flow defines the wizard's step state machine: the ordered step
// set, the events that move between steps, and the total transition
// function. Guards (form validity) live in the validate package and are
// checked by the controller before a transition is applied; the machine
// itself only answers whether a (step, event) pair is structurally legal.
package flow

// Step identifies one screen of the claimant wizard.
type Step string

const (
	StepLogin        Step = "login"
	StepJurisdiction Step = "state-selection"
	StepStatement    Step = "statement"
	StepRelease      Step = "release"
	StepPayment      Step = "payment"
	StepSuccess      Step = "success"
)

// Steps lists every step in forward order.
var Steps = []Step{
	StepLogin,
	StepJurisdiction,
	StepStatement,
	StepRelease,
	StepPayment,
	StepSuccess,
}

// Valid reports whether s is one of the enumerated steps.
func (s Step) Valid() bool {
	for _, step := range Steps {
		if step == s {
			return true
		}
	}
	return false
}

// Terminal reports whether the step has no outgoing transitions.
func (s Step) Terminal() bool {
	return s == StepSuccess
}

// Progress returns the completed fraction shown by the progress bar, in
// quarters of the interior flow. Login and success render no bar.
func (s Step) Progress() float64 {
	switch s {
	case StepJurisdiction:
		return 0.25
	case StepStatement:
		return 0.5
	case StepRelease:
		return 0.75
	case StepPayment:
		return 1.0
	default:
		return 0
	}
}

// Event names the operations that can move the wizard between steps.
type Event string

const (
	EventSubmitPIN     Event = "submit-pin"
	EventSelectState   Event = "select-state"
	EventAcknowledge   Event = "acknowledge"
	EventSign          Event = "sign"
	EventSubmitPayment Event = "submit-payment"
	EventBack          Event = "back"
)

// transitions is the complete forward/backward edge set. Any (step, event)
// pair absent from this table is rejected; there are no other edges.
var transitions = map[Step]map[Event]Step{
	StepLogin: {
		EventSubmitPIN: StepJurisdiction,
	},
	StepJurisdiction: {
		EventSelectState: StepStatement,
	},
	StepStatement: {
		EventAcknowledge: StepRelease,
	},
	StepRelease: {
		EventSign: StepPayment,
		EventBack: StepStatement,
	},
	StepPayment: {
		EventSubmitPayment: StepSuccess,
		EventBack:          StepRelease,
	},
	// StepSuccess is terminal: no outgoing edges.
}

// Next returns the target step for (from, event), and whether the pair is
// a legal transition. The function is total: every enumerated pair has a
// defined outcome, either a target or (from, false).
func Next(from Step, event Event) (Step, bool) {
	edges, ok := transitions[from]
	if !ok {
		return from, false
	}
	to, ok := edges[event]
	if !ok {
		return from, false
	}
	return to, true
}

// CanGoBack reports whether the step has an explicit backward edge.
func CanGoBack(s Step) bool {
	_, ok := Next(s, EventBack)
	return ok
}
