// Package validate holds the pure per-step form validators. Each function
// computes submittability from local form state alone: no I/O, no clock,
// no wizard state. Failures come back as *flow.ValidationError enumerating
// every condition that did not hold, so the presentation layer can mark
// each offending field.
package validate

import (
	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/flow"
)

// ReleasePolicy tunes the release-step guard.
type ReleasePolicy struct {
	// RequireFullScrollRead additionally demands that the claimant scrolled
	// the legal text to the bottom. Off by default: signature + consent is
	// the enforced rule, scroll position is tracked but advisory.
	RequireFullScrollRead bool
}

// PaymentPolicy tunes the payment-step form behavior.
type PaymentPolicy struct {
	// AllowPasteOnConfirm permits pasting into the confirmation field.
	// When false (the default) the confirmation must be manually retyped;
	// enforcement lives in the presentation layer since a validator cannot
	// observe how text arrived.
	AllowPasteOnConfirm bool
}

// Credentials validates the login form. The PIN carries the message the
// login screen shows inline; the claimant ID is required as well.
func Credentials(uniqueID, pin string) error {
	var reasons []string
	if uniqueID == "" {
		reasons = append(reasons, "claimant ID required")
	}
	if pin == "" {
		reasons = append(reasons, "PIN required")
	}
	if len(reasons) > 0 {
		return flow.NewValidationError(reasons...)
	}
	return nil
}

// Jurisdiction validates the state selection against the closed 50-state
// enumeration.
func Jurisdiction(state string) error {
	if !claim.IsUSState(state) {
		return flow.NewValidationError("state must be one of the 50 US states")
	}
	return nil
}

// Release validates the release-step form: typed signature longer than two
// characters and explicit consent. The scrolled flag participates only
// when the policy demands it.
func Release(signature string, agreed, scrolled bool, p ReleasePolicy) error {
	var reasons []string
	if len(signature) <= 2 {
		reasons = append(reasons, "signature must be longer than 2 characters")
	}
	if !agreed {
		reasons = append(reasons, "you must agree to the terms of the release")
	}
	if p.RequireFullScrollRead && !scrolled {
		reasons = append(reasons, "you must read the release to the end before signing")
	}
	if len(reasons) > 0 {
		return flow.NewValidationError(reasons...)
	}
	return nil
}

// PaymentForm is the raw payment-step form state. Electronic methods use
// Identifier/ConfirmIdentifier; CHECK uses the address sub-form with the
// state locked to the confirmed jurisdiction.
type PaymentForm struct {
	Method            claim.PaymentMethod
	Identifier        string
	ConfirmIdentifier string

	Address string
	City    string
	State   string
	Zip     string
}

// Payment validates the payment form and, when valid, returns the composed
// account identifier. Identifier confirmation is an exact, case-sensitive
// match with no normalization. An unknown method is an InvariantViolation:
// the closed enum makes it unreachable through the UI.
func Payment(f PaymentForm) (string, error) {
	if _, err := claim.ParsePaymentMethod(string(f.Method)); err != nil {
		return "", &flow.InvariantViolation{Detail: err.Error()}
	}

	if f.Method.Electronic() {
		var reasons []string
		if f.Identifier == "" {
			reasons = append(reasons, f.Method.IdentifierLabel()+" required")
		}
		if f.Identifier != f.ConfirmIdentifier {
			reasons = append(reasons, "confirmation does not match")
		}
		if len(reasons) > 0 {
			return "", flow.NewValidationError(reasons...)
		}
		return f.Identifier, nil
	}

	// CHECK: mailing address sub-form. State comes from the closed
	// enumeration (jurisdiction step), so it is valid by construction, but
	// it is still checked here to keep the validator self-contained.
	var reasons []string
	if f.Address == "" {
		reasons = append(reasons, "street address required")
	}
	if f.City == "" {
		reasons = append(reasons, "city required")
	}
	if f.Zip == "" {
		reasons = append(reasons, "ZIP code required")
	}
	if !claim.IsUSState(f.State) {
		reasons = append(reasons, "state must be one of the 50 US states")
	}
	if len(reasons) > 0 {
		return "", flow.NewValidationError(reasons...)
	}
	return claim.ComposeMailingAddress(f.Address, f.City, f.State, f.Zip), nil
}
