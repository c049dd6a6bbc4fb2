package flow

import (
	"fmt"
	"strings"
)

// ValidationError reports that a transition guard failed. It is
// user-correctable, surfaced inline beside the offending field(s), and
// never changes the current step.
type ValidationError struct {
	// Reasons enumerates every failed condition, one message per field.
	Reasons []string
}

func (e *ValidationError) Error() string {
	if len(e.Reasons) == 0 {
		return "validation failed"
	}
	return strings.Join(e.Reasons, "; ")
}

// NewValidationError builds a ValidationError from one or more reasons.
func NewValidationError(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

// VerificationError reports a login/backend rejection. Surfaced as a
// banner on the login step; the step does not change and the claimant may
// retry.
type VerificationError struct {
	Cause error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed: %v", e.Cause)
}

func (e *VerificationError) Unwrap() error { return e.Cause }

// SubmissionError reports a payment submission failure. Surfaced as a
// banner on the payment step; Retryable distinguishes transient failures
// (timeouts) a claimant should retry from hard rejections.
type SubmissionError struct {
	Cause     error
	Retryable bool
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("payment submission failed: %v", e.Cause)
}

func (e *SubmissionError) Unwrap() error { return e.Cause }

// InvariantViolation reports a condition the closed enums make impossible
// in a correct caller (an unknown payment method, a back edge from a step
// that has none). It fails loudly rather than silently proceeding.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Detail
}
