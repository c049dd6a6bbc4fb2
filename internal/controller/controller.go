// Package controller owns the wizard state: the current step plus the
// record fragments accumulated as the claimant moves forward. It is the
// only writer of that state. Each operation checks the step machine and
// the relevant validator before applying a transition; a failed guard
// leaves the step unchanged and returns the typed error.
//
// Two operations (login verification, payment submission) call out to
// collaborators with simulated latency. The controller hardens both
// against the double-submit race with in-flight flags, and against stale
// completions with a navigation generation counter: any applied
// transition bumps the generation, and a completion that returns to find
// a different generation is discarded.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/poweradmin/settleport/internal/backend"
	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/flow"
	"github.com/poweradmin/settleport/internal/logger"
	"github.com/poweradmin/settleport/internal/validate"
)

// ErrBusy is returned when an operation is attempted while a previous
// asynchronous operation on the same step is still in flight.
var ErrBusy = errors.New("operation already in progress")

// RecordSink receives fire-and-forget notifications for completed steps.
// The wizard's correctness never depends on them; failures are logged and
// dropped. *store.Recorder satisfies this.
type RecordSink interface {
	RecordJurisdiction(ctx context.Context, state string) error
	RecordSignature(ctx context.Context, sig claim.ReleaseSignature) error
	RecordPayment(ctx context.Context, detail claim.PaymentDetail, reference string) error
}

// Options configures a Controller.
type Options struct {
	Verifier backend.Verifier
	Gateway  backend.Gateway
	Records  RecordSink // optional

	ReleasePolicy validate.ReleasePolicy

	// Timeout caps each collaborator call. Zero means no cap.
	Timeout time.Duration
}

// Snapshot is a read-only copy of the wizard state for the presentation
// layer.
type Snapshot struct {
	Step         flow.Step
	Claimant     *claim.Claimant
	Jurisdiction string
	Signature    *claim.ReleaseSignature
	Payment      *claim.PaymentDetail
	Reference    string
	Verifying    bool
	Submitting   bool
}

// Controller drives the wizard. Safe for use from the TUI's command
// goroutines: all state lives behind one mutex, and collaborator calls
// happen outside it.
type Controller struct {
	mu sync.Mutex

	step         flow.Step
	claimant     *claim.Claimant
	jurisdiction string
	signature    *claim.ReleaseSignature
	payment      *claim.PaymentDetail
	reference    string

	// gen increments on every applied transition and on Reset. Pending
	// collaborator completions compare their captured value against it.
	gen uint64

	verifying  bool
	submitting bool

	verifier      backend.Verifier
	gateway       backend.Gateway
	records       RecordSink
	releasePolicy validate.ReleasePolicy
	timeout       time.Duration
}

// New creates a Controller at the login step.
func New(opts Options) *Controller {
	return &Controller{
		step:          flow.StepLogin,
		verifier:      opts.Verifier,
		gateway:       opts.Gateway,
		records:       opts.Records,
		releasePolicy: opts.ReleasePolicy,
		timeout:       opts.Timeout,
	}
}

// Current returns the current step.
func (c *Controller) Current() flow.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Snapshot returns a copy of the wizard state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Step:         c.step,
		Jurisdiction: c.jurisdiction,
		Reference:    c.reference,
		Verifying:    c.verifying,
		Submitting:   c.submitting,
	}
	if c.claimant != nil {
		cl := *c.claimant
		snap.Claimant = &cl
	}
	if c.signature != nil {
		sig := *c.signature
		snap.Signature = &sig
	}
	if c.payment != nil {
		p := *c.payment
		snap.Payment = &p
	}
	return snap
}

// Reset tears the session down to a fresh login step. Any pending
// collaborator completion is invalidated.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.step = flow.StepLogin
	c.claimant = nil
	c.jurisdiction = ""
	c.signature = nil
	c.payment = nil
	c.reference = ""
	c.gen++
}

// Login validates the credentials, asks the verification collaborator for
// the claimant's settlement record, and on success advances
// login → state-selection. An empty ID or PIN fails with a
// ValidationError without calling the collaborator; a backend rejection
// or timeout surfaces as a VerificationError. A completion that arrives
// after the session was reset is discarded.
func (c *Controller) Login(ctx context.Context, uniqueID, pin string) error {
	c.mu.Lock()
	if _, ok := flow.Next(c.step, flow.EventSubmitPIN); !ok {
		c.mu.Unlock()
		return &flow.InvariantViolation{Detail: fmt.Sprintf("login attempted from step %s", c.step)}
	}
	if c.verifying {
		c.mu.Unlock()
		return ErrBusy
	}
	if err := validate.Credentials(uniqueID, pin); err != nil {
		c.mu.Unlock()
		return err
	}
	c.verifying = true
	gen := c.gen
	c.mu.Unlock()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	claimant, err := c.verifier.Verify(ctx, uniqueID, pin)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.verifying = false

	if gen != c.gen {
		// Session moved on while verification was in flight; the result
		// no longer applies.
		logger.Debug("Discarding stale verification result for %s", uniqueID)
		return nil
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &flow.VerificationError{Cause: fmt.Errorf("verification timed out: %w", err)}
		}
		return &flow.VerificationError{Cause: err}
	}

	c.claimant = &claimant
	c.apply(flow.EventSubmitPIN)
	return nil
}

// SelectState records the confirmed jurisdiction and advances
// state-selection → statement. The only guard is closed-world membership.
func (c *Controller) SelectState(state string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := flow.Next(c.step, flow.EventSelectState); !ok {
		return &flow.InvariantViolation{Detail: fmt.Sprintf("state selection attempted from step %s", c.step)}
	}
	if err := validate.Jurisdiction(state); err != nil {
		return err
	}

	c.jurisdiction = state
	c.apply(flow.EventSelectState)

	c.notify("jurisdiction", func(ctx context.Context, r RecordSink) error {
		return r.RecordJurisdiction(ctx, state)
	})
	return nil
}

// AcknowledgeStatement advances statement → release. No preconditions
// beyond being on the statement step.
func (c *Controller) AcknowledgeStatement() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := flow.Next(c.step, flow.EventAcknowledge); !ok {
		return &flow.InvariantViolation{Detail: fmt.Sprintf("acknowledgment attempted from step %s", c.step)}
	}
	c.apply(flow.EventAcknowledge)
	return nil
}

// SignRelease validates the signature form and advances
// release → payment. On failure the returned ValidationError enumerates
// every condition that did not hold.
func (c *Controller) SignRelease(signature string, agreed, scrolled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := flow.Next(c.step, flow.EventSign); !ok {
		return &flow.InvariantViolation{Detail: fmt.Sprintf("signing attempted from step %s", c.step)}
	}
	if err := validate.Release(signature, agreed, scrolled, c.releasePolicy); err != nil {
		return err
	}

	sig := claim.ReleaseSignature{
		SignatureText: signature,
		Agreed:        agreed,
		SignedAt:      time.Now(),
	}
	c.signature = &sig
	c.apply(flow.EventSign)

	c.notify("signature", func(ctx context.Context, r RecordSink) error {
		return r.RecordSignature(ctx, sig)
	})
	return nil
}

// SubmitPayment validates the payment form, submits the disbursement
// instruction to the gateway, and on acceptance advances
// payment → success. Exactly one submission can be in flight; a second
// attempt while pending returns ErrBusy. A completion that arrives after
// the claimant navigated away is discarded.
func (c *Controller) SubmitPayment(ctx context.Context, form validate.PaymentForm) error {
	c.mu.Lock()
	if _, ok := flow.Next(c.step, flow.EventSubmitPayment); !ok {
		c.mu.Unlock()
		return &flow.InvariantViolation{Detail: fmt.Sprintf("payment submission attempted from step %s", c.step)}
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.claimant == nil {
		c.mu.Unlock()
		return &flow.InvariantViolation{Detail: "payment step reached without a claimant record"}
	}
	identifier, err := validate.Payment(form)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	detail := claim.PaymentDetail{
		Method:            form.Method,
		AccountIdentifier: identifier,
		Confirmed:         true,
	}
	claimant := *c.claimant
	c.submitting = true
	gen := c.gen
	c.mu.Unlock()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	reference, err := c.gateway.Submit(ctx, claimant, detail)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if gen != c.gen {
		logger.Debug("Discarding stale payment completion for %s", claimant.UniqueID)
		return nil
	}
	if err != nil {
		return &flow.SubmissionError{
			Cause:     err,
			Retryable: errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled),
		}
	}

	c.payment = &detail
	c.reference = reference
	c.apply(flow.EventSubmitPayment)

	c.notify("payment", func(ctx context.Context, r RecordSink) error {
		return r.RecordPayment(ctx, detail, reference)
	})
	return nil
}

// Back applies the explicit backward edges (release → statement,
// payment → release). Calling it from a step with no back edge fails
// loudly rather than silently doing nothing.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := flow.Next(c.step, flow.EventBack); !ok {
		return &flow.InvariantViolation{Detail: fmt.Sprintf("no back transition from step %s", c.step)}
	}
	c.apply(flow.EventBack)
	return nil
}

// apply moves to the target step for event and bumps the navigation
// generation. Callers must hold the lock and have checked the edge.
func (c *Controller) apply(event flow.Event) {
	next, ok := flow.Next(c.step, event)
	if !ok {
		return
	}
	logger.Debug("Step transition: %s -> %s (%s)", c.step, next, event)
	c.step = next
	c.gen++
}

// notify dispatches a fire-and-forget record to the sink, if configured.
func (c *Controller) notify(what string, fn func(context.Context, RecordSink) error) {
	if c.records == nil {
		return
	}
	records := c.records
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fn(ctx, records); err != nil {
			logger.Warn("Failed to record %s: %v", what, err)
		}
	}()
}

func (c *Controller) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
