package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/poweradmin/settleport/internal/backend"
	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/flow"
	"github.com/poweradmin/settleport/internal/validate"
)

type fakeGateway struct {
	mu    sync.Mutex
	calls int
	block chan struct{} // when non-nil, Submit waits for close
	err   error
}

func (g *fakeGateway) Submit(ctx context.Context, _ claim.Claimant, _ claim.PaymentDetail) (string, error) {
	g.mu.Lock()
	g.calls++
	block := g.block
	err := g.err
	g.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return "REF-TEST0001", nil
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type fakeVerifier struct {
	block chan struct{}
}

func (v *fakeVerifier) Verify(ctx context.Context, _, _ string) (claim.Claimant, error) {
	if v.block != nil {
		select {
		case <-v.block:
		case <-ctx.Done():
			return claim.Claimant{}, ctx.Err()
		}
	}
	return backend.DemoClaimant(), nil
}

type recordLog struct {
	mu    sync.Mutex
	kinds []string
}

func (r *recordLog) RecordJurisdiction(context.Context, string) error {
	return r.add("jurisdiction")
}

func (r *recordLog) RecordSignature(context.Context, claim.ReleaseSignature) error {
	return r.add("signature")
}

func (r *recordLog) RecordPayment(context.Context, claim.PaymentDetail, string) error {
	return r.add("payment")
}

func (r *recordLog) add(kind string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
	return nil
}

func (r *recordLog) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.kinds...)
}

func zelleForm() validate.PaymentForm {
	return validate.PaymentForm{
		Method:            claim.MethodZelle,
		Identifier:        "jane@example.com",
		ConfirmIdentifier: "jane@example.com",
	}
}

// advanceToPayment walks a fresh controller through login, jurisdiction,
// statement, and release.
func advanceToPayment(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.Login(context.Background(), backend.DemoUniqueID, backend.DemoPIN))
	require.NoError(t, c.SelectState("Florida"))
	require.NoError(t, c.AcknowledgeStatement())
	require.NoError(t, c.SignRelease("Jane Doe", true, true))
	require.Equal(t, flow.StepPayment, c.Current())
}

func TestLoginCredentialGuard(t *testing.T) {
	tests := []struct {
		name string
		id   string
		pin  string
	}{
		{name: "empty id", id: "", pin: "442910"},
		{name: "empty pin", id: "CLM-1001", pin: ""},
		{name: "both empty", id: "", pin: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: gw})

			err := c.Login(context.Background(), tt.id, tt.pin)

			var verr *flow.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, flow.StepLogin, c.Current())
		})
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	v := backend.NewMockVerifier(0)
	v.Accept = false
	c := New(Options{Verifier: v, Gateway: &fakeGateway{}})

	err := c.Login(context.Background(), "CLM-9999", "000000")

	var verr *flow.VerificationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, flow.StepLogin, c.Current())
	require.Nil(t, c.Snapshot().Claimant)
}

func TestLoginFromWrongStep(t *testing.T) {
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: &fakeGateway{}})
	require.NoError(t, c.Login(context.Background(), backend.DemoUniqueID, backend.DemoPIN))

	err := c.Login(context.Background(), backend.DemoUniqueID, backend.DemoPIN)

	var ierr *flow.InvariantViolation
	require.ErrorAs(t, err, &ierr)
}

func TestHappyPathZelle(t *testing.T) {
	records := &recordLog{}
	c := New(Options{
		Verifier: backend.NewMockVerifier(0),
		Gateway:  &fakeGateway{},
		Records:  records,
	})

	advanceToPayment(t, c)
	require.NoError(t, c.SubmitPayment(context.Background(), zelleForm()))

	snap := c.Snapshot()
	require.Equal(t, flow.StepSuccess, snap.Step)
	require.Equal(t, "Jane Doe", snap.Claimant.FullName())
	require.Equal(t, "Florida", snap.Jurisdiction)
	require.Equal(t, "Jane Doe", snap.Signature.SignatureText)
	require.True(t, snap.Signature.Agreed)
	require.Equal(t, claim.MethodZelle, snap.Payment.Method)
	require.Equal(t, "jane@example.com", snap.Payment.AccountIdentifier)
	require.Equal(t, "REF-TEST0001", snap.Reference)

	require.Eventually(t, func() bool {
		return len(records.seen()) == 3
	}, time.Second, 10*time.Millisecond)
	require.ElementsMatch(t, []string{"jurisdiction", "signature", "payment"}, records.seen())
}

func TestCheckPaymentComposesAddress(t *testing.T) {
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: &fakeGateway{}})
	advanceToPayment(t, c)

	err := c.SubmitPayment(context.Background(), validate.PaymentForm{
		Method:  claim.MethodCheck,
		Address: "123 Main St",
		City:    "Miami",
		State:   "Florida",
		Zip:     "33101",
	})

	require.NoError(t, err)
	snap := c.Snapshot()
	require.Equal(t, flow.StepSuccess, snap.Step)
	require.Equal(t, "123 Main St, Miami, Florida 33101", snap.Payment.AccountIdentifier)
}

func TestSelectStateRejectsUnknown(t *testing.T) {
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: &fakeGateway{}})
	require.NoError(t, c.Login(context.Background(), backend.DemoUniqueID, backend.DemoPIN))

	var verr *flow.ValidationError
	require.ErrorAs(t, c.SelectState("Atlantis"), &verr)
	require.Equal(t, flow.StepJurisdiction, c.Current())

	require.NoError(t, c.SelectState("Wyoming"))
	require.Equal(t, flow.StepStatement, c.Current())
}

func TestSignReleaseEnumeratesFailures(t *testing.T) {
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: &fakeGateway{}})
	require.NoError(t, c.Login(context.Background(), backend.DemoUniqueID, backend.DemoPIN))
	require.NoError(t, c.SelectState("Florida"))
	require.NoError(t, c.AcknowledgeStatement())

	err := c.SignRelease("JD", false, true)

	var verr *flow.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Reasons, 2)
	require.Equal(t, flow.StepRelease, c.Current())
}

func TestBackEdges(t *testing.T) {
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: &fakeGateway{}})
	advanceToPayment(t, c)

	require.NoError(t, c.Back())
	require.Equal(t, flow.StepRelease, c.Current())
	require.NoError(t, c.Back())
	require.Equal(t, flow.StepStatement, c.Current())

	var ierr *flow.InvariantViolation
	require.ErrorAs(t, c.Back(), &ierr)
	require.Equal(t, flow.StepStatement, c.Current())
}

func TestBackFromLoginFailsLoudly(t *testing.T) {
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: &fakeGateway{}})

	var ierr *flow.InvariantViolation
	require.ErrorAs(t, c.Back(), &ierr)
}

func TestSignaturePreservedAcrossBackNavigation(t *testing.T) {
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: &fakeGateway{}})
	advanceToPayment(t, c)

	require.NoError(t, c.Back())
	snap := c.Snapshot()
	require.NotNil(t, snap.Signature)
	require.Equal(t, "Jane Doe", snap.Signature.SignatureText)
}

func TestDoubleSubmitYieldsOneTransition(t *testing.T) {
	gw := &fakeGateway{block: make(chan struct{})}
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: gw})
	advanceToPayment(t, c)

	done := make(chan error, 1)
	go func() {
		done <- c.SubmitPayment(context.Background(), zelleForm())
	}()
	require.Eventually(t, func() bool {
		return c.Snapshot().Submitting
	}, time.Second, time.Millisecond)

	require.ErrorIs(t, c.SubmitPayment(context.Background(), zelleForm()), ErrBusy)

	close(gw.block)
	require.NoError(t, <-done)
	require.Equal(t, flow.StepSuccess, c.Current())
	require.Equal(t, 1, gw.callCount())
}

func TestStaleSubmissionDiscardedAfterBack(t *testing.T) {
	gw := &fakeGateway{block: make(chan struct{})}
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: gw})
	advanceToPayment(t, c)

	done := make(chan error, 1)
	go func() {
		done <- c.SubmitPayment(context.Background(), zelleForm())
	}()
	require.Eventually(t, func() bool {
		return c.Snapshot().Submitting
	}, time.Second, time.Millisecond)

	require.NoError(t, c.Back())
	close(gw.block)

	require.NoError(t, <-done)
	snap := c.Snapshot()
	require.Equal(t, flow.StepRelease, snap.Step)
	require.Nil(t, snap.Payment)
	require.Empty(t, snap.Reference)
}

func TestStaleVerificationDiscardedAfterReset(t *testing.T) {
	v := &fakeVerifier{block: make(chan struct{})}
	c := New(Options{Verifier: v, Gateway: &fakeGateway{}})

	done := make(chan error, 1)
	go func() {
		done <- c.Login(context.Background(), backend.DemoUniqueID, backend.DemoPIN)
	}()
	require.Eventually(t, func() bool {
		return c.Snapshot().Verifying
	}, time.Second, time.Millisecond)

	c.Reset()
	close(v.block)

	require.NoError(t, <-done)
	snap := c.Snapshot()
	require.Equal(t, flow.StepLogin, snap.Step)
	require.Nil(t, snap.Claimant)
}

func TestSubmitTimeoutIsRetryable(t *testing.T) {
	gw := &fakeGateway{block: make(chan struct{})} // never released
	c := New(Options{
		Verifier: backend.NewMockVerifier(0),
		Gateway:  gw,
		Timeout:  20 * time.Millisecond,
	})
	advanceToPayment(t, c)

	err := c.SubmitPayment(context.Background(), zelleForm())

	var serr *flow.SubmissionError
	require.ErrorAs(t, err, &serr)
	require.True(t, serr.Retryable)
	require.Equal(t, flow.StepPayment, c.Current())

	// The gateway accepts the retry once released.
	gw.mu.Lock()
	gw.block = nil
	gw.mu.Unlock()
	require.NoError(t, c.SubmitPayment(context.Background(), zelleForm()))
	require.Equal(t, flow.StepSuccess, c.Current())
}

func TestGatewayRejectionNotRetryable(t *testing.T) {
	gw := &fakeGateway{err: errors.New("disbursement rejected")}
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: gw})
	advanceToPayment(t, c)

	err := c.SubmitPayment(context.Background(), zelleForm())

	var serr *flow.SubmissionError
	require.ErrorAs(t, err, &serr)
	require.False(t, serr.Retryable)
	require.Equal(t, flow.StepPayment, c.Current())
}

func TestScrollPolicyEnforced(t *testing.T) {
	c := New(Options{
		Verifier:      backend.NewMockVerifier(0),
		Gateway:       &fakeGateway{},
		ReleasePolicy: validate.ReleasePolicy{RequireFullScrollRead: true},
	})
	require.NoError(t, c.Login(context.Background(), backend.DemoUniqueID, backend.DemoPIN))
	require.NoError(t, c.SelectState("Florida"))
	require.NoError(t, c.AcknowledgeStatement())

	var verr *flow.ValidationError
	require.ErrorAs(t, c.SignRelease("Jane Doe", true, false), &verr)
	require.NoError(t, c.SignRelease("Jane Doe", true, true))
	require.Equal(t, flow.StepPayment, c.Current())
}

func TestResetClearsEverything(t *testing.T) {
	c := New(Options{Verifier: backend.NewMockVerifier(0), Gateway: &fakeGateway{}})
	advanceToPayment(t, c)
	require.NoError(t, c.SubmitPayment(context.Background(), zelleForm()))

	c.Reset()

	snap := c.Snapshot()
	require.Equal(t, flow.StepLogin, snap.Step)
	require.Nil(t, snap.Claimant)
	require.Empty(t, snap.Jurisdiction)
	require.Nil(t, snap.Signature)
	require.Nil(t, snap.Payment)
	require.Empty(t, snap.Reference)
}
