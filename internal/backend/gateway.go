package backend

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/logger"
)

// Gateway accepts a validated disbursement instruction and returns a
// payment reference number.
type Gateway interface {
	Submit(ctx context.Context, claimant claim.Claimant, detail claim.PaymentDetail) (string, error)
}

// MockGateway simulates the payment rail: it accepts every instruction
// after an artificial latency and issues a UUID-derived reference. FailNext
// lets tests and demos exercise the retry banner.
type MockGateway struct {
	Delay    time.Duration
	FailNext error
}

// NewMockGateway builds a gateway with the given latency.
func NewMockGateway(delay time.Duration) *MockGateway {
	return &MockGateway{Delay: delay}
}

// Submit records the instruction after the configured delay.
func (g *MockGateway) Submit(ctx context.Context, claimant claim.Claimant, detail claim.PaymentDetail) (string, error) {
	logger.Debug("Submitting %s payment for claimant %s", detail.Method, claimant.UniqueID)

	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err := g.FailNext; err != nil {
		g.FailNext = nil
		return "", err
	}

	ref := "REF-" + uuid.NewString()[:8]
	logger.Info("Payment accepted: claimant=%s method=%s ref=%s", claimant.UniqueID, detail.Method, ref)
	return ref, nil
}
