// Package backend defines the portal's external collaborators and their
// in-memory mock implementations: identity verification, payment
// submission, and confirmation receipt generation. The wizard core only
// sees the interfaces, so guard and transition logic is testable without
// timing.
package backend

import (
	"context"
	"errors"
	"time"

	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/logger"
	"github.com/shopspring/decimal"
)

// ErrUnknownClaimant is returned when the verifier has no record for the
// presented credentials.
var ErrUnknownClaimant = errors.New("no settlement record found for the provided credentials")

// Verifier resolves login credentials to a claimant's settlement record.
type Verifier interface {
	Verify(ctx context.Context, uniqueID, pin string) (claim.Claimant, error)
}

// MockVerifier simulates the remote verification service: a fixed roster
// keyed by claimant ID, resolved after an artificial network latency. It
// honors context cancellation so an abandoned or timed-out login never
// blocks.
type MockVerifier struct {
	Delay  time.Duration
	Roster map[string]claim.Claimant

	// Accept, when true, resolves unknown credentials to the demo record
	// (the behavior of the original portal, which accepted any input).
	Accept bool
}

// DemoUniqueID and DemoPIN are the demo credentials the login screen can
// pre-fill.
const (
	DemoUniqueID = "CLM-1001"
	DemoPIN      = "442910"
)

// DemoClaimant returns the demo settlement record.
func DemoClaimant() claim.Claimant {
	c, err := claim.NewClaimant(DemoUniqueID, "Jane", "Doe",
		decimal.NewFromFloat(1500.00),
		decimal.NewFromFloat(500.00),
		decimal.NewFromFloat(50.00),
		decimal.NewFromFloat(950.00),
	)
	if err != nil {
		// The demo figures are constants; a failure here is a programming error.
		panic(err)
	}
	return c
}

// NewMockVerifier builds a verifier with the demo record in its roster.
func NewMockVerifier(delay time.Duration) *MockVerifier {
	demo := DemoClaimant()
	return &MockVerifier{
		Delay:  delay,
		Roster: map[string]claim.Claimant{demo.UniqueID: demo},
		Accept: true,
	}
}

// Verify resolves the credentials after the configured delay.
func (v *MockVerifier) Verify(ctx context.Context, uniqueID, pin string) (claim.Claimant, error) {
	logger.Debug("Verifying claimant %s", uniqueID)

	if v.Delay > 0 {
		timer := time.NewTimer(v.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return claim.Claimant{}, ctx.Err()
		}
	}

	if c, ok := v.Roster[uniqueID]; ok {
		return c, nil
	}
	if v.Accept {
		// Accept any credential pair but resolve to the demo figures under
		// the presented ID, mirroring the original portal's behavior.
		demo := DemoClaimant()
		c, err := claim.NewClaimant(uniqueID, demo.FirstName, demo.LastName,
			demo.SettlementAmount, demo.AttorneyFees, demo.AdminFees, demo.NetAmount)
		if err != nil {
			return claim.Claimant{}, err
		}
		return c, nil
	}
	return claim.Claimant{}, ErrUnknownClaimant
}
