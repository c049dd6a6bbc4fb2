// Package claim holds the domain model shared between wizard steps: the
// claimant record produced by verification, the payment detail produced by
// the payment step, and the release signature.
package claim

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Claimant is the settlement record for one claimant. All monetary values
// are USD with two-decimal precision. Created once at login verification
// and immutable afterward.
type Claimant struct {
	UniqueID  string `json:"unique_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	SettlementAmount decimal.Decimal `json:"settlement_amount"`
	AttorneyFees     decimal.Decimal `json:"attorney_fees"`
	AdminFees        decimal.Decimal `json:"admin_fees"`
	NetAmount        decimal.Decimal `json:"net_amount"`
}

// NewClaimant builds a Claimant and enforces the accounting invariant
// net = settlement - attorney - admin, with every figure non-negative.
// Amounts are normalized to two decimal places.
func NewClaimant(uniqueID, firstName, lastName string, settlement, attorney, admin, net decimal.Decimal) (Claimant, error) {
	if uniqueID == "" {
		return Claimant{}, fmt.Errorf("claimant unique ID cannot be empty")
	}

	settlement = settlement.Round(2)
	attorney = attorney.Round(2)
	admin = admin.Round(2)
	net = net.Round(2)

	for _, amt := range []decimal.Decimal{settlement, attorney, admin, net} {
		if amt.IsNegative() {
			return Claimant{}, fmt.Errorf("claimant amounts cannot be negative")
		}
	}

	if want := settlement.Sub(attorney).Sub(admin); !net.Equal(want) {
		return Claimant{}, fmt.Errorf("net amount %s does not equal settlement %s less fees %s + %s",
			net.StringFixed(2), settlement.StringFixed(2), attorney.StringFixed(2), admin.StringFixed(2))
	}

	return Claimant{
		UniqueID:         uniqueID,
		FirstName:        firstName,
		LastName:         lastName,
		SettlementAmount: settlement,
		AttorneyFees:     attorney,
		AdminFees:        admin,
		NetAmount:        net,
	}, nil
}

// FullName returns the claimant's display name.
func (c Claimant) FullName() string {
	return c.FirstName + " " + c.LastName
}

// FormatUSD renders a decimal amount as a dollar string, e.g. "$1,500.00".
func FormatUSD(d decimal.Decimal) string {
	s := d.Round(2).StringFixed(2)

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	// Insert thousands separators into the integer part
	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]
	var grouped []byte
	for i, ch := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, ch)
	}

	out := "$" + string(grouped) + frac
	if neg {
		out = "-" + out
	}
	return out
}

// ReleaseSignature is the typed legal signature collected at the release
// step. It lives in the wizard state for the session only.
type ReleaseSignature struct {
	SignatureText string    `json:"signature_text"`
	Agreed        bool      `json:"agreed"`
	SignedAt      time.Time `json:"signed_at"`
}
