package backend

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/poweradmin/settleport/internal/claim"
	"github.com/stretchr/testify/require"
)

func TestMockVerifier_KnownClaimant(t *testing.T) {
	v := NewMockVerifier(0)

	c, err := v.Verify(context.Background(), DemoUniqueID, DemoPIN)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", c.FullName())
	require.Equal(t, "950.00", c.NetAmount.StringFixed(2))
}

func TestMockVerifier_AcceptsAnyCredentials(t *testing.T) {
	v := NewMockVerifier(0)

	c, err := v.Verify(context.Background(), "CLM-9999", "000000")
	require.NoError(t, err)
	require.Equal(t, "CLM-9999", c.UniqueID)
	// Figures still satisfy the accounting invariant
	require.True(t, c.NetAmount.Equal(c.SettlementAmount.Sub(c.AttorneyFees).Sub(c.AdminFees)))
}

func TestMockVerifier_StrictRosterRejects(t *testing.T) {
	v := NewMockVerifier(0)
	v.Accept = false

	_, err := v.Verify(context.Background(), "CLM-9999", "000000")
	require.ErrorIs(t, err, ErrUnknownClaimant)
}

func TestMockVerifier_HonorsCancellation(t *testing.T) {
	v := NewMockVerifier(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := v.Verify(ctx, DemoUniqueID, DemoPIN)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second, "cancellation should not wait out the full delay")
}

func TestMockGateway_IssuesReference(t *testing.T) {
	g := NewMockGateway(0)

	ref, err := g.Submit(context.Background(), DemoClaimant(), claim.PaymentDetail{
		Method:            claim.MethodZelle,
		AccountIdentifier: "user@example.com",
		Confirmed:         true,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "REF-"))
}

func TestMockGateway_FailNext(t *testing.T) {
	g := NewMockGateway(0)
	boom := errors.New("rail unavailable")
	g.FailNext = boom

	_, err := g.Submit(context.Background(), DemoClaimant(), claim.PaymentDetail{Method: claim.MethodVenmo})
	require.ErrorIs(t, err, boom)

	// Next submission succeeds: the failure is one-shot
	_, err = g.Submit(context.Background(), DemoClaimant(), claim.PaymentDetail{Method: claim.MethodVenmo})
	require.NoError(t, err)
}

func TestReceipt_MarkdownAndWrite(t *testing.T) {
	r := Receipt{
		Claimant:     DemoClaimant(),
		Payment:      claim.PaymentDetail{Method: claim.MethodCheck, AccountIdentifier: "123 Main St, Miami, Florida 33101", Confirmed: true},
		Jurisdiction: "Florida",
		Reference:    "REF-abcd1234",
		IssuedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	md := r.Markdown()
	require.Contains(t, md, "Jane Doe")
	require.Contains(t, md, "$950.00")
	require.Contains(t, md, "123 Main St, Miami, Florida 33101")
	require.Contains(t, md, "REF-abcd1234")
	require.Contains(t, md, "Mailed via USPS (7-10 days)")

	dir := t.TempDir()
	path, err := r.Write(dir)
	require.NoError(t, err)
	require.FileExists(t, path)
	require.Contains(t, path, "receipt-jane-doe-2026-03-01.md")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, md, string(data))
}
