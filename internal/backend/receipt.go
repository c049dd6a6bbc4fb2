package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/logger"
)

// Receipt is the confirmation document produced at the terminal step.
type Receipt struct {
	Claimant     claim.Claimant
	Payment      claim.PaymentDetail
	Jurisdiction string
	Reference    string
	IssuedAt     time.Time
}

// Markdown renders the receipt as a markdown document.
func (r Receipt) Markdown() string {
	var b strings.Builder

	b.WriteString("# Settlement Payment Confirmation\n\n")
	b.WriteString("Power Admin Settlement Services\n\n")
	fmt.Fprintf(&b, "**Claimant:** %s  \n", r.Claimant.FullName())
	fmt.Fprintf(&b, "**Claimant ID:** %s  \n", r.Claimant.UniqueID)
	fmt.Fprintf(&b, "**Jurisdiction:** %s  \n", r.Jurisdiction)
	fmt.Fprintf(&b, "**Date:** %s\n\n", r.IssuedAt.Format("January 2, 2006"))

	b.WriteString("## Accounting\n\n")
	b.WriteString("| Item | Amount |\n|---|---|\n")
	fmt.Fprintf(&b, "| Gross Settlement Amount | %s |\n", claim.FormatUSD(r.Claimant.SettlementAmount))
	fmt.Fprintf(&b, "| Less: Attorney Fees | (%s) |\n", claim.FormatUSD(r.Claimant.AttorneyFees))
	fmt.Fprintf(&b, "| Less: Admin Costs | (%s) |\n", claim.FormatUSD(r.Claimant.AdminFees))
	fmt.Fprintf(&b, "| **Net Payment** | **%s** |\n\n", claim.FormatUSD(r.Claimant.NetAmount))

	b.WriteString("## Disbursement\n\n")
	fmt.Fprintf(&b, "| Method | %s |\n|---|---|\n", r.Payment.Method.DisplayName())
	fmt.Fprintf(&b, "| Account | %s |\n", r.Payment.AccountIdentifier)
	fmt.Fprintf(&b, "| Delivery | %s |\n", r.Payment.Method.DeliveryEstimate())
	fmt.Fprintf(&b, "| Reference | %s |\n", r.Reference)

	return b.String()
}

// Write saves the receipt under dir with a slugged filename and returns
// the path. An empty dir means the current working directory.
func (r Receipt) Write(dir string) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating receipt directory: %w", err)
		}
	}

	name := slug.Make(r.Claimant.FullName())
	if name == "" {
		name = "claimant"
	}
	path := filepath.Join(dir, fmt.Sprintf("receipt-%s-%s.md", name, r.IssuedAt.Format("2006-01-02")))

	logger.Debug("Writing receipt to %s", path)
	if err := os.WriteFile(path, []byte(r.Markdown()), 0644); err != nil {
		return "", fmt.Errorf("writing receipt: %w", err)
	}
	return path, nil
}
