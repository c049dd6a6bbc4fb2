package tui

import "github.com/poweradmin/settleport/internal/validate"

// CredentialsSubmittedMsg is sent when the claimant submits their login form.
type CredentialsSubmittedMsg struct {
	UniqueID string
	PIN      string
}

// VerifiedMsg is sent when identity verification succeeds.
type VerifiedMsg struct{}

// VerifyFailedMsg is sent when identity verification is rejected or fails.
type VerifyFailedMsg struct {
	Err error
}

// StateChosenMsg is sent when the claimant confirms their state of residence.
type StateChosenMsg struct {
	State string
}

// StatementAcknowledgedMsg is sent when the claimant acknowledges the
// settlement statement.
type StatementAcknowledgedMsg struct{}

// ReleaseSignedMsg is sent when the claimant submits the release form.
type ReleaseSignedMsg struct {
	Signature string
	Agreed    bool
	Scrolled  bool
}

// PaymentFormSubmittedMsg is sent when the claimant submits the payment form.
type PaymentFormSubmittedMsg struct {
	Form validate.PaymentForm
}

// PaymentAcceptedMsg is sent when the payment gateway accepts the
// disbursement instruction.
type PaymentAcceptedMsg struct {
	Reference string
}

// PaymentFailedMsg is sent when payment submission is rejected or times out.
type PaymentFailedMsg struct {
	Err error
}

// SaveReceiptMsg is sent when the claimant asks to save their confirmation
// receipt to disk.
type SaveReceiptMsg struct{}

// ReceiptSavedMsg is sent when the receipt file has been written.
type ReceiptSavedMsg struct {
	Path string
}

// ReceiptSaveFailedMsg is sent when writing the receipt file fails.
type ReceiptSaveFailedMsg struct {
	Err error
}
