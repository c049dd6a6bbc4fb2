package claim

import "fmt"

// PaymentMethod is the closed set of disbursement methods offered to a
// claimant.
type PaymentMethod string

const (
	MethodZelle   PaymentMethod = "ZELLE"
	MethodVenmo   PaymentMethod = "VENMO"
	MethodPayPal  PaymentMethod = "PAYPAL"
	MethodCashApp PaymentMethod = "CASHAPP"
	MethodCheck   PaymentMethod = "CHECK"
)

// PaymentMethods lists every method in display order.
var PaymentMethods = []PaymentMethod{
	MethodZelle,
	MethodVenmo,
	MethodPayPal,
	MethodCashApp,
	MethodCheck,
}

// ParsePaymentMethod validates a raw method string against the closed enum.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range PaymentMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment method: %q", s)
}

// Electronic reports whether the method is paid to an account identifier
// (phone, email, handle) rather than a mailing address.
func (m PaymentMethod) Electronic() bool {
	return m != MethodCheck
}

// DisplayName returns the human-readable method name.
func (m PaymentMethod) DisplayName() string {
	switch m {
	case MethodZelle:
		return "Zelle"
	case MethodVenmo:
		return "Venmo"
	case MethodPayPal:
		return "PayPal"
	case MethodCashApp:
		return "Cash App"
	case MethodCheck:
		return "Paper Check"
	default:
		return string(m)
	}
}

// IdentifierLabel returns the prompt for the method's account identifier.
func (m PaymentMethod) IdentifierLabel() string {
	switch m {
	case MethodZelle:
		return "Mobile Number or Email"
	case MethodVenmo:
		return "Venmo Handle (@username)"
	case MethodPayPal:
		return "PayPal Email"
	case MethodCashApp:
		return "Cashtag ($cashtag)"
	case MethodCheck:
		return "Mailing Address"
	default:
		return "Account Identifier"
	}
}

// DeliveryEstimate returns the expected disbursement window.
func (m PaymentMethod) DeliveryEstimate() string {
	if m == MethodCheck {
		return "Mailed via USPS (7-10 days)"
	}
	return "Instant Transfer (1-3 days)"
}

// PaymentDetail is the disbursement instruction produced by the payment
// step. Immutable once created; consumed by the confirmation step.
type PaymentDetail struct {
	Method            PaymentMethod `json:"method"`
	AccountIdentifier string        `json:"account_identifier"`
	Confirmed         bool          `json:"confirmed"`
}

// ComposeMailingAddress builds the single-line CHECK account identifier:
// "{address}, {city}, {state} {zip}".
func ComposeMailingAddress(address, city, state, zip string) string {
	return fmt.Sprintf("%s, %s, %s %s", address, city, state, zip)
}
