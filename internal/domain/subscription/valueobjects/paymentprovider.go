package valueobjects

import "fmt"

// PaymentProvider identifies the external processor a subscription bills
// through. Billing itself happens outside this system; the provider and its
// ids are recorded for reconciliation.
type PaymentProvider string

const (
	ProviderPhonePe PaymentProvider = "phonepe"
	ProviderPayPal  PaymentProvider = "paypal"
	ProviderStripe  PaymentProvider = "stripe"
	ProviderManual  PaymentProvider = "manual"
)

func (p PaymentProvider) String() string {
	return string(p)
}

func (p PaymentProvider) IsValid() bool {
	switch p {
	case ProviderPhonePe, ProviderPayPal, ProviderStripe, ProviderManual:
		return true
	}
	return false
}

// NewPaymentProvider creates a PaymentProvider from a string.
func NewPaymentProvider(value string) (PaymentProvider, error) {
	p := PaymentProvider(value)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid payment provider: %s", value)
	}
	return p, nil
}
