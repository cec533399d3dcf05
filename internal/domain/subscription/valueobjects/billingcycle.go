package valueobjects

import (
	"fmt"
	"time"
)

// BillingCycle represents how often a subscription renews.
type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
)

func (b BillingCycle) String() string {
	return string(b)
}

func (b BillingCycle) IsValid() bool {
	return b == BillingCycleMonthly || b == BillingCycleQuarterly || b == BillingCycleYearly
}

// Days returns the fixed period length of the cycle.
func (b BillingCycle) Days() int {
	switch b {
	case BillingCycleMonthly:
		return 30
	case BillingCycleQuarterly:
		return 90
	case BillingCycleYearly:
		return 365
	}
	return 0
}

// NextEndDate computes the period end for a period starting at from.
func (b BillingCycle) NextEndDate(from time.Time) time.Time {
	return from.AddDate(0, 0, b.Days())
}

// NewBillingCycle creates a BillingCycle from a string.
func NewBillingCycle(value string) (BillingCycle, error) {
	b := BillingCycle(value)
	if !b.IsValid() {
		return "", fmt.Errorf("invalid billing cycle: %s, must be 'monthly', 'quarterly', or 'yearly'", value)
	}
	return b, nil
}
