package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingCycle_Days(t *testing.T) {
	assert.Equal(t, 30, BillingCycleMonthly.Days())
	assert.Equal(t, 90, BillingCycleQuarterly.Days())
	assert.Equal(t, 365, BillingCycleYearly.Days())
}

func TestBillingCycle_NextEndDate(t *testing.T) {
	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), BillingCycleMonthly.NextEndDate(from))
	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), BillingCycleQuarterly.NextEndDate(from))
	assert.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), BillingCycleYearly.NextEndDate(from))
}

func TestNewBillingCycle(t *testing.T) {
	bc, err := NewBillingCycle("monthly")
	require.NoError(t, err)
	assert.Equal(t, BillingCycleMonthly, bc)

	_, err = NewBillingCycle("weekly")
	assert.Error(t, err)
}
