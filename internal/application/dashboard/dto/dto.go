package dto

// SubscriptionCountsDTO breaks a user's subscriptions down by plan.
type SubscriptionCountsDTO struct {
	Active       int `json:"active"`
	Starter      int `json:"starter"`
	Professional int `json:"professional"`
	Enterprise   int `json:"enterprise"`
}

// BillingInfoDTO carries the current billing amount and the next billing
// date of the most recent active subscription.
type BillingInfoDTO struct {
	Current         float64 `json:"current"`
	NextBillingDate *string `json:"nextBillingDate"`
}

type DashboardStatsDTO struct {
	TotalSubscriptions          int                   `json:"totalSubscriptions"`
	ActiveSubscriptions         int                   `json:"activeSubscriptions"`
	CanceledSubscriptions       int                   `json:"canceledSubscriptions"`
	AverageSubscriptionDuration int                   `json:"averageSubscriptionDuration"`
	Subscriptions               SubscriptionCountsDTO `json:"subscriptions"`
	Billing                     BillingInfoDTO        `json:"billing"`
}

type DashboardResponse struct {
	Stats *DashboardStatsDTO `json:"stats"`
}
