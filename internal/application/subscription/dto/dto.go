package dto

import "time"

type SubscriptionDTO struct {
	ID                     uint       `json:"id"`
	UserID                 uint       `json:"user_id"`
	ProductID              uint       `json:"product_id"`
	Plan                   string     `json:"plan"`
	Status                 string     `json:"status"`
	Amount                 float64    `json:"amount"`
	Currency               string     `json:"currency"`
	BillingCycle           string     `json:"billing_cycle"`
	StartDate              time.Time  `json:"start_date"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	TrialEndDate           *time.Time `json:"trial_end_date,omitempty"`
	CanceledAt             *time.Time `json:"canceled_at,omitempty"`
	PaymentProvider        string     `json:"payment_provider"`
	ProviderSubscriptionID *string    `json:"provider_subscription_id,omitempty"`
	ProviderCustomerID     *string    `json:"provider_customer_id,omitempty"`
	MaxUsers               int        `json:"max_users"`
	MaxProjects            *int       `json:"max_projects,omitempty"`
	Features               *string    `json:"features,omitempty"`
	AutoRenew              bool       `json:"auto_renew"`
	IsActive               bool       `json:"is_active"`
	IsInTrial              bool       `json:"is_in_trial"`
	DaysRemaining          int        `json:"days_remaining"`
	ProductName            *string    `json:"product_name,omitempty"`
	ProductSlug            *string    `json:"product_slug,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

type SubscriptionEventDTO struct {
	ID             uint                   `json:"id"`
	SubscriptionID uint                   `json:"subscription_id"`
	EventType      string                 `json:"event_type"`
	Description    string                 `json:"description"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

type SubscriptionWithEventsDTO struct {
	SubscriptionDTO
	Events []*SubscriptionEventDTO `json:"events"`
}

// SubscriptionListItemDTO is the dashboard-facing list shape with formatted
// dates and product context.
type SubscriptionListItemDTO struct {
	ID            uint    `json:"id"`
	Plan          string  `json:"plan"`
	Status        string  `json:"status"`
	StartDate     *string `json:"startDate"`
	EndDate       *string `json:"endDate"`
	RemainingDays int     `json:"remainingDays"`
	AutoRenew     bool    `json:"autoRenew"`
	LastEventDate *string `json:"lastEventDate"`
	LastEventType *string `json:"lastEventType"`
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ProductSlug   string  `json:"product_slug"`
	ProductLogo   *string `json:"product_logo"`
}

type CreateSubscriptionRequest struct {
	UserID                 uint       `json:"user_id"`
	ProductID              uint       `json:"product_id" binding:"required"`
	Plan                   string     `json:"plan" binding:"required,oneof=starter professional enterprise"`
	Amount                 *float64   `json:"amount"`
	Currency               string     `json:"currency"`
	BillingCycle           string     `json:"billing_cycle" binding:"omitempty,oneof=monthly quarterly yearly"`
	StartDate              *time.Time `json:"start_date"`
	EndDate                *time.Time `json:"end_date"`
	TrialEndDate           *time.Time `json:"trial_end_date"`
	PaymentProvider        string     `json:"payment_provider" binding:"omitempty,oneof=phonepe paypal stripe manual"`
	ProviderSubscriptionID *string    `json:"provider_subscription_id"`
	ProviderCustomerID     *string    `json:"provider_customer_id"`
	MaxUsers               *int       `json:"max_users" binding:"omitempty,min=1"`
	MaxProjects            *int       `json:"max_projects"`
	Features               *string    `json:"features"`
	AutoRenew              *bool      `json:"auto_renew"`
}

type UpdateSubscriptionRequest struct {
	Plan                   *string    `json:"plan" binding:"omitempty,oneof=starter professional enterprise"`
	Status                 *string    `json:"status" binding:"omitempty,oneof=active canceled past_due trialing incomplete unpaid expired"`
	Amount                 *float64   `json:"amount" binding:"omitempty,min=0"`
	Currency               *string    `json:"currency" binding:"omitempty,len=3"`
	BillingCycle           *string    `json:"billing_cycle" binding:"omitempty,oneof=monthly quarterly yearly"`
	StartDate              *time.Time `json:"start_date"`
	EndDate                *time.Time `json:"end_date"`
	TrialEndDate           *time.Time `json:"trial_end_date"`
	PaymentProvider        *string    `json:"payment_provider" binding:"omitempty,oneof=phonepe paypal stripe manual"`
	ProviderSubscriptionID *string    `json:"provider_subscription_id"`
	ProviderCustomerID     *string    `json:"provider_customer_id"`
	MaxUsers               *int       `json:"max_users" binding:"omitempty,min=1"`
	MaxProjects            *int       `json:"max_projects"`
	Features               *string    `json:"features"`
	AutoRenew              *bool      `json:"auto_renew"`
}

type ChangePlanRequest struct {
	NewPlan string `json:"new_plan" binding:"required,oneof=starter professional enterprise"`
	Prorate *bool  `json:"prorate"`
}

type CancelSubscriptionRequest struct {
	EndImmediately bool    `json:"end_immediately"`
	Reason         *string `json:"reason"`
}
