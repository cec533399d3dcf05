package subscription

import (
	"fmt"
	"time"

	sharedvo "subhub/internal/domain/shared/valueobjects"
	vo "subhub/internal/domain/subscription/valueobjects"
)

// ReactivationWindowDays is how long after cancellation a subscription may
// still be reactivated.
const ReactivationWindowDays = 30

// Subscription represents the subscription aggregate root. It binds one user
// to one product at a plan tier and carries the billing schedule.
type Subscription struct {
	id                     uint
	userID                 uint
	productID              uint
	plan                   sharedvo.Plan
	status                 vo.Status
	amount                 float64
	currency               string
	billingCycle           vo.BillingCycle
	startDate              time.Time
	endDate                *time.Time
	trialEndDate           *time.Time
	canceledAt             *time.Time
	paymentProvider        vo.PaymentProvider
	providerSubscriptionID *string
	providerCustomerID     *string
	maxUsers               int
	maxProjects            *int
	features               *string
	autoRenew              bool
	createdAt              time.Time
	updatedAt              time.Time
}

// NewSubscription creates an active subscription starting at startDate. When
// endDate is nil it is derived from the billing cycle.
func NewSubscription(
	userID, productID uint,
	plan sharedvo.Plan,
	amount float64,
	currency string,
	billingCycle vo.BillingCycle,
	startDate time.Time,
	endDate *time.Time,
) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if productID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("invalid plan: %s", plan)
	}
	if amount < 0 {
		return nil, fmt.Errorf("amount cannot be negative")
	}
	if !billingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", billingCycle)
	}
	if currency == "" {
		currency = "INR"
	}
	if endDate == nil {
		derived := billingCycle.NextEndDate(startDate)
		endDate = &derived
	} else if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	now := time.Now()
	return &Subscription{
		userID:          userID,
		productID:       productID,
		plan:            plan,
		status:          vo.StatusActive,
		amount:          amount,
		currency:        currency,
		billingCycle:    billingCycle,
		startDate:       startDate,
		endDate:         endDate,
		paymentProvider: vo.ProviderPhonePe,
		maxUsers:        1,
		autoRenew:       true,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence.
func ReconstructSubscription(
	id, userID, productID uint,
	plan sharedvo.Plan,
	status vo.Status,
	amount float64,
	currency string,
	billingCycle vo.BillingCycle,
	startDate time.Time,
	endDate, trialEndDate, canceledAt *time.Time,
	paymentProvider vo.PaymentProvider,
	providerSubscriptionID, providerCustomerID *string,
	maxUsers int,
	maxProjects *int,
	features *string,
	autoRenew bool,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if productID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("invalid plan: %s", plan)
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	if !billingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", billingCycle)
	}

	return &Subscription{
		id:                     id,
		userID:                 userID,
		productID:              productID,
		plan:                   plan,
		status:                 status,
		amount:                 amount,
		currency:               currency,
		billingCycle:           billingCycle,
		startDate:              startDate,
		endDate:                endDate,
		trialEndDate:           trialEndDate,
		canceledAt:             canceledAt,
		paymentProvider:        paymentProvider,
		providerSubscriptionID: providerSubscriptionID,
		providerCustomerID:     providerCustomerID,
		maxUsers:               maxUsers,
		maxProjects:            maxProjects,
		features:               features,
		autoRenew:              autoRenew,
		createdAt:              createdAt,
		updatedAt:              updatedAt,
	}, nil
}

// ID returns the subscription ID
func (s *Subscription) ID() uint {
	return s.id
}

// UserID returns the owning user ID
func (s *Subscription) UserID() uint {
	return s.userID
}

// ProductID returns the subscribed product ID
func (s *Subscription) ProductID() uint {
	return s.productID
}

// Plan returns the plan tier
func (s *Subscription) Plan() sharedvo.Plan {
	return s.plan
}

// Status returns the subscription status
func (s *Subscription) Status() vo.Status {
	return s.status
}

// Amount returns the billed amount per cycle
func (s *Subscription) Amount() float64 {
	return s.amount
}

// Currency returns the billing currency
func (s *Subscription) Currency() string {
	return s.currency
}

// BillingCycle returns the billing cycle
func (s *Subscription) BillingCycle() vo.BillingCycle {
	return s.billingCycle
}

// StartDate returns when the subscription started
func (s *Subscription) StartDate() time.Time {
	return s.startDate
}

// EndDate returns when the current period ends, nil for open-ended
func (s *Subscription) EndDate() *time.Time {
	return s.endDate
}

// TrialEndDate returns when the trial ends, if any
func (s *Subscription) TrialEndDate() *time.Time {
	return s.trialEndDate
}

// CanceledAt returns when cancellation was requested
func (s *Subscription) CanceledAt() *time.Time {
	return s.canceledAt
}

// PaymentProvider returns the external payment provider
func (s *Subscription) PaymentProvider() vo.PaymentProvider {
	return s.paymentProvider
}

// ProviderSubscriptionID returns the provider-side subscription id
func (s *Subscription) ProviderSubscriptionID() *string {
	return s.providerSubscriptionID
}

// ProviderCustomerID returns the provider-side customer id
func (s *Subscription) ProviderCustomerID() *string {
	return s.providerCustomerID
}

// MaxUsers returns the seat limit
func (s *Subscription) MaxUsers() int {
	return s.maxUsers
}

// MaxProjects returns the project limit, nil for unlimited
func (s *Subscription) MaxProjects() *int {
	return s.maxProjects
}

// Features returns the serialized feature blob
func (s *Subscription) Features() *string {
	return s.features
}

// AutoRenew returns the auto-renew setting
func (s *Subscription) AutoRenew() bool {
	return s.autoRenew
}

// CreatedAt returns when the subscription was created
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the subscription was last updated
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsActive reports whether the subscription currently grants access: the
// status must allow service use and the period must not have lapsed.
func (s *Subscription) IsActive() bool {
	if !s.status.CanUseService() {
		return false
	}
	return s.endDate == nil || s.endDate.After(time.Now())
}

// IsInTrial reports whether the subscription is inside its trial period.
func (s *Subscription) IsInTrial() bool {
	return s.status == vo.StatusTrialing &&
		s.trialEndDate != nil &&
		s.trialEndDate.After(time.Now())
}

// DaysRemaining returns whole days until the period end, 0 when open-ended
// or already lapsed.
func (s *Subscription) DaysRemaining() int {
	if s.endDate == nil {
		return 0
	}
	days := int(time.Until(*s.endDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Cancel records a cancellation request. The cancellation timestamp is always
// set; when endImmediately is true the subscription is terminated on the
// spot, otherwise it keeps its status and lapses at the existing end date.
func (s *Subscription) Cancel(endImmediately bool) {
	now := time.Now()
	s.canceledAt = &now
	if endImmediately {
		s.status = vo.StatusCanceled
		s.endDate = &now
	}
	s.updatedAt = now
}

// CanReactivate reports whether the subscription is canceled and still inside
// the reactivation window.
func (s *Subscription) CanReactivate() bool {
	if s.status != vo.StatusCanceled || s.canceledAt == nil {
		return false
	}
	deadline := s.canceledAt.AddDate(0, 0, ReactivationWindowDays)
	return time.Now().Before(deadline)
}

// Reactivate restores a canceled subscription. The new period runs from now
// for one billing cycle.
func (s *Subscription) Reactivate() error {
	if s.status != vo.StatusCanceled {
		return fmt.Errorf("cannot reactivate subscription with status %s", s.status)
	}
	if !s.CanReactivate() {
		return fmt.Errorf("reactivation window of %d days has passed", ReactivationWindowDays)
	}

	now := time.Now()
	endDate := s.billingCycle.NextEndDate(now)
	s.status = vo.StatusActive
	s.canceledAt = nil
	s.endDate = &endDate
	s.updatedAt = now
	return nil
}

// ChangePlan moves the subscription to a new tier. A nil amount keeps the
// current amount. Status, dates and billing cycle are untouched.
func (s *Subscription) ChangePlan(newPlan sharedvo.Plan, newAmount *float64) error {
	if !newPlan.IsValid() {
		return fmt.Errorf("invalid plan: %s", newPlan)
	}
	s.plan = newPlan
	if newAmount != nil {
		if *newAmount < 0 {
			return fmt.Errorf("amount cannot be negative")
		}
		s.amount = *newAmount
	}
	s.updatedAt = time.Now()
	return nil
}

// Update carries the partial-update fields for a generic subscription
// update. Nil fields are left untouched.
type Update struct {
	Plan                   *sharedvo.Plan
	Status                 *vo.Status
	Amount                 *float64
	Currency               *string
	BillingCycle           *vo.BillingCycle
	StartDate              *time.Time
	EndDate                *time.Time
	TrialEndDate           *time.Time
	PaymentProvider        *vo.PaymentProvider
	ProviderSubscriptionID *string
	ProviderCustomerID     *string
	MaxUsers               *int
	MaxProjects            *int
	Features               *string
	AutoRenew              *bool
}

// Apply applies a generic partial update. Supplied fields overwrite,
// unspecified fields are untouched.
func (s *Subscription) Apply(update Update) error {
	if update.Plan != nil {
		if !update.Plan.IsValid() {
			return fmt.Errorf("invalid plan: %s", *update.Plan)
		}
		s.plan = *update.Plan
	}
	if update.Status != nil {
		if !vo.ValidStatuses[*update.Status] {
			return fmt.Errorf("invalid subscription status: %s", *update.Status)
		}
		if *update.Status != s.status && !s.status.CanTransitionTo(*update.Status) {
			return fmt.Errorf("cannot transition subscription from %s to %s", s.status, *update.Status)
		}
		s.status = *update.Status
	}
	if update.Amount != nil {
		if *update.Amount < 0 {
			return fmt.Errorf("amount cannot be negative")
		}
		s.amount = *update.Amount
	}
	if update.Currency != nil {
		s.currency = *update.Currency
	}
	if update.BillingCycle != nil {
		if !update.BillingCycle.IsValid() {
			return fmt.Errorf("invalid billing cycle: %s", *update.BillingCycle)
		}
		s.billingCycle = *update.BillingCycle
	}
	if update.StartDate != nil {
		s.startDate = *update.StartDate
	}
	if update.EndDate != nil {
		s.endDate = update.EndDate
	}
	if update.TrialEndDate != nil {
		s.trialEndDate = update.TrialEndDate
	}
	if update.PaymentProvider != nil {
		if !update.PaymentProvider.IsValid() {
			return fmt.Errorf("invalid payment provider: %s", *update.PaymentProvider)
		}
		s.paymentProvider = *update.PaymentProvider
	}
	if update.ProviderSubscriptionID != nil {
		s.providerSubscriptionID = update.ProviderSubscriptionID
	}
	if update.ProviderCustomerID != nil {
		s.providerCustomerID = update.ProviderCustomerID
	}
	if update.MaxUsers != nil {
		if *update.MaxUsers < 1 {
			return fmt.Errorf("max users must be at least 1")
		}
		s.maxUsers = *update.MaxUsers
	}
	if update.MaxProjects != nil {
		s.maxProjects = update.MaxProjects
	}
	if update.Features != nil {
		s.features = update.Features
	}
	if update.AutoRenew != nil {
		s.autoRenew = *update.AutoRenew
	}
	s.updatedAt = time.Now()
	return nil
}

// StartTrial puts a new subscription into trialing until trialEnd.
func (s *Subscription) StartTrial(trialEnd time.Time) error {
	if !trialEnd.After(time.Now()) {
		return fmt.Errorf("trial end date must be in the future")
	}
	s.status = vo.StatusTrialing
	s.trialEndDate = &trialEnd
	s.updatedAt = time.Now()
	return nil
}
