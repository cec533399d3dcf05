package dto

import (
	"time"

	"subhub/internal/domain/catalog"
	"subhub/internal/domain/subscription"
	vo "subhub/internal/domain/subscription/valueobjects"
)

// displayDateLayout is the human-readable date format used by the dashboard.
const displayDateLayout = "January 02, 2006"

func formatDisplayDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(displayDateLayout)
	return &formatted
}

// ToSubscriptionDTO converts a subscription entity. The product is optional
// context for name/slug enrichment.
func ToSubscriptionDTO(sub *subscription.Subscription, product *catalog.Product) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	d := &SubscriptionDTO{
		ID:                     sub.ID(),
		UserID:                 sub.UserID(),
		ProductID:              sub.ProductID(),
		Plan:                   sub.Plan().String(),
		Status:                 sub.Status().String(),
		Amount:                 sub.Amount(),
		Currency:               sub.Currency(),
		BillingCycle:           sub.BillingCycle().String(),
		StartDate:              sub.StartDate(),
		EndDate:                sub.EndDate(),
		TrialEndDate:           sub.TrialEndDate(),
		CanceledAt:             sub.CanceledAt(),
		PaymentProvider:        sub.PaymentProvider().String(),
		ProviderSubscriptionID: sub.ProviderSubscriptionID(),
		ProviderCustomerID:     sub.ProviderCustomerID(),
		MaxUsers:               sub.MaxUsers(),
		MaxProjects:            sub.MaxProjects(),
		Features:               sub.Features(),
		AutoRenew:              sub.AutoRenew(),
		IsActive:               sub.IsActive(),
		IsInTrial:              sub.IsInTrial(),
		DaysRemaining:          sub.DaysRemaining(),
		CreatedAt:              sub.CreatedAt(),
		UpdatedAt:              sub.UpdatedAt(),
	}

	if product != nil {
		name := product.Name()
		slug := product.Slug()
		d.ProductName = &name
		d.ProductSlug = &slug
	}

	return d
}

func ToSubscriptionEventDTO(event *subscription.Event) *SubscriptionEventDTO {
	if event == nil {
		return nil
	}

	return &SubscriptionEventDTO{
		ID:             event.ID(),
		SubscriptionID: event.SubscriptionID(),
		EventType:      event.EventType(),
		Description:    event.Description(),
		Metadata:       event.Metadata(),
		CreatedAt:      event.CreatedAt(),
	}
}

func ToSubscriptionEventDTOs(events []*subscription.Event) []*SubscriptionEventDTO {
	dtos := make([]*SubscriptionEventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, ToSubscriptionEventDTO(event))
	}
	return dtos
}

// ToSubscriptionListItemDTO builds the dashboard row for one subscription.
func ToSubscriptionListItemDTO(
	sub *subscription.Subscription,
	product *catalog.Product,
	lastEvent *subscription.Event,
) *SubscriptionListItemDTO {
	item := &SubscriptionListItemDTO{
		ID:          sub.ID(),
		Plan:        sub.Plan().DisplayName(),
		Status:      sub.Status().String(),
		EndDate:     formatDisplayDate(sub.EndDate()),
		AutoRenew:   sub.AutoRenew(),
		ProductID:   sub.ProductID(),
		ProductName: "Unknown Product",
		ProductSlug: "unknown",
	}

	start := sub.StartDate()
	item.StartDate = formatDisplayDate(&start)

	if sub.Status() == vo.StatusActive {
		item.RemainingDays = sub.DaysRemaining()
	}

	if product != nil {
		item.ProductName = product.Name()
		item.ProductSlug = product.Slug()
		item.ProductLogo = product.LogoURL()
	}

	if lastEvent != nil {
		created := lastEvent.CreatedAt()
		item.LastEventDate = formatDisplayDate(&created)
		eventType := lastEvent.EventType()
		item.LastEventType = &eventType
	}

	return item
}
