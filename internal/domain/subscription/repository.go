package subscription

import (
	"context"
)

// ListFilter holds filtering options for listing subscriptions.
type ListFilter struct {
	UserID    *uint
	ProductID *uint
	Status    *string
	Plan      *string
	Page      int
	PageSize  int
}

// StatusCount is a per-status subscription count for one product.
type StatusCount struct {
	Status string
	Count  int64
}

// Repository defines the interface for subscription data operations
type Repository interface {
	// Create creates a new subscription
	Create(ctx context.Context, sub *Subscription) error

	// GetByID retrieves a subscription by ID
	GetByID(ctx context.Context, id uint) (*Subscription, error)

	// Update updates an existing subscription
	Update(ctx context.Context, sub *Subscription) error

	// List retrieves a paginated list of subscriptions
	List(ctx context.Context, filter ListFilter) ([]*Subscription, int64, error)

	// ListByUserID retrieves all subscriptions for a user
	ListByUserID(ctx context.Context, userID uint) ([]*Subscription, error)

	// GetActiveByUserAndProduct returns the user's active subscription for a
	// product, nil when none exists
	GetActiveByUserAndProduct(ctx context.Context, userID, productID uint) (*Subscription, error)

	// GetActiveByUserID returns the user's most recent active subscription
	// across all products, nil when none exists
	GetActiveByUserID(ctx context.Context, userID uint) (*Subscription, error)

	// CountByProductID counts subscriptions referencing a product
	CountByProductID(ctx context.Context, productID uint) (int64, error)

	// CountByProductGroupedByStatus counts a product's subscriptions per status
	CountByProductGroupedByStatus(ctx context.Context, productID uint) ([]StatusCount, error)
}

// EventRepository defines the interface for subscription event data operations
type EventRepository interface {
	// Create appends an audit event
	Create(ctx context.Context, event *Event) error

	// ListBySubscriptionID retrieves a subscription's events, newest first
	ListBySubscriptionID(ctx context.Context, subscriptionID uint) ([]*Event, error)

	// GetLatestBySubscriptionID retrieves a subscription's most recent event,
	// nil when the subscription has none
	GetLatestBySubscriptionID(ctx context.Context, subscriptionID uint) (*Event, error)
}
