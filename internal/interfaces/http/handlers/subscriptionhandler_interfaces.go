package handlers

import (
	"context"

	subdto "subhub/internal/application/subscription/dto"
)

// Service interfaces for SubscriptionHandler

type subscriptionService interface {
	Create(ctx context.Context, req *subdto.CreateSubscriptionRequest) (*subdto.SubscriptionDTO, error)
	Update(ctx context.Context, id uint, req *subdto.UpdateSubscriptionRequest) (*subdto.SubscriptionDTO, error)
	ChangePlan(ctx context.Context, id uint, newPlan string, prorate bool) (*subdto.SubscriptionDTO, error)
	Cancel(ctx context.Context, id uint, endImmediately bool, reason *string) (*subdto.SubscriptionDTO, error)
	Reactivate(ctx context.Context, id uint) (*subdto.SubscriptionDTO, error)
	GetByID(ctx context.Context, id uint) (*subdto.SubscriptionDTO, error)
	GetOwnerID(ctx context.Context, id uint) (uint, error)
	ListByUser(ctx context.Context, userID uint) ([]*subdto.SubscriptionDTO, error)
	ListForDashboard(ctx context.Context, userID uint) ([]*subdto.SubscriptionListItemDTO, error)
	GetActiveForUser(ctx context.Context, userID uint) (*subdto.SubscriptionDTO, error)
	GetEvents(ctx context.Context, id uint) ([]*subdto.SubscriptionEventDTO, error)
	GetWithEvents(ctx context.Context, id uint) (*subdto.SubscriptionWithEventsDTO, error)
}
