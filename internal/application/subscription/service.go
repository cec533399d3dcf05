package subscription

import (
	"context"
	"fmt"
	"time"

	"subhub/internal/application/subscription/dto"
	"subhub/internal/domain/catalog"
	sharedvo "subhub/internal/domain/shared/valueobjects"
	domainsub "subhub/internal/domain/subscription"
	vo "subhub/internal/domain/subscription/valueobjects"
	"subhub/internal/shared/db"
	"subhub/internal/shared/errors"
	"subhub/internal/shared/logger"
	"subhub/internal/shared/utils"
)

// Service implements the subscription lifecycle. Every mutating operation
// writes the subscription and its audit event in one transaction.
type Service struct {
	subscriptionRepo domainsub.Repository
	eventRepo        domainsub.EventRepository
	productRepo      catalog.ProductRepository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewService(
	subscriptionRepo domainsub.Repository,
	eventRepo domainsub.EventRepository,
	productRepo catalog.ProductRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		eventRepo:        eventRepo,
		productRepo:      productRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Create provisions a subscription. The amount falls back to the product's
// tier price when the caller supplies none; the end date falls back to one
// billing cycle from the start date.
func (s *Service) Create(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionDTO, error) {
	if req.UserID == 0 {
		return nil, errors.NewValidationError("user_id is required")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found")
	}
	if !product.IsActive() {
		return nil, errors.NewValidationError("cannot subscribe to an inactive product")
	}

	plan, err := sharedvo.NewPlan(req.Plan)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// Read-then-write check; concurrent creations for the same pair can
	// race, which is accepted at this scale.
	existing, err := s.subscriptionRepo.GetActiveByUserAndProduct(ctx, req.UserID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf("user already has an active subscription for %s", product.Name()))
	}

	amount := 0.0
	if req.Amount != nil && *req.Amount > 0 {
		amount = *req.Amount
	} else {
		price := product.PriceForPlan(plan)
		if price == nil {
			return nil, errors.NewValidationError(fmt.Sprintf("no pricing defined for plan %s on this product", plan))
		}
		amount = *price
	}

	billingCycle := vo.BillingCycleMonthly
	if req.BillingCycle != "" {
		billingCycle, err = vo.NewBillingCycle(req.BillingCycle)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	sub, err := domainsub.NewSubscription(req.UserID, req.ProductID, plan, amount, req.Currency, billingCycle, startDate, req.EndDate)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.applyCreateOptions(sub, req); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.subscriptionRepo.Create(txCtx, sub); err != nil {
			return err
		}
		return s.recordEvent(txCtx, sub.ID(), domainsub.EventTypeCreated,
			fmt.Sprintf("Subscription created for %s with plan %s", product.Name(), plan), nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("subscription created",
		"subscription_id", sub.ID(), "user_id", req.UserID, "product_id", req.ProductID, "plan", plan)
	return dto.ToSubscriptionDTO(sub, product), nil
}

func (s *Service) applyCreateOptions(sub *domainsub.Subscription, req *dto.CreateSubscriptionRequest) error {
	update := domainsub.Update{
		ProviderSubscriptionID: req.ProviderSubscriptionID,
		ProviderCustomerID:     req.ProviderCustomerID,
		MaxUsers:               req.MaxUsers,
		MaxProjects:            req.MaxProjects,
		Features:               req.Features,
		AutoRenew:              req.AutoRenew,
	}
	if req.PaymentProvider != "" {
		provider, err := vo.NewPaymentProvider(req.PaymentProvider)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		update.PaymentProvider = &provider
	}
	if err := sub.Apply(update); err != nil {
		return errors.NewValidationError(err.Error())
	}

	// A trial end date on creation starts the subscription in trial.
	if req.TrialEndDate != nil {
		if err := sub.StartTrial(*req.TrialEndDate); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	return nil
}

// Update applies a generic partial update.
func (s *Service) Update(ctx context.Context, id uint, req *dto.UpdateSubscriptionRequest) (*dto.SubscriptionDTO, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	update, err := buildUpdate(req)
	if err != nil {
		return nil, err
	}

	if err := sub.Apply(update); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	description := "Subscription updated"
	if req.Plan != nil {
		description += fmt.Sprintf(" - Plan changed to %s", *req.Plan)
	}
	if req.Status != nil {
		description += fmt.Sprintf(" - Status changed to %s", *req.Status)
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.subscriptionRepo.Update(txCtx, sub); err != nil {
			return err
		}
		return s.recordEvent(txCtx, sub.ID(), domainsub.EventTypeUpdated, description, nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("subscription updated", "subscription_id", id)
	return s.withProduct(ctx, sub)
}

func buildUpdate(req *dto.UpdateSubscriptionRequest) (domainsub.Update, error) {
	update := domainsub.Update{
		Amount:                 req.Amount,
		Currency:               req.Currency,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		TrialEndDate:           req.TrialEndDate,
		ProviderSubscriptionID: req.ProviderSubscriptionID,
		ProviderCustomerID:     req.ProviderCustomerID,
		MaxUsers:               req.MaxUsers,
		MaxProjects:            req.MaxProjects,
		Features:               req.Features,
		AutoRenew:              req.AutoRenew,
	}

	if req.Plan != nil {
		plan, err := sharedvo.NewPlan(*req.Plan)
		if err != nil {
			return update, errors.NewValidationError(err.Error())
		}
		update.Plan = &plan
	}
	if req.Status != nil {
		status, err := vo.NewStatus(*req.Status)
		if err != nil {
			return update, errors.NewValidationError(err.Error())
		}
		update.Status = &status
	}
	if req.BillingCycle != nil {
		cycle, err := vo.NewBillingCycle(*req.BillingCycle)
		if err != nil {
			return update, errors.NewValidationError(err.Error())
		}
		update.BillingCycle = &cycle
	}
	if req.PaymentProvider != nil {
		provider, err := vo.NewPaymentProvider(*req.PaymentProvider)
		if err != nil {
			return update, errors.NewValidationError(err.Error())
		}
		update.PaymentProvider = &provider
	}

	return update, nil
}

// ChangePlan moves a subscription to a new tier, repricing from the product
// when the tier has a configured price. Proration is recorded, not computed.
func (s *Service) ChangePlan(ctx context.Context, id uint, newPlanValue string, prorate bool) (*dto.SubscriptionDTO, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	newPlan, err := sharedvo.NewPlan(newPlanValue)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	oldPlan := sub.Plan()

	product, err := s.productRepo.GetByID(ctx, sub.ProductID())
	if err != nil {
		return nil, err
	}

	var newAmount *float64
	if product != nil {
		newAmount = product.PriceForPlan(newPlan)
	}

	if err := sub.ChangePlan(newPlan, newAmount); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.subscriptionRepo.Update(txCtx, sub); err != nil {
			return err
		}
		return s.recordEvent(txCtx, sub.ID(), domainsub.EventTypePlanChanged,
			fmt.Sprintf("Plan changed from %s to %s", oldPlan, newPlan),
			map[string]interface{}{
				"prorate":  prorate,
				"old_plan": oldPlan.String(),
				"new_plan": newPlan.String(),
			})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("subscription plan changed",
		"subscription_id", id, "old_plan", oldPlan, "new_plan", newPlan, "prorate", prorate)
	return dto.ToSubscriptionDTO(sub, product), nil
}

// Cancel records cancellation intent. The cancellation timestamp is always
// set; the subscription is only terminated when endImmediately is true.
func (s *Service) Cancel(ctx context.Context, id uint, endImmediately bool, reason *string) (*dto.SubscriptionDTO, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	sub.Cancel(endImmediately)

	description := "Subscription canceled"
	reasonValue := ""
	if reason != nil && *reason != "" {
		description += fmt.Sprintf(" - Reason: %s", *reason)
		reasonValue = *reason
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.subscriptionRepo.Update(txCtx, sub); err != nil {
			return err
		}
		return s.recordEvent(txCtx, sub.ID(), domainsub.EventTypeCanceled, description,
			map[string]interface{}{
				"end_immediately": endImmediately,
				"reason":          reasonValue,
			})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("subscription canceled", "subscription_id", id, "end_immediately", endImmediately)
	return s.withProduct(ctx, sub)
}

// Reactivate restores a canceled subscription. Returns nil without error when
// the subscription is not canceled or the reactivation window has passed.
func (s *Service) Reactivate(ctx context.Context, id uint) (*dto.SubscriptionDTO, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}
	if !sub.CanReactivate() {
		return nil, nil
	}

	product, err := s.productRepo.GetByID(ctx, sub.ProductID())
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive() {
		return nil, errors.NewValidationError("cannot reactivate subscription: product is no longer available")
	}

	if err := sub.Reactivate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.subscriptionRepo.Update(txCtx, sub); err != nil {
			return err
		}
		return s.recordEvent(txCtx, sub.ID(), domainsub.EventTypeReactivated, "Subscription reactivated", nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("subscription reactivated", "subscription_id", id)
	return dto.ToSubscriptionDTO(sub, product), nil
}

// GetByID returns one subscription, nil when unknown.
func (s *Service) GetByID(ctx context.Context, id uint) (*dto.SubscriptionDTO, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}
	return s.withProduct(ctx, sub)
}

// GetOwnerID returns the owning user id for authorization checks.
func (s *Service) GetOwnerID(ctx context.Context, id uint) (uint, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if sub == nil {
		return 0, errors.NewNotFoundError("subscription not found")
	}
	return sub.UserID(), nil
}

// ListByUser returns all of a user's subscriptions.
func (s *Service) ListByUser(ctx context.Context, userID uint) ([]*dto.SubscriptionDTO, error) {
	subs, err := s.subscriptionRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*dto.SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		d, err := s.withProduct(ctx, sub)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}

// ListForDashboard returns the user's subscriptions in the dashboard list
// shape with formatted dates and last-event context.
func (s *Service) ListForDashboard(ctx context.Context, userID uint) ([]*dto.SubscriptionListItemDTO, error) {
	subs, err := s.subscriptionRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SubscriptionListItemDTO, 0, len(subs))
	for _, sub := range subs {
		product, err := s.productRepo.GetByID(ctx, sub.ProductID())
		if err != nil {
			return nil, err
		}
		lastEvent, err := s.eventRepo.GetLatestBySubscriptionID(ctx, sub.ID())
		if err != nil {
			return nil, err
		}
		items = append(items, dto.ToSubscriptionListItemDTO(sub, product, lastEvent))
	}
	return items, nil
}

// GetActiveForUser returns the user's most recent active subscription, nil
// when none exists.
func (s *Service) GetActiveForUser(ctx context.Context, userID uint) (*dto.SubscriptionDTO, error) {
	sub, err := s.subscriptionRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}
	return s.withProduct(ctx, sub)
}

// GetEvents returns a subscription's audit trail, newest first.
func (s *Service) GetEvents(ctx context.Context, id uint) ([]*dto.SubscriptionEventDTO, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	events, err := s.eventRepo.ListBySubscriptionID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToSubscriptionEventDTOs(events), nil
}

// GetWithEvents returns a subscription and its full audit trail.
func (s *Service) GetWithEvents(ctx context.Context, id uint) (*dto.SubscriptionWithEventsDTO, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	subDTO, err := s.withProduct(ctx, sub)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListBySubscriptionID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.SubscriptionWithEventsDTO{
		SubscriptionDTO: *subDTO,
		Events:          dto.ToSubscriptionEventDTOs(events),
	}, nil
}

func (s *Service) withProduct(ctx context.Context, sub *domainsub.Subscription) (*dto.SubscriptionDTO, error) {
	product, err := s.productRepo.GetByID(ctx, sub.ProductID())
	if err != nil {
		return nil, err
	}
	return dto.ToSubscriptionDTO(sub, product), nil
}

func (s *Service) recordEvent(ctx context.Context, subscriptionID uint, eventType, description string, metadata map[string]interface{}) error {
	event, err := domainsub.NewEvent(subscriptionID, eventType, description, metadata)
	if err != nil {
		return err
	}
	return s.eventRepo.Create(ctx, event)
}
