package mappers

import (
	"fmt"

	"subhub/internal/domain/shared/valueobjects"
	"subhub/internal/domain/subscription"
	vo "subhub/internal/domain/subscription/valueobjects"
	"subhub/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	plan, err := valueobjects.NewPlan(model.Plan)
	if err != nil {
		return nil, err
	}

	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, err
	}

	billingCycle, err := vo.NewBillingCycle(model.BillingCycle)
	if err != nil {
		return nil, err
	}

	provider, err := vo.NewPaymentProvider(model.PaymentProvider)
	if err != nil {
		return nil, err
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.UserID,
		model.ProductID,
		plan,
		status,
		model.Amount,
		model.Currency,
		billingCycle,
		model.StartDate,
		model.EndDate,
		model.TrialEndDate,
		model.CanceledAt,
		provider,
		model.ProviderSubscriptionID,
		model.ProviderCustomerID,
		model.MaxUsers,
		model.MaxProjects,
		model.Features,
		model.AutoRenew,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:                     entity.ID(),
		UserID:                 entity.UserID(),
		ProductID:              entity.ProductID(),
		Plan:                   entity.Plan().String(),
		Status:                 entity.Status().String(),
		Amount:                 entity.Amount(),
		Currency:               entity.Currency(),
		BillingCycle:           entity.BillingCycle().String(),
		StartDate:              entity.StartDate(),
		EndDate:                entity.EndDate(),
		TrialEndDate:           entity.TrialEndDate(),
		CanceledAt:             entity.CanceledAt(),
		PaymentProvider:        entity.PaymentProvider().String(),
		ProviderSubscriptionID: entity.ProviderSubscriptionID(),
		ProviderCustomerID:     entity.ProviderCustomerID(),
		MaxUsers:               entity.MaxUsers(),
		MaxProjects:            entity.MaxProjects(),
		Features:               entity.Features(),
		AutoRenew:              entity.AutoRenew(),
		CreatedAt:              entity.CreatedAt(),
		UpdatedAt:              entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(subModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	if subModels == nil {
		return nil, nil
	}

	entities := make([]*subscription.Subscription, 0, len(subModels))
	for _, model := range subModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
