package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"subhub/internal/domain/subscription"
	"subhub/internal/infrastructure/persistence/mappers"
	"subhub/internal/infrastructure/persistence/models"
	"subhub/internal/shared/db"
	"subhub/internal/shared/logger"
)

type SubscriptionEventRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionEventMapper
	logger logger.Interface
}

func NewSubscriptionEventRepository(db *gorm.DB, logger logger.Interface) subscription.EventRepository {
	return &SubscriptionEventRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionEventMapper(),
		logger: logger,
	}
}

func (r *SubscriptionEventRepositoryImpl) Create(ctx context.Context, event *subscription.Event) error {
	model, err := r.mapper.ToModel(event)
	if err != nil {
		r.logger.Errorw("failed to map event entity to model", "error", err)
		return fmt.Errorf("failed to map event entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription event", "subscription_id", model.SubscriptionID, "error", err)
		return fmt.Errorf("failed to create subscription event: %w", err)
	}

	if err := event.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set event ID: %w", err)
	}

	r.logger.Infow("subscription event recorded", "id", model.ID, "subscription_id", model.SubscriptionID, "event_type", model.EventType)
	return nil
}

func (r *SubscriptionEventRepositoryImpl) ListBySubscriptionID(ctx context.Context, subscriptionID uint) ([]*subscription.Event, error) {
	var eventModels []*models.SubscriptionEventModel

	// created_at ties are broken by the auto-increment ID so ordering is
	// deterministic for events written in the same transaction.
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at DESC, id DESC").
		Find(&eventModels).Error; err != nil {
		r.logger.Errorw("failed to list subscription events", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to list subscription events: %w", err)
	}

	return r.mapper.ToEntities(eventModels)
}

func (r *SubscriptionEventRepositoryImpl) GetLatestBySubscriptionID(ctx context.Context, subscriptionID uint) (*subscription.Event, error) {
	var model models.SubscriptionEventModel

	if err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at DESC, id DESC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get latest subscription event", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to get latest subscription event: %w", err)
	}

	return r.mapper.ToEntity(&model)
}
