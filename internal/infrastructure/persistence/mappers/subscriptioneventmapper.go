package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"subhub/internal/domain/subscription"
	"subhub/internal/infrastructure/persistence/models"
)

type SubscriptionEventMapper interface {
	ToEntity(model *models.SubscriptionEventModel) (*subscription.Event, error)
	ToModel(entity *subscription.Event) (*models.SubscriptionEventModel, error)
	ToEntities(models []*models.SubscriptionEventModel) ([]*subscription.Event, error)
}

type SubscriptionEventMapperImpl struct{}

func NewSubscriptionEventMapper() SubscriptionEventMapper {
	return &SubscriptionEventMapperImpl{}
}

func (m *SubscriptionEventMapperImpl) ToEntity(model *models.SubscriptionEventModel) (*subscription.Event, error) {
	if model == nil {
		return nil, nil
	}

	var metadata map[string]interface{}
	if model.EventMetadata != nil {
		if err := json.Unmarshal(model.EventMetadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event metadata: %w", err)
		}
	}

	entity, err := subscription.ReconstructEvent(
		model.ID,
		model.SubscriptionID,
		model.EventType,
		model.Description,
		metadata,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription event: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionEventMapperImpl) ToModel(entity *subscription.Event) (*models.SubscriptionEventModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadata datatypes.JSON
	if entity.Metadata() != nil {
		data, err := json.Marshal(entity.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event metadata: %w", err)
		}
		metadata = data
	}

	return &models.SubscriptionEventModel{
		ID:             entity.ID(),
		SubscriptionID: entity.SubscriptionID(),
		EventType:      entity.EventType(),
		Description:    entity.Description(),
		EventMetadata:  metadata,
		CreatedAt:      entity.CreatedAt(),
	}, nil
}

func (m *SubscriptionEventMapperImpl) ToEntities(eventModels []*models.SubscriptionEventModel) ([]*subscription.Event, error) {
	if eventModels == nil {
		return nil, nil
	}

	entities := make([]*subscription.Event, 0, len(eventModels))
	for _, model := range eventModels {
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
