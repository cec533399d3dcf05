package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"subhub/internal/domain/catalog"
	sharedvo "subhub/internal/domain/shared/valueobjects"
	"subhub/internal/infrastructure/persistence/models"
)

type ProductMapper interface {
	ToEntity(model *models.ProductModel) (*catalog.Product, error)
	ToModel(entity *catalog.Product) (*models.ProductModel, error)
	ToEntities(models []*models.ProductModel) ([]*catalog.Product, error)
}

type ProductMapperImpl struct{}

func NewProductMapper() ProductMapper {
	return &ProductMapperImpl{}
}

func (m *ProductMapperImpl) ToEntity(model *models.ProductModel) (*catalog.Product, error) {
	if model == nil {
		return nil, nil
	}

	var features map[string]interface{}
	if model.Features != nil {
		if err := json.Unmarshal(model.Features, &features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product features: %w", err)
		}
	}

	var tags []string
	if model.Tags != nil {
		if err := json.Unmarshal(model.Tags, &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product tags: %w", err)
		}
	}

	entity, err := catalog.ReconstructProduct(
		model.ID,
		model.Name,
		model.Slug,
		model.Description,
		model.ShortDescription,
		features,
		model.LogoURL,
		model.WebsiteURL,
		model.StarterPrice,
		model.ProfessionalPrice,
		model.EnterprisePrice,
		model.IsActive,
		model.IsFeatured,
		model.Category,
		tags,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct product: %w", err)
	}

	return entity, nil
}

func (m *ProductMapperImpl) ToModel(entity *catalog.Product) (*models.ProductModel, error) {
	if entity == nil {
		return nil, nil
	}

	var features datatypes.JSON
	if entity.Features() != nil {
		data, err := json.Marshal(entity.Features())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal product features: %w", err)
		}
		features = data
	}

	var tags datatypes.JSON
	if entity.Tags() != nil {
		data, err := json.Marshal(entity.Tags())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal product tags: %w", err)
		}
		tags = data
	}

	return &models.ProductModel{
		ID:                entity.ID(),
		Name:              entity.Name(),
		Slug:              entity.Slug(),
		Description:       entity.Description(),
		ShortDescription:  entity.ShortDescription(),
		Features:          features,
		LogoURL:           entity.LogoURL(),
		WebsiteURL:        entity.WebsiteURL(),
		StarterPrice:      entity.StarterPrice(),
		ProfessionalPrice: entity.ProfessionalPrice(),
		EnterprisePrice:   entity.EnterprisePrice(),
		IsActive:          entity.IsActive(),
		IsFeatured:        entity.IsFeatured(),
		Category:          entity.Category(),
		Tags:              tags,
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *ProductMapperImpl) ToEntities(productModels []*models.ProductModel) ([]*catalog.Product, error) {
	if productModels == nil {
		return nil, nil
	}

	entities := make([]*catalog.Product, 0, len(productModels))
	for _, model := range productModels {
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

type ProductFeatureMapper interface {
	ToEntity(model *models.ProductFeatureModel) (*catalog.ProductFeature, error)
	ToModel(entity *catalog.ProductFeature) (*models.ProductFeatureModel, error)
	ToEntities(models []*models.ProductFeatureModel) ([]*catalog.ProductFeature, error)
}

type ProductFeatureMapperImpl struct{}

func NewProductFeatureMapper() ProductFeatureMapper {
	return &ProductFeatureMapperImpl{}
}

func (m *ProductFeatureMapperImpl) ToEntity(model *models.ProductFeatureModel) (*catalog.ProductFeature, error) {
	if model == nil {
		return nil, nil
	}

	plan, err := sharedvo.NewPlan(model.Plan)
	if err != nil {
		return nil, err
	}

	var featureList []string
	if model.FeatureList != nil {
		if err := json.Unmarshal(model.FeatureList, &featureList); err != nil {
			return nil, fmt.Errorf("failed to unmarshal feature list: %w", err)
		}
	}

	entity, err := catalog.ReconstructProductFeature(
		model.ID,
		model.ProductID,
		plan,
		featureList,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct product feature: %w", err)
	}

	return entity, nil
}

func (m *ProductFeatureMapperImpl) ToModel(entity *catalog.ProductFeature) (*models.ProductFeatureModel, error) {
	if entity == nil {
		return nil, nil
	}

	featureList, err := json.Marshal(entity.FeatureList())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feature list: %w", err)
	}

	return &models.ProductFeatureModel{
		ID:          entity.ID(),
		ProductID:   entity.ProductID(),
		Plan:        entity.Plan().String(),
		FeatureList: featureList,
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *ProductFeatureMapperImpl) ToEntities(featureModels []*models.ProductFeatureModel) ([]*catalog.ProductFeature, error) {
	if featureModels == nil {
		return nil, nil
	}

	entities := make([]*catalog.ProductFeature, 0, len(featureModels))
	for _, model := range featureModels {
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
