package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"subhub/internal/domain/catalog"
	sharedvo "subhub/internal/domain/shared/valueobjects"
	"subhub/internal/infrastructure/persistence/mappers"
	"subhub/internal/infrastructure/persistence/models"
	"subhub/internal/shared/db"
	"subhub/internal/shared/logger"
)

type ProductFeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProductFeatureMapper
	logger logger.Interface
}

func NewProductFeatureRepository(db *gorm.DB, logger logger.Interface) catalog.ProductFeatureRepository {
	return &ProductFeatureRepositoryImpl{
		db:     db,
		mapper: mappers.NewProductFeatureMapper(),
		logger: logger,
	}
}

func (r *ProductFeatureRepositoryImpl) Create(ctx context.Context, feature *catalog.ProductFeature) error {
	model, err := r.mapper.ToModel(feature)
	if err != nil {
		r.logger.Errorw("failed to map product feature entity to model", "error", err)
		return fmt.Errorf("failed to map product feature entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create product feature", "product_id", model.ProductID, "plan", model.Plan, "error", err)
		return fmt.Errorf("failed to create product feature: %w", err)
	}

	if err := feature.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set product feature ID: %w", err)
	}

	r.logger.Infow("product feature created successfully", "id", model.ID, "product_id", model.ProductID, "plan", model.Plan)
	return nil
}

func (r *ProductFeatureRepositoryImpl) GetByProductID(ctx context.Context, productID uint) ([]*catalog.ProductFeature, error) {
	var featureModels []*models.ProductFeatureModel

	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("plan ASC").
		Find(&featureModels).Error; err != nil {
		r.logger.Errorw("failed to get product features", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to get product features: %w", err)
	}

	return r.mapper.ToEntities(featureModels)
}

func (r *ProductFeatureRepositoryImpl) GetByProductAndPlan(ctx context.Context, productID uint, plan sharedvo.Plan) (*catalog.ProductFeature, error) {
	var model models.ProductFeatureModel

	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND plan = ?", productID, plan.String()).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get product feature", "product_id", productID, "plan", plan, "error", err)
		return nil, fmt.Errorf("failed to get product feature: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ProductFeatureRepositoryImpl) Update(ctx context.Context, feature *catalog.ProductFeature) error {
	model, err := r.mapper.ToModel(feature)
	if err != nil {
		r.logger.Errorw("failed to map product feature entity to model", "error", err)
		return fmt.Errorf("failed to map product feature entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Save(model).Error; err != nil {
		r.logger.Errorw("failed to update product feature", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update product feature: %w", err)
	}

	r.logger.Infow("product feature updated successfully", "id", model.ID)
	return nil
}

func (r *ProductFeatureRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.ProductFeatureModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete product feature", "id", id, "error", err)
		return fmt.Errorf("failed to delete product feature: %w", err)
	}

	r.logger.Infow("product feature deleted successfully", "id", id)
	return nil
}

func (r *ProductFeatureRepositoryImpl) DeleteByProductID(ctx context.Context, productID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductFeatureModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete product features", "product_id", productID, "error", err)
		return fmt.Errorf("failed to delete product features: %w", err)
	}

	r.logger.Infow("product features deleted successfully", "product_id", productID)
	return nil
}
