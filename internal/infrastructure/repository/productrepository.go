package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"subhub/internal/domain/catalog"
	"subhub/internal/infrastructure/persistence/mappers"
	"subhub/internal/infrastructure/persistence/models"
	"subhub/internal/shared/db"
	"subhub/internal/shared/logger"
	"subhub/internal/shared/utils"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProductMapper
	logger logger.Interface
}

func NewProductRepository(db *gorm.DB, logger logger.Interface) catalog.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mappers.NewProductMapper(),
		logger: logger,
	}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *catalog.Product) error {
	model, err := r.mapper.ToModel(product)
	if err != nil {
		r.logger.Errorw("failed to map product entity to model", "error", err)
		return fmt.Errorf("failed to map product entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create product in database", "slug", model.Slug, "error", err)
		return fmt.Errorf("failed to create product: %w", err)
	}

	if err := product.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set product ID: %w", err)
	}

	r.logger.Infow("product created successfully", "id", model.ID, "slug", model.Slug)
	return nil
}

func (r *ProductRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.Product, error) {
	var model models.ProductModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get product by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ProductRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var model models.ProductModel

	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get product by slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *catalog.Product) error {
	model, err := r.mapper.ToModel(product)
	if err != nil {
		r.logger.Errorw("failed to map product entity to model", "error", err)
		return fmt.Errorf("failed to map product entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Save(model).Error; err != nil {
		r.logger.Errorw("failed to update product", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update product: %w", err)
	}

	r.logger.Infow("product updated successfully", "id", model.ID)
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("product_id = ?", id).Delete(&models.ProductFeatureModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete product features", "product_id", id, "error", err)
		return fmt.Errorf("failed to delete product features: %w", err)
	}

	if err := tx.Delete(&models.ProductModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete product", "id", id, "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Infow("product deleted successfully", "id", id)
	return nil
}

func (r *ProductRepositoryImpl) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR short_description LIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count products", "error", err)
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	pagination := utils.ValidatePagination(filter.Page, filter.PageSize)
	var productModels []*models.ProductModel
	if err := query.
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PageSize).
		Find(&productModels).Error; err != nil {
		r.logger.Errorw("failed to list products", "error", err)
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	entities, err := r.mapper.ToEntities(productModels)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

func (r *ProductRepositoryImpl) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check product existence by slug", "slug", slug, "error", err)
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}
