package catalog

import (
	"context"

	sharedvo "subhub/internal/domain/shared/valueobjects"
)

// ListFilter holds filtering options for listing products.
type ListFilter struct {
	Category     *string
	FeaturedOnly bool
	ActiveOnly   bool
	Search       string
	Page         int
	PageSize     int
}

// SubscriberStats holds per-product subscription counts.
type SubscriberStats struct {
	ProductID         uint
	ActiveSubscribers int64
	TotalSubscribers  int64
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id uint) (*Product, error)

	// GetBySlug retrieves a product by its unique slug
	GetBySlug(ctx context.Context, slug string) (*Product, error)

	// Update updates an existing product
	Update(ctx context.Context, product *Product) error

	// Delete removes a product and its feature lists
	Delete(ctx context.Context, id uint) error

	// List retrieves a paginated list of products
	List(ctx context.Context, filter ListFilter) ([]*Product, int64, error)

	// ExistsBySlug checks if a product exists with the given slug
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// ProductFeatureRepository defines the interface for product feature data operations
type ProductFeatureRepository interface {
	// Create creates a feature list for a (product, plan) pair
	Create(ctx context.Context, feature *ProductFeature) error

	// GetByProductID retrieves all feature lists for a product
	GetByProductID(ctx context.Context, productID uint) ([]*ProductFeature, error)

	// GetByProductAndPlan retrieves the feature list for one (product, plan) pair
	GetByProductAndPlan(ctx context.Context, productID uint, plan sharedvo.Plan) (*ProductFeature, error)

	// Update updates an existing feature list
	Update(ctx context.Context, feature *ProductFeature) error

	// Delete removes a feature list
	Delete(ctx context.Context, id uint) error

	// DeleteByProductID removes all feature lists for a product
	DeleteByProductID(ctx context.Context, productID uint) error
}
