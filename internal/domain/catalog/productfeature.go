package catalog

import (
	"fmt"
	"time"

	sharedvo "subhub/internal/domain/shared/valueobjects"
)

// ProductFeature holds the feature list for one (product, plan) pair.
// At most one row exists per pair.
type ProductFeature struct {
	id          uint
	productID   uint
	plan        sharedvo.Plan
	featureList []string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProductFeature creates a feature list for a product tier.
func NewProductFeature(productID uint, plan sharedvo.Plan, featureList []string) (*ProductFeature, error) {
	if productID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("invalid plan: %s", plan)
	}
	if len(featureList) == 0 {
		return nil, fmt.Errorf("feature list cannot be empty")
	}

	now := time.Now()
	return &ProductFeature{
		productID:   productID,
		plan:        plan,
		featureList: featureList,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructProductFeature reconstructs a product feature from persistence.
func ReconstructProductFeature(
	id, productID uint,
	plan sharedvo.Plan,
	featureList []string,
	createdAt, updatedAt time.Time,
) (*ProductFeature, error) {
	if id == 0 {
		return nil, fmt.Errorf("product feature ID cannot be zero")
	}
	if productID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("invalid plan: %s", plan)
	}

	return &ProductFeature{
		id:          id,
		productID:   productID,
		plan:        plan,
		featureList: featureList,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ID returns the product feature ID
func (f *ProductFeature) ID() uint {
	return f.id
}

// ProductID returns the owning product ID
func (f *ProductFeature) ProductID() uint {
	return f.productID
}

// Plan returns the tier this feature list belongs to
func (f *ProductFeature) Plan() sharedvo.Plan {
	return f.plan
}

// FeatureList returns the feature descriptions
func (f *ProductFeature) FeatureList() []string {
	return f.featureList
}

// CreatedAt returns when the feature list was created
func (f *ProductFeature) CreatedAt() time.Time {
	return f.createdAt
}

// UpdatedAt returns when the feature list was last updated
func (f *ProductFeature) UpdatedAt() time.Time {
	return f.updatedAt
}

// SetID sets the product feature ID (only for persistence layer use)
func (f *ProductFeature) SetID(id uint) error {
	if f.id != 0 {
		return fmt.Errorf("product feature ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("product feature ID cannot be zero")
	}
	f.id = id
	return nil
}

// ReplaceFeatures swaps the feature list.
func (f *ProductFeature) ReplaceFeatures(featureList []string) error {
	if len(featureList) == 0 {
		return fmt.Errorf("feature list cannot be empty")
	}
	f.featureList = featureList
	f.updatedAt = time.Now()
	return nil
}
