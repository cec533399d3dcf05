package models

import (
	"time"

	"gorm.io/datatypes"

	"subhub/internal/shared/constants"
)

// ProductFeatureModel represents the database persistence model for per-tier
// product feature lists. One row per (product, plan) pair.
type ProductFeatureModel struct {
	ID          uint   `gorm:"primarykey"`
	ProductID   uint   `gorm:"not null;index;uniqueIndex:uq_product_feature_plan,priority:1"`
	Plan        string `gorm:"not null;size:20;uniqueIndex:uq_product_feature_plan,priority:2"`
	FeatureList datatypes.JSON `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (ProductFeatureModel) TableName() string {
	return constants.TableProductFeatures
}
