package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"subhub/internal/shared/constants"
)

// ProductModel represents the database persistence model for products
type ProductModel struct {
	ID                uint    `gorm:"primarykey"`
	Name              string  `gorm:"not null;size:255"`
	Slug              string  `gorm:"uniqueIndex;not null;size:255"`
	Description       string  `gorm:"not null;type:text"`
	ShortDescription  string  `gorm:"not null;size:255"`
	Features          datatypes.JSON
	LogoURL           *string `gorm:"size:500"`
	WebsiteURL        *string `gorm:"size:500"`
	StarterPrice      *float64
	ProfessionalPrice *float64
	EnterprisePrice   *float64
	IsActive          bool    `gorm:"not null;default:true;index:idx_product_active"`
	IsFeatured        bool    `gorm:"not null;default:false"`
	Category          *string `gorm:"size:100;index:idx_product_category"`
	Tags              datatypes.JSON
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ProductModel) TableName() string {
	return constants.TableProducts
}
