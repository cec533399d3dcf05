package dto

import "time"

type ProductDTO struct {
	ID                uint                   `json:"id"`
	Name              string                 `json:"name"`
	Slug              string                 `json:"slug"`
	Description       string                 `json:"description"`
	DescriptionHTML   string                 `json:"description_html,omitempty"`
	ShortDescription  string                 `json:"short_description"`
	Features          map[string]interface{} `json:"features,omitempty"`
	LogoURL           *string                `json:"logo_url,omitempty"`
	WebsiteURL        *string                `json:"website_url,omitempty"`
	StarterPrice      *float64               `json:"starter_price,omitempty"`
	ProfessionalPrice *float64               `json:"professional_price,omitempty"`
	EnterprisePrice   *float64               `json:"enterprise_price,omitempty"`
	IsActive          bool                   `json:"is_active"`
	IsFeatured        bool                   `json:"is_featured"`
	Category          *string                `json:"category,omitempty"`
	Tags              []string               `json:"tags,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// PricingTierDTO is one displayable pricing tier of a product.
type PricingTierDTO struct {
	Plan      string   `json:"plan"`
	Price     float64  `json:"price"`
	Features  []string `json:"features"`
	IsPopular bool     `json:"is_popular"`
}

type ProductPricingDTO struct {
	ProductID   uint              `json:"product_id"`
	ProductName string            `json:"product_name"`
	Tiers       []*PricingTierDTO `json:"tiers"`
}

type ProductStatsDTO struct {
	ProductID         uint  `json:"product_id"`
	ActiveSubscribers int64 `json:"active_subscribers"`
	TotalSubscribers  int64 `json:"total_subscribers"`
}

type CreateProductRequest struct {
	Name              string                 `json:"name" binding:"required,max=255"`
	Slug              string                 `json:"slug" binding:"required,max=255"`
	Description       string                 `json:"description" binding:"required"`
	ShortDescription  string                 `json:"short_description" binding:"required,max=255"`
	Features          map[string]interface{} `json:"features"`
	LogoURL           *string                `json:"logo_url" binding:"omitempty,url"`
	WebsiteURL        *string                `json:"website_url" binding:"omitempty,url"`
	StarterPrice      *float64               `json:"starter_price" binding:"omitempty,min=0"`
	ProfessionalPrice *float64               `json:"professional_price" binding:"omitempty,min=0"`
	EnterprisePrice   *float64               `json:"enterprise_price" binding:"omitempty,min=0"`
	IsFeatured        *bool                  `json:"is_featured"`
	Category          *string                `json:"category" binding:"omitempty,max=100"`
	Tags              []string               `json:"tags"`
}

type UpdateProductRequest struct {
	Name              *string                `json:"name" binding:"omitempty,max=255"`
	Slug              *string                `json:"slug" binding:"omitempty,max=255"`
	Description       *string                `json:"description"`
	ShortDescription  *string                `json:"short_description" binding:"omitempty,max=255"`
	Features          map[string]interface{} `json:"features"`
	LogoURL           *string                `json:"logo_url" binding:"omitempty,url"`
	WebsiteURL        *string                `json:"website_url" binding:"omitempty,url"`
	StarterPrice      *float64               `json:"starter_price" binding:"omitempty,min=0"`
	ProfessionalPrice *float64               `json:"professional_price" binding:"omitempty,min=0"`
	EnterprisePrice   *float64               `json:"enterprise_price" binding:"omitempty,min=0"`
	IsActive          *bool                  `json:"is_active"`
	IsFeatured        *bool                  `json:"is_featured"`
	Category          *string                `json:"category" binding:"omitempty,max=100"`
	Tags              []string               `json:"tags"`
}

// PricingTierUpdateRequest sets the price and feature list of one tier.
type PricingTierUpdateRequest struct {
	Plan     string   `json:"plan" binding:"required,oneof=starter professional enterprise"`
	Price    float64  `json:"price" binding:"min=0"`
	Features []string `json:"features"`
}

type ListProductsRequest struct {
	Category     *string `form:"category"`
	FeaturedOnly bool    `form:"featured_only"`
	ActiveOnly   *bool   `form:"active_only"`
	Search       string  `form:"search"`
	Page         int     `form:"page"`
	PageSize     int     `form:"page_size"`
}
