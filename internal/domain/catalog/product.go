package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	sharedvo "subhub/internal/domain/shared/valueobjects"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Product represents a sellable SaaS offering with per-tier pricing.
type Product struct {
	id                uint
	name              string
	slug              string
	description       string
	shortDescription  string
	features          map[string]interface{}
	logoURL           *string
	websiteURL        *string
	starterPrice      *float64
	professionalPrice *float64
	enterprisePrice   *float64
	isActive          bool
	isFeatured        bool
	category          *string
	tags              []string
	createdAt         time.Time
	updatedAt         time.Time
}

// NewProduct creates a new product.
func NewProduct(name, slug, description, shortDescription string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("product description is required")
	}
	if strings.TrimSpace(shortDescription) == "" {
		return nil, fmt.Errorf("product short description is required")
	}

	now := time.Now()
	return &Product{
		name:             name,
		slug:             slug,
		description:      description,
		shortDescription: shortDescription,
		isActive:         true,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructProduct reconstructs a product from persistence.
func ReconstructProduct(
	id uint,
	name, slug, description, shortDescription string,
	features map[string]interface{},
	logoURL, websiteURL *string,
	starterPrice, professionalPrice, enterprisePrice *float64,
	isActive, isFeatured bool,
	category *string,
	tags []string,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	if id == 0 {
		return nil, fmt.Errorf("product ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if slug == "" {
		return nil, fmt.Errorf("product slug is required")
	}

	return &Product{
		id:                id,
		name:              name,
		slug:              slug,
		description:       description,
		shortDescription:  shortDescription,
		features:          features,
		logoURL:           logoURL,
		websiteURL:        websiteURL,
		starterPrice:      starterPrice,
		professionalPrice: professionalPrice,
		enterprisePrice:   enterprisePrice,
		isActive:          isActive,
		isFeatured:        isFeatured,
		category:          category,
		tags:              tags,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("product slug is required")
	}
	if len(slug) > 255 {
		return fmt.Errorf("product slug exceeds maximum length")
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("invalid product slug: %s, must be lowercase letters, digits and hyphens", slug)
	}
	return nil
}

// ID returns the product ID
func (p *Product) ID() uint {
	return p.id
}

// Name returns the product name
func (p *Product) Name() string {
	return p.name
}

// Slug returns the unique product slug
func (p *Product) Slug() string {
	return p.slug
}

// Description returns the markdown product description
func (p *Product) Description() string {
	return p.description
}

// ShortDescription returns the one-line product description
func (p *Product) ShortDescription() string {
	return p.shortDescription
}

// Features returns the free-form feature blob keyed by plan name
func (p *Product) Features() map[string]interface{} {
	return p.features
}

// LogoURL returns the product logo URL
func (p *Product) LogoURL() *string {
	return p.logoURL
}

// WebsiteURL returns the product website URL
func (p *Product) WebsiteURL() *string {
	return p.websiteURL
}

// StarterPrice returns the starter tier price
func (p *Product) StarterPrice() *float64 {
	return p.starterPrice
}

// ProfessionalPrice returns the professional tier price
func (p *Product) ProfessionalPrice() *float64 {
	return p.professionalPrice
}

// EnterprisePrice returns the enterprise tier price
func (p *Product) EnterprisePrice() *float64 {
	return p.enterprisePrice
}

// IsActive reports whether the product is purchasable
func (p *Product) IsActive() bool {
	return p.isActive
}

// IsFeatured reports whether the product is featured
func (p *Product) IsFeatured() bool {
	return p.isFeatured
}

// Category returns the product category
func (p *Product) Category() *string {
	return p.category
}

// Tags returns the product tags
func (p *Product) Tags() []string {
	return p.tags
}

// CreatedAt returns when the product was created
func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the product was last updated
func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the product ID (only for persistence layer use)
func (p *Product) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("product ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("product ID cannot be zero")
	}
	p.id = id
	return nil
}

// PriceForPlan returns the configured price for a tier, nil when the tier
// has no price set.
func (p *Product) PriceForPlan(plan sharedvo.Plan) *float64 {
	switch plan {
	case sharedvo.PlanStarter:
		return p.starterPrice
	case sharedvo.PlanProfessional:
		return p.professionalPrice
	case sharedvo.PlanEnterprise:
		return p.enterprisePrice
	}
	return nil
}

// ProductUpdate carries the partial-update fields for a product. Nil fields
// are left untouched.
type ProductUpdate struct {
	Name              *string
	Slug              *string
	Description       *string
	ShortDescription  *string
	Features          map[string]interface{}
	LogoURL           *string
	WebsiteURL        *string
	StarterPrice      *float64
	ProfessionalPrice *float64
	EnterprisePrice   *float64
	IsActive          *bool
	IsFeatured        *bool
	Category          *string
	Tags              []string
}

// Apply applies a partial update to the product.
func (p *Product) Apply(update ProductUpdate) error {
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return fmt.Errorf("product name cannot be empty")
		}
		p.name = *update.Name
	}
	if update.Slug != nil {
		if err := validateSlug(*update.Slug); err != nil {
			return err
		}
		p.slug = *update.Slug
	}
	if update.Description != nil {
		p.description = *update.Description
	}
	if update.ShortDescription != nil {
		p.shortDescription = *update.ShortDescription
	}
	if update.Features != nil {
		p.features = update.Features
	}
	if update.LogoURL != nil {
		p.logoURL = update.LogoURL
	}
	if update.WebsiteURL != nil {
		p.websiteURL = update.WebsiteURL
	}
	if update.StarterPrice != nil {
		p.starterPrice = update.StarterPrice
	}
	if update.ProfessionalPrice != nil {
		p.professionalPrice = update.ProfessionalPrice
	}
	if update.EnterprisePrice != nil {
		p.enterprisePrice = update.EnterprisePrice
	}
	if update.IsActive != nil {
		p.isActive = *update.IsActive
	}
	if update.IsFeatured != nil {
		p.isFeatured = *update.IsFeatured
	}
	if update.Category != nil {
		p.category = update.Category
	}
	if update.Tags != nil {
		p.tags = update.Tags
	}
	p.updatedAt = time.Now()
	return nil
}

// SetPricing replaces the per-tier prices in one step.
func (p *Product) SetPricing(starter, professional, enterprise *float64) {
	p.starterPrice = starter
	p.professionalPrice = professional
	p.enterprisePrice = enterprise
	p.updatedAt = time.Now()
}

// Activate makes the product purchasable.
func (p *Product) Activate() {
	if p.isActive {
		return
	}
	p.isActive = true
	p.updatedAt = time.Now()
}

// Deactivate withdraws the product from sale. Existing subscriptions are
// unaffected.
func (p *Product) Deactivate() {
	if !p.isActive {
		return
	}
	p.isActive = false
	p.updatedAt = time.Now()
}
