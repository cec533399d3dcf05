package handlers

import (
	"context"

	catalogdto "subhub/internal/application/catalog/dto"
)

// Service interfaces for ProductHandler

type catalogService interface {
	GetByID(ctx context.Context, id uint) (*catalogdto.ProductDTO, error)
	GetBySlug(ctx context.Context, slug string) (*catalogdto.ProductDTO, error)
	List(ctx context.Context, req *catalogdto.ListProductsRequest, activeOnlyDefault bool) ([]*catalogdto.ProductDTO, int64, error)
	Create(ctx context.Context, req *catalogdto.CreateProductRequest) (*catalogdto.ProductDTO, error)
	Update(ctx context.Context, id uint, req *catalogdto.UpdateProductRequest) (*catalogdto.ProductDTO, error)
	Delete(ctx context.Context, id uint) error
	GetPricingTiers(ctx context.Context, productID uint) (*catalogdto.ProductPricingDTO, error)
	UpdatePricing(ctx context.Context, productID uint, tiers []*catalogdto.PricingTierUpdateRequest) (*catalogdto.ProductPricingDTO, error)
	GetStats(ctx context.Context, productID uint) (*catalogdto.ProductStatsDTO, error)
}
