package catalog

import (
	"context"
	"fmt"

	"subhub/internal/application/catalog/dto"
	domaincatalog "subhub/internal/domain/catalog"
	sharedvo "subhub/internal/domain/shared/valueobjects"
	domainsub "subhub/internal/domain/subscription"
	"subhub/internal/shared/db"
	"subhub/internal/shared/errors"
	"subhub/internal/shared/logger"
	"subhub/internal/shared/services/markdown"
)

// Service implements catalog CRUD and pricing-tier assembly.
type Service struct {
	productRepo      domaincatalog.ProductRepository
	featureRepo      domaincatalog.ProductFeatureRepository
	subscriptionRepo domainsub.Repository
	markdownService  *markdown.Service
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewService(
	productRepo domaincatalog.ProductRepository,
	featureRepo domaincatalog.ProductFeatureRepository,
	subscriptionRepo domainsub.Repository,
	markdownService *markdown.Service,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *Service {
	return &Service{
		productRepo:      productRepo,
		featureRepo:      featureRepo,
		subscriptionRepo: subscriptionRepo,
		markdownService:  markdownService,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByID returns one product, nil when unknown.
func (s *Service) GetByID(ctx context.Context, id uint) (*dto.ProductDTO, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return s.toDTO(product)
}

// GetBySlug returns one product by its slug, nil when unknown.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*dto.ProductDTO, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return s.toDTO(product)
}

// List returns a paginated product listing. Non-admin listings default to
// active products only; the handler decides the default.
func (s *Service) List(ctx context.Context, req *dto.ListProductsRequest, activeOnlyDefault bool) ([]*dto.ProductDTO, int64, error) {
	activeOnly := activeOnlyDefault
	if req.ActiveOnly != nil {
		activeOnly = *req.ActiveOnly
	}

	products, total, err := s.productRepo.List(ctx, domaincatalog.ListFilter{
		Category:     req.Category,
		FeaturedOnly: req.FeaturedOnly,
		ActiveOnly:   activeOnly,
		Search:       req.Search,
		Page:         req.Page,
		PageSize:     req.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*dto.ProductDTO, 0, len(products))
	for _, product := range products {
		d, err := s.toDTO(product)
		if err != nil {
			return nil, 0, err
		}
		dtos = append(dtos, d)
	}
	return dtos, total, nil
}

// Create adds a product to the catalog. The slug must be unused.
func (s *Service) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductDTO, error) {
	exists, err := s.productRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError(fmt.Sprintf("product with slug %s already exists", req.Slug))
	}

	product, err := domaincatalog.NewProduct(req.Name, req.Slug, req.Description, req.ShortDescription)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := product.Apply(domaincatalog.ProductUpdate{
		Features:          req.Features,
		LogoURL:           req.LogoURL,
		WebsiteURL:        req.WebsiteURL,
		StarterPrice:      req.StarterPrice,
		ProfessionalPrice: req.ProfessionalPrice,
		EnterprisePrice:   req.EnterprisePrice,
		IsFeatured:        req.IsFeatured,
		Category:          req.Category,
		Tags:              req.Tags,
	}); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError(fmt.Sprintf("product with slug %s already exists", req.Slug))
		}
		return nil, err
	}

	s.logger.Infow("product created", "product_id", product.ID(), "slug", product.Slug())
	return s.toDTO(product)
}

// Update applies a partial update. Slug uniqueness is only re-checked when
// the slug changes.
func (s *Service) Update(ctx context.Context, id uint, req *dto.UpdateProductRequest) (*dto.ProductDTO, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found")
	}

	if req.Slug != nil && *req.Slug != product.Slug() {
		exists, err := s.productRepo.ExistsBySlug(ctx, *req.Slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.NewConflictError(fmt.Sprintf("product with slug %s already exists", *req.Slug))
		}
	}

	if err := product.Apply(domaincatalog.ProductUpdate{
		Name:              req.Name,
		Slug:              req.Slug,
		Description:       req.Description,
		ShortDescription:  req.ShortDescription,
		Features:          req.Features,
		LogoURL:           req.LogoURL,
		WebsiteURL:        req.WebsiteURL,
		StarterPrice:      req.StarterPrice,
		ProfessionalPrice: req.ProfessionalPrice,
		EnterprisePrice:   req.EnterprisePrice,
		IsActive:          req.IsActive,
		IsFeatured:        req.IsFeatured,
		Category:          req.Category,
		Tags:              req.Tags,
	}); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Infow("product updated", "product_id", id)
	return s.toDTO(product)
}

// Delete removes a product and its feature lists. Products referenced by any
// subscription cannot be deleted.
func (s *Service) Delete(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return errors.NewNotFoundError("product not found")
	}

	count, err := s.subscriptionRepo.CountByProductID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Warnw("refusing to delete product with subscriptions", "product_id", id, "subscriptions", count)
		return errors.NewConflictError("cannot delete a product with existing subscriptions")
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.productRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("product deleted", "product_id", id)
	return nil
}

// GetPricingTiers assembles one display tier per plan with a configured
// price. Feature lists come from dedicated rows when present, otherwise from
// the product's feature blob keyed by plan name.
func (s *Service) GetPricingTiers(ctx context.Context, productID uint) (*dto.ProductPricingDTO, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found")
	}

	featureRows, err := s.featureRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	featuresByPlan := make(map[sharedvo.Plan][]string, len(featureRows))
	for _, row := range featureRows {
		featuresByPlan[row.Plan()] = row.FeatureList()
	}

	tiers := make([]*dto.PricingTierDTO, 0, len(sharedvo.AllPlans))
	for _, plan := range sharedvo.AllPlans {
		price := product.PriceForPlan(plan)
		if price == nil {
			continue
		}

		features := featuresByPlan[plan]
		if features == nil {
			features = featuresFromBlob(product.Features(), plan)
		}

		tiers = append(tiers, &dto.PricingTierDTO{
			Plan:      plan.DisplayName(),
			Price:     *price,
			Features:  features,
			IsPopular: plan.IsPopular(),
		})
	}

	return &dto.ProductPricingDTO{
		ProductID:   product.ID(),
		ProductName: product.Name(),
		Tiers:       tiers,
	}, nil
}

// UpdatePricing replaces tier prices and feature lists in one transaction.
func (s *Service) UpdatePricing(ctx context.Context, productID uint, tiers []*dto.PricingTierUpdateRequest) (*dto.ProductPricingDTO, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found")
	}

	starter := product.StarterPrice()
	professional := product.ProfessionalPrice()
	enterprise := product.EnterprisePrice()

	for _, tier := range tiers {
		price := tier.Price
		switch sharedvo.Plan(tier.Plan) {
		case sharedvo.PlanStarter:
			starter = &price
		case sharedvo.PlanProfessional:
			professional = &price
		case sharedvo.PlanEnterprise:
			enterprise = &price
		default:
			return nil, errors.NewValidationError(fmt.Sprintf("invalid plan: %s", tier.Plan))
		}
	}
	product.SetPricing(starter, professional, enterprise)

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Update(txCtx, product); err != nil {
			return err
		}

		for _, tier := range tiers {
			if len(tier.Features) == 0 {
				continue
			}
			plan := sharedvo.Plan(tier.Plan)

			existing, err := s.featureRepo.GetByProductAndPlan(txCtx, productID, plan)
			if err != nil {
				return err
			}
			if existing != nil {
				if err := existing.ReplaceFeatures(tier.Features); err != nil {
					return err
				}
				if err := s.featureRepo.Update(txCtx, existing); err != nil {
					return err
				}
				continue
			}

			feature, err := domaincatalog.NewProductFeature(productID, plan, tier.Features)
			if err != nil {
				return err
			}
			if err := s.featureRepo.Create(txCtx, feature); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("product pricing updated", "product_id", productID, "tiers", len(tiers))
	return s.GetPricingTiers(ctx, productID)
}

// GetStats counts a product's subscribers.
func (s *Service) GetStats(ctx context.Context, productID uint) (*dto.ProductStatsDTO, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found")
	}

	counts, err := s.subscriptionRepo.CountByProductGroupedByStatus(ctx, productID)
	if err != nil {
		return nil, err
	}

	stats := &dto.ProductStatsDTO{ProductID: productID}
	for _, c := range counts {
		stats.TotalSubscribers += c.Count
		if c.Status == "active" {
			stats.ActiveSubscribers = c.Count
		}
	}
	return stats, nil
}

func featuresFromBlob(blob map[string]interface{}, plan sharedvo.Plan) []string {
	if blob == nil {
		return []string{}
	}
	raw, ok := blob[plan.String()]
	if !ok {
		return []string{}
	}
	items, ok := raw.([]interface{})
	if !ok {
		return []string{}
	}

	features := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			features = append(features, s)
		}
	}
	return features
}

func (s *Service) toDTO(product *domaincatalog.Product) (*dto.ProductDTO, error) {
	html, err := s.markdownService.Render(product.Description())
	if err != nil {
		s.logger.Warnw("failed to render product description", "product_id", product.ID(), "error", err)
		html = ""
	}
	return dto.ToProductDTO(product, html), nil
}
