package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdto "subhub/internal/application/catalog/dto"
	"subhub/internal/shared/logger"
	"subhub/internal/shared/utils"
)

type ProductHandler struct {
	catalogService catalogService
	logger         logger.Interface
}

func NewProductHandler(catalogService catalogService, logger logger.Interface) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// List returns the catalog. Non-admin callers only see active products
// unless they filter explicitly.
func (h *ProductHandler) List(c *gin.Context) {
	var req catalogdto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	activeOnlyDefault := !currentRole(c).IsAdmin()

	products, total, err := h.catalogService.List(c.Request.Context(), &req, activeOnlyDefault)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ValidatePagination(req.Page, req.PageSize)
	utils.ListSuccessResponse(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	product, err := h.catalogService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if product == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "product not found")
		return
	}

	utils.OKResponse(c, product)
}

func (h *ProductHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "product slug is required")
		return
	}

	product, err := h.catalogService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if product == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "product not found")
		return
	}

	utils.OKResponse(c, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	product, err := h.catalogService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, product, "Product created successfully")
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req catalogdto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	product, err := h.catalogService.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *ProductHandler) GetPricing(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pricing, err := h.catalogService.GetPricingTiers(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, pricing)
}

func (h *ProductHandler) UpdatePricing(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req struct {
		Tiers []*catalogdto.PricingTierUpdateRequest `json:"tiers" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	pricing, err := h.catalogService.UpdatePricing(c.Request.Context(), id, req.Tiers)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, pricing)
}

func (h *ProductHandler) GetStats(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	stats, err := h.catalogService.GetStats(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, stats)
}
