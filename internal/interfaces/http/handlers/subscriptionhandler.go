package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	subdto "subhub/internal/application/subscription/dto"
	"subhub/internal/shared/authorization"
	"subhub/internal/shared/errors"
	"subhub/internal/shared/logger"
	"subhub/internal/shared/utils"
)

type SubscriptionHandler struct {
	subscriptionService subscriptionService
	logger              logger.Interface
}

func NewSubscriptionHandler(subscriptionService subscriptionService, logger logger.Interface) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		logger:              logger,
	}
}

// List returns the caller's subscriptions in the dashboard list shape.
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	items, err := h.subscriptionService.ListForDashboard(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, items)
}

// Create provisions a subscription for the caller. Only admins may create
// subscriptions on behalf of other users.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req subdto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.UserID == 0 {
		req.UserID = userID
	}
	if req.UserID != userID && !currentRole(c).IsAdmin() {
		utils.ErrorResponse(c, http.StatusForbidden, "cannot create subscriptions for other users")
		return
	}

	sub, err := h.subscriptionService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, sub, "Subscription created successfully")
}

// CreateFromDashboard is the admin path for manually provisioned
// subscriptions, recorded against the manual payment provider.
func (h *SubscriptionHandler) CreateFromDashboard(c *gin.Context) {
	var req subdto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.PaymentProvider == "" {
		req.PaymentProvider = "manual"
	}

	sub, err := h.subscriptionService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, sub, "Subscription created successfully")
}

func (h *SubscriptionHandler) GetByID(c *gin.Context) {
	id, ok := h.authorizeSubscriptionAccess(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if sub == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "subscription not found")
		return
	}

	utils.OKResponse(c, sub)
}

func (h *SubscriptionHandler) Update(c *gin.Context) {
	id, ok := h.authorizeSubscriptionAccess(c)
	if !ok {
		return
	}

	var req subdto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	sub, err := h.subscriptionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, sub)
}

func (h *SubscriptionHandler) ChangePlan(c *gin.Context) {
	id, ok := h.authorizeSubscriptionAccess(c)
	if !ok {
		return
	}

	var req subdto.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	prorate := true
	if req.Prorate != nil {
		prorate = *req.Prorate
	}

	sub, err := h.subscriptionService.ChangePlan(c.Request.Context(), id, req.NewPlan, prorate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, sub)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	id, ok := h.authorizeSubscriptionAccess(c)
	if !ok {
		return
	}

	var req subdto.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	sub, err := h.subscriptionService.Cancel(c.Request.Context(), id, req.EndImmediately, req.Reason)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, sub)
}

func (h *SubscriptionHandler) Reactivate(c *gin.Context) {
	id, ok := h.authorizeSubscriptionAccess(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Reactivate(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if sub == nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "subscription cannot be reactivated")
		return
	}

	utils.OKResponse(c, sub)
}

func (h *SubscriptionHandler) GetEvents(c *gin.Context) {
	id, ok := h.authorizeSubscriptionAccess(c)
	if !ok {
		return
	}

	events, err := h.subscriptionService.GetEvents(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, events)
}

func (h *SubscriptionHandler) GetWithEvents(c *gin.Context) {
	id, ok := h.authorizeSubscriptionAccess(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetWithEvents(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, sub)
}

// ListByUser returns another user's subscriptions, owner or admin only.
func (h *SubscriptionHandler) ListByUser(c *gin.Context) {
	targetID, ok := h.authorizeUserAccess(c)
	if !ok {
		return
	}

	subs, err := h.subscriptionService.ListByUser(c.Request.Context(), targetID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, subs)
}

// GetActiveByUser returns a user's current active subscription, if any.
func (h *SubscriptionHandler) GetActiveByUser(c *gin.Context) {
	targetID, ok := h.authorizeUserAccess(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetActiveForUser(c.Request.Context(), targetID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if sub == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "no active subscription")
		return
	}

	utils.OKResponse(c, sub)
}

// authorizeSubscriptionAccess parses the :id param and verifies the caller
// owns the subscription or is an admin. It writes the error response itself.
func (h *SubscriptionHandler) authorizeSubscriptionAccess(c *gin.Context) (uint, bool) {
	id, err := utils.ParseIDParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, false
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return 0, false
	}

	ownerID, err := h.subscriptionService.GetOwnerID(c.Request.Context(), id)
	if err != nil {
		if errors.IsNotFoundError(err) {
			utils.ErrorResponse(c, http.StatusNotFound, "subscription not found")
		} else {
			utils.ErrorResponseWithError(c, err)
		}
		return 0, false
	}

	if !authorization.CanAccessResourceByOwnerID(userID, currentRole(c), ownerID) {
		utils.ErrorResponse(c, http.StatusForbidden, "access denied")
		return 0, false
	}

	return id, true
}

func (h *SubscriptionHandler) authorizeUserAccess(c *gin.Context) (uint, bool) {
	targetID, err := utils.ParseIDParam(c, "user_id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, false
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return 0, false
	}

	if !authorization.CanAccessResourceByOwnerID(userID, currentRole(c), targetID) {
		utils.ErrorResponse(c, http.StatusForbidden, "access denied")
		return 0, false
	}

	return targetID, true
}
