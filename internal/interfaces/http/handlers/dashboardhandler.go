package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	dashdto "subhub/internal/application/dashboard/dto"
	"subhub/internal/shared/logger"
	"subhub/internal/shared/utils"
)

type dashboardService interface {
	GetStats(ctx context.Context, userID uint) (*dashdto.DashboardResponse, error)
}

type DashboardHandler struct {
	dashboardService dashboardService
	logger           logger.Interface
}

func NewDashboardHandler(dashboardService dashboardService, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetStats aggregates the caller's subscription statistics.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, stats)
}
