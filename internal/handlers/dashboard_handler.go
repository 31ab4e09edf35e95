package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"niveshak/internal/services"
)

// DashboardHandler handles portfolio dashboard requests.
type DashboardHandler struct {
	portfolioService services.PortfolioServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(portfolioService services.PortfolioServicer) *DashboardHandler {
	return &DashboardHandler{portfolioService: portfolioService}
}

// GetDashboard handles retrieving the portfolio dashboard.
// @Summary     Get dashboard
// @Description Get the portfolio overview: totals, asset-type allocation, and per-investment summaries
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard "Dashboard data"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.portfolioService.GetDashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
