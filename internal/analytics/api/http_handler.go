package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/skincare-store-api/internal/analytics/service"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(as service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	router.GET("/analytics", requireAdmin, h.GetAnalytics)

	dashboardRoutes := router.Group("/dashboard", requireAdmin)
	{
		dashboardRoutes.GET("/sales", h.GetDashboardSales)
		dashboardRoutes.GET("/analytics", h.GetDashboardAnalytics)
	}
}

func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	report, err := h.analyticsService.Report(c.Request.Context())
	if err != nil {
		logger.Error("GetAnalytics Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics data"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) GetDashboardSales(c *gin.Context) {
	sales, err := h.analyticsService.DashboardSales(c.Request.Context())
	if err != nil {
		logger.Error("GetDashboardSales Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales data"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *AnalyticsHandler) GetDashboardAnalytics(c *gin.Context) {
	analytics, err := h.analyticsService.DashboardAnalytics(c.Request.Context())
	if err != nil {
		logger.Error("GetDashboardAnalytics Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics data"})
		return
	}
	c.JSON(http.StatusOK, analytics)
}
