package transport

import (
	"net/http"
	"strconv"

	"github.com/ds124wfegd/boxoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	salesService service.SalesService
}

func NewReportHandler(salesService service.SalesService) *ReportHandler {
	return &ReportHandler{salesService: salesService}
}

func (h *ReportHandler) GetRevenue(c *gin.Context) {
	revenue, err := h.salesService.GetRevenue(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, revenue)
}

func (h *ReportHandler) GetCatalogReport(c *gin.Context) {
	report, err := h.salesService.GetReport(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

func (h *ReportHandler) GetCustomerReport(c *gin.Context) {
	report, err := h.salesService.GetCustomerReport(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

func (h *ReportHandler) GetStatistics(c *gin.Context) {
	stats, err := h.salesService.GetStatistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statistics":   stats,
		"premium_rate": stats.PremiumRate(),
	})
}

func (h *ReportHandler) GetPopular(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	items, err := h.salesService.GetPopularItems(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
