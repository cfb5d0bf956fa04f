package transport

import (
	"net/http"

	"github.com/ds124wfegd/boxoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	salesService service.SalesService
}

func NewSaleHandler(salesService service.SalesService) *SaleHandler {
	return &SaleHandler{salesService: salesService}
}

func (h *SaleHandler) ExecuteSale(c *gin.Context) {
	var req service.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.salesService.ExecuteSale(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}
