package transport

import (
	"net/http"

	"github.com/ds124wfegd/boxoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	catalogService service.CatalogService
	salesService   service.SalesService
}

func NewCustomerHandler(catalogService service.CatalogService, salesService service.SalesService) *CustomerHandler {
	return &CustomerHandler{
		catalogService: catalogService,
		salesService:   salesService,
	}
}

func (h *CustomerHandler) RegisterCustomer(c *gin.Context) {
	var req service.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.catalogService.RegisterCustomer(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.catalogService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.catalogService.ListCustomers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) GetHistory(c *gin.Context) {
	history, err := h.catalogService.GetCustomerHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer_id": c.Param("id"),
		"purchases":   history,
		"count":       len(history),
	})
}

func (h *CustomerHandler) GetSales(c *gin.Context) {
	sales, err := h.salesService.GetCustomerSales(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer_id": c.Param("id"),
		"sales":       sales,
		"count":       len(sales),
	})
}
