package transport

import (
	"github.com/ds124wfegd/boxoffice/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Items         *ItemHandler
	Customers     *CustomerHandler
	Sales         *SaleHandler
	Reports       *ReportHandler
	Notifications *NotificationHandler
	Health        *HealthHandler
}

func InitRoutes(h Handlers, requestTimeout int) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(requestTimeout))

	// API routes
	api := router.Group("/api/v1")
	{
		// Item routes
		items := api.Group("/items")
		{
			items.POST("/showings", h.Items.CreateShowing)
			items.POST("/events", h.Items.CreateEvent)
			items.GET("", h.Items.ListItems)
			items.GET("/available", h.Items.ListAvailable)
			items.GET("/:code", h.Items.GetItem)
			items.PATCH("/:code/status", h.Items.UpdateStatus)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", h.Customers.RegisterCustomer)
			customers.GET("", h.Customers.ListCustomers)
			customers.GET("/:id", h.Customers.GetCustomer)
			customers.GET("/:id/history", h.Customers.GetHistory)
			customers.GET("/:id/sales", h.Customers.GetSales)
		}

		api.POST("/sales", h.Sales.ExecuteSale)

		// Report routes
		reports := api.Group("/reports")
		{
			reports.GET("/revenue", h.Reports.GetRevenue)
			reports.GET("/catalog", h.Reports.GetCatalogReport)
			reports.GET("/statistics", h.Reports.GetStatistics)
			reports.GET("/popular", h.Reports.GetPopular)
			reports.GET("/customers", h.Reports.GetCustomerReport)
		}

		// Admin routes
		if h.Notifications != nil {
			notifications := api.Group("/notifications")
			{
				notifications.GET("/failed", h.Notifications.ListFailed)
				notifications.POST("/failed/:id/requeue", h.Notifications.Requeue)
			}
		}
	}

	// Health check
	health := h.Health
	if health == nil {
		health = NewHealthHandler(nil)
	}
	router.GET("/health", health.Health)

	return router
}
