package service

import (
	"context"

	"github.com/ds124wfegd/boxoffice/internal/entity"
	"github.com/ds124wfegd/boxoffice/pkg/queue"
)

type CatalogService interface {
	// Items
	CreateShowing(ctx context.Context, req *CreateShowingRequest) (*entity.ItemView, error)
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.ItemView, error)
	GetItem(ctx context.Context, code string) (*entity.ItemView, error)
	ListItems(ctx context.Context) ([]entity.ItemView, error)
	ListAvailable(ctx context.Context) ([]entity.ItemView, error)
	UpdateItemStatus(ctx context.Context, code string, req *UpdateStatusRequest) (*entity.ItemView, error)

	// Customers
	RegisterCustomer(ctx context.Context, req *RegisterCustomerRequest) (*entity.CustomerView, error)
	GetCustomer(ctx context.Context, id string) (*entity.CustomerView, error)
	ListCustomers(ctx context.Context) ([]entity.CustomerView, error)
	GetCustomerHistory(ctx context.Context, id string) ([]entity.Purchase, error)
}

type SalesService interface {
	ExecuteSale(ctx context.Context, req *SaleRequest) (*entity.SaleReceipt, error)
	GetCustomerSales(ctx context.Context, customerID string) ([]*entity.SaleReceipt, error)

	// Reports
	GetStatistics(ctx context.Context) (*entity.CatalogStats, error)
	GetReport(ctx context.Context) (string, error)
	GetRevenue(ctx context.Context) (*RevenueSummary, error)
	GetPopularItems(ctx context.Context, limit int) ([]entity.PopularItem, error)
	GetCustomerReport(ctx context.Context) (string, error)

	// SyncPopularity rebuilds the cached ranking from the catalog's sold counts.
	SyncPopularity(ctx context.Context) error

	// RefreshSnapshot recomputes the statistics and stores them in the cache.
	RefreshSnapshot(ctx context.Context) (*entity.CatalogStats, error)
}

type NotificationService interface {
	ListFailed(ctx context.Context, limit int) (*FailedNotifications, error)
	Requeue(ctx context.Context, notificationID string) (*entity.Notification, error)
}

// SalePublisher announces completed sales to other systems.
type SalePublisher interface {
	PublishSale(ctx context.Context, receipt *entity.SaleReceipt) error
}

// Notifier hands customer notifications to the delivery worker.
type Notifier interface {
	Notify(ctx context.Context, n *entity.Notification) error
}

type CreateShowingRequest struct {
	Code        string            `json:"code" binding:"required,max=50"`
	Name        string            `json:"name" binding:"required,max=255"`
	ScheduledAt entity.CustomTime `json:"scheduled_at"`
	BasePrice   float64           `json:"base_price"`
	Film        string            `json:"film" binding:"required"`
	Room        int               `json:"room"`
	Is3D        bool              `json:"is_3d"`
	IsVIP       bool              `json:"is_vip"`
}

type CreateEventRequest struct {
	Code          string            `json:"code" binding:"required,max=50"`
	Name          string            `json:"name" binding:"required,max=255"`
	ScheduledAt   entity.CustomTime `json:"scheduled_at"`
	BasePrice     float64           `json:"base_price"`
	Performer     string            `json:"performer" binding:"required"`
	EventType     string            `json:"event_type" binding:"required"`
	DurationHours float64           `json:"duration_hours"`
	Zone          string            `json:"zone"`
	MeetAndGreet  bool              `json:"meet_and_greet"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RegisterCustomerRequest struct {
	ID        string `json:"id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

type SaleRequest struct {
	ItemCode   string `json:"item_code" binding:"required"`
	CustomerID string `json:"customer_id" binding:"required"`
	Quantity   int    `json:"quantity"`
}

// FailedNotifications is one page of the dead letter queue and its full size.
type FailedNotifications struct {
	Items []*queue.FailedNotification `json:"items"`
	Total int64                       `json:"total"`
}

// RevenueSummary compares the ledger total with what the catalog earns at current prices.
type RevenueSummary struct {
	LedgerRevenue  float64              `json:"ledger_revenue"`
	CatalogRevenue float64              `json:"catalog_revenue"`
	Items          []entity.ItemRevenue `json:"items"`
}
