package repository

import (
	"context"
	"time"

	"github.com/ds124wfegd/boxoffice/internal/entity"
)

// SaleRepository is the audit ledger of completed sales.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.SaleReceipt) error
	GetByCustomer(ctx context.Context, customerID string) ([]*entity.SaleReceipt, error)
	Totals(ctx context.Context) (*entity.LedgerTotals, error)
}

// CacheRepository keeps computed reports and the popularity ranking.
// Getters return nil and no error on a cache miss.
type CacheRepository interface {
	SetStats(ctx context.Context, stats *entity.CatalogStats, ttl time.Duration) error
	GetStats(ctx context.Context) (*entity.CatalogStats, error)
	SetReport(ctx context.Context, report string, ttl time.Duration) error
	GetReport(ctx context.Context) (*string, error)
	Invalidate(ctx context.Context) error

	IncrementPopularity(ctx context.Context, itemCode string, tickets int) error
	GetPopularItems(ctx context.Context, limit int) ([]entity.PopularItem, error)
	// ResetPopularity replaces the whole ranking.
	ResetPopularity(ctx context.Context, items []entity.PopularItem) error
}
