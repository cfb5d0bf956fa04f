package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ds124wfegd/boxoffice/internal/catalog"
	repository "github.com/ds124wfegd/boxoffice/internal/database/postgres"
	"github.com/ds124wfegd/boxoffice/internal/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 100
)

type SalesServiceConfig struct {
	CacheTTL time.Duration
}

type salesService struct {
	manager   *catalog.Manager
	saleRepo  repository.SaleRepository
	cache     repository.CacheRepository
	publisher SalePublisher
	notifier  Notifier
	config    *SalesServiceConfig
}

// NewSalesService runs sales against manager. Every other dependency may be nil,
// in which case the matching side effect is skipped.
func NewSalesService(
	manager *catalog.Manager,
	saleRepo repository.SaleRepository,
	cache repository.CacheRepository,
	publisher SalePublisher,
	notifier Notifier,
	config *SalesServiceConfig,
) SalesService {
	if config == nil {
		config = &SalesServiceConfig{CacheTTL: time.Minute}
	}
	return &salesService{
		manager:   manager,
		saleRepo:  saleRepo,
		cache:     cache,
		publisher: publisher,
		notifier:  notifier,
		config:    config,
	}
}

func (s *salesService) ExecuteSale(ctx context.Context, req *SaleRequest) (*entity.SaleReceipt, error) {
	log := logrus.WithFields(logrus.Fields{
		"item_code":   req.ItemCode,
		"customer_id": req.CustomerID,
		"quantity":    req.Quantity,
	})

	receipt, err := s.manager.ExecuteSale(req.ItemCode, req.CustomerID, req.Quantity)
	if err != nil {
		if catalog.IsBusinessFailure(err) {
			log.WithError(err).Info("Sale rejected")
		} else {
			log.WithError(err).Error("Sale failed")
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"sale_id":         receipt.ID,
		"net_amount":      receipt.NetAmount,
		"premium_upgrade": receipt.PremiumUpgrade,
	}).Info("Sale completed")

	s.afterSale(ctx, receipt)
	return receipt, nil
}

// afterSale mirrors the sale to the ledger, the brokers and the cache.
// The in-memory sale stands even when one of these fails.
func (s *salesService) afterSale(ctx context.Context, receipt *entity.SaleReceipt) {
	log := logrus.WithField("sale_id", receipt.ID)

	if s.saleRepo != nil {
		if err := s.saleRepo.Create(ctx, receipt); err != nil {
			log.WithError(err).Error("Failed to record sale in ledger")
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSale(ctx, receipt); err != nil {
			log.WithError(err).Error("Failed to publish sale")
		}
	}

	if s.cache != nil {
		if err := s.cache.IncrementPopularity(ctx, receipt.ItemCode, receipt.Quantity); err != nil {
			log.WithError(err).Error("Failed to update popularity")
		}
		if err := s.cache.Invalidate(ctx); err != nil {
			log.WithError(err).Error("Failed to invalidate report cache")
		}
	}

	if s.notifier != nil {
		for _, n := range saleNotifications(receipt) {
			if err := s.notifier.Notify(ctx, n); err != nil {
				log.WithError(err).WithField("type", n.Type).Error("Failed to enqueue notification")
			}
		}
	}
}

func saleNotifications(receipt *entity.SaleReceipt) []*entity.Notification {
	notifications := []*entity.Notification{{
		ID:         uuid.New().String(),
		Type:       entity.NotificationPurchaseReceipt,
		CustomerID: receipt.CustomerID,
		Title:      "Purchase receipt",
		Message: fmt.Sprintf("You bought %d ticket(s) for %s (%s). Total paid: $%.2f",
			receipt.Quantity, receipt.ItemName, receipt.ScheduledAt.Format("02/01/2006 15:04"), receipt.NetAmount),
		SaleID:    receipt.ID.String(),
		CreatedAt: receipt.SoldAt,
	}}

	if receipt.PremiumUpgrade {
		notifications = append(notifications, &entity.Notification{
			ID:         uuid.New().String(),
			Type:       entity.NotificationPremiumUpgrade,
			CustomerID: receipt.CustomerID,
			Title:      "Welcome to premium",
			Message: fmt.Sprintf("You are now a premium customer. Every purchase from now on gets %.0f%% off.",
				entity.PremiumDiscount*100),
			SaleID:    receipt.ID.String(),
			CreatedAt: receipt.SoldAt,
		})
	}
	return notifications
}

// GetCustomerSales reads the ledger. Without a database it falls back to the
// customer's in-memory purchase history.
func (s *salesService) GetCustomerSales(ctx context.Context, customerID string) ([]*entity.SaleReceipt, error) {
	history, err := s.manager.CustomerHistory(customerID)
	if err != nil {
		return nil, err
	}

	if s.saleRepo != nil {
		sales, err := s.saleRepo.GetByCustomer(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get customer sales: %w", err)
		}
		return sales, nil
	}

	sales := make([]*entity.SaleReceipt, 0, len(history))
	for _, p := range history {
		sales = append(sales, &entity.SaleReceipt{
			ItemCode:    p.ItemCode,
			ItemName:    p.ItemName,
			CustomerID:  customerID,
			Quantity:    p.Quantity,
			NetAmount:   p.AmountPaid,
			ScheduledAt: p.ScheduledAt,
			SoldAt:      p.PurchasedAt,
		})
	}
	return sales, nil
}

func (s *salesService) GetStatistics(ctx context.Context) (*entity.CatalogStats, error) {
	if s.cache != nil {
		stats, err := s.cache.GetStats(ctx)
		if err != nil {
			logrus.WithError(err).Warn("Failed to read statistics from cache")
		} else if stats != nil {
			return stats, nil
		}
	}

	return s.computeStats(ctx), nil
}

func (s *salesService) computeStats(ctx context.Context) *entity.CatalogStats {
	stats := s.manager.Statistics()

	s.cacheSnapshot(ctx, stats.Revision, "statistics", func() error {
		return s.cache.SetStats(ctx, &stats, s.config.CacheTTL)
	})
	return &stats
}

// cacheSnapshot stores a snapshot taken at revision unless the catalog has
// moved on. A change that lands while the entry is written drops it again,
// since that change's own invalidation may already have run.
func (s *salesService) cacheSnapshot(ctx context.Context, revision uint64, what string, store func() error) {
	if s.cache == nil || s.manager.Revision() != revision {
		return
	}

	if err := store(); err != nil {
		logrus.WithError(err).Warnf("Failed to cache %s", what)
		return
	}

	if s.manager.Revision() != revision {
		if err := s.cache.Invalidate(ctx); err != nil {
			logrus.WithError(err).Warnf("Failed to drop stale %s", what)
		}
	}
}

func (s *salesService) GetReport(ctx context.Context) (string, error) {
	if s.cache != nil {
		report, err := s.cache.GetReport(ctx)
		if err != nil {
			logrus.WithError(err).Warn("Failed to read report from cache")
		} else if report != nil {
			return *report, nil
		}
	}

	revision := s.manager.Revision()
	report := s.manager.BuildReport(s.manager.Items())

	s.cacheSnapshot(ctx, revision, "report", func() error {
		return s.cache.SetReport(ctx, report, s.config.CacheTTL)
	})
	return report, nil
}

func (s *salesService) GetRevenue(ctx context.Context) (*RevenueSummary, error) {
	items := s.manager.Items()

	return &RevenueSummary{
		LedgerRevenue:  entity.RoundMoney(s.manager.TotalRevenue()),
		CatalogRevenue: s.manager.TotalRevenueFor(items),
		Items:          s.manager.RevenueBreakdown(items),
	}, nil
}

// GetPopularItems ranks items by tickets sold. Without redis the ranking is
// computed from the catalog's sold counts.
func (s *salesService) GetPopularItems(ctx context.Context, limit int) ([]entity.PopularItem, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}

	if s.cache != nil {
		items, err := s.cache.GetPopularItems(ctx, limit)
		if err == nil {
			return items, nil
		}
		logrus.WithError(err).Warn("Failed to read popularity from cache")
	}

	items := s.soldCounts()
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// soldCounts ranks every item by sold count, keeping catalog order on ties.
func (s *salesService) soldCounts() []entity.PopularItem {
	breakdown := s.manager.RevenueBreakdown(s.manager.Items())
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Sold > breakdown[j].Sold
	})

	items := make([]entity.PopularItem, 0, len(breakdown))
	for _, item := range breakdown {
		items = append(items, entity.PopularItem{Code: item.Code, TicketsSold: int64(item.Sold)})
	}
	return items
}

// SyncPopularity is run at startup. The catalog is not persisted, so a ranking
// left in redis by an earlier run would disagree with the sold counts.
func (s *salesService) SyncPopularity(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	items := s.soldCounts()
	if err := s.cache.ResetPopularity(ctx, items); err != nil {
		return fmt.Errorf("failed to reset popularity ranking: %w", err)
	}

	logrus.WithField("items", len(items)).Info("Popularity ranking synced with catalog")
	return nil
}

func (s *salesService) GetCustomerReport(ctx context.Context) (string, error) {
	return s.manager.BuildCustomerReport(), nil
}

func (s *salesService) RefreshSnapshot(ctx context.Context) (*entity.CatalogStats, error) {
	stats := s.computeStats(ctx)

	fields := logrus.Fields{
		"total_items":       stats.TotalItems,
		"available_items":   stats.AvailableItems,
		"total_customers":   stats.TotalCustomers,
		"premium_customers": stats.PremiumCustomers,
		"total_revenue":     stats.TotalRevenue,
	}

	if s.saleRepo != nil {
		totals, err := s.saleRepo.Totals(ctx)
		if err != nil {
			logrus.WithError(err).Warn("Failed to read ledger totals")
		} else {
			fields["ledger_sales"] = totals.Sales
			fields["ledger_revenue"] = totals.Revenue
		}
	}

	logrus.WithFields(fields).Info("Catalog snapshot refreshed")
	return stats, nil
}
