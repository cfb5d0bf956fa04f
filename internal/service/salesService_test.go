package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ds124wfegd/boxoffice/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const juan = "0912345678"

type salesFixture struct {
	svc       SalesService
	repo      *fakeSaleRepo
	cache     *fakeCache
	publisher *fakePublisher
	notifier  *fakeNotifier
}

func newSalesFixture(t *testing.T) *salesFixture {
	t.Helper()
	f := &salesFixture{
		repo:      &fakeSaleRepo{},
		cache:     newFakeCache(),
		publisher: &fakePublisher{},
		notifier:  &fakeNotifier{},
	}
	f.svc = NewSalesService(newSeededManager(t), f.repo, f.cache, f.publisher, f.notifier, nil)
	return f
}

func TestExecuteSaleRunsSideEffects(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	receipt, err := f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C002", CustomerID: juan, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 34.00, receipt.NetAmount)
	assert.Equal(t, testNow, receipt.SoldAt)

	require.Len(t, f.repo.sales, 1)
	assert.Equal(t, receipt.ID, f.repo.sales[0].ID)

	require.Len(t, f.publisher.receipts, 1)
	assert.Equal(t, receipt, f.publisher.receipts[0])

	assert.Equal(t, int64(2), f.cache.popular["C002"])
	assert.Equal(t, 1, f.cache.invalidated)

	require.Len(t, f.notifier.notifications, 1)
	n := f.notifier.notifications[0]
	assert.Equal(t, entity.NotificationPurchaseReceipt, n.Type)
	assert.Equal(t, juan, n.CustomerID)
	assert.Equal(t, receipt.ID.String(), n.SaleID)
	assert.Contains(t, n.Message, "3D VIP Screening")
	assert.Contains(t, n.Message, "$34.00")
}

func TestExecuteSaleNotifiesPremiumUpgrade(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	var last *entity.SaleReceipt
	for i := 0; i < 5; i++ {
		receipt, err := f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C001", CustomerID: juan, Quantity: 1})
		require.NoError(t, err)
		last = receipt
	}

	assert.True(t, last.PremiumUpgrade)
	require.Len(t, f.notifier.notifications, 6)
	upgrade := f.notifier.notifications[5]
	assert.Equal(t, entity.NotificationPremiumUpgrade, upgrade.Type)
	assert.Contains(t, upgrade.Message, "15% off")

	sixth, err := f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C001", CustomerID: juan, Quantity: 1})
	require.NoError(t, err)
	assert.True(t, sixth.DiscountApplied)
	assert.InDelta(t, 7.225, sixth.NetAmount, 1e-9)
}

func TestExecuteSaleRejectionHasNoSideEffects(t *testing.T) {
	tests := []struct {
		name     string
		req      SaleRequest
		expected error
	}{
		{"unknown item", SaleRequest{ItemCode: "X1", CustomerID: juan, Quantity: 1}, entity.ErrItemNotFound},
		{"unknown customer", SaleRequest{ItemCode: "C001", CustomerID: "0000000000", Quantity: 1}, entity.ErrCustomerNotFound},
		{"zero quantity", SaleRequest{ItemCode: "C001", CustomerID: juan}, entity.ErrInvalidQuantity},
		{"sold out", SaleRequest{ItemCode: "C001", CustomerID: juan, Quantity: 56}, entity.ErrCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSalesFixture(t)

			receipt, err := f.svc.ExecuteSale(context.Background(), &tt.req)
			assert.Nil(t, receipt)
			assert.ErrorIs(t, err, tt.expected)

			assert.Empty(t, f.repo.sales)
			assert.Empty(t, f.publisher.receipts)
			assert.Empty(t, f.notifier.notifications)
			assert.Empty(t, f.cache.popular)
			assert.Zero(t, f.cache.invalidated)
		})
	}
}

func TestExecuteSaleSurvivesSideEffectFailures(t *testing.T) {
	f := newSalesFixture(t)
	f.repo.createErr = entity.ErrDuplicateSale
	f.publisher.err = errors.New("broker down")
	f.notifier.err = errors.New("queue down")

	receipt, err := f.svc.ExecuteSale(context.Background(), &SaleRequest{ItemCode: "E001", CustomerID: juan, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 45.00, receipt.NetAmount)

	revenue, err := f.svc.GetRevenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45.00, revenue.LedgerRevenue)
}

func TestSalesServiceWithoutInfrastructure(t *testing.T) {
	svc := NewSalesService(newSeededManager(t), nil, nil, nil, nil, nil)
	ctx := context.Background()

	receipt, err := svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "E002", CustomerID: juan, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 308.00, receipt.NetAmount)

	sales, err := svc.GetCustomerSales(ctx, juan)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "E002", sales[0].ItemCode)
	assert.Equal(t, 308.00, sales[0].NetAmount)

	stats, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 308.00, stats.TotalRevenue)

	_, err = svc.RefreshSnapshot(ctx)
	require.NoError(t, err)
}

func TestGetCustomerSales(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetCustomerSales(ctx, "0000000000")
	assert.ErrorIs(t, err, entity.ErrCustomerNotFound)

	_, err = f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C001", CustomerID: juan, Quantity: 1})
	require.NoError(t, err)
	_, err = f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C001", CustomerID: "0923456789", Quantity: 1})
	require.NoError(t, err)

	sales, err := f.svc.GetCustomerSales(ctx, juan)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, juan, sales[0].CustomerID)
}

func TestGetStatisticsReadsThroughCache(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	stats, err := f.svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalItems)
	assert.Equal(t, 4, stats.TotalCustomers)
	require.NotNil(t, f.cache.stats, "computed statistics are cached")

	f.cache.stats.TotalItems = 99
	cached, err := f.svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 99, cached.TotalItems)

	_, err = f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C001", CustomerID: juan, Quantity: 1})
	require.NoError(t, err)
	fresh, err := f.svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, fresh.TotalItems, "a sale invalidates the cache")
	assert.Equal(t, 8.50, fresh.TotalRevenue)

	f.cache.failReads = true
	fallback, err := f.svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, fallback.TotalItems)
}

func TestGetReport(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	report, err := f.svc.GetReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, report, "TOTAL ITEMS: 6")
	assert.Contains(t, report, "TOTAL REVENUE: $55444.50")
	require.NotNil(t, f.cache.report)

	*f.cache.report = "cached"
	cached, err := f.svc.GetReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cached", cached)
}

func TestStatisticsSnapshotOvertakenBySaleIsNotCached(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	f.cache.beforeSet = func() {
		_, err := f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "E001", CustomerID: juan, Quantity: 2})
		require.NoError(t, err)
	}

	stale, err := f.svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stale.TotalRevenue, "computed before the sale")
	assert.Nil(t, f.cache.stats, "stale statistics are dropped from the cache")

	fresh, err := f.svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90.00, fresh.TotalRevenue)
	require.NotNil(t, f.cache.stats)
	assert.Equal(t, 90.00, f.cache.stats.TotalRevenue)
}

func TestReportOvertakenBySaleIsNotCached(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	f.cache.beforeSet = func() {
		_, err := f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "E001", CustomerID: juan, Quantity: 2})
		require.NoError(t, err)
	}

	stale, err := f.svc.GetReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, stale, "TOTAL REVENUE: $55444.50")
	assert.Nil(t, f.cache.report)

	fresh, err := f.svc.GetReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, fresh, "TOTAL REVENUE: $55534.50")
	require.NotNil(t, f.cache.report)
}

func TestSnapshotNotCachedWhenCatalogAlreadyMoved(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()
	svc := f.svc.(*salesService)

	revision := svc.manager.Revision()
	_, err := f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C001", CustomerID: juan, Quantity: 1})
	require.NoError(t, err)

	stored := false
	svc.cacheSnapshot(ctx, revision, "statistics", func() error {
		stored = true
		return nil
	})
	assert.False(t, stored)
}

func TestGetRevenue(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	revenue, err := f.svc.GetRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, revenue.LedgerRevenue)
	assert.Equal(t, 55444.50, revenue.CatalogRevenue)
	assert.Len(t, revenue.Items, 6)

	_, err = f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C002", CustomerID: juan, Quantity: 1})
	require.NoError(t, err)

	revenue, err = f.svc.GetRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17.00, revenue.LedgerRevenue)
	assert.Equal(t, 55461.50, revenue.CatalogRevenue)
}

func TestGetPopularItemsFallsBackToSoldCounts(t *testing.T) {
	svc := NewSalesService(newSeededManager(t), nil, nil, nil, nil, nil)

	top, err := svc.GetPopularItems(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []entity.PopularItem{
		{Code: "E003", TicketsSold: 320},
		{Code: "E001", TicketsSold: 250},
		{Code: "E002", TicketsSold: 180},
	}, top)

	all, err := svc.GetPopularItems(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestGetPopularItemsFromCache(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	_, err := f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C003", CustomerID: juan, Quantity: 4})
	require.NoError(t, err)

	top, err := f.svc.GetPopularItems(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []entity.PopularItem{{Code: "C003", TicketsSold: 4}}, top)
}

func TestRefreshSnapshotCachesStatistics(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	_, err := f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C001", CustomerID: juan, Quantity: 2})
	require.NoError(t, err)

	stats, err := f.svc.RefreshSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17.00, stats.TotalRevenue)
	require.NotNil(t, f.cache.stats)
	assert.Equal(t, 17.00, f.cache.stats.TotalRevenue)
}

func TestSyncPopularityMatchesSoldCounts(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()
	f.cache.popular["X999"] = 7

	require.NoError(t, f.svc.SyncPopularity(ctx))
	assert.NotContains(t, f.cache.popular, "X999")
	assert.Equal(t, int64(320), f.cache.popular["E003"])
	assert.Len(t, f.cache.popular, 6)

	_, err := f.svc.ExecuteSale(ctx, &SaleRequest{ItemCode: "C003", CustomerID: juan, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(84), f.cache.popular["C003"])

	cached, err := f.svc.GetPopularItems(ctx, 3)
	require.NoError(t, err)
	fallback, err := NewSalesService(f.svc.(*salesService).manager, nil, nil, nil, nil, nil).GetPopularItems(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, fallback, cached)
}

func TestSyncPopularityWithoutCache(t *testing.T) {
	svc := NewSalesService(newSeededManager(t), nil, nil, nil, nil, nil)
	assert.NoError(t, svc.SyncPopularity(context.Background()))
}
