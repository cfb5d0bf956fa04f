package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/ds124wfegd/boxoffice/internal/catalog"
	"github.com/ds124wfegd/boxoffice/internal/entity"
	"github.com/ds124wfegd/boxoffice/pkg/queue"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)

func newSeededManager(t *testing.T) *catalog.Manager {
	t.Helper()
	m, err := catalog.NewManager("CineMax Entertainment",
		catalog.WithClock(func() time.Time { return testNow }),
		catalog.WithUniqueKeys(true),
	)
	require.NoError(t, err)
	require.NoError(t, catalog.SeedDemo(m))
	return m
}

type fakeSaleRepo struct {
	mu        sync.Mutex
	sales     []*entity.SaleReceipt
	createErr error
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.SaleReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.sales = append(r.sales, sale)
	return nil
}

func (r *fakeSaleRepo) GetByCustomer(ctx context.Context, customerID string) ([]*entity.SaleReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.SaleReceipt
	for _, sale := range r.sales {
		if sale.CustomerID == customerID {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) Totals(ctx context.Context) (*entity.LedgerTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := &entity.LedgerTotals{Sales: int64(len(r.sales))}
	for _, sale := range r.sales {
		totals.Tickets += int64(sale.Quantity)
		totals.Revenue += sale.NetAmount
	}
	return totals, nil
}

type fakeCache struct {
	stats       *entity.CatalogStats
	report      *string
	popular     map[string]int64
	invalidated int
	failReads   bool
	// beforeSet runs at the start of SetStats and SetReport.
	beforeSet func()
}

func newFakeCache() *fakeCache {
	return &fakeCache{popular: map[string]int64{}}
}

var errCacheDown = errors.New("cache down")

func (c *fakeCache) runBeforeSet() {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
}

func (c *fakeCache) SetStats(ctx context.Context, stats *entity.CatalogStats, ttl time.Duration) error {
	c.runBeforeSet()
	copied := *stats
	c.stats = &copied
	return nil
}

func (c *fakeCache) GetStats(ctx context.Context) (*entity.CatalogStats, error) {
	if c.failReads {
		return nil, errCacheDown
	}
	return c.stats, nil
}

func (c *fakeCache) SetReport(ctx context.Context, report string, ttl time.Duration) error {
	c.runBeforeSet()
	c.report = &report
	return nil
}

func (c *fakeCache) GetReport(ctx context.Context) (*string, error) {
	if c.failReads {
		return nil, errCacheDown
	}
	return c.report, nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.invalidated++
	c.stats = nil
	c.report = nil
	return nil
}

func (c *fakeCache) IncrementPopularity(ctx context.Context, itemCode string, tickets int) error {
	c.popular[itemCode] += int64(tickets)
	return nil
}

func (c *fakeCache) GetPopularItems(ctx context.Context, limit int) ([]entity.PopularItem, error) {
	if c.failReads {
		return nil, errCacheDown
	}
	var out []entity.PopularItem
	for code, sold := range c.popular {
		out = append(out, entity.PopularItem{Code: code, TicketsSold: sold})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TicketsSold != out[j].TicketsSold {
			return out[i].TicketsSold > out[j].TicketsSold
		}
		return out[i].Code < out[j].Code
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *fakeCache) ResetPopularity(ctx context.Context, items []entity.PopularItem) error {
	c.popular = map[string]int64{}
	for _, item := range items {
		c.popular[item.Code] = item.TicketsSold
	}
	return nil
}

type fakePublisher struct {
	receipts []*entity.SaleReceipt
	err      error
}

func (p *fakePublisher) PublishSale(ctx context.Context, receipt *entity.SaleReceipt) error {
	if p.err != nil {
		return p.err
	}
	p.receipts = append(p.receipts, receipt)
	return nil
}

type fakeNotifier struct {
	notifications []*entity.Notification
	err           error
}

func (n *fakeNotifier) Notify(ctx context.Context, notification *entity.Notification) error {
	if n.err != nil {
		return n.err
	}
	n.notifications = append(n.notifications, notification)
	return nil
}

type fakeProducer struct {
	key     string
	payload []byte
}

func (p *fakeProducer) SendMessage(ctx context.Context, key string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	p.key = key
	p.payload = data
	return nil
}

func (p *fakeProducer) Close() error { return nil }

type fakeQueue struct {
	published []interface{}
}

func (q *fakeQueue) Publish(ctx context.Context, message interface{}) error {
	q.published = append(q.published, message)
	return nil
}

func (q *fakeQueue) Consume(ctx context.Context, handler func(message []byte) error) error {
	return nil
}

func (q *fakeQueue) Close() error { return nil }

type fakeDLQ struct {
	failed []*queue.FailedNotification
}

func (d *fakeDLQ) HandleFailed(ctx context.Context, n *entity.Notification, err error) error {
	d.failed = append(d.failed, &queue.FailedNotification{Notification: *n, Error: err.Error(), FailedAt: testNow})
	return nil
}

func (d *fakeDLQ) GetFailed(ctx context.Context, limit int) ([]*queue.FailedNotification, error) {
	if limit > 0 && len(d.failed) > limit {
		return d.failed[:limit], nil
	}
	return d.failed, nil
}

func (d *fakeDLQ) Remove(ctx context.Context, notificationID string) (*queue.FailedNotification, error) {
	for i, f := range d.failed {
		if f.Notification.ID == notificationID {
			d.failed = append(d.failed[:i], d.failed[i+1:]...)
			return f, nil
		}
	}
	return nil, queue.ErrNotInDLQ
}

func (d *fakeDLQ) Size(ctx context.Context) (int64, error) {
	return int64(len(d.failed)), nil
}
