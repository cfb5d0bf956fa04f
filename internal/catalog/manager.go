// Package catalog holds the box office ledger: the items on sale, the customers,
// and the sale operation that ties pricing, inventory and loyalty together.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ds124wfegd/boxoffice/internal/entity"

	"github.com/google/uuid"
)

type Option func(*Manager)

// WithClock replaces time.Now for sale timestamps and report headers.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithUniqueKeys rejects items and customers whose key is already registered.
// Without it duplicates are appended and lookups return the first match.
func WithUniqueKeys(enforce bool) Option {
	return func(m *Manager) {
		m.uniqueKeys = enforce
	}
}

// WithSellableStatusCheck refuses sales of Cancelled or InProgress items with
// ErrNotSellable. Without it only quantity and capacity gate a sale.
func WithSellableStatusCheck(enforce bool) Option {
	return func(m *Manager) {
		m.statusCheck = enforce
	}
}

// Manager owns the catalog. One mutex guards every operation, so concurrent sales
// against the same item are serialized and can never oversell it.
type Manager struct {
	mu           sync.Mutex
	companyName  string
	items        []entity.BookableItem
	customers    []*entity.Customer
	totalRevenue float64
	createdAt    time.Time
	uniqueKeys   bool
	statusCheck  bool
	revision     uint64
	now          func() time.Time
}

func NewManager(companyName string, opts ...Option) (*Manager, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, &entity.ValidationError{Field: "company_name", Constraint: "must be a non-empty string"}
	}

	m := &Manager{
		companyName: companyName,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.createdAt = m.now()
	return m, nil
}

func (m *Manager) CompanyName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.companyName
}

func (m *Manager) SetCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &entity.ValidationError{Field: "company_name", Constraint: "must be a non-empty string"}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companyName = name
	m.revision++
	return nil
}

// Revision counts the changes made through the manager. Snapshots taken at
// the same revision describe the same catalog.
func (m *Manager) Revision() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revision
}

func (m *Manager) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Manager) AddItem(item entity.BookableItem) error {
	if item == nil {
		return &entity.ValidationError{Field: "item", Constraint: "must not be nil"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.uniqueKeys {
		if _, ok := m.findItem(item.Code()); ok {
			return fmt.Errorf("%w: %s", entity.ErrDuplicateItem, item.Code())
		}
	}
	m.items = append(m.items, item)
	m.revision++
	return nil
}

func (m *Manager) AddCustomer(customer *entity.Customer) error {
	if customer == nil {
		return &entity.ValidationError{Field: "customer", Constraint: "must not be nil"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.uniqueKeys {
		if _, ok := m.findCustomer(customer.ID()); ok {
			return fmt.Errorf("%w: %s", entity.ErrDuplicateCustomer, customer.ID())
		}
	}
	m.customers = append(m.customers, customer)
	m.revision++
	return nil
}

func (m *Manager) FindItem(code string) (entity.BookableItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findItem(code)
}

func (m *Manager) FindCustomer(id string) (*entity.Customer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findCustomer(id)
}

func (m *Manager) findItem(code string) (entity.BookableItem, bool) {
	for _, item := range m.items {
		if item.Code() == code {
			return item, true
		}
	}
	return nil, false
}

func (m *Manager) findCustomer(id string) (*entity.Customer, bool) {
	for _, customer := range m.customers {
		if customer.ID() == id {
			return customer, true
		}
	}
	return nil, false
}

// Items returns every item in insertion order.
func (m *Manager) Items() []entity.BookableItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]entity.BookableItem, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) Customers() []*entity.Customer {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*entity.Customer, len(m.customers))
	copy(out, m.customers)
	return out
}

// ListAvailable returns the items still open for sale, in insertion order.
func (m *Manager) ListAvailable() []entity.BookableItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listAvailable()
}

func (m *Manager) listAvailable() []entity.BookableItem {
	var out []entity.BookableItem
	for _, item := range m.items {
		if item.Status() == entity.ItemStatusAvailable {
			out = append(out, item)
		}
	}
	return out
}

// UpdateItemStatus changes the status of the first item with the given code
// and returns the updated item.
func (m *Manager) UpdateItemStatus(code string, status entity.ItemStatus) (entity.ItemView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.findItem(code)
	if !ok {
		return entity.ItemView{}, fmt.Errorf("%w: %s", entity.ErrItemNotFound, code)
	}
	if err := item.SetStatus(status); err != nil {
		return entity.ItemView{}, err
	}
	m.revision++
	return item.View(), nil
}

// ExecuteSale sells quantity tickets of an item to a customer.
//
// Lookups and the inventory check happen before anything changes. A failed sale
// returns one of ErrItemNotFound, ErrCustomerNotFound, ErrNotSellable,
// ErrInvalidQuantity or ErrCapacityExceeded and leaves the ledger untouched.
// Once the item accepts the sale the remaining steps cannot fail.
func (m *Manager) ExecuteSale(itemCode, customerID string, quantity int) (*entity.SaleReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.findItem(itemCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrItemNotFound, itemCode)
	}
	customer, ok := m.findCustomer(customerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrCustomerNotFound, customerID)
	}

	if m.statusCheck {
		switch item.Status() {
		case entity.ItemStatusCancelled, entity.ItemStatusInProgress:
			return nil, fmt.Errorf("%w: %s is %s", entity.ErrNotSellable, itemCode, item.Status())
		}
	}
	if quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}
	if !item.Sell(quantity) {
		return nil, fmt.Errorf("%w: %d requested, %d left", entity.ErrCapacityExceeded,
			quantity, item.Capacity()-item.SoldCount())
	}

	unitPrice := item.UnitPrice()
	gross := unitPrice * float64(quantity)
	net := customer.CalculateDiscount(gross)

	receipt := &entity.SaleReceipt{
		ID:              uuid.New(),
		ItemCode:        item.Code(),
		ItemName:        item.Name(),
		CustomerID:      customer.ID(),
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		GrossAmount:     gross,
		NetAmount:       net,
		DiscountApplied: customer.IsPremium(),
		ItemStatus:      item.Status(),
		ScheduledAt:     item.ScheduledAt(),
		SoldAt:          m.now(),
	}
	receipt.PremiumUpgrade = customer.RecordPurchase(receipt.Purchase())
	m.totalRevenue += net
	m.revision++

	return receipt, nil
}

// TotalRevenue is the sum of every discounted sale amount.
func (m *Manager) TotalRevenue() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalRevenue
}

// TotalRevenueFor sums unit price times sold count over any mix of items.
func (m *Manager) TotalRevenueFor(items []entity.BookableItem) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return totalRevenueFor(items)
}

func totalRevenueFor(items []entity.BookableItem) float64 {
	var total float64
	for _, item := range items {
		total += itemRevenue(item)
	}
	return entity.RoundMoney(total)
}

func itemRevenue(item entity.BookableItem) float64 {
	return item.UnitPrice() * float64(item.SoldCount())
}

// RevenueBreakdown lists the revenue of each item in the given order.
func (m *Manager) RevenueBreakdown(items []entity.BookableItem) []entity.ItemRevenue {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]entity.ItemRevenue, 0, len(items))
	for _, item := range items {
		out = append(out, entity.ItemRevenue{
			Code:      item.Code(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Sold:      item.SoldCount(),
			Revenue:   entity.RoundMoney(itemRevenue(item)),
		})
	}
	return out
}

func (m *Manager) Statistics() entity.CatalogStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	premium := 0
	for _, customer := range m.customers {
		if customer.IsPremium() {
			premium++
		}
	}

	return entity.CatalogStats{
		CompanyName:      m.companyName,
		TotalItems:       len(m.items),
		AvailableItems:   len(m.listAvailable()),
		TotalCustomers:   len(m.customers),
		PremiumCustomers: premium,
		TotalRevenue:     entity.RoundMoney(m.totalRevenue),
		Revision:         m.revision,
		GeneratedAt:      m.now(),
	}
}

// ItemView returns a snapshot of the item taken under the catalog lock.
func (m *Manager) ItemView(code string) (entity.ItemView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.findItem(code)
	if !ok {
		return entity.ItemView{}, fmt.Errorf("%w: %s", entity.ErrItemNotFound, code)
	}
	return item.View(), nil
}

func (m *Manager) ItemViews(availableOnly bool) []entity.ItemView {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.items
	if availableOnly {
		items = m.listAvailable()
	}
	out := make([]entity.ItemView, 0, len(items))
	for _, item := range items {
		out = append(out, item.View())
	}
	return out
}

func (m *Manager) CustomerView(id string) (entity.CustomerView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	customer, ok := m.findCustomer(id)
	if !ok {
		return entity.CustomerView{}, fmt.Errorf("%w: %s", entity.ErrCustomerNotFound, id)
	}
	return customer.View(), nil
}

func (m *Manager) CustomerViews() []entity.CustomerView {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]entity.CustomerView, 0, len(m.customers))
	for _, customer := range m.customers {
		out = append(out, customer.View())
	}
	return out
}

func (m *Manager) CustomerHistory(id string) ([]entity.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	customer, ok := m.findCustomer(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrCustomerNotFound, id)
	}
	return customer.History(), nil
}

// IsBusinessFailure reports whether err is an expected sale outcome rather than a fault.
func IsBusinessFailure(err error) bool {
	return errors.Is(err, entity.ErrItemNotFound) ||
		errors.Is(err, entity.ErrCustomerNotFound) ||
		errors.Is(err, entity.ErrNotSellable) ||
		errors.Is(err, entity.ErrInvalidQuantity) ||
		errors.Is(err, entity.ErrCapacityExceeded)
}
