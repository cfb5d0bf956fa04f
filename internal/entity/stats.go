package entity

import (
	"fmt"
	"strings"
	"time"
)

// CatalogStats is the headline summary of the box office.
type CatalogStats struct {
	CompanyName      string    `json:"company_name"`
	TotalItems       int       `json:"total_items"`
	AvailableItems   int       `json:"available_items"`
	TotalCustomers   int       `json:"total_customers"`
	PremiumCustomers int       `json:"premium_customers"`
	TotalRevenue     float64   `json:"total_revenue"`
	Revision         uint64    `json:"revision"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// PremiumRate is the share of customers with premium status (0.0 to 1.0).
func (s *CatalogStats) PremiumRate() float64 {
	if s.TotalCustomers == 0 {
		return 0.0
	}
	return float64(s.PremiumCustomers) / float64(s.TotalCustomers)
}

func (s *CatalogStats) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "STATISTICS - %s\n", s.CompanyName)
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Total items: %d\n", s.TotalItems)
	fmt.Fprintf(&b, "Available items: %d\n", s.AvailableItems)
	fmt.Fprintf(&b, "Total customers: %d\n", s.TotalCustomers)
	fmt.Fprintf(&b, "Premium customers: %d\n", s.PremiumCustomers)
	fmt.Fprintf(&b, "Total sales: $%.2f\n", s.TotalRevenue)
	return b.String()
}

// ItemRevenue is what one item has earned at its current unit price.
type ItemRevenue struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Sold      int     `json:"sold"`
	Revenue   float64 `json:"revenue"`
}

// PopularItem ranks an item by tickets sold through the box office.
type PopularItem struct {
	Code        string `json:"code"`
	TicketsSold int64  `json:"tickets_sold"`
}

// LedgerTotals summarises the persisted sales ledger.
type LedgerTotals struct {
	Sales   int64   `json:"sales"`
	Tickets int64   `json:"tickets"`
	Revenue float64 `json:"revenue"`
}
