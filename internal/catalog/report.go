package catalog

import (
	"fmt"
	"strings"

	"github.com/ds124wfegd/boxoffice/internal/entity"
)

const reportDateLayout = "02/01/2006 15:04"

// BuildReport renders every given item with its revenue, followed by the totals.
// Items may mix showings and events.
func (m *Manager) BuildReport(items []entity.BookableItem) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "SALES REPORT - %s\n", m.companyName)
	fmt.Fprintf(&b, "Generated: %s\n", m.now().Format(reportDateLayout))
	b.WriteString(rule + "\n")

	if len(items) == 0 {
		b.WriteString("No items registered.\n")
		return b.String()
	}

	for i, item := range items {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, item.Describe())
		fmt.Fprintf(&b, "   Revenue generated: $%.2f\n", entity.RoundMoney(itemRevenue(item)))
	}

	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "TOTAL ITEMS: %d\n", len(items))
	fmt.Fprintf(&b, "TOTAL REVENUE: $%.2f\n", totalRevenueFor(items))
	b.WriteString(rule + "\n")
	return b.String()
}

// BuildCustomerReport lists every registered customer with their tier and points.
func (m *Manager) BuildCustomerReport() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "CUSTOMERS - %s\n", m.companyName)
	b.WriteString(rule + "\n")

	if len(m.customers) == 0 {
		b.WriteString("No customers registered.\n")
		return b.String()
	}
	for i, c := range m.customers {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, c.Describe())
	}
	return b.String()
}
