package catalog

import (
	"strings"
	"testing"

	"github.com/ds124wfegd/boxoffice/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportEmpty(t *testing.T) {
	m := newTestManager(t)

	for _, items := range [][]entity.BookableItem{nil, {}} {
		report := m.BuildReport(items)
		assert.Contains(t, report, "No items registered.")
		assert.Contains(t, report, "Cinemax Entertainment")
		assert.NotContains(t, report, "TOTAL REVENUE")
	}
}

func TestBuildReport(t *testing.T) {
	m := populated(t)
	_, err := m.ExecuteSale("C001", "0945678901", 2)
	require.NoError(t, err)
	_, err = m.ExecuteSale("E001", "0945678901", 1)
	require.NoError(t, err)

	report := m.BuildReport(m.Items())

	assert.Contains(t, report, "SALES REPORT - Cinemax Entertainment")
	assert.Contains(t, report, "Generated: 01/12/2024 09:15")
	assert.Contains(t, report, "1. ")
	assert.Contains(t, report, "2. ")
	assert.Contains(t, report, "CINEMA SHOWING")
	assert.Contains(t, report, "Revenue generated: $34.00")
	assert.Contains(t, report, "Revenue generated: $45.00")
	assert.Contains(t, report, "TOTAL ITEMS: 2")
	assert.Contains(t, report, "TOTAL REVENUE: $79.00")

	assert.Less(t, strings.Index(report, "C001"), strings.Index(report, "E001"), "items keep their order")
}

func TestBuildCustomerReport(t *testing.T) {
	m := newTestManager(t)
	assert.Contains(t, m.BuildCustomerReport(), "No customers registered.")

	require.NoError(t, m.AddCustomer(newCustomer(t, "0945678901")))
	report := m.BuildCustomerReport()
	assert.Contains(t, report, "1. ")
	assert.Contains(t, report, "Ana Lucía Torres Vega")
}
