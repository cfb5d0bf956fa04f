package catalog

import (
	"testing"

	"github.com/ds124wfegd/boxoffice/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemo(t *testing.T) {
	m := newTestManager(t, WithUniqueKeys(true))
	require.NoError(t, SeedDemo(m))

	items := m.Items()
	require.Len(t, items, 6)

	codes := make([]string, 0, len(items))
	for _, item := range items {
		codes = append(codes, item.Code())
	}
	assert.Equal(t, []string{"C001", "C002", "C003", "E001", "E002", "E003"}, codes)

	expected := []struct {
		code      string
		sold      int
		unitPrice float64
	}{
		{"C001", 45, 8.50},
		{"C002", 60, 17.00},
		{"C003", 80, 8.40},
		{"E001", 250, 45.00},
		{"E002", 180, 154.00},
		{"E003", 320, 45.00},
	}
	for _, tt := range expected {
		item, ok := m.FindItem(tt.code)
		require.True(t, ok, tt.code)
		assert.Equal(t, tt.sold, item.SoldCount(), tt.code)
		assert.Equal(t, tt.unitPrice, item.UnitPrice(), tt.code)
		assert.Equal(t, entity.ItemStatusAvailable, item.Status(), tt.code)
	}

	assert.Len(t, m.Customers(), 4)
	assert.Equal(t, 0.0, m.TotalRevenue(), "pre-sold tickets are not ledger sales")
	assert.Equal(t, 55444.50, m.TotalRevenueFor(items))
}

func TestSeedDemoTwiceWithUniqueKeys(t *testing.T) {
	m := newTestManager(t, WithUniqueKeys(true))
	require.NoError(t, SeedDemo(m))
	assert.ErrorIs(t, SeedDemo(m), entity.ErrDuplicateItem)
}
