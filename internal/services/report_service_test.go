package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dukkan-app/dukkan-api/internal/models"
)

func floatPtr(f float64) *float64 { return &f }
func uintPtr(u uint) *uint        { return &u }

func TestSummarize_CashBasisRevenue(t *testing.T) {
	// A completed sale counts toward revenue; a credit sale only adds
	// its cost. 500 - 200 - 100 = 200 net.
	sales := []models.Sale{
		{
			ProductID:         uintPtr(1),
			ProductName:       "Rice 5kg",
			SellPrice:         500,
			CostPriceSnapshot: floatPtr(200),
			Status:            models.SaleStatusCompleted,
		},
		{
			ProductID:         uintPtr(2),
			ProductName:       "Oil 1L",
			SellPrice:         300,
			CostPriceSnapshot: floatPtr(100),
			Status:            models.SaleStatusCredit,
		},
	}

	summary := Summarize(sales, nil)

	assert.Equal(t, 500.0, summary.Revenue)
	assert.Equal(t, 300.0, summary.COGS)
	assert.Equal(t, 200.0, summary.NetProfit)
	assert.Equal(t, 2, summary.UnitsSold)
	assert.InDelta(t, 40.0, summary.ProfitMargin, 0.001)
}

func TestSummarize_ManualEntries(t *testing.T) {
	entries := []models.ProfitEntry{
		{Type: models.ProfitTypeIncome, Amount: 150},
		{Type: models.ProfitTypeExpense, Amount: 80},
		{Type: models.ProfitTypeIncome, Amount: 50, Source: models.ProfitSourceRepayment},
	}

	summary := Summarize(nil, entries)

	assert.Equal(t, 200.0, summary.ManualIncome)
	assert.Equal(t, 80.0, summary.Expenses)
	assert.Equal(t, 120.0, summary.NetProfit)
}

func TestSummarize_CostFallbacks(t *testing.T) {
	// Snapshot wins over the live product price; without either the
	// sale contributes zero cost.
	sales := []models.Sale{
		{
			ProductName:       "Snapshotted",
			SellPrice:         100,
			CostPriceSnapshot: floatPtr(40),
			Product:           &models.Product{CostPrice: 999},
			Status:            models.SaleStatusCompleted,
		},
		{
			ProductName: "Legacy Row",
			SellPrice:   100,
			Product:     &models.Product{CostPrice: 30},
			Status:      models.SaleStatusCompleted,
		},
		{
			ProductName: "Deleted Product",
			SellPrice:   100,
			Status:      models.SaleStatusCompleted,
		},
	}

	summary := Summarize(sales, nil)

	assert.Equal(t, 70.0, summary.COGS)
	assert.Equal(t, 300.0, summary.Revenue)
}

func TestSummarize_TopProducts(t *testing.T) {
	var sales []models.Sale
	// Six products, each with revenue 100..600; only the top five make it
	for i := 1; i <= 6; i++ {
		sales = append(sales, models.Sale{
			ProductID:   uintPtr(uint(i)),
			ProductName: "Product",
			SellPrice:   float64(i) * 100,
			Status:      models.SaleStatusCompleted,
		})
	}
	// Same product sold twice aggregates units and revenue
	sales = append(sales, models.Sale{
		ProductID:   uintPtr(6),
		ProductName: "Product",
		SellPrice:   600,
		Status:      models.SaleStatusCompleted,
	})

	summary := Summarize(sales, nil)

	assert.Len(t, summary.TopProducts, 5)
	assert.Equal(t, uint(6), summary.TopProducts[0].ProductID)
	assert.Equal(t, 1200.0, summary.TopProducts[0].Revenue)
	assert.Equal(t, 2, summary.TopProducts[0].Units)
	// Descending by revenue
	for i := 1; i < len(summary.TopProducts); i++ {
		assert.GreaterOrEqual(t, summary.TopProducts[i-1].Revenue, summary.TopProducts[i].Revenue)
	}
}

func TestSummarize_UnknownProductName(t *testing.T) {
	sales := []models.Sale{
		{SellPrice: 50, Status: models.SaleStatusCompleted},
	}

	summary := Summarize(sales, nil)

	assert.Len(t, summary.TopProducts, 1)
	assert.Equal(t, "Unknown Product", summary.TopProducts[0].Name)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, nil)

	assert.Equal(t, 0.0, summary.Revenue)
	assert.Equal(t, 0.0, summary.NetProfit)
	assert.Equal(t, 0.0, summary.ProfitMargin)
	assert.Empty(t, summary.TopProducts)
}

func TestRangeStart(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	from, err := rangeStart(RangeWeek, now)
	assert.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), from)

	from, err = rangeStart(RangeMonth, now)
	assert.NoError(t, err)
	assert.Equal(t, now.AddDate(0, -1, 0), from)

	from, err = rangeStart(RangeYear, now)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)

	from, err = rangeStart(RangeAll, now)
	assert.NoError(t, err)
	assert.True(t, from.IsZero())

	from, err = rangeStart("", now)
	assert.NoError(t, err)
	assert.True(t, from.IsZero())

	_, err = rangeStart("decade", now)
	assert.Error(t, err)
}
