package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreditComputeStatus(t *testing.T) {
	cases := []struct {
		name       string
		amount     float64
		amountPaid float64
		expected   string
	}{
		{"nothing paid", 1000, 0, CreditStatusPending},
		{"negative paid", 1000, -10, CreditStatusPending},
		{"partially paid", 1000, 400, CreditStatusPartial},
		{"fully paid", 1000, 1000, CreditStatusPaid},
		{"overpaid", 1000, 1100, CreditStatusPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			credit := &Credit{Amount: tc.amount, AmountPaid: tc.amountPaid}
			assert.Equal(t, tc.expected, credit.ComputeStatus())
		})
	}
}

func TestCreditRemaining(t *testing.T) {
	credit := &Credit{Amount: 1000, AmountPaid: 400}
	assert.Equal(t, 600.0, credit.Remaining())

	// Overpayment floors at zero rather than going negative
	credit = &Credit{Amount: 1000, AmountPaid: 1100}
	assert.Equal(t, 0.0, credit.Remaining())
}

func TestCreditIsOverdue(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	open := &Credit{Amount: 100, DueDate: &yesterday}
	assert.True(t, open.IsOverdue(now))

	notDue := &Credit{Amount: 100, DueDate: &tomorrow}
	assert.False(t, notDue.IsOverdue(now))

	noDueDate := &Credit{Amount: 100}
	assert.False(t, noDueDate.IsOverdue(now))

	settled := &Credit{Amount: 100, AmountPaid: 100, DueDate: &yesterday}
	assert.False(t, settled.IsOverdue(now))
}

func TestCreditToResponse(t *testing.T) {
	credit := &Credit{
		ID:           1,
		CustomerID:   2,
		CustomerName: "Ahmed",
		Amount:       1000,
		AmountPaid:   400,
		Status:       CreditStatusPartial,
	}

	resp := credit.ToResponse()
	assert.Equal(t, 600.0, resp.Remaining)
	assert.Equal(t, CreditStatusPartial, resp.Status)
}

func TestSaleCostValue(t *testing.T) {
	snapshot := 40.0
	withSnapshot := &Sale{CostPriceSnapshot: &snapshot}
	assert.Equal(t, 40.0, withSnapshot.CostValue(30))

	withoutSnapshot := &Sale{}
	assert.Equal(t, 30.0, withoutSnapshot.CostValue(30))
}

func TestSaleIsRevenue(t *testing.T) {
	completed := &Sale{Status: SaleStatusCompleted}
	assert.True(t, completed.IsRevenue())

	credit := &Sale{Status: SaleStatusCredit}
	assert.False(t, credit.IsRevenue())
}
