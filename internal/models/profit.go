package models

import (
	"time"
)

// ProfitEntry is a manual income or expense line in the ledger.
// Repayment income is written here automatically with a distinct source.
type ProfitEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"not null;index" json:"type"`
	Source      string    `gorm:"default:manual;not null;index" json:"source"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `json:"description"`
	CreditID    *uint     `gorm:"index" json:"credit_id"`
	OccurredAt  time.Time `gorm:"index" json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for ProfitEntry
func (ProfitEntry) TableName() string {
	return "profit_entries"
}

// Profit entry type constants
const (
	ProfitTypeIncome  = "Income"
	ProfitTypeExpense = "Expense"
)

// Profit entry source constants
const (
	ProfitSourceManual    = "manual"
	ProfitSourceRepayment = "credit_repayment"
)

// IsIncome returns true for income entries
func (p *ProfitEntry) IsIncome() bool {
	return p.Type == ProfitTypeIncome
}

// Signed returns the amount with expense entries negated
func (p *ProfitEntry) Signed() float64 {
	if p.Type == ProfitTypeExpense {
		return -p.Amount
	}
	return p.Amount
}
