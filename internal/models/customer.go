package models

import (
	"time"
)

// Customer represents a shop customer
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Phone     string    `gorm:"index" json:"phone"`
	Address   *string   `json:"address"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	Status    string    `gorm:"default:active;not null;index" json:"status"`
	ImagePath *string   `json:"image_path"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Credits []Credit `gorm:"foreignKey:CustomerID" json:"credits,omitempty"`
	Sales   []Sale   `gorm:"foreignKey:CustomerID" json:"sales,omitempty"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// Customer status constants
const (
	CustomerStatusActive   = "active"
	CustomerStatusArchived = "archived"
)

// IsActive returns true if the customer has not been archived
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// OutstandingDebt sums the remaining balance of the preloaded credits.
// Debt is derived from amount/amount_paid at read time, never stored.
func (c *Customer) OutstandingDebt() float64 {
	total := 0.0
	for i := range c.Credits {
		total += c.Credits[i].Remaining()
	}
	return total
}

// CustomerResponse is the JSON response format for customers
type CustomerResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   *string   `json:"address"`
	Notes     *string   `json:"notes"`
	Status    string    `json:"status"`
	ImagePath *string   `json:"image_path"`
	TotalDebt float64   `json:"total_debt"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts Customer to CustomerResponse.
// totalDebt is computed by the caller (sum of remaining credit balances).
func (c *Customer) ToResponse(totalDebt float64) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		Status:    c.Status,
		ImagePath: c.ImagePath,
		TotalDebt: totalDebt,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
