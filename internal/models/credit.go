package models

import (
	"time"
)

// Credit represents an outstanding customer debt record
type Credit struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CustomerID   uint       `gorm:"not null;index" json:"customer_id"`
	CustomerName string     `gorm:"not null" json:"customer_name"`
	Amount       float64    `gorm:"not null" json:"amount"`
	AmountPaid   float64    `gorm:"not null;default:0" json:"amount_paid"`
	Status       string     `gorm:"default:Pending;not null;index" json:"status"`
	Notes        *string    `gorm:"type:text" json:"notes"`
	DueDate      *time.Time `gorm:"index" json:"due_date"`
	ImagePath    *string    `json:"image_path"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Associations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// TableName specifies the table name for Credit
func (Credit) TableName() string {
	return "credits"
}

// Credit status constants
const (
	CreditStatusPending = "Pending"
	CreditStatusPartial = "Partial"
	CreditStatusPaid    = "Paid"
)

// Remaining returns the unpaid balance, floored at zero
func (c *Credit) Remaining() float64 {
	remaining := c.Amount - c.AmountPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ComputeStatus derives the status from the paid balance.
// Status is never set directly; it always follows amount/amount_paid.
func (c *Credit) ComputeStatus() string {
	switch {
	case c.AmountPaid <= 0:
		return CreditStatusPending
	case c.AmountPaid < c.Amount:
		return CreditStatusPartial
	default:
		return CreditStatusPaid
	}
}

// IsPaid returns true if the debt has been fully repaid
func (c *Credit) IsPaid() bool {
	return c.ComputeStatus() == CreditStatusPaid
}

// MayRepay returns true if the credit can accept a repayment
func (c *Credit) MayRepay() bool {
	return !c.IsPaid()
}

// IsOverdue returns true if the due date has passed with a balance remaining
func (c *Credit) IsOverdue(now time.Time) bool {
	if c.DueDate == nil || c.IsPaid() {
		return false
	}
	return now.After(*c.DueDate)
}

// CreditResponse is the JSON response format for credits
type CreditResponse struct {
	ID           uint       `json:"id"`
	CustomerID   uint       `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	Amount       float64    `json:"amount"`
	AmountPaid   float64    `json:"amount_paid"`
	Remaining    float64    `json:"remaining"`
	Status       string     `json:"status"`
	Notes        *string    `json:"notes"`
	DueDate      *time.Time `json:"due_date"`
	ImagePath    *string    `json:"image_path"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToResponse converts Credit to CreditResponse
func (c *Credit) ToResponse() CreditResponse {
	return CreditResponse{
		ID:           c.ID,
		CustomerID:   c.CustomerID,
		CustomerName: c.CustomerName,
		Amount:       c.Amount,
		AmountPaid:   c.AmountPaid,
		Remaining:    c.Remaining(),
		Status:       c.Status,
		Notes:        c.Notes,
		DueDate:      c.DueDate,
		ImagePath:    c.ImagePath,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
