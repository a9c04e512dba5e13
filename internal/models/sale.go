package models

import (
	"time"
)

// Sale represents a single-product sale. One record is one unit sold.
type Sale struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProductID         *uint     `gorm:"index" json:"product_id"`
	ProductName       string    `gorm:"not null" json:"product_name"`
	CustomerID        *uint     `gorm:"index" json:"customer_id"`
	CustomerName      *string   `json:"customer_name"`
	SellPrice         float64   `gorm:"not null" json:"sell_price"`
	CostPriceSnapshot *float64  `json:"cost_price_snapshot"`
	Status            string    `gorm:"default:Completed;not null;index" json:"status"`
	Notes             *string   `gorm:"type:text" json:"notes"`
	SoldAt            time.Time `gorm:"index" json:"sold_at"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Associations
	Product  *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// TableName specifies the table name for Sale
func (Sale) TableName() string {
	return "sales"
}

// Sale status constants
const (
	SaleStatusCompleted = "Completed"
	SaleStatusCredit    = "Credit"
)

// IsRevenue reports whether the sale counts toward cash revenue.
// Credit sales are excluded until the linked credit is repaid.
func (s *Sale) IsRevenue() bool {
	return s.Status != SaleStatusCredit
}

// CostValue returns the cost of goods for this sale. The snapshot taken
// at sale time wins; fallback covers rows recorded before snapshotting.
func (s *Sale) CostValue(fallback float64) float64 {
	if s.CostPriceSnapshot != nil {
		return *s.CostPriceSnapshot
	}
	return fallback
}

// SaleResponse is the JSON response format for sales
type SaleResponse struct {
	ID                uint      `json:"id"`
	ProductID         *uint     `json:"product_id"`
	ProductName       string    `json:"product_name"`
	CustomerID        *uint     `json:"customer_id"`
	CustomerName      *string   `json:"customer_name"`
	SellPrice         float64   `json:"sell_price"`
	CostPriceSnapshot *float64  `json:"cost_price_snapshot"`
	Profit            float64   `json:"profit"`
	Status            string    `json:"status"`
	Notes             *string   `json:"notes"`
	SoldAt            time.Time `json:"sold_at"`
	CreatedAt         time.Time `json:"created_at"`
}

// ToResponse converts Sale to SaleResponse
func (s *Sale) ToResponse() SaleResponse {
	resp := SaleResponse{
		ID:                s.ID,
		ProductID:         s.ProductID,
		ProductName:       s.ProductName,
		CustomerID:        s.CustomerID,
		CustomerName:      s.CustomerName,
		SellPrice:         s.SellPrice,
		CostPriceSnapshot: s.CostPriceSnapshot,
		Status:            s.Status,
		Notes:             s.Notes,
		SoldAt:            s.SoldAt,
		CreatedAt:         s.CreatedAt,
	}
	if s.CostPriceSnapshot != nil {
		resp.Profit = s.SellPrice - *s.CostPriceSnapshot
	}
	return resp
}
