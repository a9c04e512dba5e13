package models

import (
	"time"
)

// Product represents an inventory item
type Product struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null;index" json:"name"`
	Barcode    *string   `gorm:"uniqueIndex" json:"barcode"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	CostPrice  float64   `gorm:"not null;default:0" json:"cost_price"`
	SellPrice  float64   `gorm:"not null;default:0" json:"sell_price"`
	Stock      int       `gorm:"not null;default:0" json:"stock"`
	ImagePath  *string   `json:"image_path"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// Stock status labels
const (
	StockStatusIn  = "In Stock"
	StockStatusLow = "Low Stock"
	StockStatusOut = "Out of Stock"
)

// StockStatus derives the stock label from the current quantity.
// threshold is the low-stock boundary (inclusive).
func (p *Product) StockStatus(threshold int) string {
	switch {
	case p.Stock <= 0:
		return StockStatusOut
	case p.Stock <= threshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// Margin returns the per-unit profit margin
func (p *Product) Margin() float64 {
	return p.SellPrice - p.CostPrice
}

// InventoryValue returns cost price times quantity on hand
func (p *Product) InventoryValue() float64 {
	if p.Stock <= 0 {
		return 0
	}
	return p.CostPrice * float64(p.Stock)
}

// ProductResponse is the JSON response format for products
type ProductResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Barcode      *string   `json:"barcode"`
	CategoryID   *uint     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	CostPrice    float64   `json:"cost_price"`
	SellPrice    float64   `json:"sell_price"`
	Stock        int       `json:"stock"`
	StockStatus  string    `json:"stock_status"`
	ImagePath    *string   `json:"image_path"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse(lowStockThreshold int) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Barcode:     p.Barcode,
		CategoryID:  p.CategoryID,
		CostPrice:   p.CostPrice,
		SellPrice:   p.SellPrice,
		Stock:       p.Stock,
		StockStatus: p.StockStatus(lowStockThreshold),
		ImagePath:   p.ImagePath,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
