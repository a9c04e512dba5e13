package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Customer     CustomerRepository
	Category     CategoryRepository
	Product      ProductRepository
	Sale         SaleRepository
	Credit       CreditRepository
	Profit       ProfitRepository
	Activity     ActivityRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Customer:     NewCustomerRepository(db),
		Category:     NewCategoryRepository(db),
		Product:      NewProductRepository(db),
		Sale:         NewSaleRepository(db),
		Credit:       NewCreditRepository(db),
		Profit:       NewProfitRepository(db),
		Activity:     NewActivityRepository(db),
	}
}
