package handlers

import (
	"github.com/dukkan-app/dukkan-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	User     *UserHandler
	Customer *CustomerHandler
	Category *CategoryHandler
	Product  *ProductHandler
	Sale     *SaleHandler
	Credit   *CreditHandler
	Profit   *ProfitHandler
	Report   *ReportHandler
	Activity *ActivityHandler
	Upload   *UploadHandler
	Backup   *BackupHandler
	Job      *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Auth:     NewAuthHandler(svcs.Auth),
		User:     NewUserHandler(svcs.User),
		Customer: NewCustomerHandler(svcs.Customer, svcs.Credit, svcs.Report),
		Category: NewCategoryHandler(svcs.Category),
		Product:  NewProductHandler(svcs.Product),
		Sale:     NewSaleHandler(svcs.Sale),
		Credit:   NewCreditHandler(svcs.Credit, svcs.Storage),
		Profit:   NewProfitHandler(svcs.Profit),
		Report:   NewReportHandler(svcs.Report, svcs.Export),
		Activity: NewActivityHandler(svcs.Activity),
		Upload:   NewUploadHandler(svcs.Image),
		Backup:   NewBackupHandler(svcs.Backup),
		Job:      NewJobHandler(svcs.Job),
	}
}
