package services

import (
	"github.com/dukkan-app/dukkan-api/internal/config"
	"github.com/dukkan-app/dukkan-api/internal/jobs"
	"github.com/dukkan-app/dukkan-api/internal/repository"
	"github.com/dukkan-app/dukkan-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth     *AuthService
	User     *UserService
	Customer *CustomerService
	Category *CategoryService
	Product  *ProductService
	Sale     *SaleService
	Credit   *CreditService
	Profit   *ProfitService
	Report   *ReportService
	Export   *ExportService
	Backup   *BackupService
	Activity *ActivityService
	Image    *ImageService
	Job      *JobService
	Storage  *storage.LocalStorage
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config) *Services {
	activitySvc := NewActivityService(repos.Activity)
	imageSvc := NewImageService(cfg.StoragePath + "/uploads")

	reportSvc := NewReportService(repos.Sale, repos.Profit, repos.Product, repos.Credit, repos.Customer)

	return &Services{
		Auth:     NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:     NewUserService(repos.User, activitySvc, imageSvc),
		Customer: NewCustomerService(repos.Customer, activitySvc),
		Category: NewCategoryService(repos.Category, activitySvc),
		Product:  NewProductService(repos.Product, activitySvc, imageSvc, cfg),
		Sale:     NewSaleService(repos.Sale, repos.Product, repos.Customer, activitySvc),
		Credit:   NewCreditService(repos.Credit, repos.Customer, activitySvc),
		Profit:   NewProfitService(repos.Profit, activitySvc),
		Report:   reportSvc,
		Export:   NewExportService(reportSvc),
		Backup:   NewBackupService(repos),
		Activity: activitySvc,
		Image:    imageSvc,
		Job:      NewJobService(worker),
		Storage:  store,
	}
}
