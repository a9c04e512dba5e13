package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dukkan-app/dukkan-api/internal/repository"
)

// BackupService dumps every collection into one XLSX workbook
type BackupService struct {
	repos *repository.Repositories
}

func NewBackupService(repos *repository.Repositories) *BackupService {
	return &BackupService{repos: repos}
}

// Generate builds the backup workbook, one sheet per collection
func (s *BackupService) Generate(ctx context.Context) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := s.writeProducts(ctx, f); err != nil {
		return nil, "", err
	}
	if err := s.writeCustomers(ctx, f); err != nil {
		return nil, "", err
	}
	if err := s.writeSales(ctx, f); err != nil {
		return nil, "", err
	}
	if err := s.writeCredits(ctx, f); err != nil {
		return nil, "", err
	}
	if err := s.writeProfits(ctx, f); err != nil {
		return nil, "", err
	}

	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("backup_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	return buf.Bytes(), filename, nil
}

func (s *BackupService) writeProducts(ctx context.Context, f *excelize.File) error {
	products, err := s.repos.Product.FindAll(ctx)
	if err != nil {
		return err
	}

	sheet := "Products"
	f.NewSheet(sheet)
	writeRow(f, sheet, 1, "ID", "Name", "Barcode", "Category", "Cost Price", "Sell Price", "Stock", "Created")
	for i, p := range products {
		barcode := ""
		if p.Barcode != nil {
			barcode = *p.Barcode
		}
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		writeRow(f, sheet, i+2, p.ID, p.Name, barcode, category, p.CostPrice, p.SellPrice, p.Stock,
			p.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func (s *BackupService) writeCustomers(ctx context.Context, f *excelize.File) error {
	customers, err := s.repos.Customer.FindAll(ctx)
	if err != nil {
		return err
	}
	debts, err := s.repos.Customer.OutstandingDebtAll(ctx)
	if err != nil {
		return err
	}

	sheet := "Customers"
	f.NewSheet(sheet)
	writeRow(f, sheet, 1, "ID", "Name", "Phone", "Status", "Total Debt", "Created")
	for i, c := range customers {
		writeRow(f, sheet, i+2, c.ID, c.Name, c.Phone, c.Status, debts[c.ID],
			c.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func (s *BackupService) writeSales(ctx context.Context, f *excelize.File) error {
	sales, err := s.repos.Sale.FindAll(ctx)
	if err != nil {
		return err
	}

	sheet := "Sales"
	f.NewSheet(sheet)
	writeRow(f, sheet, 1, "ID", "Product", "Customer", "Sell Price", "Cost Snapshot", "Status", "Sold At")
	for i, sale := range sales {
		customer := ""
		if sale.CustomerName != nil {
			customer = *sale.CustomerName
		}
		cost := 0.0
		if sale.CostPriceSnapshot != nil {
			cost = *sale.CostPriceSnapshot
		}
		writeRow(f, sheet, i+2, sale.ID, sale.ProductName, customer, sale.SellPrice, cost, sale.Status,
			sale.SoldAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (s *BackupService) writeCredits(ctx context.Context, f *excelize.File) error {
	credits, err := s.repos.Credit.FindAll(ctx)
	if err != nil {
		return err
	}

	sheet := "Credits"
	f.NewSheet(sheet)
	writeRow(f, sheet, 1, "ID", "Customer", "Amount", "Paid", "Remaining", "Status", "Due Date", "Created")
	for i, c := range credits {
		dueDate := ""
		if c.DueDate != nil {
			dueDate = c.DueDate.Format("2006-01-02")
		}
		writeRow(f, sheet, i+2, c.ID, c.CustomerName, c.Amount, c.AmountPaid, c.Remaining(), c.Status,
			dueDate, c.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func (s *BackupService) writeProfits(ctx context.Context, f *excelize.File) error {
	entries, err := s.repos.Profit.FindAll(ctx)
	if err != nil {
		return err
	}

	sheet := "Profits"
	f.NewSheet(sheet)
	writeRow(f, sheet, 1, "ID", "Type", "Source", "Amount", "Description", "Date")
	for i, e := range entries {
		writeRow(f, sheet, i+2, e.ID, e.Type, e.Source, e.Amount, e.Description,
			e.OccurredAt.Format("2006-01-02"))
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for col, value := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = f.SetCellValue(sheet, cell, value)
	}
}
