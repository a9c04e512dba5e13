package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"sort"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"
)

// ReportService computes financial summaries and renders statements
type ReportService struct {
	saleRepo     repository.SaleRepository
	profitRepo   repository.ProfitRepository
	productRepo  repository.ProductRepository
	creditRepo   repository.CreditRepository
	customerRepo repository.CustomerRepository
}

func NewReportService(
	saleRepo repository.SaleRepository,
	profitRepo repository.ProfitRepository,
	productRepo repository.ProductRepository,
	creditRepo repository.CreditRepository,
	customerRepo repository.CustomerRepository,
) *ReportService {
	return &ReportService{
		saleRepo:     saleRepo,
		profitRepo:   profitRepo,
		productRepo:  productRepo,
		creditRepo:   creditRepo,
		customerRepo: customerRepo,
	}
}

// Report ranges
const (
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
	RangeAll   = "all"
)

// TopProduct is one row of the products-by-revenue ranking
type TopProduct struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Units     int     `json:"units"`
	Revenue   float64 `json:"revenue"`
}

// FinancialSummary is the aggregated view for one time range.
// Inventory valuation and receivables are live snapshots and ignore
// the range; everything else is period activity.
type FinancialSummary struct {
	Range                  string       `json:"range"`
	From                   *time.Time   `json:"from"`
	To                     time.Time    `json:"to"`
	Revenue                float64      `json:"revenue"`
	ManualIncome           float64      `json:"manual_income"`
	COGS                   float64      `json:"cogs"`
	Expenses               float64      `json:"expenses"`
	NetProfit              float64      `json:"net_profit"`
	ProfitMargin           float64      `json:"profit_margin"`
	UnitsSold              int          `json:"units_sold"`
	InventoryValuation     float64      `json:"inventory_valuation"`
	OutstandingReceivables float64      `json:"outstanding_receivables"`
	TopProducts            []TopProduct `json:"top_products"`
}

// FinancialSummary computes the report for a range (week|month|year|all)
func (s *ReportService) FinancialSummary(ctx context.Context, rng string) (*FinancialSummary, error) {
	now := time.Now()
	from, err := rangeStart(rng, now)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.FindBetween(ctx, from, now)
	if err != nil {
		return nil, err
	}
	entries, err := s.profitRepo.FindBetween(ctx, from, now)
	if err != nil {
		return nil, err
	}

	summary := Summarize(sales, entries)
	summary.Range = rng
	summary.To = now
	if rng != RangeAll {
		summary.From = &from
	}

	// Point-in-time figures, never range-filtered
	valuation, err := s.productRepo.InventoryValuation(ctx)
	if err != nil {
		return nil, err
	}
	receivables, err := s.creditRepo.OutstandingReceivables(ctx)
	if err != nil {
		return nil, err
	}
	summary.InventoryValuation = valuation
	summary.OutstandingReceivables = receivables

	return summary, nil
}

// Summarize folds sales and ledger entries into period totals.
// Revenue is cash basis: Credit-status sales contribute nothing until
// a repayment writes an Income entry. Cost is recognized on every sale
// the moment goods leave inventory.
func Summarize(sales []models.Sale, entries []models.ProfitEntry) *FinancialSummary {
	summary := &FinancialSummary{}

	byProduct := make(map[string]*TopProduct)
	for i := range sales {
		sale := &sales[i]

		if sale.IsRevenue() {
			summary.Revenue += sale.SellPrice
		}

		fallback := 0.0
		if sale.Product != nil {
			fallback = sale.Product.CostPrice
		}
		summary.COGS += sale.CostValue(fallback)

		summary.UnitsSold++

		name := sale.ProductName
		if name == "" {
			name = "Unknown Product"
		}
		key := name
		if sale.ProductID != nil {
			key = fmt.Sprintf("#%d", *sale.ProductID)
		}
		top, ok := byProduct[key]
		if !ok {
			top = &TopProduct{Name: name}
			if sale.ProductID != nil {
				top.ProductID = *sale.ProductID
			}
			byProduct[key] = top
		}
		top.Units++
		top.Revenue += sale.SellPrice
	}

	for _, entry := range entries {
		if entry.IsIncome() {
			summary.ManualIncome += entry.Amount
		} else {
			summary.Expenses += entry.Amount
		}
	}

	summary.NetProfit = summary.Revenue + summary.ManualIncome - summary.COGS - summary.Expenses
	if gross := summary.Revenue + summary.ManualIncome; gross > 0 {
		summary.ProfitMargin = summary.NetProfit / gross * 100
	}

	ranking := make([]TopProduct, 0, len(byProduct))
	for _, top := range byProduct {
		ranking = append(ranking, *top)
	}
	sort.Slice(ranking, func(i, j int) bool {
		return ranking[i].Revenue > ranking[j].Revenue
	})
	if len(ranking) > 5 {
		ranking = ranking[:5]
	}
	summary.TopProducts = ranking

	return summary
}

// rangeStart returns the inclusive lower bound for a report range.
// Week and month are rolling windows; year starts on January 1.
func rangeStart(rng string, now time.Time) (time.Time, error) {
	switch rng {
	case RangeWeek:
		return now.AddDate(0, 0, -7), nil
	case RangeMonth:
		return now.AddDate(0, -1, 0), nil
	case RangeYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), nil
	case RangeAll, "":
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("invalid range: %s", rng)
	}
}

// generatePDF renders an HTML template and converts it with wkhtmltopdf
func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	tmplPath := fmt.Sprintf("internal/services/templates/reports/%s", templateName)
	if _, err := os.Stat(tmplPath); os.IsNotExist(err) {
		// Path relative to package when running tests
		tmplPath = fmt.Sprintf("templates/reports/%s", templateName)
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s (path: %s): %w", templateName, tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}

// GenerateCustomerStatementPDF renders a statement of a customer's
// credits and purchases
func (s *ReportService) GenerateCustomerStatementPDF(ctx context.Context, customerID uint) (*bytes.Buffer, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	credits, err := s.creditRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	type CreditRow struct {
		Date      string
		Amount    string
		Paid      string
		Remaining string
		Status    string
		DueDate   string
	}

	type SaleRow struct {
		Date    string
		Product string
		Amount  string
		Status  string
	}

	type StatementData struct {
		Customer  *models.Customer
		Date      string
		TotalDebt string
		Credits   []CreditRow
		Sales     []SaleRow
	}

	totalDebt := 0.0
	var creditRows []CreditRow
	for _, c := range credits {
		totalDebt += c.Remaining()
		dueDate := ""
		if c.DueDate != nil {
			dueDate = c.DueDate.Format("02/01/2006")
		}
		creditRows = append(creditRows, CreditRow{
			Date:      c.CreatedAt.Format("02/01/2006"),
			Amount:    fmt.Sprintf("%.2f", c.Amount),
			Paid:      fmt.Sprintf("%.2f", c.AmountPaid),
			Remaining: fmt.Sprintf("%.2f", c.Remaining()),
			Status:    c.Status,
			DueDate:   dueDate,
		})
	}

	var saleRows []SaleRow
	for _, sale := range sales {
		saleRows = append(saleRows, SaleRow{
			Date:    sale.SoldAt.Format("02/01/2006"),
			Product: sale.ProductName,
			Amount:  fmt.Sprintf("%.2f", sale.SellPrice),
			Status:  sale.Status,
		})
	}

	data := StatementData{
		Customer:  customer,
		Date:      time.Now().Format("02/01/2006"),
		TotalDebt: fmt.Sprintf("%.2f", totalDebt),
		Credits:   creditRows,
		Sales:     saleRows,
	}

	return s.generatePDF("customer_statement.html", data)
}
