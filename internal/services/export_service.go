package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportService renders financial summaries as downloadable files
type ExportService struct {
	reportSvc *ReportService
}

func NewExportService(reportSvc *ReportService) *ExportService {
	return &ExportService{reportSvc: reportSvc}
}

// ExportXLSX produces a spreadsheet of the financial summary for a range
func (s *ExportService) ExportXLSX(ctx context.Context, rng string) ([]byte, string, error) {
	summary, err := s.reportSvc.FinancialSummary(ctx, rng)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Financial Report"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Financial Report (%s)", summary.Range))
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Summary")
	_ = f.SetCellValue(sheet, "A4", "Metric")
	_ = f.SetCellValue(sheet, "B4", "Value")

	_ = f.SetCellValue(sheet, "A5", "Revenue")
	_ = f.SetCellValue(sheet, "B5", summary.Revenue)
	_ = f.SetCellValue(sheet, "A6", "Manual Income")
	_ = f.SetCellValue(sheet, "B6", summary.ManualIncome)
	_ = f.SetCellValue(sheet, "A7", "Cost of Goods Sold")
	_ = f.SetCellValue(sheet, "B7", summary.COGS)
	_ = f.SetCellValue(sheet, "A8", "Expenses")
	_ = f.SetCellValue(sheet, "B8", summary.Expenses)
	_ = f.SetCellValue(sheet, "A9", "Net Profit")
	_ = f.SetCellValue(sheet, "B9", summary.NetProfit)
	_ = f.SetCellValue(sheet, "A10", "Profit Margin")
	_ = f.SetCellValue(sheet, "B10", fmt.Sprintf("%.2f%%", summary.ProfitMargin))
	_ = f.SetCellValue(sheet, "A11", "Units Sold")
	_ = f.SetCellValue(sheet, "B11", summary.UnitsSold)
	_ = f.SetCellValue(sheet, "A12", "Inventory Valuation")
	_ = f.SetCellValue(sheet, "B12", summary.InventoryValuation)
	_ = f.SetCellValue(sheet, "A13", "Outstanding Receivables")
	_ = f.SetCellValue(sheet, "B13", summary.OutstandingReceivables)

	_ = f.SetCellValue(sheet, "A15", "Top Products")
	_ = f.SetCellValue(sheet, "A16", "Product")
	_ = f.SetCellValue(sheet, "B16", "Units")
	_ = f.SetCellValue(sheet, "C16", "Revenue")

	row := 17
	for _, top := range summary.TopProducts {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), top.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), top.Units)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), top.Revenue)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("financial_report_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportPDF produces a PDF of the financial summary for a range
func (s *ExportService) ExportPDF(ctx context.Context, rng string) ([]byte, string, error) {
	summary, err := s.reportSvc.FinancialSummary(ctx, rng)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Financial Report (%s)", summary.Range))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	lines := []struct {
		label string
		value string
	}{
		{"Revenue:", fmt.Sprintf("%.2f LE", summary.Revenue)},
		{"Manual Income:", fmt.Sprintf("%.2f LE", summary.ManualIncome)},
		{"Cost of Goods Sold:", fmt.Sprintf("%.2f LE", summary.COGS)},
		{"Expenses:", fmt.Sprintf("%.2f LE", summary.Expenses)},
		{"Net Profit:", fmt.Sprintf("%.2f LE", summary.NetProfit)},
		{"Profit Margin:", fmt.Sprintf("%.2f%%", summary.ProfitMargin)},
		{"Units Sold:", fmt.Sprintf("%d", summary.UnitsSold)},
		{"Inventory Valuation:", fmt.Sprintf("%.2f LE", summary.InventoryValuation)},
		{"Outstanding Receivables:", fmt.Sprintf("%.2f LE", summary.OutstandingReceivables)},
	}
	for _, line := range lines {
		pdf.Cell(60, 10, line.label)
		pdf.Cell(40, 10, line.value)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Top Products")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, top := range summary.TopProducts {
		pdf.Cell(60, 10, top.Name)
		pdf.Cell(30, 10, fmt.Sprintf("%d units", top.Units))
		pdf.Cell(40, 10, fmt.Sprintf("%.2f LE", top.Revenue))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("financial_report_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
