package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukkan-app/dukkan-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
	}
}

// @Summary Financial Summary
// @Description Get revenue, COGS, expenses and net profit for a time range
// @Tags Reports
// @Produce json
// @Param range query string false "Time range (week|month|year|all)" default(all)
// @Success 200 {object} services.FinancialSummary
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reports/financial [get]
func (h *ReportHandler) Financial(c *gin.Context) {
	summary, err := h.reportService.FinancialSummary(c.Request.Context(), c.Query("range"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": summary})
}

// @Summary Export Financial Report (XLSX)
// @Description Download the financial report as an Excel workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param range query string false "Time range (week|month|year|all)" default(all)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/financial/export/xlsx [get]
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	data, filename, err := h.exportService.ExportXLSX(c.Request.Context(), c.Query("range"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary Export Financial Report (PDF)
// @Description Download the financial report as a PDF document
// @Tags Reports
// @Produce application/pdf
// @Param range query string false "Time range (week|month|year|all)" default(all)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/financial/export/pdf [get]
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	data, filename, err := h.exportService.ExportPDF(c.Request.Context(), c.Query("range"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
