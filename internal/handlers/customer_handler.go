package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dukkan-app/dukkan-api/internal/middleware"
	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/services"
)

type CustomerHandler struct {
	customerService *services.CustomerService
	creditService   *services.CreditService
	reportService   *services.ReportService
}

func NewCustomerHandler(customerService *services.CustomerService, creditService *services.CreditService, reportService *services.ReportService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		creditService:   creditService,
		reportService:   reportService,
	}
}

// @Summary List Customers
// @Description Get a paginated list of customers with derived debt totals
// @Tags Customers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name or phone"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) Index(c *gin.Context) {
	query := ParseListQuery(c)
	query.Filters["status"] = c.Query("status")

	customers, debts, total, err := h.customerService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.CustomerResponse
	for _, customer := range customers {
		responses = append(responses, customer.ToResponse(debts[customer.ID]))
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":  responses,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Customer
// @Description Get a customer with debt total and credit history
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} models.CustomerResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	customer, debt, err := h.customerService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	credits, err := h.creditService.FindByCustomer(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var creditResponses []models.CreditResponse
	for _, credit := range credits {
		creditResponses = append(creditResponses, credit.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer.ToResponse(debt),
		"credits":  creditResponses,
	})
}

type CustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   string  `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// @Summary Create Customer
// @Description Register a new customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body CustomerRequest true "Customer Data"
// @Success 201 {object} models.CustomerResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := BindNestedOrFlat(c, "customer", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer name is required"})
		return
	}

	customer := &models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
		Status:  models.CustomerStatusActive,
	}

	if err := h.customerService.Create(c.Request.Context(), customer, middleware.GetUserID(c)); err != nil {
		if err == services.ErrDuplicate {
			c.JSON(http.StatusConflict, gin.H{"error": "A customer with this name already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"customer": customer.ToResponse(0)})
}

// @Summary Update Customer
// @Description Update a customer's details
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param request body CustomerRequest true "Customer Data"
// @Success 200 {object} models.CustomerResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	customer, debt, err := h.customerService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var req CustomerRequest
	if err := BindNestedOrFlat(c, "customer", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		customer.Name = req.Name
	}
	customer.Phone = req.Phone
	if req.Address != nil {
		customer.Address = req.Address
	}
	if req.Notes != nil {
		customer.Notes = req.Notes
	}

	if err := h.customerService.Update(c.Request.Context(), customer, middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer.ToResponse(debt)})
}

// @Summary Archive Customer
// @Description Archive a customer, keeping credit and sale history
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.customerService.Archive(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer archived"})
}

// @Summary Check Availability
// @Description Check whether a customer field value is free to use
// @Tags Customers
// @Produce json
// @Param field query string true "Field name (name)"
// @Param value query string true "Value to check"
// @Param excludeId query int false "Record to exclude (when editing)"
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /customers/check [get]
func (h *CustomerHandler) Check(c *gin.Context) {
	field := c.Query("field")
	value := c.Query("value")
	excludeID, _ := strconv.ParseUint(c.Query("excludeId"), 10, 32)

	available, err := h.customerService.CheckAvailability(c.Request.Context(), field, value, uint(excludeID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

// @Summary List Debtors
// @Description Get active customers with open credits and their debt totals
// @Tags Customers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /customers/debtors [get]
func (h *CustomerHandler) Debtors(c *gin.Context) {
	customers, debts, err := h.customerService.FindDebtors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.CustomerResponse
	for _, customer := range customers {
		responses = append(responses, customer.ToResponse(debts[customer.ID]))
	}

	c.JSON(http.StatusOK, gin.H{"customers": responses})
}

// @Summary Customer Statement PDF
// @Description Download a PDF statement of the customer's credits and purchases
// @Tags Customers
// @Produce application/pdf
// @Param id path int true "Customer ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /customers/{id}/statement [get]
func (h *CustomerHandler) Statement(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	buf, err := h.reportService.GenerateCustomerStatementPDF(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("statement_%d.pdf", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
