package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dukkan-app/dukkan-api/internal/middleware"
	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/services"
)

type SaleHandler struct {
	saleService *services.SaleService
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// @Summary List Sales
// @Description Get a paginated list of sales
// @Tags Sales
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by product or customer"
// @Param status query string false "Filter by status"
// @Param customer_id query int false "Filter by customer"
// @Param from query string false "Sold-at lower bound (RFC3339)"
// @Param to query string false "Sold-at upper bound (RFC3339)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /sales [get]
func (h *SaleHandler) Index(c *gin.Context) {
	query := ParseListQuery(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["customer_id"] = c.Query("customer_id")
	query.Filters["from"] = c.Query("from")
	query.Filters["to"] = c.Query("to")

	sales, total, err := h.saleService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.SaleResponse
	for _, sale := range sales {
		responses = append(responses, sale.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"sales":      responses,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Sale
// @Description Get a sale by ID
// @Tags Sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} models.SaleResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *SaleHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	sale, err := h.saleService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": sale.ToResponse()})
}

// @Summary Record Sale
// @Description Record a sale; one unit leaves stock per record
// @Tags Sales
// @Accept json
// @Produce json
// @Param request body services.CreateSaleInput true "Sale Data"
// @Success 201 {object} models.SaleResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var input services.CreateSaleInput
	if err := BindNestedOrFlat(c, "sale", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), input, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sale": sale.ToResponse()})
}

// @Summary Update Sale
// @Description Edit a sale's price, status or notes
// @Tags Sales
// @Accept json
// @Produce json
// @Param id path int true "Sale ID"
// @Param request body services.UpdateSaleInput true "Sale Data"
// @Success 200 {object} models.SaleResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var input services.UpdateSaleInput
	if err := BindNestedOrFlat(c, "sale", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), uint(id), input, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sale": sale.ToResponse()})
}

// @Summary Delete Sale
// @Description Remove a sale and return its unit to stock
// @Tags Sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.saleService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		status := http.StatusInternalServerError
		if err == services.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
}
