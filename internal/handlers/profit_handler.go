package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dukkan-app/dukkan-api/internal/middleware"
	"github.com/dukkan-app/dukkan-api/internal/services"
)

type ProfitHandler struct {
	profitService *services.ProfitService
}

func NewProfitHandler(profitService *services.ProfitService) *ProfitHandler {
	return &ProfitHandler{profitService: profitService}
}

// @Summary List Ledger Entries
// @Description Get a paginated list of income and expense entries
// @Tags Profits
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param type query string false "Filter by type (Income|Expense)"
// @Param source query string false "Filter by source (manual|credit_repayment)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /profits [get]
func (h *ProfitHandler) Index(c *gin.Context) {
	query := ParseListQuery(c)
	query.Filters["type"] = c.Query("type")
	query.Filters["source"] = c.Query("source")

	entries, total, err := h.profitService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profits":    entries,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Ledger Entry
// @Description Get an income or expense entry by ID
// @Tags Profits
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} models.ProfitEntry
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /profits/{id} [get]
func (h *ProfitHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	entry, err := h.profitService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profit": entry})
}

// @Summary Create Ledger Entry
// @Description Record a manual income or expense entry
// @Tags Profits
// @Accept json
// @Produce json
// @Param request body services.CreateProfitInput true "Entry Data"
// @Success 201 {object} models.ProfitEntry
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /profits [post]
func (h *ProfitHandler) Create(c *gin.Context) {
	var input services.CreateProfitInput
	if err := BindNestedOrFlat(c, "profit", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.profitService.Create(c.Request.Context(), input, middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profit": entry})
}

// @Summary Update Ledger Entry
// @Description Edit a manual entry; repayment-derived entries are immutable
// @Tags Profits
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body services.UpdateProfitInput true "Entry Data"
// @Success 200 {object} models.ProfitEntry
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /profits/{id} [put]
func (h *ProfitHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var input services.UpdateProfitInput
	if err := BindNestedOrFlat(c, "profit", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.profitService.Update(c.Request.Context(), uint(id), input, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profit": entry})
}

// @Summary Delete Ledger Entry
// @Description Delete a manual entry; repayment-derived entries are immutable
// @Tags Profits
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /profits/{id} [delete]
func (h *ProfitHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.profitService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}
