package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dukkan-app/dukkan-api/internal/middleware"
	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/services"
	"github.com/dukkan-app/dukkan-api/internal/storage"
)

type CreditHandler struct {
	creditService *services.CreditService
	store         *storage.LocalStorage
}

func NewCreditHandler(creditService *services.CreditService, store *storage.LocalStorage) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
		store:         store,
	}
}

// @Summary List Credits
// @Description Get a paginated list of credit records
// @Tags Credits
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by customer or notes"
// @Param status query string false "Filter by status (Pending|Partial|Paid)"
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /credits [get]
func (h *CreditHandler) Index(c *gin.Context) {
	query := ParseListQuery(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["customer_id"] = c.Query("customer_id")

	credits, total, err := h.creditService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.CreditResponse
	for _, credit := range credits {
		responses = append(responses, credit.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"credits":    responses,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Credit
// @Description Get a credit record by ID
// @Tags Credits
// @Produce json
// @Param credit_id path int true "Credit ID"
// @Success 200 {object} models.CreditResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /credits/{credit_id} [get]
func (h *CreditHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("credit_id"), 10, 32)
	credit, err := h.creditService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"credit": credit.ToResponse()})
}

// @Summary Create Credit
// @Description Extend credit to a customer; an unknown customer name auto-provisions the customer
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body services.CreateCreditInput true "Credit Data"
// @Success 201 {object} models.CreditResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /credits [post]
func (h *CreditHandler) Create(c *gin.Context) {
	var input services.CreateCreditInput
	if err := BindNestedOrFlat(c, "credit", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	credit, err := h.creditService.Create(c.Request.Context(), input, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"credit": credit.ToResponse()})
}

// @Summary Update Credit
// @Description Edit a credit; status is derived from the balance
// @Tags Credits
// @Accept json
// @Produce json
// @Param credit_id path int true "Credit ID"
// @Param request body services.UpdateCreditInput true "Credit Data"
// @Success 200 {object} models.CreditResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /credits/{credit_id} [put]
func (h *CreditHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("credit_id"), 10, 32)

	var input services.UpdateCreditInput
	if err := BindNestedOrFlat(c, "credit", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	credit, err := h.creditService.Update(c.Request.Context(), uint(id), input, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"credit": credit.ToResponse()})
}

// @Summary Delete Credit
// @Description Remove a credit record; derived income entries are kept
// @Tags Credits
// @Produce json
// @Param credit_id path int true "Credit ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /credits/{credit_id} [delete]
func (h *CreditHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("credit_id"), 10, 32)
	if err := h.creditService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		status := http.StatusInternalServerError
		if err == services.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Credit deleted"})
}

type RepayRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Notes  string  `json:"notes"`
}

// @Summary Repay Credit
// @Description Apply a payment against a credit; updates the balance and writes an income entry atomically
// @Tags Credits
// @Accept json
// @Produce json
// @Param credit_id path int true "Credit ID"
// @Param request body RepayRequest true "Payment"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /credits/{credit_id}/repayments [post]
func (h *CreditHandler) Repay(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("credit_id"), 10, 32)

	var req RepayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrInvalidAmount.Error()})
		return
	}

	credit, entry, err := h.creditService.Repay(c.Request.Context(), uint(id), req.Amount, req.Notes, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"credit": credit.ToResponse(),
		"income": entry,
	})
}

// @Summary Upload Credit Attachment
// @Description Attach a receipt or IOU photo to a credit record
// @Tags Credits
// @Accept mpfd
// @Produce json
// @Param credit_id path int true "Credit ID"
// @Param file formData file true "Image file"
// @Success 200 {object} models.CreditResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /credits/{credit_id}/image [post]
func (h *CreditHandler) UploadImage(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("credit_id"), 10, 32)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	if header.Size > storage.MaxFileSize() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}
	if !storage.IsValidContentType(header.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	relPath, err := h.store.Upload(file, header, "credits")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	credit, err := h.creditService.Update(c.Request.Context(), uint(id),
		services.UpdateCreditInput{ImagePath: &relPath}, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"credit": credit.ToResponse()})
}

// @Summary Download Credit Attachment
// @Description Download the receipt or IOU photo attached to a credit
// @Tags Credits
// @Produce application/octet-stream
// @Param credit_id path int true "Credit ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /credits/{credit_id}/image [get]
func (h *CreditHandler) DownloadImage(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("credit_id"), 10, 32)

	credit, err := h.creditService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit not found"})
		return
	}
	if credit.ImagePath == nil || !h.store.Exists(*credit.ImagePath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit has no attachment"})
		return
	}

	c.File(h.store.GetFullPath(*credit.ImagePath))
}
