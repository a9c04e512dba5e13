package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dukkan-app/dukkan-api/internal/middleware"
	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/services"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// @Summary List Products
// @Description Get a paginated list of products with stock status
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name or barcode"
// @Param category_id query int false "Filter by category"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /products [get]
func (h *ProductHandler) Index(c *gin.Context) {
	query := ParseListQuery(c)
	query.Filters["category_id"] = c.Query("category_id")

	products, total, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	threshold := h.productService.LowStockThreshold()
	var responses []models.ProductResponse
	for _, product := range products {
		responses = append(responses, product.ToResponse(threshold))
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   responses,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Product
// @Description Get a product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *ProductHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	product, err := h.productService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product.ToResponse(h.productService.LowStockThreshold())})
}

// @Summary Lookup by Barcode
// @Description Get a product by its barcode
// @Tags Products
// @Produce json
// @Param code path string true "Barcode"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /products/barcode/{code} [get]
func (h *ProductHandler) ShowByBarcode(c *gin.Context) {
	product, err := h.productService.FindByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product.ToResponse(h.productService.LowStockThreshold())})
}

type ProductRequest struct {
	Name       string   `json:"name"`
	Barcode    *string  `json:"barcode"`
	CategoryID *uint    `json:"category_id"`
	CostPrice  *float64 `json:"cost_price"`
	SellPrice  *float64 `json:"sell_price"`
	Stock      *int     `json:"stock"`
}

// @Summary Create Product
// @Description Add a product to the inventory
// @Tags Products
// @Accept json
// @Produce json
// @Param request body ProductRequest true "Product Data"
// @Success 201 {object} models.ProductResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := BindNestedOrFlat(c, "product", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		Name:       req.Name,
		Barcode:    req.Barcode,
		CategoryID: req.CategoryID,
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SellPrice != nil {
		product.SellPrice = *req.SellPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := h.productService.Create(c.Request.Context(), product, middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product.ToResponse(h.productService.LowStockThreshold())})
}

// @Summary Update Product
// @Description Update a product's details
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product Data"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	product, err := h.productService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req ProductRequest
	if err := BindNestedOrFlat(c, "product", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Barcode != nil {
		product.Barcode = req.Barcode
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SellPrice != nil {
		product.SellPrice = *req.SellPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := h.productService.Update(c.Request.Context(), product, middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product.ToResponse(h.productService.LowStockThreshold())})
}

// @Summary Delete Product
// @Description Remove a product from the inventory
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.productService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// @Summary Upload Product Image
// @Description Attach an image to a product
// @Tags Products
// @Accept mpfd
// @Produce json
// @Param id path int true "Product ID"
// @Param file formData file true "Image file"
// @Success 200 {object} models.ProductResponse
// @Security BearerAuth
// @Router /products/{id}/image [post]
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	product, err := h.productService.UpdateImage(c.Request.Context(), uint(id), file, header)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product.ToResponse(h.productService.LowStockThreshold())})
}

// @Summary Low Stock Products
// @Description Get products at or below the low-stock threshold
// @Tags Products
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /products/low_stock [get]
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.FindLowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	threshold := h.productService.LowStockThreshold()
	var responses []models.ProductResponse
	for _, product := range products {
		responses = append(responses, product.ToResponse(threshold))
	}

	c.JSON(http.StatusOK, gin.H{"products": responses})
}
