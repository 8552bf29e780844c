package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storepos-system/internal/catalog"
)

type CatalogHTTPHandler struct {
	catalogService *catalog.Service
}

func NewCatalogHTTPHandler(catalogService *catalog.Service) *CatalogHTTPHandler {
	return &CatalogHTTPHandler{
		catalogService: catalogService,
	}
}

type CreateProductRequest struct {
	Name       string `json:"name" binding:"required"`
	Cost       string `json:"cost" binding:"required"`
	Price      string `json:"price" binding:"required"`
	Stock      int32  `json:"stock" binding:"min=0"`
	MinStock   int32  `json:"min_stock,omitempty"`
	Category   string `json:"category,omitempty"`
	Barcode    string `json:"barcode,omitempty"`
	SupplierID *int64 `json:"supplier_id,omitempty"`
}

type UpdateProductRequest struct {
	Name       *string `json:"name,omitempty"`
	Cost       *string `json:"cost,omitempty"`
	Price      *string `json:"price,omitempty"`
	Stock      *int32  `json:"stock,omitempty"`
	MinStock   *int32  `json:"min_stock,omitempty"`
	Category   *string `json:"category,omitempty"`
	SupplierID *int64  `json:"supplier_id,omitempty"`
}

type SupplierRequest struct {
	Name          string  `json:"name" binding:"required"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid ID"))
		return 0, false
	}
	return id, true
}

// --- Product Handlers ---

func (h *CatalogHTTPHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), catalog.ProductInput{
		Name:       req.Name,
		Cost:       req.Cost,
		Price:      req.Price,
		Stock:      req.Stock,
		MinStock:   req.MinStock,
		Category:   req.Category,
		Barcode:    req.Barcode,
		SupplierID: req.SupplierID,
	})
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Product created successfully", product))
}

func (h *CatalogHTTPHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, catalog.ProductPatch{
		Name:       req.Name,
		Cost:       req.Cost,
		Price:      req.Price,
		Stock:      req.Stock,
		MinStock:   req.MinStock,
		Category:   req.Category,
		SupplierID: req.SupplierID,
	})
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Product updated successfully", product))
}

func (h *CatalogHTTPHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Product deleted successfully", nil))
}

func (h *CatalogHTTPHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Product retrieved successfully", product))
}

func (h *CatalogHTTPHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Products retrieved successfully", products))
}

func (h *CatalogHTTPHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Categories retrieved successfully", categories))
}

// --- Supplier Handlers ---

func (h *CatalogHTTPHandler) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	supplier, err := h.catalogService.CreateSupplier(c.Request.Context(), catalog.SupplierInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Supplier created successfully", supplier))
}

func (h *CatalogHTTPHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	supplier, err := h.catalogService.UpdateSupplier(c.Request.Context(), id, catalog.SupplierInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Supplier updated successfully", supplier))
}

func (h *CatalogHTTPHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteSupplier(c.Request.Context(), id); err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Supplier deleted successfully", nil))
}

func (h *CatalogHTTPHandler) GetSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	supplier, err := h.catalogService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Supplier retrieved successfully", supplier))
}

func (h *CatalogHTTPHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.catalogService.ListSuppliers(c.Request.Context())
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Suppliers retrieved successfully", suppliers))
}
