package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storepos-system/internal/ledger"
)

type LedgerHTTPHandler struct {
	ledgerService *ledger.Service
}

func NewLedgerHTTPHandler(ledgerService *ledger.Service) *LedgerHTTPHandler {
	return &LedgerHTTPHandler{
		ledgerService: ledgerService,
	}
}

type RecordSaleRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int32 `json:"quantity" binding:"required,min=1"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID       int64   `json:"supplier_id" binding:"required"`
	ProductID        int64   `json:"product_id" binding:"required"`
	Quantity         int32   `json:"quantity" binding:"required,min=1"`
	CostPerUnit      string  `json:"cost_per_unit" binding:"required"`
	ExpectedDelivery *string `json:"expected_delivery,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

func (h *LedgerHTTPHandler) RecordSale(c *gin.Context) {
	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	sale, err := h.ledgerService.RecordSale(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Sale recorded successfully", sale))
}

func (h *LedgerHTTPHandler) ListSales(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	sales, err := h.ledgerService.ListSales(c.Request.Context(), limit)
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Sales retrieved successfully", sales))
}

func (h *LedgerHTTPHandler) CreatePurchaseOrder(c *gin.Context) {
	var req CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	order, err := h.ledgerService.CreatePurchaseOrder(c.Request.Context(), ledger.PurchaseOrderInput{
		SupplierID:       req.SupplierID,
		ProductID:        req.ProductID,
		Quantity:         req.Quantity,
		CostPerUnit:      req.CostPerUnit,
		ExpectedDelivery: req.ExpectedDelivery,
		Notes:            req.Notes,
	})
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Purchase order created successfully", order))
}

func (h *LedgerHTTPHandler) GetPurchaseOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.ledgerService.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Purchase order retrieved successfully", order))
}

func (h *LedgerHTTPHandler) ListPurchaseOrders(c *gin.Context) {
	orders, err := h.ledgerService.ListPurchaseOrders(c.Request.Context())
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Purchase orders retrieved successfully", orders))
}

func (h *LedgerHTTPHandler) ReceivePurchaseOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.ledgerService.ReceivePurchaseOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Purchase order received, stock updated", order))
}

func (h *LedgerHTTPHandler) CancelPurchaseOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.ledgerService.CancelPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Purchase order cancelled", order))
}
