package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storepos-system/internal/alerts"
)

type AlertHTTPHandler struct {
	alertService *alerts.Service
}

func NewAlertHTTPHandler(alertService *alerts.Service) *AlertHTTPHandler {
	return &AlertHTTPHandler{
		alertService: alertService,
	}
}

type SetThresholdRequest struct {
	Threshold int32 `json:"threshold" binding:"min=0"`
}

func (h *AlertHTTPHandler) ListLowStock(c *gin.Context) {
	products, err := h.alertService.ListLowStock(c.Request.Context())
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Low stock products retrieved successfully", products))
}

func (h *AlertHTTPHandler) ListSettings(c *gin.Context) {
	settings, err := h.alertService.ListSettings(c.Request.Context())
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Alert settings retrieved successfully", settings))
}

func (h *AlertHTTPHandler) SetThreshold(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	alert, err := h.alertService.SetThreshold(c.Request.Context(), id, req.Threshold)
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Stock alert updated", alert))
}
