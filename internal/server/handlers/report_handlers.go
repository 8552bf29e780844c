package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storepos-system/internal/reports"
)

type ReportHTTPHandler struct {
	reportService *reports.Service
}

func NewReportHTTPHandler(reportService *reports.Service) *ReportHTTPHandler {
	return &ReportHTTPHandler{
		reportService: reportService,
	}
}

func (h *ReportHTTPHandler) Dashboard(c *gin.Context) {
	dash, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, successResponse("Dashboard retrieved successfully", dash))
}

func (h *ReportHTTPHandler) SalesChart(c *gin.Context) {
	chart, err := h.reportService.SalesChart(c.Request.Context())
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, chart)
}

func (h *ReportHTTPHandler) TopProducts(c *gin.Context) {
	top, err := h.reportService.TopProducts(c.Request.Context())
	if err != nil {
		c.JSON(serviceError(err))
		return
	}

	c.JSON(http.StatusOK, top)
}

func (h *ReportHTTPHandler) ExportSales(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="sales_report.csv"`)

	if err := h.reportService.ExportSalesCSV(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to export sales"))
		return
	}
	c.Status(http.StatusOK)
}

func (h *ReportHTTPHandler) ExportInventory(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="inventory_export.csv"`)

	if err := h.reportService.ExportInventoryCSV(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to export inventory"))
		return
	}
	c.Status(http.StatusOK)
}
