package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"order-tracking-service/services"
)

// ReportingController handles HTTP requests for read-only reports.
type ReportingController struct {
	reportingService *services.ReportingService
}

func NewReportingController(svc *services.ReportingService) *ReportingController {
	return &ReportingController{reportingService: svc}
}

// TotalRevenue handles GET /reports/revenue
func (rc *ReportingController) TotalRevenue(ctx *gin.Context) {
	start, ok := parseDateQuery(ctx, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(ctx, "end_date")
	if !ok {
		return
	}

	report, svcErr := rc.reportingService.TotalRevenue(ctx.Request.Context(), start, end)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// OrderCount handles GET /reports/orders
func (rc *ReportingController) OrderCount(ctx *gin.Context) {
	start, ok := parseDateQuery(ctx, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(ctx, "end_date")
	if !ok {
		return
	}

	report, svcErr := rc.reportingService.OrderCount(ctx.Request.Context(), start, end)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// MostOrderedProduct handles GET /reports/popular-product
func (rc *ReportingController) MostOrderedProduct(ctx *gin.Context) {
	report, svcErr := rc.reportingService.MostOrderedProduct(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// ExpensesByCategory handles GET /reports/expenses
func (rc *ReportingController) ExpensesByCategory(ctx *gin.Context) {
	start, ok := parseDateQuery(ctx, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(ctx, "end_date")
	if !ok {
		return
	}

	report, svcErr := rc.reportingService.ExpensesByCategory(ctx.Request.Context(), start, end)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"report": report})
}

// ClientSpendReport handles GET /reports/client-spend
func (rc *ReportingController) ClientSpendReport(ctx *gin.Context) {
	report, svcErr := rc.reportingService.ClientSpendReport(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"report": report})
}

// VendorSalesReport handles GET /reports/vendor-sales
func (rc *ReportingController) VendorSalesReport(ctx *gin.Context) {
	report, svcErr := rc.reportingService.VendorSalesReport(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"report": report})
}
