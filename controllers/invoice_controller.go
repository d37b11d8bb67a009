package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"order-tracking-service/models"
	"order-tracking-service/services"
)

// InvoiceController handles HTTP requests for invoice operations.
type InvoiceController struct {
	invoiceService *services.InvoiceService
}

func NewInvoiceController(svc *services.InvoiceService) *InvoiceController {
	return &InvoiceController{invoiceService: svc}
}

// GenerateInvoice handles POST /orders/:id/invoice
func (ic *InvoiceController) GenerateInvoice(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	invoice, svcErr := ic.invoiceService.GenerateInvoice(ctx.Request.Context(), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"invoice": invoice})
}

// GetOrderInvoice handles GET /orders/:id/invoice
func (ic *InvoiceController) GetOrderInvoice(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	invoice, svcErr := ic.invoiceService.GetInvoiceByOrder(ctx.Request.Context(), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// PaymentStatus handles GET /orders/:id/invoice/payment-status
func (ic *InvoiceController) PaymentStatus(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	status, svcErr := ic.invoiceService.PaymentStatus(ctx.Request.Context(), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// GetInvoice handles GET /invoices/:id
func (ic *InvoiceController) GetInvoice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	invoice, svcErr := ic.invoiceService.GetInvoice(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// GetInvoices handles GET /invoices
func (ic *InvoiceController) GetInvoices(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	invoices, meta, svcErr := ic.invoiceService.GetInvoices(ctx.Request.Context(), page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"invoices": invoices, "meta": meta})
}

// UpdateInvoice handles PATCH /invoices/:id
func (ic *InvoiceController) UpdateInvoice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	invoice, svcErr := ic.invoiceService.UpdateInvoice(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// DeleteInvoice handles DELETE /invoices/:id
func (ic *InvoiceController) DeleteInvoice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if svcErr := ic.invoiceService.DeleteInvoice(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invoice cancelled"})
}
