package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"order-tracking-service/models"
	"order-tracking-service/providers"
	"order-tracking-service/services"
)

// ShippingController handles HTTP requests for shipment operations.
type ShippingController struct {
	shippingService *services.ShippingService
}

func NewShippingController(svc *services.ShippingService) *ShippingController {
	return &ShippingController{shippingService: svc}
}

// CreateShipment handles POST /orders/:id/shipments
func (sc *ShippingController) CreateShipment(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	shipment, svcErr := sc.shippingService.CreateShipment(ctx.Request.Context(), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"shipment": shipment})
}

// BookShipment handles POST /orders/:id/shipments/book
func (sc *ShippingController) BookShipment(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.BookShipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	receiver := providers.CarrierAddress{
		Name:       req.ReceiverName,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.CountryCode,
	}

	shipment, svcErr := sc.shippingService.CreateShipmentWithCarrier(ctx.Request.Context(), orderID, receiver, req.WeightKg)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"shipment": shipment})
}

// UpdateShipment handles PATCH /orders/:id/shipments
func (sc *ShippingController) UpdateShipment(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdateShipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	shipment, svcErr := sc.shippingService.UpdateShipment(ctx.Request.Context(), orderID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"shipment": shipment})
}

// TrackShipment handles GET /orders/:id/shipments/track
func (sc *ShippingController) TrackShipment(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	status, svcErr := sc.shippingService.TrackShipment(ctx.Request.Context(), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, status)
}
