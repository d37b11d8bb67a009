package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"order-tracking-service/models"
	"order-tracking-service/services"
)

// ClientController handles HTTP requests for client operations.
type ClientController struct {
	clientService *services.ClientService
}

func NewClientController(svc *services.ClientService) *ClientController {
	return &ClientController{clientService: svc}
}

// CreateClient handles POST /clients
func (cc *ClientController) CreateClient(ctx *gin.Context) {
	var req models.CreateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	client, svcErr := cc.clientService.CreateClient(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"client": client})
}

// GetClient handles GET /clients/:id
func (cc *ClientController) GetClient(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	client, svcErr := cc.clientService.GetClient(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"client": client})
}

// GetClients handles GET /clients
func (cc *ClientController) GetClients(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	clients, meta, svcErr := cc.clientService.GetClients(ctx.Request.Context(), page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"clients": clients, "meta": meta})
}

// UpdateClient handles PATCH /clients/:id
func (cc *ClientController) UpdateClient(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	client, svcErr := cc.clientService.UpdateClient(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"client": client})
}

// DeleteClient handles DELETE /clients/:id
func (cc *ClientController) DeleteClient(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if svcErr := cc.clientService.DeleteClient(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}

// ClientOrders handles GET /clients/:id/orders
func (cc *ClientController) ClientOrders(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, limit := parsePaginationParams(ctx)
	orders, meta, svcErr := cc.clientService.ClientOrders(ctx.Request.Context(), id, page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"orders": orders, "meta": meta})
}
