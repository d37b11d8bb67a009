package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"order-tracking-service/models"
	"order-tracking-service/services"
)

// VendorController handles HTTP requests for vendor operations.
type VendorController struct {
	vendorService *services.VendorService
}

func NewVendorController(svc *services.VendorService) *VendorController {
	return &VendorController{vendorService: svc}
}

// CreateVendor handles POST /vendors
func (vc *VendorController) CreateVendor(ctx *gin.Context) {
	var req models.CreateVendorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	vendor, svcErr := vc.vendorService.CreateVendor(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"vendor": vendor})
}

// GetVendor handles GET /vendors/:id
func (vc *VendorController) GetVendor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	vendor, svcErr := vc.vendorService.GetVendor(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// GetVendors handles GET /vendors
func (vc *VendorController) GetVendors(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	vendors, meta, svcErr := vc.vendorService.GetVendors(ctx.Request.Context(), page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"vendors": vendors, "meta": meta})
}

// UpdateVendor handles PATCH /vendors/:id
func (vc *VendorController) UpdateVendor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdateVendorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	vendor, svcErr := vc.vendorService.UpdateVendor(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// DeleteVendor handles DELETE /vendors/:id
func (vc *VendorController) DeleteVendor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if svcErr := vc.vendorService.DeleteVendor(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Vendor deleted"})
}
