package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"order-tracking-service/models"
	"order-tracking-service/repository"
)

// VendorService manages vendor records. Vendors are soft-deleted so their
// products and purchase history remain traceable.
type VendorService struct {
	vendors repository.VendorRepository
	logger  *zap.Logger
}

func NewVendorService(vendors repository.VendorRepository, logger *zap.Logger) *VendorService {
	return &VendorService{vendors: vendors, logger: logger}
}

// CreateVendor registers a new vendor. The same name and email pair cannot be
// registered twice.
func (s *VendorService) CreateVendor(ctx context.Context, req *models.CreateVendorRequest) (*models.Vendor, *ServiceError) {
	if _, err := s.vendors.FindByNameAndEmail(ctx, req.Name, req.Email); err == nil {
		return nil, conflict("Vendor already exists")
	} else if err != repository.ErrNotFound {
		s.logger.Error("vendor lookup failed", zap.Error(err))
		return nil, internalError("Failed to create vendor")
	}

	vendor := &models.Vendor{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Type:        req.Type,
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		if err == repository.ErrConflict {
			return nil, conflict("Vendor already exists")
		}
		s.logger.Error("vendor persist failed", zap.String("email", req.Email), zap.Error(err))
		return nil, internalError("Failed to create vendor")
	}

	s.logger.Info("vendor created", zap.String("vendor_id", vendor.ID.String()))
	return vendor, nil
}

// GetVendor returns a single vendor, including soft-deleted ones.
func (s *VendorService) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, *ServiceError) {
	return s.findVendor(ctx, id)
}

// GetVendors returns a page of vendors, newest first.
func (s *VendorService) GetVendors(ctx context.Context, page, limit int) ([]models.Vendor, MetaData, *ServiceError) {
	vendors, total, err := s.vendors.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("vendor list failed", zap.Error(err))
		return nil, MetaData{}, internalError("Failed to fetch vendors")
	}
	return vendors, newMetaData(page, limit, total), nil
}

// UpdateVendor merges the fields present in the request into the vendor.
func (s *VendorService) UpdateVendor(ctx context.Context, id uuid.UUID, req *models.UpdateVendorRequest) (*models.Vendor, *ServiceError) {
	vendor, svcErr := s.findVendor(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if vendor.IsDeleted {
		return nil, badRequest("Vendor has been deleted")
	}

	if req.Name != nil {
		vendor.Name = *req.Name
	}
	if req.Email != nil {
		vendor.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		vendor.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		vendor.Address = *req.Address
	}

	if err := s.vendors.Update(ctx, vendor); err != nil {
		s.logger.Error("vendor update failed", zap.String("vendor_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to update vendor")
	}
	return vendor, nil
}

// DeleteVendor soft-deletes the vendor and detaches its products.
func (s *VendorService) DeleteVendor(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.vendors.SoftDelete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return notFound("Vendor not found")
		}
		s.logger.Error("vendor delete failed", zap.String("vendor_id", id.String()), zap.Error(err))
		return internalError("Failed to delete vendor")
	}

	s.logger.Info("vendor deleted", zap.String("vendor_id", id.String()))
	return nil
}

func (s *VendorService) findVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, *ServiceError) {
	vendor, err := s.vendors.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Vendor not found")
		}
		s.logger.Error("vendor lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch vendor")
	}
	return vendor, nil
}
