package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"order-tracking-service/models"
)

// VendorRepository defines the interface for vendor data access.
type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindByNameAndEmail(ctx context.Context, name, email string) (*models.Vendor, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Vendor, int64, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// GormVendorRepository implements VendorRepository using GORM.
type GormVendorRepository struct {
	db *gorm.DB
}

func NewGormVendorRepository(db *gorm.DB) VendorRepository {
	return &GormVendorRepository{db: db}
}

func (r *GormVendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	err := r.db.WithContext(ctx).Create(vendor).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *GormVendorRepository) FindByNameAndEmail(ctx context.Context, name, email string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).
		Where("name = ? AND email = ?", name, email).
		First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *GormVendorRepository) FindAll(ctx context.Context, page, limit int) ([]models.Vendor, int64, error) {
	var vendors []models.Vendor
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Vendor{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&vendors).Error; err != nil {
		return nil, 0, err
	}
	return vendors, total, nil
}

func (r *GormVendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// SoftDelete flags the vendor and detaches its products in one transaction;
// the products stay orderable under their own lifecycle.
func (r *GormVendorRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Vendor{}).Where("id = ?", id).Update("is_deleted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Product{}).
			Where("vendor_id = ?", id).
			Update("vendor_id", nil).Error
	})
}
