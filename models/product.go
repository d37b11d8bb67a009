package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog entry supplied by a vendor. Stock is the live
// available quantity; it is only ever changed through the reserve/release
// ledger operations and never goes negative. A deleted product keeps its
// row (historical order lines reference it) but can no longer be ordered.
type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"not null" json:"price"`
	Stock       int        `gorm:"not null;default:0" json:"stock"`
	Category    string     `gorm:"type:varchar(100)" json:"category"`
	VendorID    *uuid.UUID `gorm:"type:uuid;index" json:"vendor_id"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price" binding:"gte=0"`
	Stock       int       `json:"stock" binding:"gte=0"`
	Category    string    `json:"category"`
	VendorID    uuid.UUID `json:"vendor_id" binding:"required"`
}

// UpdateProductRequest carries a partial product update; nil fields are left
// untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Category    *string  `json:"category"`
}
