package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipmentStatus is the delivery state of a shipment.
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusShipped   ShipmentStatus = "shipped"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusReturned  ShipmentStatus = "returned"
)

// Valid reports whether s is one of the defined shipment statuses.
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusShipped, ShipmentStatusInTransit,
		ShipmentStatusDelivered, ShipmentStatusReturned:
		return true
	}
	return false
}

// Shipment tracks delivery of an approved order. One shipment per order.
type Shipment struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID               uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	TrackingNumber        string         `gorm:"type:varchar(128);index" json:"tracking_number"`
	Status                ShipmentStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`
	EstimatedDeliveryDate time.Time      `json:"estimated_delivery_date"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Shipment) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// UpdateShipmentRequest merges any subset of the shipment fields; nil fields
// are left untouched.
type UpdateShipmentRequest struct {
	Status                *ShipmentStatus `json:"status"`
	TrackingNumber        *string         `json:"tracking_number"`
	EstimatedDeliveryDate *time.Time      `json:"estimated_delivery_date"`
}

// BookShipmentRequest is the payload for booking a shipment with the carrier.
type BookShipmentRequest struct {
	ReceiverName string  `json:"receiver_name" binding:"required"`
	Street       string  `json:"street" binding:"required"`
	City         string  `json:"city" binding:"required"`
	PostalCode   string  `json:"postal_code" binding:"required"`
	CountryCode  string  `json:"country_code" binding:"required"`
	WeightKg     float64 `json:"weight_kg" binding:"required,gt=0"`
}
