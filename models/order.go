package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the defined order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order edit actions.
type OrderAction string

const (
	OrderActionAdd    OrderAction = "add"
	OrderActionRemove OrderAction = "remove"
	OrderActionUpdate OrderAction = "update"
)

// Order owns its lines. TotalAmount is always the sum of the lines' Price.
type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"client_id"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount"`
	PaymentIntentID string      `gorm:"type:varchar(255)" json:"payment_intent"`
	Lines           []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderLine is a product entry on an order. Price is the line total,
// quantity times the unit price snapshotted when the line was reserved;
// later catalog price changes never touch it.
type OrderLine struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID *uuid.UUID `gorm:"type:uuid;index" json:"product_id"` // nil once the product is deleted
	Quantity  int        `gorm:"not null" json:"quantity"`
	Price     float64    `gorm:"not null" json:"price"`
}

func (l *OrderLine) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// OrderHistory is an append-only record of a status transition.
// Rows are created once per transition and never mutated or deleted.
type OrderHistory struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	ChangedAt time.Time   `gorm:"not null;index" json:"changed_at"`
}

func (h *OrderHistory) BeforeCreate(_ *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// CreateOrderRequest is the payload for creating an order.
type CreateOrderRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	Items    []struct {
		ProductID uuid.UUID `json:"product_id" binding:"required"`
		Quantity  int       `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

// OrderEditRequest adds, removes or updates a single line on a pending order.
type OrderEditRequest struct {
	ProductID uuid.UUID   `json:"product_id" binding:"required"`
	Quantity  int         `json:"quantity" binding:"required,min=1"`
	Action    OrderAction `json:"action" binding:"required"`
}

// ConfirmPaymentRequest carries the payment intent to verify before approval.
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// ManualStatusRequest is the administrative status override payload.
type ManualStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
