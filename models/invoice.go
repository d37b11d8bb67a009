package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Valid reports whether s is one of the defined invoice statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue,
		InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice is derived from a delivered order. Invoices are never physically
// removed; deletion moves them to Cancelled.
type Invoice struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Status    InvoiceStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`
	DueDate   time.Time     `json:"due_date"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Invoice) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// UpdateInvoiceRequest carries a partial invoice update.
type UpdateInvoiceRequest struct {
	Amount  *float64       `json:"amount" binding:"omitempty,gte=0"`
	Status  *InvoiceStatus `json:"status"`
	DueDate *time.Time     `json:"due_date"`
}
