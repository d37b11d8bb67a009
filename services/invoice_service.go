package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"order-tracking-service/models"
	"order-tracking-service/repository"
)

const invoiceDueWindow = 30 * 24 * time.Hour

// InvoiceService generates and maintains invoices for delivered orders.
// Each order carries at most one invoice.
type InvoiceService struct {
	invoices repository.InvoiceRepository
	orders   repository.OrderRepository
	logger   *zap.Logger
}

func NewInvoiceService(invoices repository.InvoiceRepository, orders repository.OrderRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{invoices: invoices, orders: orders, logger: logger}
}

// InvoicePaymentStatus is the payment view of an invoice.
type InvoicePaymentStatus struct {
	InvoiceID uuid.UUID            `json:"invoice_id"`
	OrderID   uuid.UUID            `json:"order_id"`
	Status    models.InvoiceStatus `json:"status"`
	DueDate   time.Time            `json:"due_date"`
}

// GenerateInvoice creates the invoice for a delivered order. The amount is the
// order total and the due date falls 30 days after the order was placed.
// Delivered orders were already paid at approval, so the invoice starts out
// Paid.
func (s *InvoiceService) GenerateInvoice(ctx context.Context, orderID uuid.UUID) (*models.Invoice, *ServiceError) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Order not found")
		}
		s.logger.Error("order lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch order")
	}
	if order.Status != models.OrderStatusDelivered {
		return nil, badRequest("Order must be delivered to generate an invoice")
	}

	if _, err := s.invoices.FindByOrderID(ctx, orderID); err == nil {
		return nil, conflict("Invoice already exists for this order")
	} else if err != repository.ErrNotFound {
		s.logger.Error("invoice lookup failed", zap.Error(err))
		return nil, internalError("Failed to generate invoice")
	}

	invoice := &models.Invoice{
		OrderID: order.ID,
		Amount:  order.TotalAmount,
		Status:  models.InvoiceStatusPaid,
		DueDate: order.CreatedAt.Add(invoiceDueWindow),
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		s.logger.Error("invoice persist failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalError("Failed to generate invoice")
	}

	s.logger.Info("invoice generated",
		zap.String("order_id", orderID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.Float64("amount", invoice.Amount),
	)
	return invoice, nil
}

// GetInvoice returns a single invoice by its id.
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, *ServiceError) {
	return s.findInvoice(ctx, id)
}

// GetInvoiceByOrder returns the invoice generated for an order.
func (s *InvoiceService) GetInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*models.Invoice, *ServiceError) {
	invoice, err := s.invoices.FindByOrderID(ctx, orderID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Invoice not found")
		}
		s.logger.Error("invoice lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch invoice")
	}
	return invoice, nil
}

// GetInvoices returns a page of invoices, newest first.
func (s *InvoiceService) GetInvoices(ctx context.Context, page, limit int) ([]models.Invoice, MetaData, *ServiceError) {
	invoices, total, err := s.invoices.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("invoice list failed", zap.Error(err))
		return nil, MetaData{}, internalError("Failed to fetch invoices")
	}
	return invoices, newMetaData(page, limit, total), nil
}

// UpdateInvoice merges the fields present in the request into the invoice.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, req *models.UpdateInvoiceRequest) (*models.Invoice, *ServiceError) {
	invoice, svcErr := s.findInvoice(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, badRequest("Invalid invoice status")
		}
		invoice.Status = *req.Status
	}
	if req.Amount != nil {
		invoice.Amount = *req.Amount
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}

	if err := s.invoices.Update(ctx, invoice); err != nil {
		s.logger.Error("invoice update failed", zap.String("invoice_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to update invoice")
	}
	return invoice, nil
}

// DeleteInvoice cancels an invoice. The record stays in place with status
// Cancelled so the order's billing trail survives.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) *ServiceError {
	invoice, svcErr := s.findInvoice(ctx, id)
	if svcErr != nil {
		return svcErr
	}

	invoice.Status = models.InvoiceStatusCancelled
	if err := s.invoices.Update(ctx, invoice); err != nil {
		s.logger.Error("invoice cancel failed", zap.String("invoice_id", id.String()), zap.Error(err))
		return internalError("Failed to delete invoice")
	}

	s.logger.Info("invoice cancelled", zap.String("invoice_id", id.String()))
	return nil
}

// PaymentStatus returns the payment state of an order's invoice.
func (s *InvoiceService) PaymentStatus(ctx context.Context, orderID uuid.UUID) (*InvoicePaymentStatus, *ServiceError) {
	invoice, svcErr := s.GetInvoiceByOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	return &InvoicePaymentStatus{
		InvoiceID: invoice.ID,
		OrderID:   invoice.OrderID,
		Status:    invoice.Status,
		DueDate:   invoice.DueDate,
	}, nil
}

func (s *InvoiceService) findInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, *ServiceError) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Invoice not found")
		}
		s.logger.Error("invoice lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch invoice")
	}
	return invoice, nil
}
