package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"order-tracking-service/models"
	"order-tracking-service/repository"
)

// OrderService owns the order lifecycle: creation against live stock,
// pending-only edits, the status machine and its history trail. Inventory
// reservations are atomic per product; multi-step operations compensate by
// releasing what they reserved when a later step fails, so no failure path
// leaves stock decremented for an order that does not exist.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	clients  repository.ClientRepository
	gateway  PaymentGateway
	logger   *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	gateway PaymentGateway,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		clients:  clients,
		gateway:  gateway,
		logger:   logger,
	}
}

// OrderStatusResponse is the tracking view of an order.
type OrderStatusResponse struct {
	OrderID uuid.UUID          `json:"order_id"`
	Status  models.OrderStatus `json:"status"`
}

// OrderListResponse is a page of orders.
type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

// HistoryListResponse is a page of status transitions.
type HistoryListResponse struct {
	History []models.OrderHistory `json:"history"`
	Meta    MetaData              `json:"meta"`
}

type reservation struct {
	productID uuid.UUID
	quantity  int
}

// CreateOrder reserves stock for every requested line, persists the order
// with its lines, then requests a payment intent for the total. Reservation
// failures roll back the lines reserved so far; a gateway failure rolls back
// the whole creation, order row included.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, *ServiceError) {
	if _, err := s.clients.FindByID(ctx, req.ClientID); err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Client not found")
		}
		s.logger.Error("client lookup failed", zap.Error(err))
		return nil, internalError("Failed to create order")
	}

	var reserved []reservation
	lines := make([]models.OrderLine, 0, len(req.Items))
	total := 0.0

	for _, item := range req.Items {
		unitPrice, err := s.products.Reserve(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.releaseAll(ctx, reserved)
			switch err {
			case repository.ErrNotFound:
				return nil, notFound(fmt.Sprintf("Product %s not found", item.ProductID))
			case repository.ErrInsufficientStock:
				return nil, badRequest(fmt.Sprintf("Not enough stock for product %s", item.ProductID))
			default:
				s.logger.Error("stock reservation failed", zap.String("product_id", item.ProductID.String()), zap.Error(err))
				return nil, internalError("Failed to reserve stock")
			}
		}
		reserved = append(reserved, reservation{productID: item.ProductID, quantity: item.Quantity})

		productID := item.ProductID
		linePrice := unitPrice * float64(item.Quantity)
		lines = append(lines, models.OrderLine{
			ProductID: &productID,
			Quantity:  item.Quantity,
			Price:     linePrice,
		})
		total += linePrice
	}

	order := &models.Order{
		ClientID:    req.ClientID,
		Status:      models.OrderStatusPending,
		TotalAmount: total,
		Lines:       lines,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.releaseAll(ctx, reserved)
		s.logger.Error("order persist failed", zap.Error(err))
		return nil, internalError("Failed to create order")
	}

	// The gateway call happens after the reservations commit, never inside a
	// lock scope; failure triggers an explicit compensating rollback.
	intentID, err := s.gateway.CreateIntent(ctx, amountInCents(total), "usd", map[string]string{
		"order_id": order.ID.String(),
	})
	if err != nil {
		s.compensateCreation(ctx, order, reserved)
		s.logger.Error("payment intent creation failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, upstreamError("Error creating payment intent")
	}

	if err := s.orders.SetPaymentIntent(ctx, order.ID, intentID); err != nil {
		s.compensateCreation(ctx, order, reserved)
		s.logger.Error("payment intent attach failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, internalError("Failed to create order")
	}
	order.PaymentIntentID = intentID

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("client_id", req.ClientID.String()),
		zap.Float64("total_amount", total),
	)
	return order, nil
}

// EditOrder applies a single add/remove/update action to a pending order.
// The line and the recomputed total commit atomically; inventory changes that
// cannot be committed are released again.
func (s *OrderService) EditOrder(ctx context.Context, orderID uuid.UUID, req *models.OrderEditRequest) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	if order.Status != models.OrderStatusPending {
		return nil, badRequest("Can only modify pending orders")
	}

	switch req.Action {
	case models.OrderActionAdd, models.OrderActionRemove, models.OrderActionUpdate:
	default:
		return nil, badRequest("Invalid action")
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Product not found")
		}
		s.logger.Error("product lookup failed", zap.Error(err))
		return nil, internalError("Failed to edit order")
	}

	var line *models.OrderLine
	for i := range order.Lines {
		if order.Lines[i].ProductID != nil && *order.Lines[i].ProductID == req.ProductID {
			line = &order.Lines[i]
			break
		}
	}

	switch req.Action {
	case models.OrderActionAdd:
		return s.addLine(ctx, order, line, req)
	case models.OrderActionRemove:
		return s.removeLine(ctx, order, line)
	default:
		return s.updateLine(ctx, order, line, product, req)
	}
}

func (s *OrderService) addLine(ctx context.Context, order *models.Order, line *models.OrderLine, req *models.OrderEditRequest) (*models.Order, *ServiceError) {
	unitPrice, err := s.products.Reserve(ctx, req.ProductID, req.Quantity)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return nil, notFound("Product not found")
		case repository.ErrInsufficientStock:
			return nil, badRequest("Not enough stock for this product")
		default:
			s.logger.Error("stock reservation failed", zap.Error(err))
			return nil, internalError("Failed to edit order")
		}
	}

	delta := unitPrice * float64(req.Quantity)
	if line != nil {
		// Merge into the existing line rather than duplicating it.
		line.Quantity += req.Quantity
		line.Price += delta
	} else {
		productID := req.ProductID
		line = &models.OrderLine{
			OrderID:   order.ID,
			ProductID: &productID,
			Quantity:  req.Quantity,
			Price:     delta,
		}
	}

	newTotal := order.TotalAmount + delta
	if err := s.orders.SaveLine(ctx, line, newTotal); err != nil {
		s.release(ctx, req.ProductID, req.Quantity)
		s.logger.Error("line save failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, internalError("Failed to edit order")
	}

	order.TotalAmount = newTotal
	return s.findOrderOrStale(ctx, order)
}

func (s *OrderService) removeLine(ctx context.Context, order *models.Order, line *models.OrderLine) (*models.Order, *ServiceError) {
	if line == nil {
		return nil, notFound("Product not found in order")
	}

	// DeleteLine restocks the line's quantity in the same transaction, so a
	// failure leaves both the order and the inventory untouched.
	newTotal := order.TotalAmount - line.Price
	if err := s.orders.DeleteLine(ctx, line, newTotal); err != nil {
		s.logger.Error("line delete failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, internalError("Failed to edit order")
	}

	order.TotalAmount = newTotal
	return s.findOrderOrStale(ctx, order)
}

func (s *OrderService) updateLine(ctx context.Context, order *models.Order, line *models.OrderLine, product *models.Product, req *models.OrderEditRequest) (*models.Order, *ServiceError) {
	if line == nil {
		return nil, notFound("Product not found in order")
	}

	unitPrice := product.Price
	delta := req.Quantity - line.Quantity
	if delta > 0 {
		reservedPrice, err := s.products.Reserve(ctx, req.ProductID, delta)
		if err != nil {
			switch err {
			case repository.ErrNotFound:
				return nil, notFound("Product not found")
			case repository.ErrInsufficientStock:
				return nil, badRequest("Not enough stock for the updated quantity")
			default:
				s.logger.Error("stock reservation failed", zap.Error(err))
				return nil, internalError("Failed to edit order")
			}
		}
		unitPrice = reservedPrice
	} else if delta < 0 {
		s.release(ctx, req.ProductID, -delta)
	}

	newPrice := unitPrice * float64(req.Quantity)
	newTotal := order.TotalAmount - line.Price + newPrice
	line.Quantity = req.Quantity
	line.Price = newPrice

	if err := s.orders.SaveLine(ctx, line, newTotal); err != nil {
		// Undo the inventory adjustment made above.
		if delta > 0 {
			s.release(ctx, req.ProductID, delta)
		} else if delta < 0 {
			if _, rerr := s.products.Reserve(ctx, req.ProductID, -delta); rerr != nil {
				s.logger.Warn("failed to re-reserve stock after aborted edit", zap.Error(rerr))
			}
		}
		s.logger.Error("line save failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, internalError("Failed to edit order")
	}

	order.TotalAmount = newTotal
	return s.findOrderOrStale(ctx, order)
}

// ConfirmPayment verifies the order's payment intent with the gateway and,
// on success, moves the order from Pending to Approved.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID uuid.UUID, intentID string) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	if order.Status != models.OrderStatusPending {
		return nil, badRequest("Order is not in PENDING state")
	}

	if intentID == "" {
		intentID = order.PaymentIntentID
	}
	if intentID == "" {
		return nil, badRequest("Order has no payment intent")
	}

	status, err := s.gateway.VerifyIntent(ctx, intentID)
	if err != nil {
		s.logger.Error("payment verification failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, upstreamError("Payment verification failed")
	}
	if status != IntentStatusSucceeded {
		return nil, &ServiceError{StatusCode: 402, Message: "Payment not verified"}
	}

	if err := s.transition(ctx, orderID, models.OrderStatusApproved); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusApproved
	return order, nil
}

// OverrideStatus is the administrative escape hatch: it skips payment and
// shipment preconditions but still validates the target status and still
// appends a history entry. Cancelling a pending or approved order returns its
// reserved stock.
func (s *OrderService) OverrideStatus(ctx context.Context, orderID uuid.UUID, newStatus models.OrderStatus) (*models.Order, *ServiceError) {
	if !newStatus.Valid() {
		return nil, badRequest("Invalid status")
	}

	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	releasable := order.Status == models.OrderStatusPending || order.Status == models.OrderStatusApproved
	if newStatus == models.OrderStatusCancelled && releasable {
		for _, l := range order.Lines {
			if l.ProductID != nil {
				s.release(ctx, *l.ProductID, l.Quantity)
			}
		}
	}

	if err := s.transition(ctx, orderID, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus
	return order, nil
}

// TrackOrder returns the current status of an order.
func (s *OrderService) TrackOrder(ctx context.Context, orderID uuid.UUID) (*OrderStatusResponse, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	return &OrderStatusResponse{OrderID: order.ID, Status: order.Status}, nil
}

// GetOrder returns a single order with its lines.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, *ServiceError) {
	return s.findOrder(ctx, orderID)
}

// GetOrders returns a page of orders with their lines.
func (s *OrderService) GetOrders(ctx context.Context, page, limit int) (*OrderListResponse, *ServiceError) {
	orders, total, err := s.orders.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("order listing failed", zap.Error(err))
		return nil, internalError("Failed to fetch orders")
	}
	return &OrderListResponse{Orders: orders, Meta: newMetaData(page, limit, total)}, nil
}

// History returns a page of status transitions, optionally scoped to one
// order, in transition order.
func (s *OrderService) History(ctx context.Context, orderID *uuid.UUID, page, limit int) (*HistoryListResponse, *ServiceError) {
	if orderID != nil {
		if _, svcErr := s.findOrder(ctx, *orderID); svcErr != nil {
			return nil, svcErr
		}
	}

	entries, total, err := s.orders.ListHistory(ctx, orderID, page, limit)
	if err != nil {
		s.logger.Error("history listing failed", zap.Error(err))
		return nil, internalError("Failed to fetch order history")
	}
	return &HistoryListResponse{History: entries, Meta: newMetaData(page, limit, total)}, nil
}

func (s *OrderService) findOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Order not found")
		}
		s.logger.Error("order lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch order")
	}
	return order, nil
}

// findOrderOrStale re-reads the order after an edit; if the read fails the
// already-committed in-memory copy is returned instead.
func (s *OrderService) findOrderOrStale(ctx context.Context, order *models.Order) (*models.Order, *ServiceError) {
	fresh, err := s.orders.FindByID(ctx, order.ID)
	if err != nil {
		s.logger.Warn("order re-read after edit failed", zap.Error(err))
		return order, nil
	}
	return fresh, nil
}

func (s *OrderService) transition(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) *ServiceError {
	if err := s.orders.UpdateStatus(ctx, orderID, status, time.Now().UTC()); err != nil {
		if err == repository.ErrNotFound {
			return notFound("Order not found")
		}
		s.logger.Error("status transition failed",
			zap.String("order_id", orderID.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return internalError("Failed to update order status")
	}
	return nil
}

func (s *OrderService) release(ctx context.Context, productID uuid.UUID, quantity int) {
	if err := s.products.Release(ctx, productID, quantity); err != nil {
		s.logger.Warn("stock release failed",
			zap.String("product_id", productID.String()),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
	}
}

func (s *OrderService) releaseAll(ctx context.Context, reserved []reservation) {
	for _, r := range reserved {
		s.release(ctx, r.productID, r.quantity)
	}
}

func (s *OrderService) compensateCreation(ctx context.Context, order *models.Order, reserved []reservation) {
	if err := s.orders.Delete(ctx, order); err != nil {
		s.logger.Error("order rollback failed", zap.String("order_id", order.ID.String()), zap.Error(err))
	}
	s.releaseAll(ctx, reserved)
}

func amountInCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
