package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"order-tracking-service/models"
	"order-tracking-service/providers"
	"order-tracking-service/repository"
)

const estimatedDeliveryWindow = 30 * 24 * time.Hour

// ShippingService creates and maintains shipment records for approved orders.
// Local shipment updates always commit on their own; a carrier status refresh
// is best-effort and its failure can never corrupt the stored record.
type ShippingService struct {
	shipments repository.ShipmentRepository
	orders    repository.OrderRepository
	provider  providers.CarrierProvider
	shipper   providers.CarrierAddress
	logger    *zap.Logger
}

func NewShippingService(
	shipments repository.ShipmentRepository,
	orders repository.OrderRepository,
	provider providers.CarrierProvider,
	shipper providers.CarrierAddress,
	logger *zap.Logger,
) *ShippingService {
	return &ShippingService{
		shipments: shipments,
		orders:    orders,
		provider:  provider,
		shipper:   shipper,
		logger:    logger,
	}
}

// TrackingResponse is the tracking view of a shipment.
type TrackingResponse struct {
	TrackingNumber string                `json:"tracking_number"`
	Status         models.ShipmentStatus `json:"status"`
}

// CreateShipment creates the shipment record for an approved order with a
// locally generated tracking number and a delivery estimate 30 days out.
func (s *ShippingService) CreateShipment(ctx context.Context, orderID uuid.UUID) (*models.Shipment, *ServiceError) {
	order, svcErr := s.approvedOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	return s.persistShipment(ctx, order.ID, uuid.NewString())
}

// CreateShipmentWithCarrier books the shipment with the external carrier and
// stores the carrier's tracking number. Nothing is persisted when the booking
// fails.
func (s *ShippingService) CreateShipmentWithCarrier(ctx context.Context, orderID uuid.UUID, receiver providers.CarrierAddress, weightKg float64) (*models.Shipment, *ServiceError) {
	order, svcErr := s.approvedOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	trackingNumber, err := s.provider.CreateShipment(ctx, providers.CreateShipmentRequest{
		OrderID:  order.ID.String(),
		Shipper:  s.shipper,
		Receiver: receiver,
		WeightKg: weightKg,
	})
	if err != nil {
		s.logger.Error("carrier booking failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, upstreamError("Failed to book shipment with carrier")
	}

	return s.persistShipment(ctx, order.ID, trackingNumber)
}

// UpdateShipment merges the fields present in the request into the shipment.
// The local update commits first; when the tracking number changed, a carrier
// status refresh follows and its failure surfaces as an error without
// touching the already-committed fields.
func (s *ShippingService) UpdateShipment(ctx context.Context, orderID uuid.UUID, req *models.UpdateShipmentRequest) (*models.Shipment, *ServiceError) {
	if _, svcErr := s.lookupOrder(ctx, orderID); svcErr != nil {
		return nil, svcErr
	}

	shipment, svcErr := s.lookupShipment(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	trackingChanged := false
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, badRequest("Invalid shipment status")
		}
		shipment.Status = *req.Status
	}
	if req.TrackingNumber != nil && *req.TrackingNumber != shipment.TrackingNumber {
		shipment.TrackingNumber = *req.TrackingNumber
		trackingChanged = true
	}
	if req.EstimatedDeliveryDate != nil {
		shipment.EstimatedDeliveryDate = *req.EstimatedDeliveryDate
	}

	if err := s.shipments.Update(ctx, shipment); err != nil {
		s.logger.Error("shipment update failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalError("Failed to update shipment")
	}

	if trackingChanged && s.provider != nil {
		carrierStatus, err := s.provider.Track(ctx, shipment.TrackingNumber)
		if err != nil {
			s.logger.Warn("carrier status refresh failed",
				zap.String("tracking_number", shipment.TrackingNumber),
				zap.Error(err),
			)
			return nil, upstreamError("Shipment updated but carrier status refresh failed")
		}
		if status, ok := mapCarrierStatus(carrierStatus); ok && status != shipment.Status {
			shipment.Status = status
			if err := s.shipments.Update(ctx, shipment); err != nil {
				s.logger.Warn("carrier status write failed", zap.Error(err))
			}
		}
	}

	return shipment, nil
}

// TrackShipment returns the tracking number and current status for an order's
// shipment.
func (s *ShippingService) TrackShipment(ctx context.Context, orderID uuid.UUID) (*TrackingResponse, *ServiceError) {
	if _, svcErr := s.lookupOrder(ctx, orderID); svcErr != nil {
		return nil, svcErr
	}

	shipment, svcErr := s.lookupShipment(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	return &TrackingResponse{TrackingNumber: shipment.TrackingNumber, Status: shipment.Status}, nil
}

func (s *ShippingService) approvedOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, svcErr := s.lookupOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	if order.Status != models.OrderStatusApproved {
		return nil, badRequest("Order must be approved to ship")
	}
	if _, err := s.shipments.FindByOrderID(ctx, orderID); err == nil {
		return nil, conflict("Shipment already exists for this order")
	} else if err != repository.ErrNotFound {
		s.logger.Error("shipment lookup failed", zap.Error(err))
		return nil, internalError("Failed to create shipment")
	}
	return order, nil
}

func (s *ShippingService) persistShipment(ctx context.Context, orderID uuid.UUID, trackingNumber string) (*models.Shipment, *ServiceError) {
	shipment := &models.Shipment{
		OrderID:               orderID,
		TrackingNumber:        trackingNumber,
		Status:                models.ShipmentStatusPending,
		EstimatedDeliveryDate: time.Now().UTC().Add(estimatedDeliveryWindow),
	}
	if err := s.shipments.Create(ctx, shipment); err != nil {
		s.logger.Error("shipment persist failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalError("Failed to create shipment")
	}

	s.logger.Info("shipment created",
		zap.String("order_id", orderID.String()),
		zap.String("tracking_number", trackingNumber),
	)
	return shipment, nil
}

func (s *ShippingService) lookupOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, *ServiceError) {
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

func (s *ShippingService) lookupShipment(ctx context.Context, orderID uuid.UUID) (*models.Shipment, *ServiceError) {
	shipment, err := s.shipments.FindByOrderID(ctx, orderID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Shipment not found")
		}
		s.logger.Error("shipment lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch shipment")
	}
	return shipment, nil
}

// mapCarrierStatus translates a carrier status string into a local shipment
// status. Unknown carrier statuses leave the local status alone.
func mapCarrierStatus(carrierStatus string) (models.ShipmentStatus, bool) {
	switch normalized := strings.ToLower(strings.TrimSpace(carrierStatus)); {
	case strings.Contains(normalized, "delivered"):
		return models.ShipmentStatusDelivered, true
	case strings.Contains(normalized, "transit"):
		return models.ShipmentStatusInTransit, true
	case strings.Contains(normalized, "returned"):
		return models.ShipmentStatusReturned, true
	case strings.Contains(normalized, "shipped"), strings.Contains(normalized, "picked up"):
		return models.ShipmentStatusShipped, true
	default:
		return "", false
	}
}
