package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"order-tracking-service/models"
	"order-tracking-service/providers"
	"order-tracking-service/repository"
	"order-tracking-service/services"
)

// ---- mock shipment repository ----

type mockShipmentRepo struct {
	shipments map[uuid.UUID]*models.Shipment // keyed by order id
	createErr error
	updateErr error
}

func newMockShipmentRepo(shipments ...*models.Shipment) *mockShipmentRepo {
	m := &mockShipmentRepo{shipments: make(map[uuid.UUID]*models.Shipment)}
	for _, s := range shipments {
		m.shipments[s.OrderID] = s
	}
	return m
}

func (m *mockShipmentRepo) Create(_ context.Context, s *models.Shipment) error {
	if m.createErr != nil {
		return m.createErr
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.shipments[s.OrderID] = s
	return nil
}

func (m *mockShipmentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*models.Shipment, error) {
	s, ok := m.shipments[orderID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (m *mockShipmentRepo) FindByTrackingNumber(_ context.Context, trackingNumber string) (*models.Shipment, error) {
	for _, s := range m.shipments {
		if s.TrackingNumber == trackingNumber {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockShipmentRepo) Update(_ context.Context, s *models.Shipment) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.shipments[s.OrderID] = s
	return nil
}

// ---- mock carrier provider ----

type mockCarrier struct {
	trackingNumber string
	createErr      error
	trackStatus    string
	trackErr       error
	createCalls    int
	trackCalls     int
}

func (m *mockCarrier) CreateShipment(_ context.Context, _ providers.CreateShipmentRequest) (string, error) {
	m.createCalls++
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.trackingNumber, nil
}

func (m *mockCarrier) Track(_ context.Context, _ string) (string, error) {
	m.trackCalls++
	if m.trackErr != nil {
		return "", m.trackErr
	}
	return m.trackStatus, nil
}

// ---- helpers ----

func newTestShippingService(shipments *mockShipmentRepo, orders *mockOrderRepo, carrier *mockCarrier) *services.ShippingService {
	shipper := providers.CarrierAddress{Name: "Warehouse", Street: "1 W St", City: "SF", PostalCode: "94105", Country: "US"}
	return services.NewShippingService(shipments, orders, carrier, shipper, zap.NewNop())
}

func approvedOrderFixture() *models.Order {
	return &models.Order{ID: uuid.New(), ClientID: uuid.New(), Status: models.OrderStatusApproved, TotalAmount: 42.0}
}

// ---- create ----

func TestCreateShipment_Success(t *testing.T) {
	order := approvedOrderFixture()
	shipments := newMockShipmentRepo()
	svc := newTestShippingService(shipments, newMockOrderRepo(order), &mockCarrier{})

	shipment, svcErr := svc.CreateShipment(context.Background(), order.ID)

	assert.Nil(t, svcErr)
	assert.Equal(t, order.ID, shipment.OrderID)
	assert.Equal(t, models.ShipmentStatusPending, shipment.Status)
	assert.NotEmpty(t, shipment.TrackingNumber)
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), shipment.EstimatedDeliveryDate, time.Minute)
}

func TestCreateShipment_OrderNotApproved(t *testing.T) {
	order := approvedOrderFixture()
	order.Status = models.OrderStatusPending
	svc := newTestShippingService(newMockShipmentRepo(), newMockOrderRepo(order), &mockCarrier{})

	_, svcErr := svc.CreateShipment(context.Background(), order.ID)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, "Order must be approved to ship", svcErr.Message)
}

func TestCreateShipment_OrderNotFound(t *testing.T) {
	svc := newTestShippingService(newMockShipmentRepo(), newMockOrderRepo(), &mockCarrier{})

	_, svcErr := svc.CreateShipment(context.Background(), uuid.New())

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestCreateShipment_Duplicate(t *testing.T) {
	order := approvedOrderFixture()
	existing := &models.Shipment{ID: uuid.New(), OrderID: order.ID, TrackingNumber: "TRK1", Status: models.ShipmentStatusPending}
	svc := newTestShippingService(newMockShipmentRepo(existing), newMockOrderRepo(order), &mockCarrier{})

	_, svcErr := svc.CreateShipment(context.Background(), order.ID)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
}

func TestCreateShipmentWithCarrier_Success(t *testing.T) {
	order := approvedOrderFixture()
	shipments := newMockShipmentRepo()
	carrier := &mockCarrier{trackingNumber: "DHL123"}
	svc := newTestShippingService(shipments, newMockOrderRepo(order), carrier)

	receiver := providers.CarrierAddress{Name: "Acme", Street: "2 E St", City: "NYC", PostalCode: "10001", Country: "US"}
	shipment, svcErr := svc.CreateShipmentWithCarrier(context.Background(), order.ID, receiver, 1.5)

	assert.Nil(t, svcErr)
	assert.Equal(t, "DHL123", shipment.TrackingNumber)
	assert.Equal(t, 1, carrier.createCalls)
}

func TestCreateShipmentWithCarrier_BookingFailure(t *testing.T) {
	order := approvedOrderFixture()
	shipments := newMockShipmentRepo()
	carrier := &mockCarrier{createErr: errors.New("carrier rejected")}
	svc := newTestShippingService(shipments, newMockOrderRepo(order), carrier)

	_, svcErr := svc.CreateShipmentWithCarrier(context.Background(), order.ID, providers.CarrierAddress{}, 1.0)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 502, svcErr.StatusCode)
	// Nothing persisted on booking failure.
	assert.Empty(t, shipments.shipments)
}

// ---- update ----

func TestUpdateShipment_MergesFields(t *testing.T) {
	order := approvedOrderFixture()
	shipment := &models.Shipment{ID: uuid.New(), OrderID: order.ID, TrackingNumber: "TRK1", Status: models.ShipmentStatusPending}
	shipments := newMockShipmentRepo(shipment)
	svc := newTestShippingService(shipments, newMockOrderRepo(order), &mockCarrier{})

	status := models.ShipmentStatusShipped
	updated, svcErr := svc.UpdateShipment(context.Background(), order.ID, &models.UpdateShipmentRequest{Status: &status})

	assert.Nil(t, svcErr)
	assert.Equal(t, models.ShipmentStatusShipped, updated.Status)
	assert.Equal(t, "TRK1", updated.TrackingNumber)
}

func TestUpdateShipment_InvalidStatus(t *testing.T) {
	order := approvedOrderFixture()
	shipment := &models.Shipment{ID: uuid.New(), OrderID: order.ID, Status: models.ShipmentStatusPending}
	svc := newTestShippingService(newMockShipmentRepo(shipment), newMockOrderRepo(order), &mockCarrier{})

	bad := models.ShipmentStatus("lost_in_space")
	_, svcErr := svc.UpdateShipment(context.Background(), order.ID, &models.UpdateShipmentRequest{Status: &bad})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestUpdateShipment_TrackingChangeRefreshesCarrierStatus(t *testing.T) {
	order := approvedOrderFixture()
	shipment := &models.Shipment{ID: uuid.New(), OrderID: order.ID, TrackingNumber: "OLD", Status: models.ShipmentStatusPending}
	shipments := newMockShipmentRepo(shipment)
	carrier := &mockCarrier{trackStatus: "In Transit"}
	svc := newTestShippingService(shipments, newMockOrderRepo(order), carrier)

	tracking := "NEW"
	updated, svcErr := svc.UpdateShipment(context.Background(), order.ID, &models.UpdateShipmentRequest{TrackingNumber: &tracking})

	assert.Nil(t, svcErr)
	assert.Equal(t, "NEW", updated.TrackingNumber)
	assert.Equal(t, models.ShipmentStatusInTransit, updated.Status)
	assert.Equal(t, 1, carrier.trackCalls)
}

func TestUpdateShipment_CarrierRefreshFailureKeepsLocalCommit(t *testing.T) {
	order := approvedOrderFixture()
	shipment := &models.Shipment{ID: uuid.New(), OrderID: order.ID, TrackingNumber: "OLD", Status: models.ShipmentStatusPending}
	shipments := newMockShipmentRepo(shipment)
	carrier := &mockCarrier{trackErr: errors.New("carrier down")}
	svc := newTestShippingService(shipments, newMockOrderRepo(order), carrier)

	tracking := "NEW"
	_, svcErr := svc.UpdateShipment(context.Background(), order.ID, &models.UpdateShipmentRequest{TrackingNumber: &tracking})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 502, svcErr.StatusCode)
	// The local update stays committed even though the refresh failed.
	assert.Equal(t, "NEW", shipments.shipments[order.ID].TrackingNumber)
}

// ---- tracking ----

func TestTrackShipment_ReturnsStatus(t *testing.T) {
	order := approvedOrderFixture()
	shipment := &models.Shipment{ID: uuid.New(), OrderID: order.ID, TrackingNumber: "TRK9", Status: models.ShipmentStatusInTransit}
	svc := newTestShippingService(newMockShipmentRepo(shipment), newMockOrderRepo(order), &mockCarrier{})

	resp, svcErr := svc.TrackShipment(context.Background(), order.ID)

	assert.Nil(t, svcErr)
	assert.Equal(t, "TRK9", resp.TrackingNumber)
	assert.Equal(t, models.ShipmentStatusInTransit, resp.Status)
}

func TestTrackShipment_NoShipment(t *testing.T) {
	order := approvedOrderFixture()
	svc := newTestShippingService(newMockShipmentRepo(), newMockOrderRepo(order), &mockCarrier{})

	_, svcErr := svc.TrackShipment(context.Background(), order.ID)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}
