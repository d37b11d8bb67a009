package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"order-tracking-service/models"
	"order-tracking-service/repository"
	"order-tracking-service/services"
)

// ---- stateful mock product repository ----

// mockProductRepo keeps real stock counters so reservation and release
// semantics can be asserted after multi-line operations.
type mockProductRepo struct {
	mu            sync.Mutex
	products      map[uuid.UUID]*models.Product
	nameVendorHit *models.Product
}

func newMockProductRepo(products ...*models.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[uuid.UUID]*models.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) stock(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].Stock
}

func (m *mockProductRepo) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepo) FindByNameAndVendor(_ context.Context, _ string, _ uuid.UUID) (*models.Product, error) {
	if m.nameVendorHit != nil {
		return m.nameVendorHit, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockProductRepo) FindAll(_ context.Context, _, _ int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (m *mockProductRepo) Update(_ context.Context, _ *models.Product) error { return nil }

func (m *mockProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsDeleted = true
	return nil
}

func (m *mockProductRepo) Reserve(_ context.Context, id uuid.UUID, quantity int) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok || p.IsDeleted {
		return 0, repository.ErrNotFound
	}
	if p.Stock < quantity {
		return 0, repository.ErrInsufficientStock
	}
	p.Stock -= quantity
	return p.Price, nil
}

func (m *mockProductRepo) Release(_ context.Context, id uuid.UUID, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Stock += quantity
	return nil
}

// ---- stateful mock order repository ----

type mockOrderRepo struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*models.Order
	history   []models.OrderHistory
	deleted   []uuid.UUID
	products  *mockProductRepo // restock target for DeleteLine, may be nil
	createErr error
	intentErr error
	lineErr   error
	statusErr error
}

func newMockOrderRepo(orders ...*models.Order) *mockOrderRepo {
	m := &mockOrderRepo{orders: make(map[uuid.UUID]*models.Order)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Lines {
		if order.Lines[i].ID == uuid.Nil {
			order.Lines[i].ID = uuid.New()
		}
		order.Lines[i].OrderID = order.ID
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, order.ID)
	m.deleted = append(m.deleted, order.ID)
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

func (m *mockOrderRepo) FindAll(_ context.Context, _, _ int) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (m *mockOrderRepo) FindByClientID(_ context.Context, _ uuid.UUID, _, _ int) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (m *mockOrderRepo) SetPaymentIntent(_ context.Context, orderID uuid.UUID, intentID string) error {
	if m.intentErr != nil {
		return m.intentErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return repository.ErrNotFound
	}
	o.PaymentIntentID = intentID
	return nil
}

func (m *mockOrderRepo) SaveLine(_ context.Context, line *models.OrderLine, newTotal float64) error {
	if m.lineErr != nil {
		return m.lineErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[line.OrderID]
	if !ok {
		return repository.ErrNotFound
	}
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	found := false
	for i := range o.Lines {
		if o.Lines[i].ID == line.ID {
			o.Lines[i] = *line
			found = true
			break
		}
	}
	if !found {
		o.Lines = append(o.Lines, *line)
	}
	o.TotalAmount = newTotal
	return nil
}

// DeleteLine mirrors the real repository: the line removal and the restock
// commit together or not at all.
func (m *mockOrderRepo) DeleteLine(ctx context.Context, line *models.OrderLine, newTotal float64) error {
	if m.lineErr != nil {
		return m.lineErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[line.OrderID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range o.Lines {
		if o.Lines[i].ID == line.ID {
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			break
		}
	}
	if m.products != nil && line.ProductID != nil {
		_ = m.products.Release(ctx, *line.ProductID, line.Quantity)
	}
	o.TotalAmount = newTotal
	return nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, orderID uuid.UUID, status models.OrderStatus, changedAt time.Time) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	m.history = append(m.history, models.OrderHistory{
		ID:        uuid.New(),
		OrderID:   orderID,
		Status:    status,
		ChangedAt: changedAt,
	})
	return nil
}

func (m *mockOrderRepo) ListHistory(_ context.Context, orderID *uuid.UUID, _, _ int) ([]models.OrderHistory, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []models.OrderHistory
	for _, h := range m.history {
		if orderID == nil || h.OrderID == *orderID {
			entries = append(entries, h)
		}
	}
	return entries, int64(len(entries)), nil
}

// ---- mock client repository ----

type mockClientRepo struct {
	clients map[uuid.UUID]*models.Client
}

func newMockClientRepo(clients ...*models.Client) *mockClientRepo {
	m := &mockClientRepo{clients: make(map[uuid.UUID]*models.Client)}
	for _, c := range clients {
		m.clients[c.ID] = c
	}
	return m
}

func (m *mockClientRepo) Create(_ context.Context, c *models.Client) error {
	m.clients[c.ID] = c
	return nil
}

func (m *mockClientRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (m *mockClientRepo) FindByEmail(_ context.Context, _ string) (*models.Client, error) {
	return nil, repository.ErrNotFound
}

func (m *mockClientRepo) FindAll(_ context.Context, _, _ int) ([]models.Client, int64, error) {
	return nil, 0, nil
}

func (m *mockClientRepo) Update(_ context.Context, _ *models.Client) error { return nil }

func (m *mockClientRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

// ---- mock payment gateway ----

type mockGateway struct {
	intentID     string
	createErr    error
	verifyStatus services.IntentStatus
	verifyErr    error
	createCalls  int
	lastAmount   int64
}

func (m *mockGateway) CreateIntent(_ context.Context, amount int64, _ string, _ map[string]string) (string, error) {
	m.createCalls++
	m.lastAmount = amount
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.intentID, nil
}

func (m *mockGateway) VerifyIntent(_ context.Context, _ string) (services.IntentStatus, error) {
	return m.verifyStatus, m.verifyErr
}

// ---- helpers ----

func newTestOrderService(orders *mockOrderRepo, products *mockProductRepo, clients *mockClientRepo, gateway *mockGateway) *services.OrderService {
	orders.products = products
	logger := zap.NewNop()
	return services.NewOrderService(orders, products, clients, gateway, logger)
}

func testProduct(price float64, stock int) *models.Product {
	return &models.Product{ID: uuid.New(), Name: "widget", Price: price, Stock: stock}
}

func testClient() *models.Client {
	return &models.Client{ID: uuid.New(), Name: "Acme", Email: "acme@example.com"}
}

func createRequest(clientID uuid.UUID, items ...struct {
	ProductID uuid.UUID
	Quantity  int
}) *models.CreateOrderRequest {
	req := &models.CreateOrderRequest{ClientID: clientID}
	for _, it := range items {
		req.Items = append(req.Items, struct {
			ProductID uuid.UUID `json:"product_id" binding:"required"`
			Quantity  int       `json:"quantity" binding:"required,min=1"`
		}{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return req
}

type item = struct {
	ProductID uuid.UUID
	Quantity  int
}

// ---- create ----

func TestCreateOrder_Success(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	products := newMockProductRepo(product)
	orders := newMockOrderRepo()
	gateway := &mockGateway{intentID: "pi_123"}
	svc := newTestOrderService(orders, products, newMockClientRepo(client), gateway)

	order, svcErr := svc.CreateOrder(context.Background(), createRequest(client.ID, item{product.ID, 3}))

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 30.0, order.TotalAmount)
	assert.Equal(t, "pi_123", order.PaymentIntentID)
	assert.Equal(t, 2, products.stock(product.ID))
	assert.Equal(t, int64(3000), gateway.lastAmount)
}

func TestCreateOrder_ClientNotFound(t *testing.T) {
	product := testProduct(10.0, 5)
	products := newMockProductRepo(product)
	svc := newTestOrderService(newMockOrderRepo(), products, newMockClientRepo(), &mockGateway{})

	_, svcErr := svc.CreateOrder(context.Background(), createRequest(uuid.New(), item{product.ID, 1}))

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
	assert.Equal(t, 5, products.stock(product.ID))
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 2)
	products := newMockProductRepo(product)
	svc := newTestOrderService(newMockOrderRepo(), products, newMockClientRepo(client), &mockGateway{})

	_, svcErr := svc.CreateOrder(context.Background(), createRequest(client.ID, item{product.ID, 3}))

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, 2, products.stock(product.ID))
}

func TestCreateOrder_PartialReservationRollsBack(t *testing.T) {
	client := testClient()
	first := testProduct(10.0, 5)
	second := testProduct(4.0, 1)
	products := newMockProductRepo(first, second)
	svc := newTestOrderService(newMockOrderRepo(), products, newMockClientRepo(client), &mockGateway{})

	_, svcErr := svc.CreateOrder(context.Background(),
		createRequest(client.ID, item{first.ID, 2}, item{second.ID, 3}))

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	// The successful first reservation must be released again.
	assert.Equal(t, 5, products.stock(first.ID))
	assert.Equal(t, 1, products.stock(second.ID))
}

func TestCreateOrder_GatewayFailureRollsBackEverything(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	products := newMockProductRepo(product)
	orders := newMockOrderRepo()
	gateway := &mockGateway{createErr: errors.New("stripe down")}
	svc := newTestOrderService(orders, products, newMockClientRepo(client), gateway)

	_, svcErr := svc.CreateOrder(context.Background(), createRequest(client.ID, item{product.ID, 3}))

	assert.NotNil(t, svcErr)
	assert.Equal(t, 502, svcErr.StatusCode)
	assert.Equal(t, 5, products.stock(product.ID))
	assert.Len(t, orders.deleted, 1)
	assert.Empty(t, orders.orders)
}

// ---- edit ----

func pendingOrder(clientID uuid.UUID, product *models.Product, quantity int) *models.Order {
	productID := product.ID
	orderID := uuid.New()
	linePrice := product.Price * float64(quantity)
	return &models.Order{
		ID:          orderID,
		ClientID:    clientID,
		Status:      models.OrderStatusPending,
		TotalAmount: linePrice,
		Lines: []models.OrderLine{{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: &productID,
			Quantity:  quantity,
			Price:     linePrice,
		}},
	}
}

func TestEditOrder_NonPendingRejected(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	order := pendingOrder(client.ID, product, 1)
	order.Status = models.OrderStatusApproved
	svc := newTestOrderService(newMockOrderRepo(order), newMockProductRepo(product), newMockClientRepo(client), &mockGateway{})

	_, svcErr := svc.EditOrder(context.Background(), order.ID,
		&models.OrderEditRequest{ProductID: product.ID, Quantity: 1, Action: models.OrderActionAdd})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, "Can only modify pending orders", svcErr.Message)
}

func TestEditOrder_InvalidAction(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	order := pendingOrder(client.ID, product, 1)
	svc := newTestOrderService(newMockOrderRepo(order), newMockProductRepo(product), newMockClientRepo(client), &mockGateway{})

	_, svcErr := svc.EditOrder(context.Background(), order.ID,
		&models.OrderEditRequest{ProductID: product.ID, Quantity: 1, Action: "duplicate"})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, "Invalid action", svcErr.Message)
}

func TestEditOrder_AddMergesExistingLine(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	order := pendingOrder(client.ID, product, 2)
	products := newMockProductRepo(product)
	svc := newTestOrderService(newMockOrderRepo(order), products, newMockClientRepo(client), &mockGateway{})

	updated, svcErr := svc.EditOrder(context.Background(), order.ID,
		&models.OrderEditRequest{ProductID: product.ID, Quantity: 3, Action: models.OrderActionAdd})

	assert.Nil(t, svcErr)
	assert.Len(t, updated.Lines, 1)
	assert.Equal(t, 5, updated.Lines[0].Quantity)
	assert.Equal(t, 50.0, updated.TotalAmount)
	assert.Equal(t, 2, products.stock(product.ID))
}

func TestEditOrder_AddNewLine(t *testing.T) {
	client := testClient()
	existing := testProduct(10.0, 5)
	extra := testProduct(2.5, 4)
	order := pendingOrder(client.ID, existing, 1)
	products := newMockProductRepo(existing, extra)
	svc := newTestOrderService(newMockOrderRepo(order), products, newMockClientRepo(client), &mockGateway{})

	updated, svcErr := svc.EditOrder(context.Background(), order.ID,
		&models.OrderEditRequest{ProductID: extra.ID, Quantity: 2, Action: models.OrderActionAdd})

	assert.Nil(t, svcErr)
	assert.Len(t, updated.Lines, 2)
	assert.Equal(t, 15.0, updated.TotalAmount)
	assert.Equal(t, 2, products.stock(extra.ID))
}

func TestEditOrder_RemoveRestoresStock(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 2)
	order := pendingOrder(client.ID, product, 3)
	products := newMockProductRepo(product)
	svc := newTestOrderService(newMockOrderRepo(order), products, newMockClientRepo(client), &mockGateway{})

	updated, svcErr := svc.EditOrder(context.Background(), order.ID,
		&models.OrderEditRequest{ProductID: product.ID, Quantity: 1, Action: models.OrderActionRemove})

	assert.Nil(t, svcErr)
	assert.Empty(t, updated.Lines)
	assert.Equal(t, 0.0, updated.TotalAmount)
	assert.Equal(t, 5, products.stock(product.ID))
}

func TestEditOrder_RemoveMissingLine(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	other := testProduct(3.0, 5)
	order := pendingOrder(client.ID, product, 1)
	svc := newTestOrderService(newMockOrderRepo(order), newMockProductRepo(product, other), newMockClientRepo(client), &mockGateway{})

	_, svcErr := svc.EditOrder(context.Background(), order.ID,
		&models.OrderEditRequest{ProductID: other.ID, Quantity: 1, Action: models.OrderActionRemove})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
	assert.Equal(t, "Product not found in order", svcErr.Message)
}

// A failed line delete must leave stock untouched; the restock rides the same
// commit as the removal, so a partial outcome cannot strand reserved units.
func TestEditOrder_RemoveFailureKeepsStock(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 2)
	order := pendingOrder(client.ID, product, 3)
	products := newMockProductRepo(product)
	orders := newMockOrderRepo(order)
	orders.lineErr = errors.New("write conflict")
	svc := newTestOrderService(orders, products, newMockClientRepo(client), &mockGateway{})

	_, svcErr := svc.EditOrder(context.Background(), order.ID,
		&models.OrderEditRequest{ProductID: product.ID, Quantity: 1, Action: models.OrderActionRemove})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)
	assert.Equal(t, 2, products.stock(product.ID))
	assert.Len(t, orders.orders[order.ID].Lines, 1)
}

func TestEditOrder_UpdateIncreasesQuantity(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 4)
	order := pendingOrder(client.ID, product, 2)
	products := newMockProductRepo(product)
	svc := newTestOrderService(newMockOrderRepo(order), products, newMockClientRepo(client), &mockGateway{})

	updated, svcErr := svc.EditOrder(context.Background(), order.ID,
		&models.OrderEditRequest{ProductID: product.ID, Quantity: 5, Action: models.OrderActionUpdate})

	assert.Nil(t, svcErr)
	assert.Equal(t, 5, updated.Lines[0].Quantity)
	assert.Equal(t, 50.0, updated.TotalAmount)
	assert.Equal(t, 1, products.stock(product.ID))
}

func TestEditOrder_UpdateDecreasesQuantity(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 0)
	order := pendingOrder(client.ID, product, 5)
	products := newMockProductRepo(product)
	svc := newTestOrderService(newMockOrderRepo(order), products, newMockClientRepo(client), &mockGateway{})

	updated, svcErr := svc.EditOrder(context.Background(), order.ID,
		&models.OrderEditRequest{ProductID: product.ID, Quantity: 2, Action: models.OrderActionUpdate})

	assert.Nil(t, svcErr)
	assert.Equal(t, 2, updated.Lines[0].Quantity)
	assert.Equal(t, 20.0, updated.TotalAmount)
	assert.Equal(t, 3, products.stock(product.ID))
}

func TestEditOrder_UpdateInsufficientStock(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 1)
	order := pendingOrder(client.ID, product, 2)
	products := newMockProductRepo(product)
	svc := newTestOrderService(newMockOrderRepo(order), products, newMockClientRepo(client), &mockGateway{})

	_, svcErr := svc.EditOrder(context.Background(), order.ID,
		&models.OrderEditRequest{ProductID: product.ID, Quantity: 5, Action: models.OrderActionUpdate})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, 1, products.stock(product.ID))
}

// ---- payment confirmation ----

func TestConfirmPayment_Success(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	order := pendingOrder(client.ID, product, 1)
	order.PaymentIntentID = "pi_ok"
	orders := newMockOrderRepo(order)
	gateway := &mockGateway{verifyStatus: services.IntentStatusSucceeded}
	svc := newTestOrderService(orders, newMockProductRepo(product), newMockClientRepo(client), gateway)

	approved, svcErr := svc.ConfirmPayment(context.Background(), order.ID, "")

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusApproved, approved.Status)
	assert.Len(t, orders.history, 1)
	assert.Equal(t, models.OrderStatusApproved, orders.history[0].Status)
}

func TestConfirmPayment_NotPending(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	order := pendingOrder(client.ID, product, 1)
	order.Status = models.OrderStatusShipped
	svc := newTestOrderService(newMockOrderRepo(order), newMockProductRepo(product), newMockClientRepo(client), &mockGateway{})

	_, svcErr := svc.ConfirmPayment(context.Background(), order.ID, "pi_x")

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, "Order is not in PENDING state", svcErr.Message)
}

func TestConfirmPayment_NotVerified(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	order := pendingOrder(client.ID, product, 1)
	order.PaymentIntentID = "pi_pending"
	orders := newMockOrderRepo(order)
	gateway := &mockGateway{verifyStatus: services.IntentStatusPending}
	svc := newTestOrderService(orders, newMockProductRepo(product), newMockClientRepo(client), gateway)

	_, svcErr := svc.ConfirmPayment(context.Background(), order.ID, "")

	assert.NotNil(t, svcErr)
	assert.Equal(t, 402, svcErr.StatusCode)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Empty(t, orders.history)
}

func TestConfirmPayment_GatewayError(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	order := pendingOrder(client.ID, product, 1)
	order.PaymentIntentID = "pi_x"
	gateway := &mockGateway{verifyErr: errors.New("stripe timeout")}
	svc := newTestOrderService(newMockOrderRepo(order), newMockProductRepo(product), newMockClientRepo(client), gateway)

	_, svcErr := svc.ConfirmPayment(context.Background(), order.ID, "")

	assert.NotNil(t, svcErr)
	assert.Equal(t, 502, svcErr.StatusCode)
}

// ---- status override ----

func TestOverrideStatus_InvalidStatus(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	order := pendingOrder(client.ID, product, 1)
	svc := newTestOrderService(newMockOrderRepo(order), newMockProductRepo(product), newMockClientRepo(client), &mockGateway{})

	_, svcErr := svc.OverrideStatus(context.Background(), order.ID, "misplaced")

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, "Invalid status", svcErr.Message)
}

func TestOverrideStatus_CancelReleasesStock(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 2)
	order := pendingOrder(client.ID, product, 3)
	products := newMockProductRepo(product)
	orders := newMockOrderRepo(order)
	svc := newTestOrderService(orders, products, newMockClientRepo(client), &mockGateway{})

	cancelled, svcErr := svc.OverrideStatus(context.Background(), order.ID, models.OrderStatusCancelled)

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 5, products.stock(product.ID))
	assert.Len(t, orders.history, 1)
}

func TestOverrideStatus_CancelShippedKeepsStock(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 2)
	order := pendingOrder(client.ID, product, 3)
	order.Status = models.OrderStatusShipped
	products := newMockProductRepo(product)
	svc := newTestOrderService(newMockOrderRepo(order), products, newMockClientRepo(client), &mockGateway{})

	cancelled, svcErr := svc.OverrideStatus(context.Background(), order.ID, models.OrderStatusCancelled)

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 2, products.stock(product.ID))
}

func TestOverrideStatus_EveryTransitionAppendsHistory(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	order := pendingOrder(client.ID, product, 1)
	orders := newMockOrderRepo(order)
	svc := newTestOrderService(orders, newMockProductRepo(product), newMockClientRepo(client), &mockGateway{})

	for _, status := range []models.OrderStatus{
		models.OrderStatusApproved,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		_, svcErr := svc.OverrideStatus(context.Background(), order.ID, status)
		assert.Nil(t, svcErr)
	}

	assert.Len(t, orders.history, 3)
	resp, svcErr := svc.History(context.Background(), &order.ID, 1, 10)
	assert.Nil(t, svcErr)
	assert.Len(t, resp.History, 3)
	assert.Equal(t, models.OrderStatusDelivered, resp.History[2].Status)
}

// ---- tracking ----

func TestTrackOrder_Success(t *testing.T) {
	client := testClient()
	product := testProduct(10.0, 5)
	order := pendingOrder(client.ID, product, 1)
	order.Status = models.OrderStatusShipped
	svc := newTestOrderService(newMockOrderRepo(order), newMockProductRepo(product), newMockClientRepo(client), &mockGateway{})

	status, svcErr := svc.TrackOrder(context.Background(), order.ID)

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusShipped, status.Status)
}

func TestTrackOrder_NotFound(t *testing.T) {
	svc := newTestOrderService(newMockOrderRepo(), newMockProductRepo(), newMockClientRepo(), &mockGateway{})

	_, svcErr := svc.TrackOrder(context.Background(), uuid.New())

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}
