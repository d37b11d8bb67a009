package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-tracking-service/models"
	"order-tracking-service/repository"
)

func seedOrder(t *testing.T, repo repository.OrderRepository, productID uuid.UUID) *models.Order {
	t.Helper()
	pid := productID
	order := &models.Order{
		ClientID:    uuid.New(),
		Status:      models.OrderStatusPending,
		TotalAmount: 20.0,
		Lines: []models.OrderLine{{
			ProductID: &pid,
			Quantity:  2,
			Price:     20.0,
		}},
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestOrderCreate_PersistsLines(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormOrderRepository(db)
	order := seedOrder(t, repo, uuid.New())

	fresh, err := repo.FindByID(context.Background(), order.ID)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, fresh.Status)
	assert.Len(t, fresh.Lines, 1)
	assert.Equal(t, 20.0, fresh.TotalAmount)
	assert.Equal(t, order.ID, fresh.Lines[0].OrderID)
}

func TestOrderFindByID_NotFound(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormOrderRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateStatus_AppendsHistory(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormOrderRepository(db)
	order := seedOrder(t, repo, uuid.New())

	first := time.Now().UTC()
	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, models.OrderStatusApproved, first))
	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, models.OrderStatusShipped, first.Add(time.Minute)))

	fresh, err := repo.FindByID(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, fresh.Status)

	entries, total, err := repo.ListHistory(context.Background(), &order.ID, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	// History comes back in transition order.
	assert.Equal(t, models.OrderStatusApproved, entries[0].Status)
	assert.Equal(t, models.OrderStatusShipped, entries[1].Status)
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormOrderRepository(db)

	err := repo.UpdateStatus(context.Background(), uuid.New(), models.OrderStatusApproved, time.Now().UTC())

	assert.ErrorIs(t, err, repository.ErrNotFound)

	entries, total, lerr := repo.ListHistory(context.Background(), nil, 1, 10)
	assert.NoError(t, lerr)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, entries)
}

func TestSaveLine_UpdatesLineAndTotal(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormOrderRepository(db)
	order := seedOrder(t, repo, uuid.New())

	line := order.Lines[0]
	line.Quantity = 5
	line.Price = 50.0
	require.NoError(t, repo.SaveLine(context.Background(), &line, 50.0))

	fresh, err := repo.FindByID(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Len(t, fresh.Lines, 1)
	assert.Equal(t, 5, fresh.Lines[0].Quantity)
	assert.Equal(t, 50.0, fresh.TotalAmount)
}

func TestDeleteLine_RemovesLineAndRestocks(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormOrderRepository(db)
	products := repository.NewGormProductRepository(db)
	product := seedProduct(t, db, 10.0, 1)
	order := seedOrder(t, repo, product.ID)

	require.NoError(t, repo.DeleteLine(context.Background(), &order.Lines[0], 0.0))

	fresh, err := repo.FindByID(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Empty(t, fresh.Lines)
	assert.Equal(t, 0.0, fresh.TotalAmount)

	// The line's two units went back to stock in the same commit.
	restocked, err := products.FindByID(context.Background(), product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, restocked.Stock)
}

func TestSetPaymentIntent_AttachesIntent(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormOrderRepository(db)
	order := seedOrder(t, repo, uuid.New())

	require.NoError(t, repo.SetPaymentIntent(context.Background(), order.ID, "pi_42"))

	fresh, err := repo.FindByID(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "pi_42", fresh.PaymentIntentID)
}

func TestOrderDelete_RemovesOrderAndLines(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormOrderRepository(db)
	order := seedOrder(t, repo, uuid.New())

	require.NoError(t, repo.Delete(context.Background(), order))

	_, err := repo.FindByID(context.Background(), order.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.OrderLine{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestFindByClientID_FiltersByClient(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormOrderRepository(db)
	mine := seedOrder(t, repo, uuid.New())
	seedOrder(t, repo, uuid.New())

	orders, total, err := repo.FindByClientID(context.Background(), mine.ClientID, 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)
}
