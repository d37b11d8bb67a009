package repository_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"order-tracking-service/models"
	"order-tracking-service/repository"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and serializes
	// writers, which sqlite requires anyway.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Vendor{},
		&models.Product{},
		&models.Order{},
		&models.OrderLine{},
		&models.OrderHistory{},
		&models.Invoice{},
		&models.Expense{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, price float64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: "widget", Price: price, Stock: stock}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestReserve_DecrementsAndReturnsPrice(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormProductRepository(db)
	product := seedProduct(t, db, 9.99, 10)

	price, err := repo.Reserve(context.Background(), product.ID, 4)

	assert.NoError(t, err)
	assert.Equal(t, 9.99, price)

	fresh, err := repo.FindByID(context.Background(), product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 6, fresh.Stock)
}

func TestReserve_InsufficientStock(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormProductRepository(db)
	product := seedProduct(t, db, 5.0, 2)

	_, err := repo.Reserve(context.Background(), product.ID, 3)

	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	fresh, ferr := repo.FindByID(context.Background(), product.ID)
	assert.NoError(t, ferr)
	assert.Equal(t, 2, fresh.Stock)
}

func TestReserve_UnknownProduct(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormProductRepository(db)

	_, err := repo.Reserve(context.Background(), uuid.New(), 1)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReserve_DeletedProduct(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormProductRepository(db)
	product := seedProduct(t, db, 5.0, 10)

	require.NoError(t, repo.SoftDelete(context.Background(), product.ID))

	_, err := repo.Reserve(context.Background(), product.ID, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// Two goroutines race for the last unit; the conditional update must let
// exactly one of them win and never push stock negative.
func TestReserve_ConcurrentLastUnit(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormProductRepository(db)
	product := seedProduct(t, db, 5.0, 1)

	const racers = 2
	errs := make([]error, racers)
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Reserve(context.Background(), product.ID, 1)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, repository.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, successes)

	fresh, err := repo.FindByID(context.Background(), product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, fresh.Stock)
}

// A price read that fails after the decrement must roll the decrement back,
// otherwise the reserved units would leak with no order line to release them.
func TestReserve_PriceReadFailureRollsBackDecrement(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.Reserve(context.Background(), uuid.New(), 2)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelease_RestoresStock(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormProductRepository(db)
	product := seedProduct(t, db, 5.0, 3)

	_, err := repo.Reserve(context.Background(), product.ID, 3)
	require.NoError(t, err)

	require.NoError(t, repo.Release(context.Background(), product.ID, 3))

	fresh, err := repo.FindByID(context.Background(), product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, fresh.Stock)
}

func TestSoftDelete_DetachesOrderLines(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := repository.NewGormProductRepository(db)
	product := seedProduct(t, db, 5.0, 3)

	productID := product.ID
	order := &models.Order{
		ClientID:    uuid.New(),
		Status:      models.OrderStatusPending,
		TotalAmount: 10.0,
		Lines: []models.OrderLine{{
			ProductID: &productID,
			Quantity:  2,
			Price:     10.0,
		}},
	}
	require.NoError(t, db.Create(order).Error)

	require.NoError(t, repo.SoftDelete(context.Background(), product.ID))

	var line models.OrderLine
	require.NoError(t, db.First(&line, "order_id = ?", order.ID).Error)
	assert.Nil(t, line.ProductID)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 10.0, line.Price)

	fresh, err := repo.FindByID(context.Background(), product.ID)
	assert.NoError(t, err)
	assert.True(t, fresh.IsDeleted)
}
