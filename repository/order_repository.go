package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"order-tracking-service/models"
)

// OrderRepository persists orders, their lines and their status history.
// Multi-row writes (order+lines, line+total+restock, status+history) commit
// in a single transaction so a failure partway never leaves the order
// inconsistent.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID, page, limit int) ([]models.Order, int64, error)
	SetPaymentIntent(ctx context.Context, orderID uuid.UUID, intentID string) error
	SaveLine(ctx context.Context, line *models.OrderLine, newTotal float64) error
	DeleteLine(ctx context.Context, line *models.OrderLine, newTotal float64) error
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus, changedAt time.Time) error
	ListHistory(ctx context.Context, orderID *uuid.UUID, page, limit int) ([]models.OrderHistory, int64, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists the order and its lines together.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Delete removes the order and its lines. Used only to compensate a failed
// creation; committed orders are cancelled, never deleted.
func (r *GormOrderRepository) Delete(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", order.ID).Error
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Lines").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	return r.findOrders(ctx, r.db.WithContext(ctx).Model(&models.Order{}), page, limit)
}

func (r *GormOrderRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("client_id = ?", clientID)
	return r.findOrders(ctx, query, page, limit)
}

func (r *GormOrderRepository) findOrders(_ context.Context, query *gorm.DB, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Lines").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormOrderRepository) SetPaymentIntent(ctx context.Context, orderID uuid.UUID, intentID string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_intent_id", intentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveLine upserts a line and writes the recomputed order total in the same
// transaction.
func (r *GormOrderRepository) SaveLine(ctx context.Context, line *models.OrderLine, newTotal float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(line).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).
			Where("id = ?", line.OrderID).
			Update("total_amount", newTotal).Error
	})
}

// DeleteLine removes a line, returns its quantity to product stock and writes
// the recomputed order total, all in the same transaction. Lines detached
// from a deleted product have nothing to restock.
func (r *GormOrderRepository) DeleteLine(ctx context.Context, line *models.OrderLine, newTotal float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderLine{}, "id = ?", line.ID).Error; err != nil {
			return err
		}
		if line.ProductID != nil {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", *line.ProductID).
				Update("stock", gorm.Expr("stock + ?", line.Quantity)).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Order{}).
			Where("id = ?", line.OrderID).
			Update("total_amount", newTotal).Error
	})
}

// UpdateStatus changes the order status and appends the history row in one
// transaction. There is no path that changes a status without the append.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus, changedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(&models.OrderHistory{
			OrderID:   orderID,
			Status:    status,
			ChangedAt: changedAt,
		}).Error
	})
}

func (r *GormOrderRepository) ListHistory(ctx context.Context, orderID *uuid.UUID, page, limit int) ([]models.OrderHistory, int64, error) {
	var entries []models.OrderHistory
	var total int64

	query := r.db.WithContext(ctx).Model(&models.OrderHistory{})
	if orderID != nil {
		query = query.Where("order_id = ?", *orderID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("changed_at ASC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
