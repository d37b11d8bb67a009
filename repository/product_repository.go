package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"order-tracking-service/models"
)

// ProductRepository is product data access plus the inventory ledger.
// Reserve and Release are the only operations allowed to change stock for an
// order, and each changes stock with a single conditional statement so
// concurrent reservations on the same product can never push stock below
// zero.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByNameAndVendor(ctx context.Context, name string, vendorID uuid.UUID) (*models.Product, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reserve(ctx context.Context, id uuid.UUID, quantity int) (float64, error)
	Release(ctx context.Context, id uuid.UUID, quantity int) error
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindByNameAndVendor(ctx context.Context, name string, vendorID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("name = ? AND vendor_id = ?", name, vendorID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SoftDelete flags the product and detaches it from historical order lines so
// their quantity and price survive. Both commit in one transaction.
func (r *GormProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).Where("id = ?", id).Update("is_deleted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.OrderLine{}).
			Where("product_id = ?", id).
			Update("product_id", nil).Error
	})
}

// Reserve decrements stock by quantity and returns the unit price at the time
// of reservation. The decrement is a conditional UPDATE guarded by
// stock >= quantity and is_deleted = false, so the read-validate-decrement
// race cannot oversell: of two concurrent reservations competing for the last
// units, exactly one statement matches the row.
func (r *GormProductRepository) Reserve(ctx context.Context, id uuid.UUID, quantity int) (float64, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}

	var price float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ? AND is_deleted = ?", id, quantity, false).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Distinguish a missing/deleted product from a stock shortage.
			var product models.Product
			err := tx.First(&product, "id = ?", id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			if product.IsDeleted {
				return ErrNotFound
			}
			return ErrInsufficientStock
		}

		// The price snapshot shares the decrement's transaction, so a failed
		// read rolls the decrement back instead of leaking reserved stock.
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		price = product.Price
		return nil
	})
	if err != nil {
		return 0, err
	}
	return price, nil
}

// Release returns quantity units to stock, undoing a reservation.
func (r *GormProductRepository) Release(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("release quantity must be positive, got %d", quantity)
	}

	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
