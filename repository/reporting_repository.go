package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"order-tracking-service/models"
)

// CategoryExpense is the expense total for a single category.
type CategoryExpense struct {
	Category     models.ExpenseCategory `json:"category"`
	TotalExpense float64                `json:"total_expense"`
}

// ClientSpend aggregates invoiced spend per client.
type ClientSpend struct {
	ClientName      string     `json:"client_name"`
	TotalSpent      float64    `json:"total_spent"`
	TotalOrders     int64      `json:"total_orders"`
	LatestOrderDate *time.Time `json:"latest_order_date,omitempty"`
}

// VendorSales aggregates invoiced sales per vendor.
type VendorSales struct {
	VendorName string  `json:"vendor_name"`
	TotalSales float64 `json:"total_sales"`
}

// PopularProduct is the most-ordered product by total line quantity.
type PopularProduct struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Description   string `json:"product_description"`
	TotalQuantity int64  `json:"total_quantity"`
}

// ReportingRepository is the read side: aggregation queries over the order,
// invoice and expense tables with no invariants of its own.
type ReportingRepository interface {
	TotalRevenue(ctx context.Context, start, end *time.Time) (float64, error)
	OrderCount(ctx context.Context, start, end *time.Time) (int64, error)
	MostOrderedProduct(ctx context.Context) (*PopularProduct, error)
	ExpensesByCategory(ctx context.Context, start, end *time.Time) ([]CategoryExpense, error)
	ClientSpendReport(ctx context.Context) ([]ClientSpend, error)
	VendorSalesReport(ctx context.Context) ([]VendorSales, error)
}

// GormReportingRepository implements ReportingRepository using GORM.
type GormReportingRepository struct {
	db *gorm.DB
}

func NewGormReportingRepository(db *gorm.DB) ReportingRepository {
	return &GormReportingRepository{db: db}
}

func (r *GormReportingRepository) TotalRevenue(ctx context.Context, start, end *time.Time) (float64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	query = applyCreatedAtRange(query, start, end)

	var revenue *float64
	if err := query.Select("SUM(total_amount)").Scan(&revenue).Error; err != nil {
		return 0, err
	}
	if revenue == nil {
		return 0, ErrNotFound
	}
	return *revenue, nil
}

func (r *GormReportingRepository) OrderCount(ctx context.Context, start, end *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	query = applyCreatedAtRange(query, start, end)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormReportingRepository) MostOrderedProduct(ctx context.Context) (*PopularProduct, error) {
	var result PopularProduct
	err := r.db.WithContext(ctx).Model(&models.OrderLine{}).
		Select("products.id AS product_id, products.name AS product_name, products.description AS description, SUM(order_lines.quantity) AS total_quantity").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Group("products.id, products.name, products.description").
		Order("SUM(order_lines.quantity) DESC").
		Limit(1).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	if result.ProductID == "" {
		return nil, ErrNotFound
	}
	return &result, nil
}

func (r *GormReportingRepository) ExpensesByCategory(ctx context.Context, start, end *time.Time) ([]CategoryExpense, error) {
	query := r.db.WithContext(ctx).Model(&models.Expense{})
	if start != nil {
		query = query.Where("date >= ?", *start)
	}
	if end != nil {
		query = query.Where("date <= ?", *end)
	}

	var report []CategoryExpense
	err := query.
		Select("category, SUM(amount) AS total_expense").
		Group("category").
		Order("SUM(amount) DESC").
		Scan(&report).Error
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *GormReportingRepository) ClientSpendReport(ctx context.Context) ([]ClientSpend, error) {
	var report []ClientSpend
	err := r.db.WithContext(ctx).Model(&models.Client{}).
		Select("clients.name AS client_name, SUM(invoices.amount) AS total_spent, COUNT(orders.id) AS total_orders, MAX(orders.created_at) AS latest_order_date").
		Joins("JOIN orders ON orders.client_id = clients.id").
		Joins("JOIN invoices ON invoices.order_id = orders.id").
		Group("clients.name").
		Scan(&report).Error
	if err != nil {
		return nil, err
	}
	return report, nil
}

// VendorSalesReport attributes invoiced amounts to vendors through the
// vendor -> product -> order line -> invoice chain.
func (r *GormReportingRepository) VendorSalesReport(ctx context.Context) ([]VendorSales, error) {
	var report []VendorSales
	err := r.db.WithContext(ctx).Model(&models.Vendor{}).
		Select("vendors.name AS vendor_name, SUM(invoices.amount) AS total_sales").
		Joins("JOIN products ON products.vendor_id = vendors.id").
		Joins("JOIN order_lines ON order_lines.product_id = products.id").
		Joins("JOIN invoices ON invoices.order_id = order_lines.order_id").
		Group("vendors.name").
		Scan(&report).Error
	if err != nil {
		return nil, err
	}
	return report, nil
}

func applyCreatedAtRange(query *gorm.DB, start, end *time.Time) *gorm.DB {
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}
	return query
}
