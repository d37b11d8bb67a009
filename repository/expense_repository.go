package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"order-tracking-service/models"
)

// ExpenseFilter narrows expense listings; nil fields are ignored.
type ExpenseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  *models.ExpenseCategory
}

// ExpenseSummary totals expenses over a range, overall and per category.
// Every defined category appears, zero when nothing was logged under it.
type ExpenseSummary struct {
	TotalAmount float64                            `json:"total_amount"`
	Categories  map[models.ExpenseCategory]float64 `json:"categories"`
}

// ExpenseRepository defines the interface for expense data access.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	FindAll(ctx context.Context, filter ExpenseFilter, page, limit int) ([]models.Expense, int64, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	Summarize(ctx context.Context, start, end *time.Time) (*ExpenseSummary, error)
}

// GormExpenseRepository implements ExpenseRepository using GORM.
type GormExpenseRepository struct {
	db *gorm.DB
}

func NewGormExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *GormExpenseRepository) FindAll(ctx context.Context, filter ExpenseFilter, page, limit int) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Expense{})
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *GormExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Expense{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Summarize aggregates in the database rather than paging rows through the
// service, so the totals cover every expense in the range.
func (r *GormExpenseRepository) Summarize(ctx context.Context, start, end *time.Time) (*ExpenseSummary, error) {
	query := r.db.WithContext(ctx).Model(&models.Expense{})
	if start != nil {
		query = query.Where("date >= ?", *start)
	}
	if end != nil {
		query = query.Where("date <= ?", *end)
	}

	var rows []CategoryExpense
	err := query.
		Select("category, SUM(amount) AS total_expense").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &ExpenseSummary{Categories: make(map[models.ExpenseCategory]float64)}
	for _, category := range models.ExpenseCategories() {
		summary.Categories[category] = 0
	}
	for _, row := range rows {
		summary.Categories[row.Category] = row.TotalExpense
		summary.TotalAmount += row.TotalExpense
	}
	return summary, nil
}
