package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"order-tracking-service/models"
	"order-tracking-service/repository"
)

// ExpenseService records operating costs.
type ExpenseService struct {
	expenses repository.ExpenseRepository
	logger   *zap.Logger
}

func NewExpenseService(expenses repository.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{expenses: expenses, logger: logger}
}

// CreateExpense logs an expense under one of the defined categories.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *models.CreateExpenseRequest) (*models.Expense, *ServiceError) {
	if !req.Category.Valid() {
		return nil, badRequest("Invalid expense category")
	}

	expense := &models.Expense{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		s.logger.Error("expense persist failed", zap.Error(err))
		return nil, internalError("Failed to create expense")
	}

	s.logger.Info("expense created",
		zap.String("expense_id", expense.ID.String()),
		zap.String("category", string(expense.Category)),
		zap.Float64("amount", expense.Amount),
	)
	return expense, nil
}

// GetExpenses returns a page of expenses matching the filter, newest first.
func (s *ExpenseService) GetExpenses(ctx context.Context, filter repository.ExpenseFilter, page, limit int) ([]models.Expense, MetaData, *ServiceError) {
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, MetaData{}, badRequest("Invalid expense category")
	}

	expenses, total, err := s.expenses.FindAll(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error("expense list failed", zap.Error(err))
		return nil, MetaData{}, internalError("Failed to fetch expenses")
	}
	return expenses, newMetaData(page, limit, total), nil
}

// UpdateExpense merges the fields present in the request into the expense.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, req *models.UpdateExpenseRequest) (*models.Expense, *ServiceError) {
	expense, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Expense not found")
		}
		s.logger.Error("expense lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch expense")
	}

	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, badRequest("Invalid expense category")
		}
		expense.Category = *req.Category
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}

	if err := s.expenses.Update(ctx, expense); err != nil {
		s.logger.Error("expense update failed", zap.String("expense_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to update expense")
	}
	return expense, nil
}

// DeleteExpense removes the expense record. Expenses carry no references, so
// this is a hard delete.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.expenses.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return notFound("Expense not found")
		}
		s.logger.Error("expense delete failed", zap.String("expense_id", id.String()), zap.Error(err))
		return internalError("Failed to delete expense")
	}

	s.logger.Info("expense deleted", zap.String("expense_id", id.String()))
	return nil
}

// Summary totals expenses over an optional date range, overall and per
// category.
func (s *ExpenseService) Summary(ctx context.Context, start, end *time.Time) (*repository.ExpenseSummary, *ServiceError) {
	summary, err := s.expenses.Summarize(ctx, start, end)
	if err != nil {
		s.logger.Error("expense summary failed", zap.Error(err))
		return nil, internalError("Failed to compute expense summary")
	}
	return summary, nil
}

// Categories lists the accepted expense categories.
func (s *ExpenseService) Categories() []models.ExpenseCategory {
	return models.ExpenseCategories()
}
