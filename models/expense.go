package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseCategory classifies an expense entry.
type ExpenseCategory string

const (
	ExpenseCategoryShipping  ExpenseCategory = "shipping"
	ExpenseCategorySupplies  ExpenseCategory = "supplies"
	ExpenseCategoryMaterials ExpenseCategory = "materials"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// ExpenseCategories lists all defined categories.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategoryShipping,
		ExpenseCategorySupplies,
		ExpenseCategoryMaterials,
		ExpenseCategoryOther,
	}
}

// Valid reports whether c is one of the defined categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryShipping, ExpenseCategorySupplies,
		ExpenseCategoryMaterials, ExpenseCategoryOther:
		return true
	}
	return false
}

// Expense is a logged operating cost.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Category    ExpenseCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `gorm:"type:text" json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
}

func (e *Expense) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	return nil
}

type CreateExpenseRequest struct {
	Category    ExpenseCategory `json:"category" binding:"required"`
	Amount      float64         `json:"amount" binding:"required,gt=0"`
	Description string          `json:"description"`
}

// UpdateExpenseRequest carries a partial expense update.
type UpdateExpenseRequest struct {
	Category    *ExpenseCategory `json:"category"`
	Amount      *float64         `json:"amount" binding:"omitempty,gt=0"`
	Description *string          `json:"description"`
	Date        *time.Time       `json:"date"`
}
