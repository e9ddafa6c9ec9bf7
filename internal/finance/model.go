package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	StatusPending = "pending"
	StatusPaid    = "paid"
)

func ValidType(t string) bool   { return t == TypeIncome || t == TypeExpense }
func ValidStatus(s string) bool { return s == StatusPending || s == StatusPaid }

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	DueDate     time.Time       `json:"due_date"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateTransactionRequest payload de creación.
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	Description string          `json:"description" binding:"required" example:"Aluguel"`
	Amount      decimal.Decimal `json:"amount"      binding:"required" example:"1200.00"`
	Type        string          `json:"type"        binding:"required" example:"expense"`
	Status      string          `json:"status"      example:"pending"`
	DueDate     string          `json:"due_date"    binding:"required" example:"2026-09-10"`
	CategoryID  string          `json:"category_id"`
}

// UpdateTransactionRequest payload de actualización parcial.
// swagger:model UpdateTransactionRequest
type UpdateTransactionRequest struct {
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Status      string           `json:"status"`
	DueDate     string           `json:"due_date"`
	PaymentDate string           `json:"payment_date"`
	CategoryID  string           `json:"category_id"`
}

// CreateCategoryRequest payload de creación de categoría.
// swagger:model CreateCategoryRequest
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required" example:"Despesas Fixas"`
	Type string `json:"type" binding:"required" example:"expense"`
}
