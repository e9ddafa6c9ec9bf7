package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a customer of the store. CreditLimit and Outstanding drive
// the fiado (store credit) flow: a tab sale may never push Outstanding
// over CreditLimit.
type Client struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Document    string          `json:"document"`
	Address     string          `json:"address,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Outstanding decimal.Decimal `json:"outstanding_balance"`
	DueDay      int             `json:"due_day,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Available is limit minus outstanding balance.
func (c *Client) Available() decimal.Decimal {
	return c.CreditLimit.Sub(c.Outstanding)
}

// CreateClientRequest payload de creación.
// swagger:model CreateClientRequest
type CreateClientRequest struct {
	Name        string          `json:"name"     binding:"required" example:"Maria Souza"`
	Document    string          `json:"document" binding:"required" example:"123.456.789-00"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	CreditLimit decimal.Decimal `json:"credit_limit" example:"200.00"`
	DueDay      int             `json:"due_day"      example:"10"`
}

// UpdateClientRequest payload de actualización parcial.
// swagger:model UpdateClientRequest
type UpdateClientRequest struct {
	Name        string           `json:"name"`
	Document    string           `json:"document"`
	Address     string           `json:"address"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	DueDay      *int             `json:"due_day"`
}

// PaymentRequest registers a payment received against the client's tab.
// swagger:model ClientPaymentRequest
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required" example:"50.00"`
}
