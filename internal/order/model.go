package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	ClientID      string          `json:"client_id,omitempty"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Item struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total_price"`
}

// Payment is one part of a split payment. The order header keeps the
// single primary method; the breakdown is kept here so it is not lost.
type Payment struct {
	ID      string          `json:"id"`
	OrderID string          `json:"order_id"`
	Method  string          `json:"method"`
	Amount  decimal.Decimal `json:"amount"`
}

// TabDebit charges a fiado sale on the client account inside the same
// transaction that creates the order.
type TabDebit struct {
	ClientID string
	Amount   decimal.Decimal
}
