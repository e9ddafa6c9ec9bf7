package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rmacedo/pdv-backend/internal/checkout"
)

// Submitter adapts the repository to the checkout.Submitter port: it maps
// the confirmed sale onto order rows and persists everything atomically.
type Submitter struct {
	repo   Repository
	userID string
}

func NewSubmitter(repo Repository, userID string) *Submitter {
	return &Submitter{repo: repo, userID: userID}
}

func (s *Submitter) SubmitSale(ctx context.Context, sale *checkout.Sale) (string, time.Time, error) {
	now := time.Now().UTC()
	o := &Order{
		ID:            uuid.NewString(),
		UserID:        s.userID,
		ClientID:      sale.ClientID,
		Status:        sale.Status,
		PaymentMethod: string(sale.PaymentMethod),
		Total:         sale.Total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	items := make([]Item, 0, len(sale.Items))
	for _, it := range sale.Items {
		items = append(items, Item{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}

	payments := make([]Payment, 0, len(sale.Parts))
	for _, p := range sale.Parts {
		payments = append(payments, Payment{
			ID:      uuid.NewString(),
			OrderID: o.ID,
			Method:  string(p.Method),
			Amount:  p.Amount,
		})
	}

	var debit *TabDebit
	if sale.TabDebit.Sign() > 0 {
		debit = &TabDebit{ClientID: sale.ClientID, Amount: sale.TabDebit}
	}

	if err := s.repo.CreateSale(ctx, o, items, payments, debit); err != nil {
		return "", time.Time{}, err
	}
	return o.ID, o.CreatedAt, nil
}
