package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/pdv-backend/internal/cart"
	"github.com/rmacedo/pdv-backend/internal/checkout"
)

type captureRepo struct {
	Repository

	order    *Order
	items    []Item
	payments []Payment
	debit    *TabDebit
	err      error
}

func (r *captureRepo) CreateSale(ctx context.Context, o *Order, items []Item, payments []Payment, debit *TabDebit) error {
	if r.err != nil {
		return r.err
	}
	r.order, r.items, r.payments, r.debit = o, items, payments, debit
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSubmitter_MapsSaleToRows(t *testing.T) {
	t.Parallel()

	repo := &captureRepo{}
	sub := NewSubmitter(repo, "user-7")

	sale := &checkout.Sale{
		ClientID:      "c1",
		Total:         dec("100.00"),
		Status:        "completed",
		PaymentMethod: checkout.Cash,
		Parts: []checkout.Part{
			{Method: checkout.Cash, Amount: dec("60.00")},
			{Method: checkout.Pix, Amount: dec("40.00")},
		},
		Items: []cart.Item{
			{ProductID: "p1", Name: "Produto", Quantity: dec("2"), UnitPrice: dec("50.00"), Total: dec("100.00")},
		},
	}

	id, createdAt, err := sub.SubmitSale(context.Background(), sale)
	if err != nil {
		t.Fatal(err)
	}
	if id == "" || createdAt.IsZero() {
		t.Fatalf("id=%q createdAt=%v", id, createdAt)
	}

	if repo.order.UserID != "user-7" || repo.order.ClientID != "c1" {
		t.Fatalf("order=%+v", repo.order)
	}
	if repo.order.PaymentMethod != "cash" {
		t.Fatalf("payment_method=%s, esperaba cash", repo.order.PaymentMethod)
	}
	if len(repo.items) != 1 || repo.items[0].OrderID != id {
		t.Fatalf("items=%+v", repo.items)
	}
	if len(repo.payments) != 2 {
		t.Fatalf("pagos=%d, esperaba 2", len(repo.payments))
	}
	if repo.debit != nil {
		t.Fatalf("no debía haber débito en venta al contado")
	}
}

func TestSubmitter_TabDebit(t *testing.T) {
	t.Parallel()

	repo := &captureRepo{}
	sub := NewSubmitter(repo, "user-7")

	sale := &checkout.Sale{
		ClientID:      "c1",
		Total:         dec("80.00"),
		Status:        "pending",
		PaymentMethod: checkout.Fiado,
		Parts:         []checkout.Part{{Method: checkout.Fiado, Amount: dec("80.00")}},
		Items: []cart.Item{
			{ProductID: "p1", Quantity: dec("1"), UnitPrice: dec("80.00"), Total: dec("80.00")},
		},
		TabDebit: dec("80.00"),
	}

	if _, _, err := sub.SubmitSale(context.Background(), sale); err != nil {
		t.Fatal(err)
	}
	if repo.debit == nil {
		t.Fatalf("esperaba débito en cuenta")
	}
	if repo.debit.ClientID != "c1" || !repo.debit.Amount.Equal(dec("80.00")) {
		t.Fatalf("debit=%+v", repo.debit)
	}
}

func TestSubmitter_RepoError(t *testing.T) {
	t.Parallel()

	want := errors.New("boom")
	sub := NewSubmitter(&captureRepo{err: want}, "user-7")

	sale := &checkout.Sale{
		Total:         dec("10.00"),
		Status:        "completed",
		PaymentMethod: checkout.Cash,
		Parts:         []checkout.Part{{Method: checkout.Cash, Amount: dec("10.00")}},
	}
	_, _, err := sub.SubmitSale(context.Background(), sale)
	if !errors.Is(err, want) {
		t.Fatalf("err=%v, esperaba el error del repositorio", err)
	}
}
