package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/pdv-backend/internal/cart"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// stubSubmitter records the submitted sale and can be told to fail.
type stubSubmitter struct {
	lastSale *Sale
	calls    int
	fail     error
}

func (s *stubSubmitter) SubmitSale(ctx context.Context, sale *Sale) (string, time.Time, error) {
	s.calls++
	if s.fail != nil {
		return "", time.Time{}, s.fail
	}
	cp := *sale
	s.lastSale = &cp
	return "order-1", time.Now(), nil
}

func cartWithTotal(t *testing.T, total string) *cart.Cart {
	t.Helper()
	c := cart.New()
	c.Add("p1", "Produto", "SKU-1", dec(total))
	return c
}

func TestBegin_EmptyCartRejected(t *testing.T) {
	if _, err := Begin(cart.New(), nil); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err=%v, esperaba ErrEmptyCart", err)
	}
}

func TestAddPart_Validation(t *testing.T) {
	ck, err := Begin(cartWithTotal(t, "100.00"), nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := ck.AddPart("cheque", dec("10")); !errors.Is(err, ErrInvalidMethod) {
		t.Fatalf("err=%v, esperaba ErrInvalidMethod", err)
	}
	if err := ck.AddPart(Cash, dec("0")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err=%v, esperaba ErrInvalidAmount", err)
	}
	if err := ck.AddPart(Cash, dec("-5")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err=%v, esperaba ErrInvalidAmount", err)
	}
	if err := ck.AddPart(Fiado, dec("10")); !errors.Is(err, ErrClientRequired) {
		t.Fatalf("err=%v, esperaba ErrClientRequired", err)
	}
	if len(ck.Parts()) != 0 {
		t.Fatalf("partes inválidas no debían quedar registradas")
	}
}

func TestScenarioB_SplitCashPix(t *testing.T) {
	ck, err := Begin(cartWithTotal(t, "100.00"), nil)
	if err != nil {
		t.Fatal(err)
	}

	if ck.CanConfirm() {
		t.Fatalf("confirm habilitado sin pagos")
	}
	if err := ck.AddPart(Cash, dec("60.00")); err != nil {
		t.Fatal(err)
	}
	if !ck.Remaining().Equal(dec("40.00")) {
		t.Fatalf("remaining=%s, esperaba 40.00", ck.Remaining())
	}
	if err := ck.AddPart(Pix, dec("40.00")); err != nil {
		t.Fatal(err)
	}
	if !ck.Remaining().IsZero() || !ck.CanConfirm() {
		t.Fatalf("remaining=%s, esperaba 0 y confirm habilitado", ck.Remaining())
	}
	if m := ck.PrimaryMethod(); m != Cash {
		t.Fatalf("primary=%s, esperaba cash (mayor monto)", m)
	}
}

func TestPrimaryMethod_TieKeepsFirst(t *testing.T) {
	ck, _ := Begin(cartWithTotal(t, "100.00"), nil)
	_ = ck.AddPart(Pix, dec("50.00"))
	_ = ck.AddPart(Cash, dec("50.00"))

	if m := ck.PrimaryMethod(); m != Pix {
		t.Fatalf("primary=%s, esperaba pix (primer parte en empate)", m)
	}
}

func TestRemovePart_RestoresRemaining(t *testing.T) {
	ck, _ := Begin(cartWithTotal(t, "100.00"), nil)
	_ = ck.AddPart(Cash, dec("60.00"))
	_ = ck.AddPart(Pix, dec("40.00"))

	if err := ck.RemovePart(1); err != nil {
		t.Fatal(err)
	}
	if !ck.Remaining().Equal(dec("40.00")) {
		t.Fatalf("remaining=%s, esperaba exactamente 40.00 restaurado", ck.Remaining())
	}
	if err := ck.RemovePart(5); !errors.Is(err, ErrPartIndex) {
		t.Fatalf("err=%v, esperaba ErrPartIndex", err)
	}
}

func TestOverpayment_FloorsAtZero(t *testing.T) {
	ck, _ := Begin(cartWithTotal(t, "100.00"), nil)
	_ = ck.AddPart(Cash, dec("150.00"))

	if !ck.Remaining().IsZero() {
		t.Fatalf("remaining=%s, esperaba 0 con sobrepago", ck.Remaining())
	}
	if !ck.CanConfirm() {
		t.Fatalf("confirm debía seguir habilitado con sobrepago")
	}
}

func TestScenarioC_TabOverCreditRejected(t *testing.T) {
	cl := &ClientAccount{
		ID:          "c1",
		Name:        "Maria",
		CreditLimit: dec("200.00"),
		Outstanding: dec("180.00"),
	}
	ck, _ := Begin(cartWithTotal(t, "50.00"), cl)

	err := ck.AddPart(Fiado, dec("50.00"))
	if !errors.Is(err, ErrCreditExceeded) {
		t.Fatalf("err=%v, esperaba ErrCreditExceeded (disponible 20.00)", err)
	}
	if len(ck.Parts()) != 0 {
		t.Fatalf("la parte rechazada no debía quedar registrada")
	}
}

func TestScenarioE_SingleCashConfirm(t *testing.T) {
	crt := cart.New()
	crt.Add("p1", "Produto", "SKU-1", dec("49.90"))
	crt.Add("p1", "Produto", "SKU-1", dec("49.90"))

	ck, _ := Begin(crt, nil)
	_ = ck.AddPart(Cash, dec("99.80"))

	sub := &stubSubmitter{}
	rc, err := ck.Confirm(context.Background(), sub)
	if err != nil {
		t.Fatalf("confirm falló: %v", err)
	}
	if rc.Status != StatusCompleted {
		t.Fatalf("status=%s, esperaba completed", rc.Status)
	}
	if rc.PaymentMethod != Cash {
		t.Fatalf("method=%s, esperaba cash", rc.PaymentMethod)
	}
	if !crt.Empty() {
		t.Fatalf("el carrito debía quedar vacío tras confirmar")
	}
	if ck.State() != Succeeded {
		t.Fatalf("state=%s, esperaba succeeded", ck.State())
	}
	if len(rc.Items) != 1 || !rc.Total.Equal(dec("99.80")) {
		t.Fatalf("recibo inconsistente: items=%d total=%s", len(rc.Items), rc.Total)
	}
	if sub.lastSale.TabDebit.Sign() != 0 {
		t.Fatalf("venta en efectivo no debía generar débito en cuenta")
	}
}

func TestConfirm_TabSale(t *testing.T) {
	cl := &ClientAccount{
		ID:          "c1",
		Name:        "Maria",
		CreditLimit: dec("200.00"),
		Outstanding: dec("50.00"),
	}
	ck, _ := Begin(cartWithTotal(t, "100.00"), cl)
	if err := ck.AddPart(Fiado, dec("100.00")); err != nil {
		t.Fatal(err)
	}

	sub := &stubSubmitter{}
	rc, err := ck.Confirm(context.Background(), sub)
	if err != nil {
		t.Fatal(err)
	}
	if rc.Status != StatusPending {
		t.Fatalf("status=%s, esperaba pending para venta fiado", rc.Status)
	}
	if !sub.lastSale.TabDebit.Equal(dec("100.00")) {
		t.Fatalf("debit=%s, esperaba 100.00", sub.lastSale.TabDebit)
	}
	if sub.lastSale.ClientID != "c1" {
		t.Fatalf("client_id=%q, esperaba c1", sub.lastSale.ClientID)
	}
}

func TestConfirm_InsufficientPayment(t *testing.T) {
	ck, _ := Begin(cartWithTotal(t, "100.00"), nil)
	_ = ck.AddPart(Cash, dec("99.99"))

	sub := &stubSubmitter{}
	if _, err := ck.Confirm(context.Background(), sub); !errors.Is(err, ErrInsufficientPayment) {
		t.Fatalf("err=%v, esperaba ErrInsufficientPayment", err)
	}
	if sub.calls != 0 {
		t.Fatalf("no debía llegar al submitter")
	}
}

func TestConfirm_FailureKeepsPartsForRetry(t *testing.T) {
	ck, _ := Begin(cartWithTotal(t, "100.00"), nil)
	_ = ck.AddPart(Cash, dec("100.00"))

	sub := &stubSubmitter{fail: fmt.Errorf("store rejected the write")}
	if _, err := ck.Confirm(context.Background(), sub); err == nil {
		t.Fatalf("esperaba error de submit")
	}
	if ck.State() != Failed {
		t.Fatalf("state=%s, esperaba failed", ck.State())
	}
	if len(ck.Parts()) != 1 {
		t.Fatalf("las partes debían quedar intactas para reintentar")
	}

	// retry after the store recovers
	sub.fail = nil
	if _, err := ck.Confirm(context.Background(), sub); err != nil {
		t.Fatalf("reintento falló: %v", err)
	}
	if ck.State() != Succeeded {
		t.Fatalf("state=%s tras reintento, esperaba succeeded", ck.State())
	}
}

func TestConfirm_SecondConfirmRejected(t *testing.T) {
	ck, _ := Begin(cartWithTotal(t, "100.00"), nil)
	_ = ck.AddPart(Cash, dec("100.00"))

	if _, err := ck.Confirm(context.Background(), &stubSubmitter{}); err != nil {
		t.Fatal(err)
	}
	if _, err := ck.Confirm(context.Background(), &stubSubmitter{}); !errors.Is(err, ErrDone) {
		t.Fatalf("err=%v, esperaba ErrDone tras éxito", err)
	}
	if err := ck.AddPart(Cash, dec("1")); !errors.Is(err, ErrDone) {
		t.Fatalf("err=%v, esperaba ErrDone al mutar un checkout cerrado", err)
	}
}
