package pos

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/pdv-backend/internal/checkout"
)

func TestStore_CreateGetClose(t *testing.T) {
	st := NewStore()
	s := st.Create()

	got, err := st.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("get falló: %v", err)
	}
	if !st.Close(s.ID) {
		t.Fatalf("close debía encontrar la sesión")
	}
	if _, err := st.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err=%v, esperaba ErrSessionNotFound", err)
	}
	if st.Close(s.ID) {
		t.Fatalf("segundo close debía fallar")
	}
}

func TestSession_BeginCheckoutEmptyCart(t *testing.T) {
	st := NewStore()
	s := st.Create()

	if err := s.BeginCheckout(); !errors.Is(err, checkout.ErrEmptyCart) {
		t.Fatalf("err=%v, esperaba ErrEmptyCart", err)
	}
}

func TestSession_AttachClientDropsCheckout(t *testing.T) {
	st := NewStore()
	s := st.Create()
	s.Cart.Add("p1", "Produto", "SKU-1", decimal.NewFromFloat(10))
	s.AttachClient(&checkout.ClientAccount{ID: "c1", Name: "Maria"})
	if err := s.BeginCheckout(); err != nil {
		t.Fatal(err)
	}

	s.AttachClient(nil)
	if s.CheckoutOpen() {
		t.Fatalf("detach debía descartar el checkout")
	}
	if s.Client != nil {
		t.Fatalf("client=%v, esperaba nil", s.Client)
	}

	if err := s.BeginCheckout(); err != nil {
		t.Fatal(err)
	}
	s.AttachClient(&checkout.ClientAccount{ID: "c2", Name: "Jose"})
	if s.CheckoutOpen() {
		t.Fatalf("cambiar de cliente debía descartar el checkout")
	}
}

func TestSession_CancelCheckout(t *testing.T) {
	st := NewStore()
	s := st.Create()

	if err := s.CancelCheckout(); err != nil {
		t.Fatalf("cancel sin checkout abierto: %v", err)
	}

	s.Cart.Add("p1", "Produto", "SKU-1", decimal.NewFromFloat(10))
	if err := s.BeginCheckout(); err != nil {
		t.Fatal(err)
	}
	if err := s.CancelCheckout(); err != nil {
		t.Fatal(err)
	}
	if s.CheckoutOpen() {
		t.Fatalf("el checkout debía quedar descartado")
	}
	if s.Cart.Empty() {
		t.Fatalf("cancelar no debía tocar el carrito")
	}
}

func TestSession_CancelCheckoutWhileConfirming(t *testing.T) {
	st := NewStore()
	s := st.Create()
	s.Cart.Add("p1", "Produto", "SKU-1", decimal.NewFromFloat(10))
	if err := s.BeginCheckout(); err != nil {
		t.Fatal(err)
	}
	if err := s.Checkout.AddPart(checkout.Cash, decimal.NewFromFloat(10)); err != nil {
		t.Fatal(err)
	}

	sub := &slowSubmitter{entered: make(chan struct{}), release: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		_, err := s.Checkout.Confirm(context.Background(), sub)
		done <- err
	}()

	<-sub.entered
	if err := s.CancelCheckout(); !errors.Is(err, checkout.ErrConfirmInFlight) {
		t.Fatalf("err=%v, esperaba ErrConfirmInFlight", err)
	}

	close(sub.release)
	if err := <-done; err != nil {
		t.Fatalf("confirm falló: %v", err)
	}
}

// slowSubmitter holds the submission until released, to exercise the
// session lock against a double confirm.
type slowSubmitter struct {
	entered chan struct{}
	release chan struct{}
	calls   int
	mu      sync.Mutex
}

func (s *slowSubmitter) SubmitSale(ctx context.Context, sale *checkout.Sale) (string, time.Time, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	close(s.entered)
	<-s.release
	return "order-1", time.Now(), nil
}

func TestSession_ConcurrentConfirmSubmitsOnce(t *testing.T) {
	st := NewStore()
	s := st.Create()
	s.Cart.Add("p1", "Produto", "SKU-1", decimal.NewFromFloat(10))
	if err := s.BeginCheckout(); err != nil {
		t.Fatal(err)
	}
	if err := s.Checkout.AddPart(checkout.Cash, decimal.NewFromFloat(10)); err != nil {
		t.Fatal(err)
	}

	sub := &slowSubmitter{entered: make(chan struct{}), release: make(chan struct{})}

	firstDone := make(chan error, 1)
	go func() {
		s.Lock()
		defer s.Unlock()
		_, err := s.Checkout.Confirm(context.Background(), sub)
		firstDone <- err
	}()

	<-sub.entered // first confirm is in flight, holding the session lock

	secondDone := make(chan error, 1)
	go func() {
		s.Lock()
		defer s.Unlock()
		_, err := s.Checkout.Confirm(context.Background(), sub)
		secondDone <- err
	}()

	close(sub.release)

	if err := <-firstDone; err != nil {
		t.Fatalf("primer confirm falló: %v", err)
	}
	if err := <-secondDone; err == nil {
		t.Fatalf("segundo confirm debía ser rechazado")
	}
	if sub.calls != 1 {
		t.Fatalf("submit llamado %d veces, esperaba 1", sub.calls)
	}
}
