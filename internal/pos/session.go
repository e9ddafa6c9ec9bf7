// Package pos holds the in-memory sessions of the point-of-sale
// terminals. A session owns one cart, the optionally attached client and
// the active checkout; nothing here touches the database.
package pos

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rmacedo/pdv-backend/internal/cart"
	"github.com/rmacedo/pdv-backend/internal/checkout"
)

var ErrSessionNotFound = errors.New("pos session not found")

// Session is one operator terminal. The mutex serializes every mutation;
// a confirm in flight blocks any second confirm on the same session.
type Session struct {
	sync.Mutex

	ID        string
	Cart      *cart.Cart
	Client    *checkout.ClientAccount
	Checkout  *checkout.Checkout
	CreatedAt time.Time
}

// AttachClient selects the client for the sale. Any open checkout holds
// a snapshot of the previous selection, so attaching, switching or
// detaching (nil) drops it; payment collection restarts against the new
// selection.
func (s *Session) AttachClient(c *checkout.ClientAccount) {
	s.Client = c
	s.Checkout = nil
}

// BeginCheckout resets any prior checkout and opens a new one seeded with
// the current cart total. While a checkout is open the cart is locked.
func (s *Session) BeginCheckout() error {
	ck, err := checkout.Begin(s.Cart, s.Client)
	if err != nil {
		return err
	}
	s.Checkout = ck
	return nil
}

// CheckoutOpen reports whether a checkout still owns the cart. A
// succeeded checkout is cleared by ResetAfterSale; a failed one keeps
// the cart locked until retried or cancelled.
func (s *Session) CheckoutOpen() bool {
	return s.Checkout != nil
}

// CancelCheckout abandons the open checkout and unlocks the cart. A
// confirmation in flight cannot be cancelled.
func (s *Session) CancelCheckout() error {
	if s.Checkout == nil {
		return nil
	}
	if s.Checkout.State() == checkout.Confirming {
		return checkout.ErrConfirmInFlight
	}
	s.Checkout = nil
	return nil
}

// ResetAfterSale drops the finished checkout and the client selection,
// leaving the session ready for the next sale.
func (s *Session) ResetAfterSale() {
	s.Checkout = nil
	s.Client = nil
}

// Store keeps the live sessions, keyed by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Cart:      cart.New(),
		CreatedAt: time.Now().UTC(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close destroys a session. The cart is simply dropped; nothing was
// persisted.
func (st *Store) Close(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
