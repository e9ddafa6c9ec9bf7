// Package checkout collects payment parts covering a cart total, enforces
// store-credit constraints and emits the finalized sale through an injected
// submitter. It is decoupled from HTTP and from the database.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/pdv-backend/internal/cart"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidMethod       = errors.New("invalid payment method")
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrClientRequired      = errors.New("fiado requires a selected client")
	ErrCreditExceeded      = errors.New("insufficient client credit")
	ErrInsufficientPayment = errors.New("payment does not cover the total")
	ErrPartIndex           = errors.New("payment part index out of range")
	ErrConfirmInFlight     = errors.New("confirmation already in progress")
	ErrDone                = errors.New("checkout already completed")
)

// ClientAccount is the credit snapshot of the client attached to the sale,
// read when the client was selected. The authoritative limit check happens
// inside the submit transaction.
type ClientAccount struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Outstanding decimal.Decimal `json:"outstanding_balance"`
}

// Available is the credit still open on the account (limit - outstanding).
func (a ClientAccount) Available() decimal.Decimal {
	return a.CreditLimit.Sub(a.Outstanding)
}

// Sale is the payload handed to the Submitter on confirmation.
type Sale struct {
	ClientID      string
	Total         decimal.Decimal
	Status        string
	PaymentMethod Method
	Parts         []Part
	Items         []cart.Item
	// TabDebit is the amount to debit on the client account, zero unless
	// the sale is paid on the client's tab.
	TabDebit decimal.Decimal
}

// Submitter persists the sale. Implementations must be atomic: either the
// whole sale (tab debit, order, items, payments) lands or nothing does.
type Submitter interface {
	SubmitSale(ctx context.Context, s *Sale) (orderID string, createdAt time.Time, err error)
}

// Receipt is built from the just-submitted data, without re-fetching.
type Receipt struct {
	OrderID       string          `json:"order_id"`
	Status        string          `json:"status"`
	PaymentMethod Method          `json:"payment_method"`
	Total         decimal.Decimal `json:"total_amount"`
	Paid          decimal.Decimal `json:"paid_amount"`
	Parts         []Part          `json:"parts"`
	Items         []cart.Item     `json:"items"`
	ClientName    string          `json:"client_name,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Checkout drives one sale from Collecting to Succeeded. Not safe for
// concurrent use; the owning session serializes access.
type Checkout struct {
	state  State
	cart   *cart.Cart
	total  decimal.Decimal
	parts  []Part
	client *ClientAccount
	reason string
}

// Begin opens a checkout over a non-empty cart, seeding the remaining
// amount with the current cart total. Any prior parts are gone: a new
// Checkout starts clean in Collecting.
func Begin(c *cart.Cart, client *ClientAccount) (*Checkout, error) {
	if c == nil || c.Empty() {
		return nil, ErrEmptyCart
	}
	return &Checkout{
		state:  Collecting,
		cart:   c,
		total:  c.Total(),
		client: client,
	}, nil
}

func (ck *Checkout) State() State           { return ck.state }
func (ck *Checkout) Total() decimal.Decimal { return ck.total }
func (ck *Checkout) Parts() []Part          { return append([]Part(nil), ck.parts...) }
func (ck *Checkout) Client() *ClientAccount { return ck.client }
func (ck *Checkout) FailureReason() string  { return ck.reason }

// Paid is the sum of all payment parts.
func (ck *Checkout) Paid() decimal.Decimal {
	sum := decimal.Zero
	for i := range ck.parts {
		sum = sum.Add(ck.parts[i].Amount)
	}
	return sum
}

// Remaining floors at zero: overpayment is allowed and no change is
// calculated.
func (ck *Checkout) Remaining() decimal.Decimal {
	r := ck.total.Sub(ck.Paid())
	if r.Sign() < 0 {
		return decimal.Zero
	}
	return r
}

// CanConfirm reports whether the collected parts cover the total.
func (ck *Checkout) CanConfirm() bool {
	return ck.Remaining().IsZero()
}

// AddPart appends a payment part. Fiado parts need an attached client and
// must fit in the client's available credit.
func (ck *Checkout) AddPart(method Method, amount decimal.Decimal) error {
	if err := ck.collecting(); err != nil {
		return err
	}
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if method == Fiado {
		if ck.client == nil {
			return ErrClientRequired
		}
		if amount.GreaterThan(ck.client.Available()) {
			return fmt.Errorf("%w: available %s", ErrCreditExceeded, ck.client.Available().StringFixed(2))
		}
	}
	ck.parts = append(ck.parts, Part{Method: method, Amount: amount})
	return nil
}

// RemovePart drops the part at index, restoring its amount to the
// remaining suggestion.
func (ck *Checkout) RemovePart(index int) error {
	if err := ck.collecting(); err != nil {
		return err
	}
	if index < 0 || index >= len(ck.parts) {
		return ErrPartIndex
	}
	ck.parts = append(ck.parts[:index], ck.parts[index+1:]...)
	return nil
}

// collecting moves a Failed checkout back to Collecting so the operator
// can amend the parts and retry.
func (ck *Checkout) collecting() error {
	switch ck.state {
	case Collecting:
		return nil
	case Failed:
		ck.state = Collecting
		ck.reason = ""
		return nil
	case Confirming:
		return ErrConfirmInFlight
	default:
		return ErrDone
	}
}

// PrimaryMethod is the single method persisted on the order header: the
// largest-amount part, ties broken by the first one entered. The full
// breakdown is persisted separately, so nothing is lost.
func (ck *Checkout) PrimaryMethod() Method {
	if len(ck.parts) == 0 {
		return ""
	}
	best := 0
	for i := 1; i < len(ck.parts); i++ {
		if ck.parts[i].Amount.GreaterThan(ck.parts[best].Amount) {
			best = i
		}
	}
	return ck.parts[best].Method
}

// Confirm validates the collected parts and submits the sale. While a
// submission is in flight the state is Confirming and a second Confirm is
// rejected. On failure all parts stay intact and the checkout returns to
// Collecting on the next mutation; on success the cart is cleared.
func (ck *Checkout) Confirm(ctx context.Context, sub Submitter) (*Receipt, error) {
	if err := ck.collecting(); err != nil {
		return nil, err
	}
	if !ck.CanConfirm() {
		return nil, fmt.Errorf("%w: remaining %s", ErrInsufficientPayment, ck.Remaining().StringFixed(2))
	}

	tabDebit := decimal.Zero
	status := StatusCompleted
	if ck.tabOnly() {
		if ck.client == nil {
			return nil, ErrClientRequired
		}
		if ck.total.GreaterThan(ck.client.Available()) {
			return nil, fmt.Errorf("%w: available %s", ErrCreditExceeded, ck.client.Available().StringFixed(2))
		}
		tabDebit = ck.total
		status = StatusPending
	}

	sale := &Sale{
		Total:         ck.total,
		Status:        status,
		PaymentMethod: ck.PrimaryMethod(),
		Parts:         ck.Parts(),
		Items:         ck.cart.Items(),
		TabDebit:      tabDebit,
	}
	if ck.client != nil {
		sale.ClientID = ck.client.ID
	}

	ck.state = Confirming
	orderID, createdAt, err := sub.SubmitSale(ctx, sale)
	if err != nil {
		ck.state = Failed
		ck.reason = err.Error()
		return nil, fmt.Errorf("submit sale: %w", err)
	}

	ck.state = Succeeded
	ck.cart.Clear()

	rc := &Receipt{
		OrderID:       orderID,
		Status:        sale.Status,
		PaymentMethod: sale.PaymentMethod,
		Total:         sale.Total,
		Paid:          ck.Paid(),
		Parts:         sale.Parts,
		Items:         sale.Items,
		CreatedAt:     createdAt,
	}
	if ck.client != nil {
		rc.ClientName = ck.client.Name
	}
	return rc, nil
}

// tabOnly reports whether the sale is settled entirely on the client's
// tab: a single fiado part. Mixed fiado splits keep the order completed
// and debit nothing (the fiado part was already capped at AddPart time).
func (ck *Checkout) tabOnly() bool {
	return len(ck.parts) == 1 && ck.parts[0].Method == Fiado
}

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)
