package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/pdv-backend/internal/cart"
	"github.com/rmacedo/pdv-backend/internal/catalog"
	"github.com/rmacedo/pdv-backend/internal/checkout"
	"github.com/rmacedo/pdv-backend/internal/client"
	"github.com/rmacedo/pdv-backend/internal/order"
	"github.com/rmacedo/pdv-backend/internal/pos"
)

type sessionView struct {
	ID       string                  `json:"id"`
	Items    []cart.Item             `json:"items"`
	Total    decimal.Decimal         `json:"total"`
	Units    decimal.Decimal         `json:"units"`
	Client   *checkout.ClientAccount `json:"client,omitempty"`
	Checkout *checkoutView           `json:"checkout,omitempty"`
}

type checkoutView struct {
	State      string          `json:"state"`
	Total      decimal.Decimal `json:"total"`
	Paid       decimal.Decimal `json:"paid"`
	Remaining  decimal.Decimal `json:"remaining"`
	CanConfirm bool            `json:"can_confirm"`
	Parts      []checkout.Part `json:"parts"`
	Failure    string          `json:"failure_reason,omitempty"`
}

// viewOf builds the response under the session lock.
func viewOf(s *pos.Session) sessionView {
	v := sessionView{
		ID:     s.ID,
		Items:  s.Cart.Items(),
		Total:  s.Cart.Total(),
		Units:  s.Cart.Units(),
		Client: s.Client,
	}
	if s.Checkout != nil {
		v.Checkout = &checkoutView{
			State:      s.Checkout.State().String(),
			Total:      s.Checkout.Total(),
			Paid:       s.Checkout.Paid(),
			Remaining:  s.Checkout.Remaining(),
			CanConfirm: s.Checkout.CanConfirm(),
			Parts:      s.Checkout.Parts(),
			Failure:    s.Checkout.FailureReason(),
		}
	}
	return v
}

func lockedSession(c *gin.Context, store *pos.Store) (*pos.Session, bool) {
	s, err := store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	s.Lock()
	return s, true
}

// cartUnlocked rejects cart mutations while a checkout owns the cart:
// the checkout total was seeded from the cart at begin time, so the
// lines may not change underneath it. Must be called with the session
// lock held.
func cartUnlocked(c *gin.Context, s *pos.Session) bool {
	if s.CheckoutOpen() {
		c.JSON(http.StatusConflict, gin.H{"error": "cart is locked by an open checkout"})
		return false
	}
	return true
}

func createSessionHandler(store *pos.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := store.Create()
		s.Lock()
		defer s.Unlock()
		c.JSON(http.StatusCreated, viewOf(s))
	}
}

func getSessionHandler(store *pos.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()
		c.JSON(http.StatusOK, viewOf(s))
	}
}

func closeSessionHandler(store *pos.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.Close(c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// addItemHandler reads the product's current sale price and adds it to
// the cart; re-adding the same product increments its quantity.
func addItemHandler(store *pos.Store, products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}

		p, err := products.GetByID(c.Request.Context(), req.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()

		if !cartUnlocked(c, s) {
			return
		}
		s.Cart.Add(p.ID, p.Name, p.SKU, p.SalePrice)
		c.JSON(http.StatusOK, viewOf(s))
	}
}

type quantityRequest struct {
	// exactly one of the two fields is set
	Delta    *decimal.Decimal `json:"delta"`
	Quantity *decimal.Decimal `json:"quantity"`
}

func changeQuantityHandler(store *pos.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req quantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			// a quantity that does not parse as a number is rejected here
			c.JSON(http.StatusBadRequest, gin.H{"error": "delta or quantity must be a number"})
			return
		}
		if (req.Delta == nil) == (req.Quantity == nil) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "provide either delta or quantity"})
			return
		}

		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()

		if !cartUnlocked(c, s) {
			return
		}
		pid := c.Param("productId")
		if req.Delta != nil {
			s.Cart.ChangeQuantity(pid, *req.Delta)
		} else {
			s.Cart.SetQuantity(pid, *req.Quantity)
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

func removeItemHandler(store *pos.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()

		if !cartUnlocked(c, s) {
			return
		}
		s.Cart.Remove(c.Param("productId"))
		c.JSON(http.StatusOK, viewOf(s))
	}
}

type attachClientRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

func attachClientHandler(store *pos.Store, clients client.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req attachClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id is required"})
			return
		}

		cl, err := clients.GetByID(c.Request.Context(), req.ClientID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}

		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()

		s.AttachClient(&checkout.ClientAccount{
			ID:          cl.ID,
			Name:        cl.Name,
			CreditLimit: cl.CreditLimit,
			Outstanding: cl.Outstanding,
		})
		c.JSON(http.StatusOK, viewOf(s))
	}
}

func detachClientHandler(store *pos.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()

		s.AttachClient(nil)
		c.JSON(http.StatusOK, viewOf(s))
	}
}

// beginCheckoutHandler opens the payment collection over the current
// cart. An empty cart cannot reach checkout.
func beginCheckoutHandler(store *pos.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()

		if err := s.BeginCheckout(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

// cancelCheckoutHandler abandons the open checkout so the operator can
// amend the cart again.
func cancelCheckoutHandler(store *pos.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()

		if err := s.CancelCheckout(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

type addPartRequest struct {
	Method string          `json:"method" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func addPartHandler(store *pos.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addPartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "method and a numeric amount are required"})
			return
		}

		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()

		if s.Checkout == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "checkout not started"})
			return
		}
		if err := s.Checkout.AddPart(checkout.Method(req.Method), req.Amount); err != nil {
			c.JSON(statusForCheckoutErr(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

func removePartHandler(store *pos.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a number"})
			return
		}

		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()

		if s.Checkout == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "checkout not started"})
			return
		}
		if err := s.Checkout.RemovePart(idx); err != nil {
			c.JSON(statusForCheckoutErr(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

// confirmHandler submits the sale. The session stays locked for the whole
// submission, so a second confirm on the same session waits and is then
// rejected by the checkout state.
func confirmHandler(store *pos.Store, orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lockedSession(c, store)
		if !ok {
			return
		}
		defer s.Unlock()

		if s.Checkout == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "checkout not started"})
			return
		}

		sub := order.NewSubmitter(orders, c.GetString("uid"))
		rc, err := s.Checkout.Confirm(c.Request.Context(), sub)
		if err != nil {
			c.JSON(statusForCheckoutErr(err), gin.H{"error": err.Error()})
			return
		}

		s.ResetAfterSale()
		c.JSON(http.StatusCreated, rc)
	}
}

func statusForCheckoutErr(err error) int {
	switch {
	case errors.Is(err, checkout.ErrInvalidMethod),
		errors.Is(err, checkout.ErrInvalidAmount),
		errors.Is(err, checkout.ErrPartIndex):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrClientRequired),
		errors.Is(err, checkout.ErrCreditExceeded),
		errors.Is(err, checkout.ErrInsufficientPayment),
		errors.Is(err, checkout.ErrConfirmInFlight),
		errors.Is(err, checkout.ErrDone),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, order.ErrCreditExceeded):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
