package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrCreditExceeded = errors.New("client credit limit exceeded")
)

type Query struct {
	ClientID string
	Status   string
	Limit    int
	Offset   int
}

type Repository interface {
	// CreateSale persists the order header, its items, the payment-part
	// breakdown and the optional tab debit as one transaction.
	CreateSale(ctx context.Context, o *Order, items []Item, payments []Payment, debit *TabDebit) error
	GetByID(ctx context.Context, id string) (*Order, []Item, error)
	GetItems(ctx context.Context, orderID string) ([]Item, error)
	GetPayments(ctx context.Context, orderID string) ([]Payment, error)
	List(ctx context.Context, q Query) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) CreateSale(ctx context.Context, o *Order, items []Item, payments []Payment, debit *TabDebit) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if debit != nil {
		// The limit guard lives in the statement itself: two concurrent
		// tab sales cannot lose an update or cross the limit.
		cmd, err := tx.Exec(ctx, `
	    UPDATE clients
	    SET outstanding_balance = outstanding_balance + $2, updated_at = NOW()
	    WHERE id = $1 AND outstanding_balance + $2 <= credit_limit
	  `, debit.ClientID, debit.Amount)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrCreditExceeded
		}
	}

	if _, err := tx.Exec(ctx, `
	  INSERT INTO orders (id, user_id, client_id, status, payment_method, total_amount, created_at, updated_at)
	  VALUES ($1,$2,NULLIF($3,''),$4,$5,$6,NOW(),NOW())
	`, o.ID, o.UserID, o.ClientID, o.Status, o.PaymentMethod, o.Total); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
	    INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, total_price)
	    VALUES ($1,$2,$3,$4,$5,$6)
	  `, it.ID, o.ID, it.ProductID, it.Quantity, it.UnitPrice, it.Total); err != nil {
			return err
		}
	}

	for _, p := range payments {
		if _, err := tx.Exec(ctx, `
	    INSERT INTO order_payments (id, order_id, method, amount)
	    VALUES ($1,$2,$3,$4)
	  `, p.ID, o.ID, p.Method, p.Amount); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, []Item, error) {
	var o Order
	if err := r.db.QueryRow(ctx, `
	  SELECT id, user_id, COALESCE(client_id::text,''), status, payment_method, total_amount::text, created_at, updated_at
	  FROM orders WHERE id=$1
	`, id).Scan(&o.ID, &o.UserID, &o.ClientID, &o.Status, &o.PaymentMethod, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, nil, ErrNotFound
	}
	items, err := r.GetItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &o, items, nil
}

func (r *PGRepo) GetItems(ctx context.Context, orderID string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
	  SELECT id, order_id, product_id, quantity::text, unit_price::text, total_price::text
	  FROM order_items
	  WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGRepo) GetPayments(ctx context.Context, orderID string) ([]Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
	  SELECT id, order_id, method, amount::text
	  FROM order_payments
	  WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Method, &p.Amount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx, `
	  SELECT id, user_id, COALESCE(client_id::text,''), status, payment_method, total_amount::text, created_at, updated_at
	  FROM orders
	  WHERE ($1 = '' OR client_id::text = $1)
	    AND ($2 = '' OR status = $2)
	  ORDER BY created_at DESC LIMIT $3 OFFSET $4
	`, q.ClientID, q.Status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.ClientID, &o.Status, &o.PaymentMethod, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
	  UPDATE orders
	  SET status = $2, updated_at = NOW()
	  WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
