// Package client provides the repository interface and PostgreSQL
// implementation for customers and their credit accounts.
package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("client not found")
	ErrCreditExceeded = errors.New("client credit limit exceeded")
)

type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, search string, limit, offset int) ([]Client, error)
	Update(ctx context.Context, c *Client, updateLimit bool) error
	Delete(ctx context.Context, id string) (bool, error)
	// Debit adds amount to the outstanding balance, guarded by the credit
	// limit in the same statement so two concurrent debits cannot lose an
	// update or cross the limit.
	Debit(ctx context.Context, id string, amount decimal.Decimal) error
	// Credit subtracts a received payment from the outstanding balance,
	// never going below zero.
	Credit(ctx context.Context, id string, amount decimal.Decimal) error
	Count(ctx context.Context) (int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, c *Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO clients (id, name, document, address, phone, email, credit_limit, outstanding_balance, due_day, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,0,$8,NOW(),NOW())
	`, c.ID, c.Name, c.Document, c.Address, c.Phone, c.Email, c.CreditLimit, c.DueDay)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Client
	err := r.db.QueryRow(ctx, `
		SELECT id, name, document, address, phone, email, credit_limit::text, outstanding_balance::text, due_day, created_at, updated_at
		FROM clients WHERE id=$1
	`, id).Scan(&c.ID, &c.Name, &c.Document, &c.Address, &c.Phone, &c.Email, &c.CreditLimit, &c.Outstanding, &c.DueDay, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *PGRepo) List(ctx context.Context, search string, limit, offset int) ([]Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	search = strings.TrimSpace(search)

	rows, err := r.db.Query(ctx, `
		SELECT id, name, document, address, phone, email, credit_limit::text, outstanding_balance::text, due_day, created_at, updated_at
		FROM clients
		WHERE ($1 = '' OR name ILIKE '%'||$1||'%' OR document LIKE '%'||$1||'%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Document, &c.Address, &c.Phone, &c.Email, &c.CreditLimit, &c.Outstanding, &c.DueDay, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, c *Client, updateLimit bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if updateLimit {
		_, err := r.db.Exec(ctx, `
			UPDATE clients
			SET name = COALESCE(NULLIF($2,''), name),
			    document = COALESCE(NULLIF($3,''), document),
			    address = COALESCE(NULLIF($4,''), address),
			    phone = COALESCE(NULLIF($5,''), phone),
			    email = COALESCE(NULLIF($6,''), email),
			    credit_limit = $7,
			    due_day = $8,
			    updated_at = NOW()
			WHERE id = $1
		`, c.ID, c.Name, c.Document, c.Address, c.Phone, c.Email, c.CreditLimit, c.DueDay)
		return err
	}

	_, err := r.db.Exec(ctx, `
		UPDATE clients
		SET name = COALESCE(NULLIF($2,''), name),
		    document = COALESCE(NULLIF($3,''), document),
		    address = COALESCE(NULLIF($4,''), address),
		    phone = COALESCE(NULLIF($5,''), phone),
		    email = COALESCE(NULLIF($6,''), email),
		    due_day = $7,
		    updated_at = NOW()
		WHERE id = $1
	`, c.ID, c.Name, c.Document, c.Address, c.Phone, c.Email, c.DueDay)
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Debit(ctx context.Context, id string, amount decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `
		UPDATE clients
		SET outstanding_balance = outstanding_balance + $2, updated_at = NOW()
		WHERE id = $1 AND outstanding_balance + $2 <= credit_limit
	`, id, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return ErrNotFound
		}
		return ErrCreditExceeded
	}
	return nil
}

func (r *PGRepo) Credit(ctx context.Context, id string, amount decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `
		UPDATE clients
		SET outstanding_balance = GREATEST(outstanding_balance - $2, 0), updated_at = NOW()
		WHERE id = $1
	`, id, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
