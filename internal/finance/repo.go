// Package finance provides the ledger of income/expense transactions and
// their categories.
package finance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("transaction not found")
)

type Repository interface {
	CreateTransaction(ctx context.Context, t *Transaction) error
	ListTransactions(ctx context.Context, status, typ string, limit, offset int) ([]Transaction, error)
	UpdateTransaction(ctx context.Context, t *Transaction, updateAmount bool) error
	DeleteTransaction(ctx context.Context, id string) (bool, error)
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context) ([]Category, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) CreateTransaction(ctx context.Context, t *Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO financial_transactions (id, description, amount, type, status, due_date, payment_date, category_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,''),NOW())
	`, t.ID, t.Description, t.Amount, t.Type, t.Status, t.DueDate, t.PaymentDate, t.CategoryID)
	return err
}

func (r *PGRepo) ListTransactions(ctx context.Context, status, typ string, limit, offset int) ([]Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, description, amount::text, type, status, due_date, payment_date, COALESCE(category_id::text,''), created_at
		FROM financial_transactions
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR type = $2)
		ORDER BY due_date
		LIMIT $3 OFFSET $4
	`, status, typ, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount, &t.Type, &t.Status, &t.DueDate, &t.PaymentDate, &t.CategoryID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateTransaction(ctx context.Context, t *Transaction, updateAmount bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// a zero due date or nil payment date keeps the stored value
	if updateAmount {
		tag, err := r.db.Exec(ctx, `
			UPDATE financial_transactions
			SET description = COALESCE(NULLIF($2,''), description),
			    amount = $3,
			    status = COALESCE(NULLIF($4,''), status),
			    due_date = CASE WHEN $5::date <= '0001-01-01'::date THEN due_date ELSE $5 END,
			    payment_date = COALESCE($6, payment_date),
			    category_id = COALESCE(NULLIF($7,'')::uuid, category_id)
			WHERE id = $1
		`, t.ID, t.Description, t.Amount, t.Status, t.DueDate, t.PaymentDate, t.CategoryID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE financial_transactions
		SET description = COALESCE(NULLIF($2,''), description),
		    status = COALESCE(NULLIF($3,''), status),
		    due_date = CASE WHEN $4::date <= '0001-01-01'::date THEN due_date ELSE $4 END,
		    payment_date = COALESCE($5, payment_date),
		    category_id = COALESCE(NULLIF($6,'')::uuid, category_id)
		WHERE id = $1
	`, t.ID, t.Description, t.Status, t.DueDate, t.PaymentDate, t.CategoryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM financial_transactions WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) CreateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO financial_categories (id, name, type)
		VALUES ($1,$2,$3)
	`, c.ID, c.Name, c.Type)
	return err
}

func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name, type FROM financial_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
