// Package stats computes the dashboard aggregates in SQL.
package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ProductCount struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
}

type DaySales struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// Summary is the role-based dashboard payload.
// swagger:model DashboardSummary
type Summary struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	MonthlyRevenue  decimal.Decimal `json:"monthly_revenue"`
	PendingTotal    decimal.Decimal `json:"pending_total"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	ClientCount     int             `json:"client_count"`
	TopProducts     []ProductCount  `json:"top_products"`
	SalesByDay      []DaySales      `json:"sales_by_day"`
}

type Repository interface {
	Summary(ctx context.Context) (*Summary, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Summary(ctx context.Context) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var s Summary

	err := r.db.QueryRow(ctx, `
		SELECT
		  COALESCE(SUM(total_amount) FILTER (WHERE status = 'completed'), 0)::text,
		  COALESCE(SUM(total_amount) FILTER (WHERE status = 'completed'
		    AND created_at >= date_trunc('month', NOW())), 0)::text,
		  COALESCE(SUM(total_amount) FILTER (WHERE status = 'pending'), 0)::text
		FROM orders
	`).Scan(&s.TotalRevenue, &s.MonthlyRevenue, &s.PendingTotal)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `
		SELECT
		  COALESCE(SUM(amount) FILTER (WHERE type = 'expense' AND status = 'pending'), 0)::text,
		  COALESCE(SUM(amount) FILTER (WHERE type = 'income'  AND status = 'pending'), 0)::text
		FROM financial_transactions
	`).Scan(&s.TotalPayable, &s.TotalReceivable)
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&s.ClientCount); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(p.name, 'Produto Removido'), SUM(oi.quantity)::text
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		GROUP BY 1
		ORDER BY SUM(oi.quantity) DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var pc ProductCount
		if err := rows.Scan(&pc.Name, &pc.Quantity); err != nil {
			return nil, err
		}
		s.TopProducts = append(s.TopProducts, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	drows, err := r.db.Query(ctx, `
		SELECT to_char(d, 'MM/DD'),
		  COALESCE((SELECT SUM(total_amount) FROM orders
		    WHERE status = 'completed' AND created_at::date = d), 0)::text
		FROM generate_series(CURRENT_DATE - 6, CURRENT_DATE, '1 day') AS d
	`)
	if err != nil {
		return nil, err
	}
	defer drows.Close()
	for drows.Next() {
		var ds DaySales
		if err := drows.Scan(&ds.Day, &ds.Total); err != nil {
			return nil, err
		}
		s.SalesByDay = append(s.SalesByDay, ds)
	}
	return &s, drows.Err()
}
