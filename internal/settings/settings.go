// Package settings stores the company profile printed on receipts.
package settings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("settings not found")

type Settings struct {
	ID       string `json:"id"`
	Name     string `json:"company_name"`
	Document string `json:"company_document,omitempty"`
	Phone    string `json:"company_phone,omitempty"`
	Address  string `json:"company_address,omitempty"`
	LogoURL  string `json:"company_logo_url,omitempty"`
}

// SaveRequest payload de configuración.
// swagger:model SaveSettingsRequest
type SaveRequest struct {
	Name     string `json:"company_name" binding:"required" example:"Mercadinho da Vila"`
	Document string `json:"company_document"`
	Phone    string `json:"company_phone"`
	Address  string `json:"company_address"`
	LogoURL  string `json:"company_logo_url"`
}

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Get(ctx context.Context) (*Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s Settings
	err := r.db.QueryRow(ctx, `
		SELECT id, company_name, company_document, company_phone, company_address, company_logo_url
		FROM settings LIMIT 1
	`).Scan(&s.ID, &s.Name, &s.Document, &s.Phone, &s.Address, &s.LogoURL)
	if err != nil {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Save upserts the single settings row.
func (r *PGRepo) Save(ctx context.Context, s *Settings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO settings (id, company_name, company_document, company_phone, company_address, company_logo_url)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE
		SET company_name = EXCLUDED.company_name,
		    company_document = EXCLUDED.company_document,
		    company_phone = EXCLUDED.company_phone,
		    company_address = EXCLUDED.company_address,
		    company_logo_url = EXCLUDED.company_logo_url
	`, s.ID, s.Name, s.Document, s.Phone, s.Address, s.LogoURL)
	return err
}
