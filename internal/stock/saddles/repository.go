package saddles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tablePurchases = "saddle_purchases"
	tableSales     = "saddle_sales"
)

// Repository provides PostgreSQL backed persistence for saddle movements.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) list(ctx context.Context, table string) ([]Movement, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT id, coalesce(to_char(movement_date, 'YYYY-MM-DD'), ''), taille_xl, taille_xxl, created_at
FROM %s ORDER BY movement_date DESC, id DESC`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.Date, &m.TailleXL, &m.TailleXXL, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) create(ctx context.Context, table string, in MovementInput) (*Movement, error) {
	m := &Movement{Date: in.Date, TailleXL: in.TailleXL, TailleXXL: in.TailleXXL}
	err := r.pool.QueryRow(ctx, fmt.Sprintf(
		`INSERT INTO %s (movement_date, taille_xl, taille_xxl, created_at)
VALUES (nullif($1, '')::date, $2, $3, now()) RETURNING id, created_at`, table),
		in.Date, in.TailleXL, in.TailleXXL).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Repository) delete(ctx context.Context, table string, id int64) error {
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) totals(ctx context.Context, table string) (Stock, error) {
	var s Stock
	err := r.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT coalesce(sum(taille_xl), 0), coalesce(sum(taille_xxl), 0) FROM %s`, table)).
		Scan(&s.TailleXL, &s.TailleXXL)
	if err != nil {
		return Stock{}, err
	}
	return s, nil
}

// ListPurchases returns purchases newest first.
func (r *Repository) ListPurchases(ctx context.Context) ([]Movement, error) {
	return r.list(ctx, tablePurchases)
}

// ListSales returns sales newest first.
func (r *Repository) ListSales(ctx context.Context) ([]Movement, error) {
	return r.list(ctx, tableSales)
}

// CreatePurchase stores a purchase line.
func (r *Repository) CreatePurchase(ctx context.Context, in MovementInput) (*Movement, error) {
	return r.create(ctx, tablePurchases, in)
}

// CreateSale stores a sale line.
func (r *Repository) CreateSale(ctx context.Context, in MovementInput) (*Movement, error) {
	return r.create(ctx, tableSales, in)
}

// DeletePurchase removes a purchase line.
func (r *Repository) DeletePurchase(ctx context.Context, id int64) error {
	return r.delete(ctx, tablePurchases, id)
}

// DeleteSale removes a sale line.
func (r *Repository) DeleteSale(ctx context.Context, id int64) error {
	return r.delete(ctx, tableSales, id)
}

// PurchaseTotals sums the purchased quantities per size.
func (r *Repository) PurchaseTotals(ctx context.Context) (Stock, error) {
	return r.totals(ctx, tablePurchases)
}

// SaleTotals sums the sold quantities per size.
func (r *Repository) SaleTotals(ctx context.Context) (Stock, error) {
	return r.totals(ctx, tableSales)
}
