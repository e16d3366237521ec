package oil

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for oil movements.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListPurchases returns purchases newest first.
func (r *Repository) ListPurchases(ctx context.Context) ([]Purchase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, coalesce(to_char(movement_date, 'YYYY-MM-DD'), ''), huile_10w40, huile_20w50, fournisseur, prix, created_at
FROM oil_purchases ORDER BY movement_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.Date, &p.Huile10W40, &p.Huile20W50, &p.Fournisseur, &p.Prix, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListSales returns sales newest first.
func (r *Repository) ListSales(ctx context.Context) ([]Sale, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, coalesce(to_char(movement_date, 'YYYY-MM-DD'), ''), huile_10w40, huile_20w50, prix, encaissement, client, created_at
FROM oil_sales ORDER BY movement_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.Huile10W40, &s.Huile20W50, &s.Prix, &s.Encaissement, &s.Client, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreatePurchase stores a purchase line.
func (r *Repository) CreatePurchase(ctx context.Context, in PurchaseInput) (*Purchase, error) {
	p := &Purchase{Date: in.Date, Huile10W40: in.Huile10W40, Huile20W50: in.Huile20W50,
		Fournisseur: in.Fournisseur, Prix: in.Prix}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO oil_purchases (movement_date, huile_10w40, huile_20w50, fournisseur, prix, created_at)
VALUES (nullif($1, '')::date, $2, $3, $4, $5, now()) RETURNING id, created_at`,
		in.Date, in.Huile10W40, in.Huile20W50, in.Fournisseur, in.Prix).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateSale stores a sale line.
func (r *Repository) CreateSale(ctx context.Context, in SaleInput) (*Sale, error) {
	s := &Sale{Date: in.Date, Huile10W40: in.Huile10W40, Huile20W50: in.Huile20W50,
		Prix: in.Prix, Encaissement: in.Encaissement, Client: in.Client}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO oil_sales (movement_date, huile_10w40, huile_20w50, prix, encaissement, client, created_at)
VALUES (nullif($1, '')::date, $2, $3, $4, $5, $6, now()) RETURNING id, created_at`,
		in.Date, in.Huile10W40, in.Huile20W50, in.Prix, in.Encaissement, in.Client).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DeletePurchase removes a purchase line.
func (r *Repository) DeletePurchase(ctx context.Context, id int64) error {
	return r.delete(ctx, "oil_purchases", id)
}

// DeleteSale removes a sale line.
func (r *Repository) DeleteSale(ctx context.Context, id int64) error {
	return r.delete(ctx, "oil_sales", id)
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

// PurchaseTotals sums the purchased quantities per grade.
func (r *Repository) PurchaseTotals(ctx context.Context) (Stock, error) {
	return r.totals(ctx, "oil_purchases")
}

// SaleTotals sums the sold quantities per grade.
func (r *Repository) SaleTotals(ctx context.Context) (Stock, error) {
	return r.totals(ctx, "oil_sales")
}

func (r *Repository) totals(ctx context.Context, table string) (Stock, error) {
	var s Stock
	err := r.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT coalesce(sum(huile_10w40), 0), coalesce(sum(huile_20w50), 0) FROM %s`, table)).
		Scan(&s.Huile10W40, &s.Huile20W50)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return Stock{}, err
	}
	return s, nil
}
