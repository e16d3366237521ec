package helmets

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for helmet movements.
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
		`SELECT id, coalesce(to_char(movement_date, 'YYYY-MM-DD'), ''), designation, quantity, fournisseur, prix, created_at
FROM helmet_purchases ORDER BY movement_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.Date, &p.Designation, &p.Quantity, &p.Fournisseur, &p.Prix, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListSales returns sales newest first.
func (r *Repository) ListSales(ctx context.Context) ([]Sale, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, numero_facture, coalesce(to_char(movement_date, 'YYYY-MM-DD'), ''), designation, type_client, nom_prenom, quantity, montant, created_at
FROM helmet_sales ORDER BY movement_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.NumeroFacture, &s.Date, &s.Designation, &s.TypeClient, &s.NomPrenom, &s.Quantity, &s.Montant, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreatePurchase stores a purchase line.
func (r *Repository) CreatePurchase(ctx context.Context, in PurchaseInput) (*Purchase, error) {
	p := &Purchase{Date: in.Date, Designation: in.Designation, Quantity: in.Quantity,
		Fournisseur: in.Fournisseur, Prix: in.Prix}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO helmet_purchases (movement_date, designation, quantity, fournisseur, prix, created_at)
VALUES (nullif($1, '')::date, $2, $3, $4, $5, now()) RETURNING id, created_at`,
		in.Date, in.Designation, in.Quantity, in.Fournisseur, in.Prix).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateSale stores a sale line.
func (r *Repository) CreateSale(ctx context.Context, in SaleInput) (*Sale, error) {
	s := &Sale{NumeroFacture: in.NumeroFacture, Date: in.Date, Designation: in.Designation,
		TypeClient: in.TypeClient, NomPrenom: in.NomPrenom, Quantity: in.Quantity, Montant: in.Montant}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO helmet_sales (numero_facture, movement_date, designation, type_client, nom_prenom, quantity, montant, created_at)
VALUES ($1, nullif($2, '')::date, $3, $4, $5, $6, $7, now()) RETURNING id, created_at`,
		in.NumeroFacture, in.Date, in.Designation, in.TypeClient, in.NomPrenom, in.Quantity, in.Montant).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DeletePurchase removes a purchase line.
func (r *Repository) DeletePurchase(ctx context.Context, id int64) error {
	return r.delete(ctx, "helmet_purchases", id)
}

// DeleteSale removes a sale line.
func (r *Repository) DeleteSale(ctx context.Context, id int64) error {
	return r.delete(ctx, "helmet_sales", id)
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

// PurchaseTotals sums purchased quantities per designation.
func (r *Repository) PurchaseTotals(ctx context.Context) (map[string]float64, error) {
	return r.totals(ctx, "helmet_purchases")
}

// SaleTotals sums sold quantities per designation.
func (r *Repository) SaleTotals(ctx context.Context) (map[string]float64, error) {
	return r.totals(ctx, "helmet_sales")
}

func (r *Repository) totals(ctx context.Context, table string) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT designation, coalesce(sum(quantity), 0) FROM %s GROUP BY designation`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]float64)
	for rows.Next() {
		var designation string
		var qty float64
		if err := rows.Scan(&designation, &qty); err != nil {
			return nil, err
		}
		out[designation] = qty
	}
	return out, rows.Err()
}
