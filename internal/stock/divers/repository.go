package divers

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tablePurchases = "divers_purchases"
	tableSales     = "divers_sales"
)

// Repository provides PostgreSQL backed persistence for parts movements
// and deferred sales.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) list(ctx context.Context, table string) ([]Movement, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT id, coalesce(to_char(movement_date, 'YYYY-MM-DD'), ''), designation, quantity, unit_price, created_at
FROM %s ORDER BY movement_date DESC, id DESC`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.Date, &m.Designation, &m.Quantity, &m.UnitPrice, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) create(ctx context.Context, table string, in MovementInput) (*Movement, error) {
	m := &Movement{Date: in.Date, Designation: in.Designation, Quantity: in.Quantity, UnitPrice: in.UnitPrice}
	err := r.pool.QueryRow(ctx, fmt.Sprintf(
		`INSERT INTO %s (movement_date, designation, quantity, unit_price, created_at)
VALUES (nullif($1, '')::date, $2, $3, $4, now()) RETURNING id, created_at`, table),
		in.Date, in.Designation, in.Quantity, in.UnitPrice).Scan(&m.ID, &m.CreatedAt)
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

// PurchaseTotals sums purchased quantities per designation.
func (r *Repository) PurchaseTotals(ctx context.Context) (map[string]float64, error) {
	return r.totals(ctx, tablePurchases)
}

// SaleTotals sums sold quantities per designation.
func (r *Repository) SaleTotals(ctx context.Context) (map[string]float64, error) {
	return r.totals(ctx, tableSales)
}

// ListDeferred returns deferred sales, unsettled first, newest first.
func (r *Repository) ListDeferred(ctx context.Context) ([]DeferredSale, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, coalesce(to_char(sale_date, 'YYYY-MM-DD'), ''), nom_prenom, numero_telephone, type_moto,
designation, montant, is_settled, created_at
FROM divers_deferred_sales ORDER BY is_settled ASC, sale_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DeferredSale
	for rows.Next() {
		var d DeferredSale
		if err := rows.Scan(&d.ID, &d.Date, &d.NomPrenom, &d.NumeroTelephone, &d.TypeMoto,
			&d.Designation, &d.Montant, &d.IsSettled, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CreateDeferred stores a deferred sale.
func (r *Repository) CreateDeferred(ctx context.Context, in DeferredSaleInput) (*DeferredSale, error) {
	d := &DeferredSale{
		Date: in.Date, NomPrenom: in.NomPrenom, NumeroTelephone: in.NumeroTelephone,
		TypeMoto: in.TypeMoto, Designation: in.Designation, Montant: in.Montant,
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO divers_deferred_sales
(sale_date, nom_prenom, numero_telephone, type_moto, designation, montant, is_settled, created_at)
VALUES (nullif($1, '')::date, $2, $3, $4, $5, $6, false, now()) RETURNING id, created_at`,
		in.Date, in.NomPrenom, in.NumeroTelephone, in.TypeMoto, in.Designation, in.Montant).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// SetDeferredSettled flips the settled flag of a deferred sale.
func (r *Repository) SetDeferredSettled(ctx context.Context, id int64, settled bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE divers_deferred_sales SET is_settled = $2 WHERE id = $1`, id, settled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDeferredNotFound
	}
	return nil
}

// DeleteDeferred removes a deferred sale.
func (r *Repository) DeleteDeferred(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM divers_deferred_sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDeferredNotFound
	}
	return nil
}
