package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for orders.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const orderColumns = `id, nom_prenom, designation, avance, coalesce(to_char(order_date, 'YYYY-MM-DD'), ''),
numero_telephone, remarque, created_at, updated_at`

// List returns orders newest first.
func (r *Repository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.NomPrenom, &o.Designation, &o.Avance, &o.Date,
			&o.NumeroTelephone, &o.Remarque, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Create inserts an order.
func (r *Repository) Create(ctx context.Context, in OrderInput) (*Order, error) {
	o := &Order{NomPrenom: in.NomPrenom, Designation: in.Designation, Avance: in.Avance,
		Date: in.Date, NumeroTelephone: in.NumeroTelephone, Remarque: in.Remarque}
	err := r.pool.QueryRow(ctx, `INSERT INTO orders
(nom_prenom, designation, avance, order_date, numero_telephone, remarque, created_at, updated_at)
VALUES ($1, $2, $3, nullif($4, '')::date, $5, $6, now(), now())
RETURNING id, created_at, updated_at`,
		in.NomPrenom, in.Designation, in.Avance, in.Date, in.NumeroTelephone, in.Remarque).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Update rewrites an order.
func (r *Repository) Update(ctx context.Context, id int64, in OrderInput) (*Order, error) {
	o := &Order{ID: id, NomPrenom: in.NomPrenom, Designation: in.Designation, Avance: in.Avance,
		Date: in.Date, NumeroTelephone: in.NumeroTelephone, Remarque: in.Remarque}
	err := r.pool.QueryRow(ctx, `UPDATE orders SET
nom_prenom = $2, designation = $3, avance = $4, order_date = nullif($5, '')::date,
numero_telephone = $6, remarque = $7, updated_at = now()
WHERE id = $1 RETURNING created_at, updated_at`,
		id, in.NomPrenom, in.Designation, in.Avance, in.Date, in.NumeroTelephone, in.Remarque).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// Delete removes an order.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
