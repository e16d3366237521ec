package reservations

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for reservations.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const reservationColumns = `id, nom_prenom, designation, avance, coalesce(to_char(reservation_date, 'YYYY-MM-DD'), ''),
numero, remarque, created_at, updated_at`

// List returns reservations newest first.
func (r *Repository) List(ctx context.Context) ([]Reservation, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY reservation_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Reservation
	for rows.Next() {
		var v Reservation
		if err := rows.Scan(&v.ID, &v.NomPrenom, &v.Designation, &v.Avance, &v.Date,
			&v.Numero, &v.Remarque, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Create inserts a reservation.
func (r *Repository) Create(ctx context.Context, in ReservationInput) (*Reservation, error) {
	v := &Reservation{NomPrenom: in.NomPrenom, Designation: in.Designation, Avance: in.Avance,
		Date: in.Date, Numero: in.Numero, Remarque: in.Remarque}
	err := r.pool.QueryRow(ctx, `INSERT INTO reservations
(nom_prenom, designation, avance, reservation_date, numero, remarque, created_at, updated_at)
VALUES ($1, $2, $3, nullif($4, '')::date, $5, $6, now(), now())
RETURNING id, created_at, updated_at`,
		in.NomPrenom, in.Designation, in.Avance, in.Date, in.Numero, in.Remarque).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Update rewrites a reservation.
func (r *Repository) Update(ctx context.Context, id int64, in ReservationInput) (*Reservation, error) {
	v := &Reservation{ID: id, NomPrenom: in.NomPrenom, Designation: in.Designation, Avance: in.Avance,
		Date: in.Date, Numero: in.Numero, Remarque: in.Remarque}
	err := r.pool.QueryRow(ctx, `UPDATE reservations SET
nom_prenom = $2, designation = $3, avance = $4, reservation_date = nullif($5, '')::date,
numero = $6, remarque = $7, updated_at = now()
WHERE id = $1 RETURNING created_at, updated_at`,
		id, in.NomPrenom, in.Designation, in.Avance, in.Date, in.Numero, in.Remarque).
		Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// Delete removes a reservation.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
