package clients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for clients.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const clientColumns = `id, nom_prenom, numero_telephone, type_moto, remarque, created_at, updated_at`

// List returns clients ordered by name.
func (r *Repository) List(ctx context.Context) ([]Client, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY nom_prenom`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.NomPrenom, &c.NumeroTelephone, &c.TypeMoto, &c.Remarque, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns one client by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Client, error) {
	var c Client
	err := r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.NomPrenom, &c.NumeroTelephone, &c.TypeMoto, &c.Remarque, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a client.
func (r *Repository) Create(ctx context.Context, in ClientInput) (*Client, error) {
	c := &Client{NomPrenom: in.NomPrenom, NumeroTelephone: in.NumeroTelephone, TypeMoto: in.TypeMoto, Remarque: in.Remarque}
	err := r.pool.QueryRow(ctx, `INSERT INTO clients (nom_prenom, numero_telephone, type_moto, remarque, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now()) RETURNING id, created_at, updated_at`,
		in.NomPrenom, in.NumeroTelephone, in.TypeMoto, in.Remarque).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update rewrites a client.
func (r *Repository) Update(ctx context.Context, id int64, in ClientInput) (*Client, error) {
	c := &Client{ID: id, NomPrenom: in.NomPrenom, NumeroTelephone: in.NumeroTelephone, TypeMoto: in.TypeMoto, Remarque: in.Remarque}
	err := r.pool.QueryRow(ctx, `UPDATE clients SET nom_prenom = $2, numero_telephone = $3, type_moto = $4, remarque = $5, updated_at = now()
WHERE id = $1 RETURNING created_at, updated_at`,
		id, in.NomPrenom, in.NumeroTelephone, in.TypeMoto, in.Remarque).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a client.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
