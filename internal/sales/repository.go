package sales

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/speedbike/speedbike/internal/payments"
	"github.com/speedbike/speedbike/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence for sales.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const saleColumns = `id, invoice_number, coalesce(to_char(sale_date, 'YYYY-MM-DD'), ''), designation, type_client,
nom_prenom, convention_name, numero_chassis, immatriculation, carte_grise, total_to_pay, advance, payment_day,
payments, created_at, updated_at`

// Invoice numbers sort by their year part first, then by sequence, newest
// first. Numbers that do not parse sort last.
const invoiceOrder = `ORDER BY
NULLIF(regexp_replace(split_part(invoice_number, '/', 2), '\D', '', 'g'), '')::bigint DESC NULLS LAST,
NULLIF(regexp_replace(split_part(invoice_number, '/', 1), '\D', '', 'g'), '')::bigint DESC NULLS LAST`

func scanSale(row pgx.Row) (*Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.InvoiceNumber, &s.Date, &s.Designation, &s.TypeClient,
		&s.NomPrenom, &s.ConventionName, &s.NumeroChassis, &s.Immatriculation, &s.CarteGrise,
		&s.TotalToPay, &s.Advance, &s.PaymentDay, &s.Payments, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if s.Payments == nil {
		s.Payments = map[string]payments.Obligation{}
	}
	return &s, nil
}

// List returns every sale in invoice order.
func (r *Repository) List(ctx context.Context) ([]Sale, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+saleColumns+` FROM sales `+invoiceOrder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Get returns one sale by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Sale, error) {
	return scanSale(r.pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
}

// ExistingInvoices returns the set of invoice numbers already stored.
func (r *Repository) ExistingInvoices(ctx context.Context) (map[string]bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT invoice_number FROM sales`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]bool)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out[n] = true
	}
	return out, rows.Err()
}

// Create inserts a sale and returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, s *Sale) (*Sale, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO sales
(invoice_number, sale_date, designation, type_client, nom_prenom, convention_name, numero_chassis,
immatriculation, carte_grise, total_to_pay, advance, payment_day, payments, created_at, updated_at)
VALUES ($1, nullif($2, '')::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
RETURNING id, created_at, updated_at`,
		s.InvoiceNumber, s.Date, s.Designation, s.TypeClient, s.NomPrenom, s.ConventionName,
		s.NumeroChassis, s.Immatriculation, s.CarteGrise, s.TotalToPay, s.Advance, s.PaymentDay, s.Payments)
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return s, nil
}

// CreateBatch inserts sales transactionally. All rows land or none do.
func (r *Repository) CreateBatch(ctx context.Context, sales []*Sale) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, s := range sales {
			err := tx.QueryRow(ctx, `INSERT INTO sales
(invoice_number, sale_date, designation, type_client, nom_prenom, convention_name, numero_chassis,
immatriculation, carte_grise, total_to_pay, advance, payment_day, payments, created_at, updated_at)
VALUES ($1, nullif($2, '')::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
RETURNING id`,
				s.InvoiceNumber, s.Date, s.Designation, s.TypeClient, s.NomPrenom, s.ConventionName,
				s.NumeroChassis, s.Immatriculation, s.CarteGrise, s.TotalToPay, s.Advance, s.PaymentDay, s.Payments).Scan(&s.ID)
			if err != nil {
				return mapPgError(err)
			}
		}
		return nil
	})
}

// Update rewrites every column of a sale.
func (r *Repository) Update(ctx context.Context, s *Sale) (*Sale, error) {
	row := r.pool.QueryRow(ctx, `UPDATE sales SET
invoice_number = $2, sale_date = nullif($3, '')::date, designation = $4, type_client = $5, nom_prenom = $6,
convention_name = $7, numero_chassis = $8, immatriculation = $9, carte_grise = $10, total_to_pay = $11,
advance = $12, payment_day = $13, payments = $14, updated_at = now()
WHERE id = $1
RETURNING updated_at`,
		s.ID, s.InvoiceNumber, s.Date, s.Designation, s.TypeClient, s.NomPrenom, s.ConventionName,
		s.NumeroChassis, s.Immatriculation, s.CarteGrise, s.TotalToPay, s.Advance, s.PaymentDay, s.Payments)
	if err := row.Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return s, nil
}

// UpdatePayments replaces only the payments map of a sale.
func (r *Repository) UpdatePayments(ctx context.Context, id int64, p map[string]payments.Obligation) error {
	tag, err := r.pool.Exec(ctx, `UPDATE sales SET payments = $2, updated_at = now() WHERE id = $1`, id, p)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a sale.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateInvoice
	}
	return err
}
