// Package reservations tracks motorcycles put aside for clients.
package reservations

import (
	"errors"
	"time"
)

// ErrNotFound indicates the reservation does not exist.
var ErrNotFound = errors.New("reservations: not found")

// Reservation is one hold with its deposit.
type Reservation struct {
	ID          int64     `json:"id"`
	NomPrenom   string    `json:"nomPrenom"`
	Designation string    `json:"designation"`
	Avance      float64   `json:"avance"`
	Date        string    `json:"date"`
	Numero      string    `json:"numero"`
	Remarque    string    `json:"remarque"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReservationInput carries a create or update payload.
type ReservationInput struct {
	NomPrenom   string  `json:"nomPrenom" validate:"required"`
	Designation string  `json:"designation" validate:"required"`
	Avance      float64 `json:"avance" validate:"gte=0"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Numero      string  `json:"numero"`
	Remarque    string  `json:"remarque"`
}
