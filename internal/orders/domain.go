// Package orders tracks motorcycles ordered by clients ahead of delivery.
package orders

import (
	"errors"
	"time"
)

// ErrNotFound indicates the order does not exist.
var ErrNotFound = errors.New("orders: not found")

// Order is one client order with its deposit.
type Order struct {
	ID              int64     `json:"id"`
	NomPrenom       string    `json:"nomPrenom"`
	Designation     string    `json:"designation"`
	Avance          float64   `json:"avance"`
	Date            string    `json:"date"`
	NumeroTelephone string    `json:"numeroTelephone"`
	Remarque        string    `json:"remarque"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// OrderInput carries a create or update payload.
type OrderInput struct {
	NomPrenom       string  `json:"nomPrenom" validate:"required"`
	Designation     string  `json:"designation" validate:"required"`
	Avance          float64 `json:"avance" validate:"gte=0"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	NumeroTelephone string  `json:"numeroTelephone"`
	Remarque        string  `json:"remarque"`
}
