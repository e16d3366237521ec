// Package oil tracks engine oil inventory in two fixed grades.
package oil

import (
	"errors"
	"time"
)

// ErrNotFound indicates the movement does not exist.
var ErrNotFound = errors.New("oil: not found")

// Purchase is one supplier delivery, counting bottles per grade.
type Purchase struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Huile10W40  float64   `json:"huile10w40"`
	Huile20W50  float64   `json:"huile20w50"`
	Fournisseur string    `json:"fournisseur"`
	Prix        float64   `json:"prix"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PurchaseInput carries a purchase payload.
type PurchaseInput struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Huile10W40  float64 `json:"huile10w40" validate:"gte=0"`
	Huile20W50  float64 `json:"huile20w50" validate:"gte=0"`
	Fournisseur string  `json:"fournisseur"`
	Prix        float64 `json:"prix" validate:"gte=0"`
}

// Sale is one counter sale, with the cash taken and who bought.
type Sale struct {
	ID           int64     `json:"id"`
	Date         string    `json:"date"`
	Huile10W40   float64   `json:"huile10w40"`
	Huile20W50   float64   `json:"huile20w50"`
	Prix         float64   `json:"prix"`
	Encaissement string    `json:"encaissement"`
	Client       string    `json:"client"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SaleInput carries a sale payload.
type SaleInput struct {
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	Huile10W40   float64 `json:"huile10w40" validate:"gte=0"`
	Huile20W50   float64 `json:"huile20w50" validate:"gte=0"`
	Prix         float64 `json:"prix" validate:"gte=0"`
	Encaissement string  `json:"encaissement" validate:"required"`
	Client       string  `json:"client"`
}

// Stock is the current balance per grade.
type Stock struct {
	Huile10W40 float64 `json:"huile10w40"`
	Huile20W50 float64 `json:"huile20w50"`
}
