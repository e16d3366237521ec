// Package helmets tracks helmet inventory grouped by model designation.
package helmets

import (
	"errors"
	"time"
)

// ErrNotFound indicates the movement does not exist.
var ErrNotFound = errors.New("helmets: not found")

// Purchase is one supplier delivery of a helmet model.
type Purchase struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Designation string    `json:"designation"`
	Quantity    float64   `json:"quantite"`
	Fournisseur string    `json:"fournisseur"`
	Prix        float64   `json:"prix"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PurchaseInput carries a purchase payload.
type PurchaseInput struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Designation string  `json:"designation" validate:"required"`
	Quantity    float64 `json:"quantite" validate:"gt=0"`
	Fournisseur string  `json:"fournisseur"`
	Prix        float64 `json:"prix" validate:"gte=0"`
}

// Sale is one invoiced helmet sale.
type Sale struct {
	ID            int64     `json:"id"`
	NumeroFacture string    `json:"numeroFacture"`
	Date          string    `json:"date"`
	Designation   string    `json:"designation"`
	TypeClient    string    `json:"typeClient"`
	NomPrenom     string    `json:"nomPrenom"`
	Quantity      float64   `json:"quantite"`
	Montant       float64   `json:"montant"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SaleInput carries a sale payload.
type SaleInput struct {
	NumeroFacture string  `json:"numeroFacture" validate:"required"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	Designation   string  `json:"designation" validate:"required"`
	TypeClient    string  `json:"typeClient"`
	NomPrenom     string  `json:"nomPrenom" validate:"required"`
	Quantity      float64 `json:"quantite" validate:"gt=0"`
	Montant       float64 `json:"montant" validate:"gte=0"`
}

// StockLine is the balance of one designation.
type StockLine struct {
	Designation string  `json:"designation"`
	Purchased   float64 `json:"achats"`
	Sold        float64 `json:"ventes"`
	Stock       float64 `json:"stock"`
}
