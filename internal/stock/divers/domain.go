// Package divers tracks miscellaneous parts inventory and the deferred
// sales granted to trusted clients.
package divers

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the movement does not exist.
	ErrNotFound = errors.New("divers: not found")
	// ErrDeferredNotFound indicates the deferred sale does not exist.
	ErrDeferredNotFound = errors.New("divers: deferred sale not found")
)

// Movement is one purchase or sale line for a part.
type Movement struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Designation string    `json:"designation"`
	Quantity    float64   `json:"quantite"`
	UnitPrice   float64   `json:"prixUnitaire"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MovementInput carries a purchase or sale payload.
type MovementInput struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Designation string  `json:"designation" validate:"required"`
	Quantity    float64 `json:"quantite" validate:"gt=0"`
	UnitPrice   float64 `json:"prixUnitaire" validate:"gte=0"`
}

// StockLine is the balance of one designation.
type StockLine struct {
	Designation string  `json:"designation"`
	Purchased   float64 `json:"achats"`
	Sold        float64 `json:"ventes"`
	Stock       float64 `json:"stock"`
}

// DeferredSale is an amount owed by a client for goods taken on credit.
type DeferredSale struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	NomPrenom       string    `json:"nomPrenom"`
	NumeroTelephone string    `json:"numeroTelephone"`
	TypeMoto        string    `json:"typeMoto"`
	Designation     string    `json:"designation"`
	Montant         float64   `json:"montant"`
	IsSettled       bool      `json:"isSettled"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DeferredSaleInput carries a deferred sale payload.
type DeferredSaleInput struct {
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	NomPrenom       string  `json:"nomPrenom" validate:"required"`
	NumeroTelephone string  `json:"numeroTelephone"`
	TypeMoto        string  `json:"typeMoto"`
	Designation     string  `json:"designation" validate:"required"`
	Montant         float64 `json:"montant" validate:"gte=0"`
}
