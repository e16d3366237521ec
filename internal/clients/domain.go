// Package clients keeps the dealership's client directory.
package clients

import (
	"errors"
	"time"
)

// ErrNotFound indicates the client does not exist.
var ErrNotFound = errors.New("clients: not found")

// Client is one directory entry.
type Client struct {
	ID              int64     `json:"id"`
	NomPrenom       string    `json:"nomPrenom"`
	NumeroTelephone string    `json:"numeroTelephone"`
	TypeMoto        string    `json:"typeMoto"`
	Remarque        string    `json:"remarque"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ClientInput carries a create or update payload.
type ClientInput struct {
	NomPrenom       string `json:"nomPrenom" validate:"required"`
	NumeroTelephone string `json:"numeroTelephone"`
	TypeMoto        string `json:"typeMoto"`
	Remarque        string `json:"remarque"`
}
