// Package saddles tracks saddle inventory in the two stocked sizes.
package saddles

import (
	"errors"
	"time"
)

// ErrNotFound indicates the movement does not exist.
var ErrNotFound = errors.New("saddles: not found")

// Movement is one purchase or sale line, counting units per size.
type Movement struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	TailleXL  float64   `json:"tailleXl"`
	TailleXXL float64   `json:"tailleXxl"`
	CreatedAt time.Time `json:"createdAt"`
}

// MovementInput carries a purchase or sale payload.
type MovementInput struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	TailleXL  float64 `json:"tailleXl" validate:"gte=0"`
	TailleXXL float64 `json:"tailleXxl" validate:"gte=0"`
}

// Stock is the current balance per size.
type Stock struct {
	TailleXL  float64 `json:"tailleXl"`
	TailleXXL float64 `json:"tailleXxl"`
}
