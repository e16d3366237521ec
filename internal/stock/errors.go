// Package stock holds errors shared by the inventory submodules.
package stock

import "errors"

// ErrInsufficientStock rejects a sale larger than the quantity on hand.
// Past data may still drive a balance negative; only new sales are checked.
var ErrInsufficientStock = errors.New("stock insuffisant")
