package payments

import "math"

// Obligation is one month's entry in a sale's payment map.
type Obligation struct {
	Amount float64 `json:"amount"`
	IsPaid bool    `json:"isPaid"`
}

// Policy selects how the credit is split across the schedule months.
type Policy string

const (
	// PolicyDecimal divides the credit exactly, keeping fractional amounts.
	PolicyDecimal Policy = "decimal"
	// PolicyRounded splits into whole units, spreading the remainder one
	// unit at a time over the earliest months.
	PolicyRounded Policy = "rounded"
)

// Schedule builds a fresh payment map spreading credit over monthCount
// consecutive months starting at start. All generated obligations are
// unpaid. Months falling past the end of the grid are silently dropped, so
// the result may hold fewer than monthCount entries.
//
// Returns nil when monthCount <= 0, credit <= 0 or start lies outside the
// grid: callers treat nil as "no schedule".
func Schedule(credit float64, monthCount int, start Slot, policy Policy) map[string]Obligation {
	if monthCount <= 0 || credit <= 0 {
		return nil
	}
	startIdx := SlotIndex(start.Key())
	if startIdx < 0 {
		return nil
	}

	out := make(map[string]Obligation)
	switch policy {
	case PolicyRounded:
		base := math.Floor(credit / float64(monthCount))
		remainder := int(credit - base*float64(monthCount))
		for i := 0; i < monthCount; i++ {
			idx := startIdx + i
			if idx >= len(slots) {
				break
			}
			amount := base
			if i < remainder {
				amount++
			}
			out[slots[idx].Key()] = Obligation{Amount: amount}
		}
	default:
		amount := credit / float64(monthCount)
		for i := 0; i < monthCount; i++ {
			idx := startIdx + i
			if idx >= len(slots) {
				break
			}
			out[slots[idx].Key()] = Obligation{Amount: amount}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
