// Package payments holds the installment scheduling and ledger aggregation
// core shared by the sales API, the CSV export and the background due scan.
// All call sites must go through this package so the figures they derive
// from a sale can never diverge.
package payments

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// frenchMonths maps time.Month indices (1-based) to the lowercase,
// accent-free French month names used in the persisted month keys.
var frenchMonths = [13]string{
	"",
	"janvier", "fevrier", "mars", "avril", "mai", "juin",
	"juillet", "aout", "septembre", "octobre", "novembre", "decembre",
}

var monthByName = map[string]time.Month{
	"janvier": time.January, "fevrier": time.February, "mars": time.March,
	"avril": time.April, "mai": time.May, "juin": time.June,
	"juillet": time.July, "aout": time.August, "septembre": time.September,
	"octobre": time.October, "novembre": time.November, "decembre": time.December,
}

// Slot identifies one calendar month of the payment grid.
type Slot struct {
	Year  int
	Month time.Month
}

// Key renders the slot as the persisted map key, e.g. "juillet_2025".
func (s Slot) Key() string {
	return frenchMonths[s.Month] + "_" + strconv.Itoa(s.Year)
}

// Next returns the following calendar month.
func (s Slot) Next() Slot {
	if s.Month == time.December {
		return Slot{Year: s.Year + 1, Month: time.January}
	}
	return Slot{Year: s.Year, Month: s.Month + 1}
}

// Before reports whether s precedes other chronologically.
func (s Slot) Before(other Slot) bool {
	if s.Year != other.Year {
		return s.Year < other.Year
	}
	return s.Month < other.Month
}

// ParseSlot parses a "<frenchMonth>_<year>" key. Keys that do not match the
// shape are reported as an error so aggregation can skip them defensively.
func ParseSlot(key string) (Slot, error) {
	name, yearStr, ok := strings.Cut(key, "_")
	if !ok {
		return Slot{}, fmt.Errorf("payments: malformed month key %q", key)
	}
	month, ok := monthByName[strings.ToLower(name)]
	if !ok {
		return Slot{}, fmt.Errorf("payments: unknown month name %q", name)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return Slot{}, fmt.Errorf("payments: malformed year in key %q", key)
	}
	return Slot{Year: year, Month: month}, nil
}

// The payment grid runs July 2025 through January 2028 inclusive. This list
// must stay in lockstep with the SPA's copy of the same constant.
var (
	gridStart = Slot{Year: 2025, Month: time.July}
	gridEnd   = Slot{Year: 2028, Month: time.January}

	slots     []Slot
	monthKeys []string
	slotIndex map[string]int
)

func init() {
	slotIndex = make(map[string]int)
	for s := gridStart; !gridEnd.Before(s); s = s.Next() {
		slotIndex[s.Key()] = len(slots)
		slots = append(slots, s)
		monthKeys = append(monthKeys, s.Key())
	}
}

// MonthKeys returns the canonical ordered month keys. Callers must not
// mutate the returned slice.
func MonthKeys() []string {
	return monthKeys
}

// Slots returns the canonical ordered slots backing MonthKeys.
func Slots() []Slot {
	return slots
}

// SlotIndex returns the position of key in the canonical list, or -1 when
// the key is outside the grid.
func SlotIndex(key string) int {
	idx, ok := slotIndex[key]
	if !ok {
		return -1
	}
	return idx
}

// DueDate computes the date an obligation for slot s falls due.
//
// paymentDay 1 is a legacy default meaning "last calendar day of the month",
// not a literal due-on-the-1st. Any other value is taken literally with no
// clamping: day 31 in a 30-day month rolls over into the next month, which
// mirrors the historical behaviour and must not be corrected here.
func DueDate(s Slot, paymentDay int) time.Time {
	if paymentDay == 1 {
		return time.Date(s.Year, s.Month+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(s.Year, s.Month, paymentDay, 0, 0, 0, 0, time.UTC)
}
