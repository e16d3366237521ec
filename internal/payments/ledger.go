package payments

import (
	"math"
	"time"
)

// SaleFigures is the slice of a sale the ledger needs. Keeping it a plain
// value type lets every module feed the same aggregation without importing
// the sales package.
type SaleFigures struct {
	TotalToPay float64
	Advance    float64
	PaymentDay int
	Payments   map[string]Obligation
}

// Totals are the derived per-sale figures shown in the list view and the
// CSV export.
type Totals struct {
	Paid      float64 `json:"paid"`
	DueCredit float64 `json:"dueCredit"`
	PastDue   float64 `json:"pastDue"`
}

// Aggregate derives the paid, outstanding and past-due figures of one sale
// as of now.
//
// DueCredit is total minus advance minus paid, floored at zero. It is NOT
// guaranteed to equal the sum of unpaid scheduled amounts: schedules edited
// by hand routinely drift from the headline figures and both numbers are
// reported as-is, never reconciled.
//
// Only the canonical grid months count. Stray keys outside the grid can sit
// in a stored payments map but never reach any figure.
func Aggregate(s SaleFigures, now time.Time) Totals {
	var t Totals
	for i, key := range monthKeys {
		ob, ok := s.Payments[key]
		if !ok {
			continue
		}
		if ob.IsPaid {
			t.Paid += ob.Amount
			continue
		}
		if ob.Amount > 0 && DueDate(slots[i], s.PaymentDay).Before(now) {
			t.PastDue += ob.Amount
		}
	}
	t.DueCredit = s.TotalToPay - s.Advance - t.Paid
	if t.DueCredit < 0 {
		t.DueCredit = 0
	}
	return t
}

// TableTotals summarise a whole list of sales for the footer row.
type TableTotals struct {
	TotalToPay    float64            `json:"totalToPay"`
	Advance       float64            `json:"advance"`
	Paid          float64            `json:"paid"`
	DueCredit     float64            `json:"dueCredit"`
	PastDue       float64            `json:"pastDue"`
	UnpaidBySlot  map[string]float64 `json:"unpaidByMonth"`
	PaidPercent   int                `json:"paidPercent"`
	CreditPercent int                `json:"creditPercent"`
	DuePercent    int                `json:"duePercent"`
}

// AggregateTable folds every sale through Aggregate and additionally sums,
// per grid month, the amounts still unpaid across the whole table.
// Percentages round half away from zero and are zero when nothing is owed
// at all.
func AggregateTable(sales []SaleFigures, now time.Time) TableTotals {
	tt := TableTotals{UnpaidBySlot: make(map[string]float64, len(monthKeys))}
	for _, key := range monthKeys {
		tt.UnpaidBySlot[key] = 0
	}
	for _, s := range sales {
		t := Aggregate(s, now)
		tt.TotalToPay += s.TotalToPay
		tt.Advance += s.Advance
		tt.Paid += t.Paid
		tt.DueCredit += t.DueCredit
		tt.PastDue += t.PastDue
		for key, ob := range s.Payments {
			if _, ok := tt.UnpaidBySlot[key]; !ok {
				continue
			}
			if !ob.IsPaid && ob.Amount > 0 {
				tt.UnpaidBySlot[key] += ob.Amount
			}
		}
	}
	if tt.TotalToPay > 0 {
		tt.PaidPercent = int(math.Round((tt.Paid + tt.Advance) / tt.TotalToPay * 100))
		tt.CreditPercent = int(math.Round(tt.DueCredit / tt.TotalToPay * 100))
		tt.DuePercent = int(math.Round(tt.PastDue / tt.TotalToPay * 100))
	}
	return tt
}

// Percentages are the per-sale progress figures shown alongside Totals.
type Percentages struct {
	Paid   int `json:"paidPercent"`
	Credit int `json:"creditPercent"`
	Due    int `json:"duePercent"`
}

// Percent derives the per-sale progress percentages. All three are zero
// when the sale's total is zero.
func Percent(s SaleFigures, t Totals) Percentages {
	if s.TotalToPay <= 0 {
		return Percentages{}
	}
	return Percentages{
		Paid:   int(math.Round((t.Paid + s.Advance) / s.TotalToPay * 100)),
		Credit: int(math.Round(t.DueCredit / s.TotalToPay * 100)),
		Due:    int(math.Round(t.PastDue / s.TotalToPay * 100)),
	}
}
