package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregatePaidAndPastDue(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	s := SaleFigures{
		TotalToPay: 10000,
		Advance:    2000,
		PaymentDay: 1,
		Payments: map[string]Obligation{
			"janvier_2026": {Amount: 1500, IsPaid: true},
			"fevrier_2026": {Amount: 1500},
			"mars_2026":    {Amount: 1500},
		},
	}
	got := Aggregate(s, now)
	assert.Equal(t, float64(1500), got.Paid)
	// February's end-of-month due date has passed, March has not
	assert.Equal(t, float64(1500), got.PastDue)
	assert.Equal(t, float64(6500), got.DueCredit)
}

func TestAggregateDueCreditFlooredAtZero(t *testing.T) {
	s := SaleFigures{
		TotalToPay: 5000,
		Advance:    3000,
		Payments: map[string]Obligation{
			"juillet_2025": {Amount: 2500, IsPaid: true},
		},
	}
	got := Aggregate(s, time.Now())
	assert.Equal(t, float64(0), got.DueCredit)
	assert.Equal(t, float64(2500), got.Paid)
}

func TestAggregateSkipsMalformedKeysAndZeroAmounts(t *testing.T) {
	now := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)
	s := SaleFigures{
		TotalToPay: 1000,
		PaymentDay: 10,
		Payments: map[string]Obligation{
			"whatever":     {Amount: 400},
			"aout_2025":    {Amount: 0},
			"juillet_2025": {Amount: 100},
		},
	}
	got := Aggregate(s, now)
	assert.Equal(t, float64(100), got.PastDue)
}

func TestAggregateIgnoresMonthsOutsideGrid(t *testing.T) {
	now := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)
	s := SaleFigures{
		TotalToPay: 1000,
		PaymentDay: 10,
		Payments: map[string]Obligation{
			// well-formed keys, but before and after the grid
			"mars_2024":    {Amount: 400, IsPaid: true},
			"juin_2024":    {Amount: 300},
			"fevrier_2028": {Amount: 200},
		},
	}
	got := Aggregate(s, now)
	assert.Equal(t, float64(0), got.Paid)
	assert.Equal(t, float64(0), got.PastDue)
	assert.Equal(t, float64(1000), got.DueCredit)
}

func TestAggregateUnpaidFutureNotPastDue(t *testing.T) {
	now := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	s := SaleFigures{
		TotalToPay: 1000,
		PaymentDay: 15,
		Payments: map[string]Obligation{
			"aout_2025": {Amount: 500},
		},
	}
	got := Aggregate(s, now)
	assert.Equal(t, float64(0), got.PastDue)
	assert.Equal(t, float64(1000), got.DueCredit)
}

func TestAggregateTable(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	sales := []SaleFigures{
		{
			TotalToPay: 6000, Advance: 1000, PaymentDay: 5,
			Payments: map[string]Obligation{
				"juillet_2025": {Amount: 2500, IsPaid: true},
				"aout_2025":    {Amount: 2500},
			},
		},
		{
			TotalToPay: 4000, Advance: 4000, PaymentDay: 1,
		},
	}
	got := AggregateTable(sales, now)
	assert.Equal(t, float64(10000), got.TotalToPay)
	assert.Equal(t, float64(5000), got.Advance)
	assert.Equal(t, float64(2500), got.Paid)
	assert.Equal(t, float64(2500), got.PastDue)
	assert.Equal(t, float64(2500), got.DueCredit)
	assert.Equal(t, float64(2500), got.UnpaidBySlot["aout_2025"])
	assert.Equal(t, float64(0), got.UnpaidBySlot["juillet_2025"])
	assert.Len(t, got.UnpaidBySlot, 31)
	assert.Equal(t, 75, got.PaidPercent)
	assert.Equal(t, 25, got.CreditPercent)
	assert.Equal(t, 25, got.DuePercent)
}

func TestAggregateTableEmpty(t *testing.T) {
	got := AggregateTable(nil, time.Now())
	assert.Equal(t, 0, got.PaidPercent)
	assert.Equal(t, 0, got.DuePercent)
	assert.Len(t, got.UnpaidBySlot, 31)
}

func TestPercentZeroTotal(t *testing.T) {
	got := Percent(SaleFigures{}, Totals{Paid: 100})
	assert.Equal(t, Percentages{}, got)
}

func TestPercent(t *testing.T) {
	s := SaleFigures{TotalToPay: 10000, Advance: 2500}
	t1 := Totals{Paid: 2500, DueCredit: 5000, PastDue: 1000}
	got := Percent(s, t1)
	assert.Equal(t, 50, got.Paid)
	assert.Equal(t, 50, got.Credit)
	assert.Equal(t, 10, got.Due)
}
