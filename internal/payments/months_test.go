package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKeysGrid(t *testing.T) {
	keys := MonthKeys()
	require.Len(t, keys, 31)
	assert.Equal(t, "juillet_2025", keys[0])
	assert.Equal(t, "decembre_2025", keys[5])
	assert.Equal(t, "janvier_2026", keys[6])
	assert.Equal(t, "janvier_2028", keys[30])
}

func TestParseSlot(t *testing.T) {
	s, err := ParseSlot("fevrier_2026")
	require.NoError(t, err)
	assert.Equal(t, Slot{Year: 2026, Month: time.February}, s)
	assert.Equal(t, "fevrier_2026", s.Key())

	_, err = ParseSlot("brumaire_2026")
	require.Error(t, err)
	_, err = ParseSlot("fevrier")
	require.Error(t, err)
	_, err = ParseSlot("fevrier_20x6")
	require.Error(t, err)
}

func TestSlotIndex(t *testing.T) {
	assert.Equal(t, 0, SlotIndex("juillet_2025"))
	assert.Equal(t, 30, SlotIndex("janvier_2028"))
	assert.Equal(t, -1, SlotIndex("juin_2025"))
	assert.Equal(t, -1, SlotIndex("fevrier_2028"))
}

func TestDueDateLiteralDay(t *testing.T) {
	d := DueDate(Slot{Year: 2025, Month: time.August}, 15)
	assert.Equal(t, time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC), d)
}

func TestDueDateDayOneMeansEndOfMonth(t *testing.T) {
	d := DueDate(Slot{Year: 2026, Month: time.February}, 1)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), d)

	// leap year
	d = DueDate(Slot{Year: 2028, Month: time.January}.Next(), 1)
	assert.Equal(t, time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC), d)
}

func TestDueDateOverflowsShortMonths(t *testing.T) {
	// day 31 in a 30-day month rolls into the next month, on purpose
	d := DueDate(Slot{Year: 2025, Month: time.September}, 31)
	assert.Equal(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), d)

	d = DueDate(Slot{Year: 2026, Month: time.February}, 30)
	assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), d)
}
