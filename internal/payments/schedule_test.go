package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRoundedSpreadsRemainderFirst(t *testing.T) {
	got := Schedule(5000, 3, Slot{Year: 2025, Month: time.July}, PolicyRounded)
	require.Len(t, got, 3)
	assert.Equal(t, Obligation{Amount: 1667}, got["juillet_2025"])
	assert.Equal(t, Obligation{Amount: 1667}, got["aout_2025"])
	assert.Equal(t, Obligation{Amount: 1666}, got["septembre_2025"])
}

func TestScheduleRoundedEvenSplit(t *testing.T) {
	got := Schedule(9000, 3, Slot{Year: 2025, Month: time.October}, PolicyRounded)
	require.Len(t, got, 3)
	for _, key := range []string{"octobre_2025", "novembre_2025", "decembre_2025"} {
		assert.Equal(t, Obligation{Amount: 3000}, got[key])
	}
}

func TestScheduleDecimalKeepsFractions(t *testing.T) {
	got := Schedule(1000, 3, Slot{Year: 2025, Month: time.July}, PolicyDecimal)
	require.Len(t, got, 3)
	assert.InDelta(t, 333.3333, got["juillet_2025"].Amount, 0.001)
	assert.InDelta(t, 333.3333, got["aout_2025"].Amount, 0.001)
	assert.False(t, got["juillet_2025"].IsPaid)
}

func TestScheduleTruncatesAtGridEnd(t *testing.T) {
	// 6 months starting November 2027 only fits 3 slots
	got := Schedule(6000, 6, Slot{Year: 2027, Month: time.November}, PolicyRounded)
	require.Len(t, got, 3)
	assert.Equal(t, float64(1000), got["novembre_2027"].Amount)
	assert.Equal(t, float64(1000), got["janvier_2028"].Amount)
}

func TestScheduleDeterministic(t *testing.T) {
	first := Schedule(7001, 5, Slot{Year: 2026, Month: time.February}, PolicyRounded)
	second := Schedule(7001, 5, Slot{Year: 2026, Month: time.February}, PolicyRounded)
	assert.Equal(t, first, second)

	first = Schedule(1000, 3, Slot{Year: 2025, Month: time.July}, PolicyDecimal)
	second = Schedule(1000, 3, Slot{Year: 2025, Month: time.July}, PolicyDecimal)
	assert.Equal(t, first, second)
}

func TestScheduleNilCases(t *testing.T) {
	assert.Nil(t, Schedule(0, 3, Slot{Year: 2025, Month: time.July}, PolicyRounded))
	assert.Nil(t, Schedule(5000, 0, Slot{Year: 2025, Month: time.July}, PolicyRounded))
	assert.Nil(t, Schedule(5000, 3, Slot{Year: 2024, Month: time.July}, PolicyRounded))
	assert.Nil(t, Schedule(-100, 3, Slot{Year: 2025, Month: time.July}, PolicyDecimal))
}
