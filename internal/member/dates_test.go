package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClamped(t *testing.T) {
	t.Run("Plain addition", func(t *testing.T) {
		got := AddMonthsClamped(date(2024, time.March, 15), 1)
		assert.Equal(t, date(2024, time.April, 15), got)
	})

	t.Run("Jan 31 clamps to end of February", func(t *testing.T) {
		got := AddMonthsClamped(date(2025, time.January, 31), 1)
		assert.Equal(t, date(2025, time.February, 28), got)
	})

	t.Run("Leap year February", func(t *testing.T) {
		got := AddMonthsClamped(date(2024, time.January, 31), 1)
		assert.Equal(t, date(2024, time.February, 29), got)
	})

	t.Run("Oct 31 clamps to Nov 30", func(t *testing.T) {
		got := AddMonthsClamped(date(2024, time.October, 31), 1)
		assert.Equal(t, date(2024, time.November, 30), got)
	})

	t.Run("Year rollover", func(t *testing.T) {
		got := AddMonthsClamped(date(2024, time.November, 15), 3)
		assert.Equal(t, date(2025, time.February, 15), got)
	})
}

func TestEndDate(t *testing.T) {
	start := date(2024, time.June, 1)

	assert.Equal(t, date(2024, time.July, 1), EndDate(start, PlanMonthly))
	assert.Equal(t, date(2024, time.September, 1), EndDate(start, PlanQuarterly))
	assert.Equal(t, date(2025, time.June, 1), EndDate(start, PlanYearly))
}

func TestRenewalStartDate(t *testing.T) {
	t.Run("Day after old expiry", func(t *testing.T) {
		got := RenewalStartDate(date(2024, time.June, 30))
		assert.Equal(t, date(2024, time.July, 1), got)
	})

	t.Run("Month boundary", func(t *testing.T) {
		got := RenewalStartDate(date(2024, time.December, 31))
		assert.Equal(t, date(2025, time.January, 1), got)
	})
}

func TestDaysUntil(t *testing.T) {
	today := date(2024, time.June, 10)

	assert.Equal(t, 0, DaysUntil(date(2024, time.June, 10), today))
	assert.Equal(t, 7, DaysUntil(date(2024, time.June, 17), today))
	assert.Equal(t, -1, DaysUntil(date(2024, time.June, 9), today))

	// Time of day must not leak into the day count
	noon := time.Date(2024, time.June, 10, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(date(2024, time.June, 11), noon))
}
