package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		date          time.Time
		isWorkingDay  bool
		expectedHours float64
	}{
		{"sunday is off", date(2024, time.January, 7), false, 0},
		{"saturday is a half day", date(2024, time.January, 6), true, 4},
		{"monday is a full day", date(2024, time.January, 1), true, 8.5},
		{"friday is a full day", date(2024, time.January, 5), true, 8.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.date)
			assert.Equal(t, tt.isWorkingDay, got.IsWorkingDay)
			assert.Equal(t, tt.expectedHours, got.ExpectedHours)
		})
	}
}

func TestClassify_HoursImplyWorkingDay(t *testing.T) {
	t.Parallel()

	// isWorkingDay must hold exactly when expectedHours > 0, for every
	// day of a full week.
	for day := 1; day <= 7; day++ {
		d := date(2024, time.January, day)
		got := Classify(d)
		assert.Equal(t, got.ExpectedHours > 0, got.IsWorkingDay, d.Weekday().String())
		assert.Contains(t, []float64{0, 4, 8.5}, got.ExpectedHours)
	}
}

func TestMonthlyExpectedHours(t *testing.T) {
	t.Parallel()

	// January 2024: 23 weekdays, 4 Saturdays, 4 Sundays.
	assert.Equal(t, 23*8.5+4*4.0, MonthlyExpectedHours(2024, 1))

	// February 2024 (leap): 21 weekdays, 4 Saturdays, 4 Sundays.
	assert.Equal(t, 21*8.5+4*4.0, MonthlyExpectedHours(2024, 2))
}

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 31, DaysInMonth(2024, 1))
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 28, DaysInMonth(2023, 2))
	assert.Equal(t, 30, DaysInMonth(2024, 4))
	assert.Equal(t, 31, DaysInMonth(2024, 12))
}
