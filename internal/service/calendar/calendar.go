// Package calendar implements the working-day policy: Sundays are off,
// Saturdays are half days (4 hours), Monday through Friday are full
// days (8.5 hours). Pure functions of the date, no I/O.
package calendar

import "time"

const (
	weekdayHours  = 8.5
	saturdayHours = 4
)

// DayClass is the policy classification of a single calendar day.
type DayClass struct {
	IsWorkingDay  bool
	ExpectedHours float64
}

func Classify(date time.Time) DayClass {
	hours := ExpectedHoursForDay(date)
	return DayClass{
		IsWorkingDay:  hours > 0,
		ExpectedHours: hours,
	}
}

func IsWorkingDay(date time.Time) bool {
	return date.Weekday() != time.Sunday
}

func ExpectedHoursForDay(date time.Time) float64 {
	switch date.Weekday() {
	case time.Sunday:
		return 0
	case time.Saturday:
		return saturdayHours
	default:
		return weekdayHours
	}
}

// MonthlyExpectedHours sums the expected hours over every calendar day
// in the month.
func MonthlyExpectedHours(year, month int) float64 {
	var total float64
	for day := 1; day <= DaysInMonth(year, month); day++ {
		total += ExpectedHoursForDay(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
	}
	return total
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
