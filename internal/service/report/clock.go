package report

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Clock times come in as "H:mm" or "HH:mm".
var clockTimeRegex = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// ComputeWorkedHours turns an in/out clock-time pair on a calendar date
// into a worked-hours duration. Malformed or missing input is treated
// as "no data" and returns nil, never an error: real-world exports are
// noisy and a bad time pair degrades to a leave, not a failure.
//
// An out-time earlier than the in-time is taken as an overnight shift
// and advanced by one day. Durations outside (0, 24] hours are
// rejected as corrupted data. The result is rounded to 2 decimal
// places, half away from zero.
func ComputeWorkedHours(inTime, outTime *string, date time.Time) *float64 {
	in, ok := parseClockTime(inTime)
	if !ok {
		return nil
	}
	out, ok := parseClockTime(outTime)
	if !ok {
		return nil
	}

	inInstant := time.Date(date.Year(), date.Month(), date.Day(), in.hour, in.minute, 0, 0, time.UTC)
	outInstant := time.Date(date.Year(), date.Month(), date.Day(), out.hour, out.minute, 0, 0, time.UTC)

	// Night shift: clock-out lands on the next day.
	if outInstant.Before(inInstant) {
		outInstant = outInstant.AddDate(0, 0, 1)
	}

	hours := outInstant.Sub(inInstant).Hours()
	if hours < 0 || hours > 24 {
		return nil
	}

	rounded := round2(hours)
	return &rounded
}

type clockTime struct {
	hour   int
	minute int
}

func parseClockTime(value *string) (clockTime, bool) {
	if value == nil {
		return clockTime{}, false
	}
	s := strings.TrimSpace(*value)
	if s == "" || !clockTimeRegex.MatchString(s) {
		return clockTime{}, false
	}

	parts := strings.SplitN(s, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return clockTime{}, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return clockTime{}, false
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return clockTime{}, false
	}
	return clockTime{hour: hour, minute: minute}, true
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
