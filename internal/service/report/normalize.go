package report

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/pkg/spreadsheet"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"github.com/attendly/attendance-backend-go/internal/service/calendar"
)

// Accepted header spellings per logical field, in priority order. The
// first alias carrying a non-empty value wins.
var (
	employeeIDAliases   = []string{"Employee ID", "EmployeeID", "employee_id", "EmployeeId", "EMP ID", "emp_id"}
	employeeNameAliases = []string{"Employee Name", "EmployeeName", "employee_name", "Name", "EMP Name", "emp_name"}
	dateAliases         = []string{"Date", "date", "DATE", "Attendance Date"}
	inTimeAliases       = []string{"In-Time", "InTime", "in_time", "In Time", "IN TIME", "Check In", "check_in"}
	outTimeAliases      = []string{"Out-Time", "OutTime", "out_time", "Out Time", "OUT TIME", "Check Out", "check_out"}
)

// fieldResolver maps alias lookups through a case-insensitive header
// table built once per sheet, instead of scanning every row's keys.
type fieldResolver struct {
	headerByLower map[string]string
}

func newFieldResolver(headers []string) *fieldResolver {
	table := make(map[string]string, len(headers))
	for _, h := range headers {
		lower := strings.ToLower(h)
		if _, exists := table[lower]; !exists {
			table[lower] = h
		}
	}
	return &fieldResolver{headerByLower: table}
}

func (r *fieldResolver) lookup(row spreadsheet.Row, aliases []string) string {
	for _, alias := range aliases {
		header, ok := r.headerByLower[strings.ToLower(alias)]
		if !ok {
			continue
		}
		if value := row[header]; strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// rejectReason classifies why a row produced no fact. Rejections are
// expected with real exports and are counted, never raised.
type rejectReason int

const (
	rejectNone rejectReason = iota
	rejectMissingFields
	rejectBadDate
	rejectOutOfMonth
)

// normalizeResult is the tagged outcome of normalizing one raw row.
// Employee identity is surfaced even on date-related rejections so an
// employee whose rows all miss the target month still enters the
// report universe.
type normalizeResult struct {
	fact     *report.AttendanceFact
	employee *report.EmployeeRef
	reject   rejectReason
}

type rowNormalizer struct {
	resolver *fieldResolver
	year     int
	month    int
}

func newRowNormalizer(headers []string, year, month int) *rowNormalizer {
	return &rowNormalizer{
		resolver: newFieldResolver(headers),
		year:     year,
		month:    month,
	}
}

func (n *rowNormalizer) normalize(row spreadsheet.Row) normalizeResult {
	name := strings.TrimSpace(n.resolver.lookup(row, employeeNameAliases))
	rawDate := strings.TrimSpace(n.resolver.lookup(row, dateAliases))
	if name == "" || rawDate == "" {
		return normalizeResult{reject: rejectMissingFields}
	}

	id := strings.TrimSpace(n.resolver.lookup(row, employeeIDAliases))
	if id == "" {
		id = DeriveEmployeeID(name)
	}
	ref := &report.EmployeeRef{ID: id, Name: name}

	date, ok := parseRowDate(rawDate)
	if !ok {
		return normalizeResult{employee: ref, reject: rejectBadDate}
	}
	if date.Year() != n.year || int(date.Month()) != n.month {
		return normalizeResult{employee: ref, reject: rejectOutOfMonth}
	}

	inTime := trimToNil(n.resolver.lookup(row, inTimeAliases))
	outTime := trimToNil(n.resolver.lookup(row, outTimeAliases))

	fact := &report.AttendanceFact{
		EmployeeID:   id,
		EmployeeName: name,
		Date:         date.Format("2006-01-02"),
		InTime:       inTime,
		OutTime:      outTime,
		WorkedHours:  ComputeWorkedHours(inTime, outTime, date),
		// The leave flag here only records that no complete time pair
		// was present; non-working days are reconciled downstream.
		IsLeave:       inTime == nil || outTime == nil,
		ExpectedHours: calendar.ExpectedHoursForDay(date),
	}
	return normalizeResult{fact: fact, employee: ref}
}

var (
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	nonIdentChars   = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	serialDateRegex = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// DeriveEmployeeID builds a deterministic employee id from a name when
// the source has no id column. Identical names collide on purpose:
// that is how rows without ids group into one employee.
func DeriveEmployeeID(name string) string {
	id := whitespaceRuns.ReplaceAllString(strings.TrimSpace(name), "_")
	id = nonIdentChars.ReplaceAllString(id, "")
	return "EMP_" + id
}

// Day 0 of spreadsheet serial dates. Using 1899-12-30 rather than the
// nominal 1900-01-01 epoch absorbs the classic off-by-one (plus the
// phantom 1900-02-29) that exported files carry; existing exports
// depend on this exact arithmetic.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseRowDate dispatches between the two accepted date encodings: an
// ISO YYYY-MM-DD string and a spreadsheet serial day-number.
func parseRowDate(raw string) (time.Time, bool) {
	if t, ok := validator.IsValidDate(raw); ok {
		return t, true
	}
	if serialDateRegex.MatchString(raw) {
		serial, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			days := int(serial) // time-of-day fraction is irrelevant here
			return serialEpoch.AddDate(0, 0, days), true
		}
	}
	return time.Time{}, false
}

func trimToNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
