package report

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoRows             = errors.New("no data rows found in file")
	ErrStoreNotConfigured = errors.New("attendance store is not configured")
)

// NoUsableDataError is returned when a file decodes fine but not a
// single employee survives normalization for the target month. It
// carries enough context for the caller to surface actionable guidance
// instead of a generic failure.
type NoUsableDataError struct {
	RowsParsed     int
	EmployeesFound int
	MonthSelected  string
	SampleColumns  []string
}

func (e *NoUsableDataError) Error() string {
	return fmt.Sprintf(
		"no employee data found for %s: parsed %d rows, discovered %d employees",
		e.MonthSelected, e.RowsParsed, e.EmployeesFound,
	)
}

// Details maps the diagnostics into the response error detail shape.
func (e *NoUsableDataError) Details() map[string]string {
	return map[string]string{
		"rows_parsed":      fmt.Sprintf("%d", e.RowsParsed),
		"employees_found":  fmt.Sprintf("%d", e.EmployeesFound),
		"month_selected":   e.MonthSelected,
		"detected_columns": strings.Join(e.SampleColumns, ", "),
	}
}
