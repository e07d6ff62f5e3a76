package report

import (
	"strconv"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// MonthlyReportRequest selects the target month for an upload or a
// stored-report read.
type MonthlyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 1 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four-digit year",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseMonthParam parses a "YYYY-MM" month selector. Malformed input is
// rejected here, before any file decoding work begins.
func ParseMonthParam(s string) (MonthlyReportRequest, error) {
	if validator.IsEmpty(s) {
		return MonthlyReportRequest{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month is required (YYYY-MM)",
		}}
	}
	s = strings.TrimSpace(s)

	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return MonthlyReportRequest{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "invalid month format, use YYYY-MM",
		}}
	}

	year, yearErr := strconv.Atoi(parts[0])
	month, monthErr := strconv.Atoi(parts[1])
	if yearErr != nil || monthErr != nil {
		return MonthlyReportRequest{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "invalid month format, use YYYY-MM",
		}}
	}

	req := MonthlyReportRequest{Year: year, Month: month}
	if err := req.Validate(); err != nil {
		return MonthlyReportRequest{}, err
	}
	return req, nil
}
