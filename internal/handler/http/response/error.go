package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/pkg/spreadsheet"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Upload diagnostics carry actionable context for the caller.
	var noData *report.NoUsableDataError
	if errors.As(err, &noData) {
		BadRequest(w,
			"No employee data found for the selected month. Check that the file covers the month and that "+
				"columns match: Employee ID, Employee Name, Date, In-Time, Out-Time (dates in YYYY-MM-DD).",
			noData.Details(),
		)
		return
	}

	switch {
	// Decoder defects are batch-fatal but caller-correctable.
	case errors.Is(err, spreadsheet.ErrEmptyFile),
		errors.Is(err, spreadsheet.ErrNoSheets),
		errors.Is(err, spreadsheet.ErrNoData),
		errors.Is(err, spreadsheet.ErrUnrecognizedFormat),
		errors.Is(err, report.ErrNoRows):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, report.ErrStoreNotConfigured):
		ServiceUnavailable(w, "Attendance store is not configured")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
