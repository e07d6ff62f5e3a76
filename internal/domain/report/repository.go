package report

import "context"

// AttendanceStore is the optional write-behind persistence sink. Both
// upserts are idempotent by natural key (employee id; employee+date),
// so replaying an upload converges on the same state. The report
// computation never depends on this collaborator being configured.
type AttendanceStore interface {
	// UpsertEmployee creates or updates an employee by its natural key
	// and returns the store's internal handle for attendance upserts.
	UpsertEmployee(ctx context.Context, employeeID, name string) (string, error)

	// UpsertAttendance creates or replaces the attendance record for
	// (employee handle, fact date). A later upsert for the same key
	// fully overwrites the earlier one, mirroring the in-memory
	// last-write-wins rule.
	UpsertAttendance(ctx context.Context, employeeHandle string, fact AttendanceFact) error

	// ListMonthlyFacts returns all stored facts falling inside the
	// given month plus every known employee, for rebuilding a report
	// from the mirror. Not used by the upload pipeline.
	ListMonthlyFacts(ctx context.Context, year, month int) ([]AttendanceFact, []EmployeeRef, error)
}
