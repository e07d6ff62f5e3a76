package report

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/pkg/spreadsheet"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records upserts in memory and can be told to fail.
type fakeStore struct {
	failUpserts bool

	employees   map[string]string
	attendances map[string]report.AttendanceFact
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:   make(map[string]string),
		attendances: make(map[string]report.AttendanceFact),
	}
}

func (f *fakeStore) UpsertEmployee(_ context.Context, employeeID, name string) (string, error) {
	if f.failUpserts {
		return "", errors.New("store unavailable")
	}
	f.employees[employeeID] = name
	return employeeID, nil
}

func (f *fakeStore) UpsertAttendance(_ context.Context, handle string, fact report.AttendanceFact) error {
	if f.failUpserts {
		return errors.New("store unavailable")
	}
	f.attendances[handle+"|"+fact.Date] = fact
	return nil
}

func (f *fakeStore) ListMonthlyFacts(_ context.Context, year, month int) ([]report.AttendanceFact, []report.EmployeeRef, error) {
	if f.failUpserts {
		return nil, nil, errors.New("store unavailable")
	}
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	var facts []report.AttendanceFact
	for _, fact := range f.attendances {
		if len(fact.Date) >= 7 && fact.Date[:7] == prefix && (fact.InTime != nil || fact.OutTime != nil) {
			facts = append(facts, fact)
		}
	}
	var refs []report.EmployeeRef
	for id, name := range f.employees {
		refs = append(refs, report.EmployeeRef{ID: id, Name: name})
	}
	return facts, refs, nil
}

func uploadSheet(rows ...spreadsheet.Row) *spreadsheet.Sheet {
	return &spreadsheet.Sheet{
		Headers: []string{"Employee ID", "Employee Name", "Date", "In-Time", "Out-Time"},
		Rows:    rows,
	}
}

func TestBuildMonthlyReport_EndToEnd(t *testing.T) {
	t.Parallel()

	svc := NewReportService(nil, nil)
	sheet := uploadSheet(
		spreadsheet.Row{"Employee Name": "Alice", "Date": "2024-01-02", "In-Time": "09:00", "Out-Time": "17:30"},
		spreadsheet.Row{"Employee Name": "Bob", "Date": "2024-02-10", "In-Time": "09:00", "Out-Time": "17:00"},
	)

	got, err := svc.BuildMonthlyReport(context.Background(), sheet, report.MonthlyReportRequest{Year: 2024, Month: 1})
	require.NoError(t, err)

	// Bob's only row is cross-month, but he was seen in the file, so
	// he gets a fully synthesized January.
	require.Len(t, got.Employees, 2)
	alice, bob := got.Employees[0], got.Employees[1]

	assert.Equal(t, "EMP_Alice", alice.EmployeeID)
	assert.Len(t, alice.DailyRecords, 31)
	assert.Equal(t, 8.5, alice.TotalWorkedHours)
	assert.Equal(t, 26, alice.LeavesUsed) // 27 working days minus the 2nd

	assert.Equal(t, "EMP_Bob", bob.EmployeeID)
	assert.Len(t, bob.DailyRecords, 31)
	assert.Equal(t, 0.0, bob.TotalWorkedHours)
	assert.Equal(t, 27, bob.LeavesUsed)

	assert.Equal(t, "January", got.Month)
	assert.Equal(t, 23*8.5+4*4.0, got.TotalExpectedHours)
}

func TestBuildMonthlyReport_InvalidMonth(t *testing.T) {
	t.Parallel()

	svc := NewReportService(nil, nil)
	sheet := uploadSheet(spreadsheet.Row{"Employee Name": "Alice", "Date": "2024-01-02"})

	_, err := svc.BuildMonthlyReport(context.Background(), sheet, report.MonthlyReportRequest{Year: 2024, Month: 13})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")
}

func TestBuildMonthlyReport_NoRows(t *testing.T) {
	t.Parallel()

	svc := NewReportService(nil, nil)
	_, err := svc.BuildMonthlyReport(context.Background(), &spreadsheet.Sheet{}, report.MonthlyReportRequest{Year: 2024, Month: 1})
	assert.ErrorIs(t, err, report.ErrNoRows)
}

func TestBuildMonthlyReport_NoUsableData(t *testing.T) {
	t.Parallel()

	svc := NewReportService(nil, nil)
	sheet := &spreadsheet.Sheet{
		Headers: []string{"Worker", "Day"}, // no recognizable columns
		Rows: []spreadsheet.Row{
			{"Worker": "Alice", "Day": "2024-01-02"},
			{"Worker": "Bob", "Day": "2024-01-03"},
		},
	}

	_, err := svc.BuildMonthlyReport(context.Background(), sheet, report.MonthlyReportRequest{Year: 2024, Month: 1})

	var noData *report.NoUsableDataError
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, 2, noData.RowsParsed)
	assert.Equal(t, 0, noData.EmployeesFound)
	assert.Equal(t, "2024-01", noData.MonthSelected)
	assert.Equal(t, []string{"Worker", "Day"}, noData.SampleColumns)
}

func TestBuildMonthlyReport_PersistsBestEffort(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewReportService(store, nil)
	sheet := uploadSheet(
		spreadsheet.Row{"Employee Name": "Alice", "Date": "2024-01-02", "In-Time": "09:00", "Out-Time": "17:30"},
	)

	got, err := svc.BuildMonthlyReport(context.Background(), sheet, report.MonthlyReportRequest{Year: 2024, Month: 1})
	require.NoError(t, err)

	assert.Equal(t, "Alice", store.employees["EMP_Alice"])
	// The whole gap-filled month is mirrored, not just observed rows.
	assert.Len(t, store.attendances, 31)
	assert.Len(t, got.Employees, 1)
}

func TestBuildMonthlyReport_StoreFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failUpserts = true
	svc := NewReportService(store, nil)
	sheet := uploadSheet(
		spreadsheet.Row{"Employee Name": "Alice", "Date": "2024-01-02", "In-Time": "09:00", "Out-Time": "17:30"},
	)

	got, err := svc.BuildMonthlyReport(context.Background(), sheet, report.MonthlyReportRequest{Year: 2024, Month: 1})

	// The report was already computed in memory; persistence failure
	// is logged, never propagated.
	require.NoError(t, err)
	assert.Len(t, got.Employees, 1)
	assert.Equal(t, 8.5, got.Employees[0].TotalWorkedHours)
}

func TestBuildMonthlyReport_DuplicateDayLastRowWins(t *testing.T) {
	t.Parallel()

	svc := NewReportService(nil, nil)
	sheet := uploadSheet(
		spreadsheet.Row{"Employee Name": "Alice", "Date": "2024-01-02", "In-Time": "08:00", "Out-Time": "12:00"},
		spreadsheet.Row{"Employee Name": "Alice", "Date": "2024-01-02", "In-Time": "09:00", "Out-Time": "17:30"},
	)

	got, err := svc.BuildMonthlyReport(context.Background(), sheet, report.MonthlyReportRequest{Year: 2024, Month: 1})
	require.NoError(t, err)

	require.Len(t, got.Employees, 1)
	jan2 := got.Employees[0].DailyRecords[1]
	require.NotNil(t, jan2.WorkedHours)
	assert.Equal(t, 8.5, *jan2.WorkedHours)
}

func TestStoredMonthlyReport_RoundTrip(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewReportService(store, nil)
	sheet := uploadSheet(
		spreadsheet.Row{"Employee Name": "Alice", "Date": "2024-01-02", "In-Time": "09:00", "Out-Time": "17:30"},
	)

	_, err := svc.BuildMonthlyReport(context.Background(), sheet, report.MonthlyReportRequest{Year: 2024, Month: 1})
	require.NoError(t, err)

	got, err := svc.StoredMonthlyReport(context.Background(), report.MonthlyReportRequest{Year: 2024, Month: 1})
	require.NoError(t, err)

	require.Len(t, got.Employees, 1)
	assert.Equal(t, 8.5, got.Employees[0].TotalWorkedHours)
	assert.Len(t, got.Employees[0].DailyRecords, 31)
}

func TestStoredMonthlyReport_StoreAbsent(t *testing.T) {
	t.Parallel()

	svc := NewReportService(nil, nil)
	_, err := svc.StoredMonthlyReport(context.Background(), report.MonthlyReportRequest{Year: 2024, Month: 1})
	assert.ErrorIs(t, err, report.ErrStoreNotConfigured)
}
