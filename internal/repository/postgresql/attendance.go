package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/service/calendar"
)

type attendanceStore struct {
	db *database.DB
}

func NewAttendanceStore(db *database.DB) report.AttendanceStore {
	return &attendanceStore{db: db}
}

// UpsertEmployee implements report.AttendanceStore.
func (s *attendanceStore) UpsertEmployee(ctx context.Context, employeeID, name string) (string, error) {
	query := `
		INSERT INTO employees (id, employee_id, name, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		ON CONFLICT (employee_id)
		DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
		RETURNING id
	`

	var id string
	if err := s.db.QueryRow(ctx, query, employeeID, name).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to upsert employee %s: %w", employeeID, err)
	}
	return id, nil
}

// UpsertAttendance implements report.AttendanceStore. A later upsert
// for the same (employee, date) fully replaces the earlier one.
func (s *attendanceStore) UpsertAttendance(ctx context.Context, employeeHandle string, fact report.AttendanceFact) error {
	date, err := time.Parse("2006-01-02", fact.Date)
	if err != nil {
		return fmt.Errorf("invalid fact date %q: %w", fact.Date, err)
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, in_time, out_time, worked_hours, is_leave, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (employee_id, date)
		DO UPDATE SET
			in_time = EXCLUDED.in_time,
			out_time = EXCLUDED.out_time,
			worked_hours = EXCLUDED.worked_hours,
			is_leave = EXCLUDED.is_leave,
			updated_at = NOW()
	`

	_, err = s.db.Exec(ctx, query,
		employeeHandle,
		date,
		fact.InTime,
		fact.OutTime,
		fact.WorkedHours,
		fact.IsLeave,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance for %s on %s: %w", employeeHandle, fact.Date, err)
	}
	return nil
}

// ListMonthlyFacts implements report.AttendanceStore. Expected hours
// are recomputed from the calendar policy rather than stored.
func (s *attendanceStore) ListMonthlyFacts(ctx context.Context, year, month int) ([]report.AttendanceFact, []report.EmployeeRef, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := `
		SELECT e.employee_id, e.name, a.date, a.in_time, a.out_time, a.worked_hours, a.is_leave
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date >= $1 AND a.date < $2
		ORDER BY e.employee_id, a.date
	`

	rows, err := s.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query monthly attendance: %w", err)
	}
	defer rows.Close()

	var facts []report.AttendanceFact
	for rows.Next() {
		var fact report.AttendanceFact
		var date time.Time
		if err := rows.Scan(
			&fact.EmployeeID,
			&fact.EmployeeName,
			&date,
			&fact.InTime,
			&fact.OutTime,
			&fact.WorkedHours,
			&fact.IsLeave,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		fact.Date = date.Format("2006-01-02")
		fact.ExpectedHours = calendar.ExpectedHoursForDay(date)
		facts = append(facts, fact)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	employees, err := s.listEmployees(ctx)
	if err != nil {
		return nil, nil, err
	}
	return facts, employees, nil
}

// listEmployees returns every known employee, so employees without any
// record in the month still appear with a synthesized month.
func (s *attendanceStore) listEmployees(ctx context.Context) ([]report.EmployeeRef, error) {
	rows, err := s.db.Query(ctx, `SELECT employee_id, name FROM employees ORDER BY name, employee_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var refs []report.EmployeeRef
	for rows.Next() {
		var ref report.EmployeeRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}
	return refs, nil
}
