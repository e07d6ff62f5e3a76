package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/pkg/spreadsheet"
	"github.com/google/uuid"
)

type ReportServiceImpl struct {
	store  report.AttendanceStore
	logger *slog.Logger
}

// NewReportService builds the aggregation driver. store may be nil,
// meaning "no persistence configured"; the computed report is identical
// either way.
func NewReportService(store report.AttendanceStore, logger *slog.Logger) report.ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServiceImpl{
		store:  store,
		logger: logger,
	}
}

// BuildMonthlyReport runs normalization and aggregation over one
// decoded sheet, then mirrors the result to the store best-effort.
func (s *ReportServiceImpl) BuildMonthlyReport(ctx context.Context, sheet *spreadsheet.Sheet, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}
	if sheet == nil || len(sheet.Rows) == 0 {
		return report.MonthlyReport{}, report.ErrNoRows
	}

	ingestID := uuid.NewString()

	normalizer := newRowNormalizer(sheet.Headers, req.Year, req.Month)

	var facts []report.AttendanceFact
	var universe []report.EmployeeRef
	seen := make(map[string]bool)
	accepted, skipped := 0, 0

	for _, row := range sheet.Rows {
		result := normalizer.normalize(row)

		// Identity counts toward the universe even when the fact was
		// rejected (cross-month or unparseable date): an employee
		// present in the file gets a fully synthesized month. First
		// occurrence fixes the display name.
		if result.employee != nil && !seen[result.employee.ID] {
			seen[result.employee.ID] = true
			universe = append(universe, *result.employee)
		}

		if result.fact == nil {
			skipped++
			continue
		}
		facts = append(facts, *result.fact)
		accepted++
	}

	s.logger.InfoContext(ctx, "normalized attendance rows",
		"ingest_id", ingestID,
		"rows_parsed", len(sheet.Rows),
		"rows_accepted", accepted,
		"rows_skipped", skipped,
		"employees", len(universe),
	)

	if len(universe) == 0 {
		return report.MonthlyReport{}, &report.NoUsableDataError{
			RowsParsed:     len(sheet.Rows),
			EmployeesFound: 0,
			MonthSelected:  fmt.Sprintf("%04d-%02d", req.Year, req.Month),
			SampleColumns:  sheet.Headers,
		}
	}

	result := Aggregate(facts, req.Year, req.Month, universe)

	// The report is fully determined at this point; persistence is a
	// best-effort mirror and must never change the request's outcome.
	s.persist(ctx, ingestID, result)

	return result, nil
}

// StoredMonthlyReport rebuilds a month from the persisted mirror using
// the same gap-filling aggregation as the upload path.
func (s *ReportServiceImpl) StoredMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}
	if s.store == nil {
		return report.MonthlyReport{}, report.ErrStoreNotConfigured
	}

	facts, employees, err := s.store.ListMonthlyFacts(ctx, req.Year, req.Month)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to load stored attendance: %w", err)
	}

	return Aggregate(facts, req.Year, req.Month, employees), nil
}

func (s *ReportServiceImpl) persist(ctx context.Context, ingestID string, result report.MonthlyReport) {
	if s.store == nil {
		return
	}

	for _, emp := range result.Employees {
		handle, err := s.store.UpsertEmployee(ctx, emp.EmployeeID, emp.EmployeeName)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to upsert employee",
				"ingest_id", ingestID,
				"employee_id", emp.EmployeeID,
				"error", err,
			)
			continue
		}
		for _, fact := range emp.DailyRecords {
			if err := s.store.UpsertAttendance(ctx, handle, fact); err != nil {
				s.logger.ErrorContext(ctx, "failed to upsert attendance record",
					"ingest_id", ingestID,
					"employee_id", emp.EmployeeID,
					"date", fact.Date,
					"error", err,
				)
			}
		}
	}
}
