package report

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/pkg/spreadsheet"
)

type ReportService interface {
	// BuildMonthlyReport runs the full pipeline for one uploaded sheet:
	// normalization, gap-filling aggregation, and best-effort
	// persistence when a store is configured.
	BuildMonthlyReport(ctx context.Context, sheet *spreadsheet.Sheet, req MonthlyReportRequest) (MonthlyReport, error)

	// StoredMonthlyReport rebuilds the report for a month from facts
	// previously mirrored to the attendance store.
	StoredMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
}
