package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/pkg/spreadsheet"
)

type ReportHandler interface {
	// Upload ingests a spreadsheet and returns the monthly report
	UploadAttendance(w http.ResponseWriter, r *http.Request)

	// Stored monthly report
	GetMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	maxUploadSize int64
}

func NewReportHandler(reportService report.ReportService, maxUploadSize int64) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		maxUploadSize: maxUploadSize,
	}
}

// UploadAttendance handles POST /reports/attendance/upload
func (h *reportHandlerImpl) UploadAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Invalid multipart form data", nil)
		return
	}

	// The month selector is validated before any decoding work.
	req, err := report.ParseMonthParam(r.FormValue("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file provided", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err)
		response.BadRequest(w, "Failed to read file", nil)
		return
	}

	sheet, err := spreadsheet.Decode(data, fileHeader.Filename, spreadsheet.DefaultOptions())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.BuildMonthlyReport(ctx, sheet, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlyAttendanceReport handles GET /reports/attendance
func (h *reportHandlerImpl) GetMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := report.ParseMonthParam(r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.StoredMonthlyReport(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
