package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/inzone-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Monthly attendance statistics
	MonthlyStats(w http.ResponseWriter, r *http.Request)

	// Monthly attendance statistics as an XLSX workbook
	ExportMonthlyStats(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// MonthlyStats handles POST /monthly-stats
func (h *reportHandlerImpl) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	var req report.MonthlyStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	stats, err := h.reportService.MonthlyStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// ExportMonthlyStats handles GET /monthly-stats/export?month=&year=&department=
func (h *reportHandlerImpl) ExportMonthlyStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	req := report.MonthlyStatsRequest{
		Month:      query.Get("month"),
		Year:       year,
		Department: query.Get("department"),
	}

	file, err := h.reportService.ExportMonthlyStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}
