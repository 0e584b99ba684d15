package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// MonthlyStats aggregates days present per employee and Present counts per day
	MonthlyStats(ctx context.Context, req MonthlyStatsRequest) (MonthlyStats, error)

	// ExportMonthlyStats renders MonthlyStats as an XLSX workbook
	ExportMonthlyStats(ctx context.Context, req MonthlyStatsRequest) (ExportFile, error)
}
