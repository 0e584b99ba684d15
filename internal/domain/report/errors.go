package report

import "errors"

var (
	ErrInvalidMonth           = errors.New("month must be a month name or number")
	ErrInvalidYear            = errors.New("year must be a valid year")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
