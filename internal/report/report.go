// Package report renders a domain.Report as CSV, PDF or an HTML e-mail body.
package report

import (
	"strconv"

	"github.com/ErlanBelekov/timesheet/internal/domain"
)

const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatHTML = "html"
)

func Title(r *domain.Report) string {
	return "Time Report: " + r.Client.Name
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

func description(e *domain.WorkEntry) string {
	if e.Description == nil {
		return ""
	}
	return *e.Description
}
