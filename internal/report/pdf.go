package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/go-pdf/fpdf"
)

var columnWidths = [3]float64{30, 20, 140}

func WritePDF(w io.Writer, r *domain.Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	title := Title(r)

	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	if r.Client.Description != nil && *r.Client.Description != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, tr(*r.Client.Description), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Date", "Hours", "Description"} {
		pdf.CellFormat(columnWidths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range r.Entries {
		pdf.CellFormat(columnWidths[0], 6, e.Date.Format(domain.DateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[1], 6, formatHours(e.Hours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columnWidths[2], 6, firstLine(pdf, tr(description(e)), columnWidths[2]-2), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 6, "Total Hours: "+formatHours(r.TotalHours), "", 1, "L", false, 0, "")
	pdf.CellFormat(50, 6, "Total Entries: "+strconv.Itoa(r.EntryCount), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// firstLine clips s to what fits in one table cell of width w.
func firstLine(pdf *fpdf.Fpdf, s string, w float64) string {
	if s == "" {
		return s
	}
	lines := pdf.SplitText(s, w)
	if len(lines) <= 1 {
		return s
	}
	return lines[0] + "..."
}
