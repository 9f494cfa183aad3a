package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ErlanBelekov/timesheet/internal/domain"
)

// WriteCSV writes the client name, one row per entry and the totals, with a
// blank line between the sections.
func WriteCSV(w io.Writer, r *domain.Report) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"Client: " + r.Client.Name},
		{},
		{"Date", "Hours", "Description"},
	}
	for _, e := range r.Entries {
		records = append(records, []string{
			e.Date.Format(domain.DateLayout),
			formatHours(e.Hours),
			description(e),
		})
	}
	records = append(records,
		[]string{},
		[]string{"Total Hours", formatHours(r.TotalHours)},
		[]string{"Total Entries", strconv.Itoa(r.EntryCount)},
	)

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
