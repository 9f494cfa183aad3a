package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func sampleReport() *domain.Report {
	day := func(s string) time.Time {
		d, _ := time.Parse(domain.DateLayout, s)
		return d
	}
	client := &domain.Client{ID: 7, Name: "Acme, Inc."}
	return domain.NewReport(client, []*domain.WorkEntry{
		{ID: 2, ClientID: 7, Hours: 2.5, Date: day("2024-03-02"), Description: ptr(`Fix "login"`)},
		{ID: 1, ClientID: 7, Hours: 1.25, Date: day("2024-03-01")},
	})
}

func TestNewReport_Totals(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, 3.75, r.TotalHours)
	assert.Equal(t, 2, r.EntryCount)

	empty := domain.NewReport(&domain.Client{Name: "Empty"}, nil)
	assert.Zero(t, empty.TotalHours)
	assert.Zero(t, empty.EntryCount)
}

func TestNewReport_RoundsToCents(t *testing.T) {
	r := domain.NewReport(&domain.Client{}, []*domain.WorkEntry{{Hours: 0.1}, {Hours: 0.2}})
	assert.Equal(t, 0.3, r.TotalHours)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sampleReport()))

	want := strings.Join([]string{
		`"Client: Acme, Inc."`,
		``,
		`Date,Hours,Description`,
		`2024-03-02,2.50,"Fix ""login"""`,
		`2024-03-01,1.25,`,
		``,
		`Total Hours,3.75`,
		`Total Entries,2`,
		``,
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WritePDF(&buf, sampleReport()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output is not a PDF")
}

func TestHTML_EscapesUserText(t *testing.T) {
	r := sampleReport()
	r.Client.Name = "<script>alert(1)</script>"

	body, err := report.HTML(r)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "Total Entries:</strong> 2")
	assert.Contains(t, body, "2.50")
}
