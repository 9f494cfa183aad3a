package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/ErlanBelekov/timesheet/internal/domain"
)

var emailTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"hours": formatHours,
	"date":  func(e *domain.WorkEntry) string { return e.Date.Format(domain.DateLayout) },
	"desc":  description,
}).Parse(`<h2>{{.Title}}</h2>
<table border="1" cellpadding="4" cellspacing="0">
<thead><tr><th>Date</th><th>Hours</th><th>Description</th></tr></thead>
<tbody>
{{- range .Report.Entries}}
<tr><td>{{date .}}</td><td align="right">{{hours .Hours}}</td><td>{{desc .}}</td></tr>
{{- end}}
</tbody>
</table>
<p><strong>Total Hours:</strong> {{hours .Report.TotalHours}}<br>
<strong>Total Entries:</strong> {{.Report.EntryCount}}</p>
`))

func HTML(r *domain.Report) (string, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, struct {
		Title  string
		Report *domain.Report
	}{Title(r), r})
	if err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}
