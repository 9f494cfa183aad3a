package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/email"
	"github.com/ErlanBelekov/timesheet/internal/metrics"
	"github.com/ErlanBelekov/timesheet/internal/report"
	"github.com/ErlanBelekov/timesheet/internal/repository"
)

type ReportUsecase struct {
	clients repository.ClientRepository
	entries repository.WorkEntryRepository
	mailer  email.Sender
}

func NewReportUsecase(clients repository.ClientRepository, entries repository.WorkEntryRepository, mailer email.Sender) *ReportUsecase {
	return &ReportUsecase{clients: clients, entries: entries, mailer: mailer}
}

func (u *ReportUsecase) ClientReport(ctx context.Context, clientID int64, userID string) (*domain.Report, error) {
	client, err := u.clients.GetByID(ctx, clientID, userID)
	if err != nil {
		return nil, err
	}

	entries, err := u.entries.List(ctx, repository.ListWorkEntriesInput{UserID: userID, ClientID: &clientID})
	if err != nil {
		return nil, fmt.Errorf("list report entries: %w", err)
	}
	return domain.NewReport(client, entries), nil
}

func (u *ReportUsecase) ExportCSV(ctx context.Context, clientID int64, userID string) ([]byte, error) {
	return u.export(ctx, clientID, userID, report.FormatCSV, report.WriteCSV)
}

func (u *ReportUsecase) ExportPDF(ctx context.Context, clientID int64, userID string) ([]byte, error) {
	return u.export(ctx, clientID, userID, report.FormatPDF, report.WritePDF)
}

func (u *ReportUsecase) export(
	ctx context.Context,
	clientID int64,
	userID, format string,
	write func(io.Writer, *domain.Report) error,
) ([]byte, error) {
	r, err := u.ClientReport(ctx, clientID, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := write(&buf, r); err != nil {
		return nil, err
	}
	metrics.ReportExportsTotal.WithLabelValues(format).Inc()
	return buf.Bytes(), nil
}

// EmailReport sends the HTML report for a client to the given address.
func (u *ReportUsecase) EmailReport(ctx context.Context, clientID int64, userID, to string) error {
	if to == "" {
		return domain.ErrEmailFormat
	}

	r, err := u.ClientReport(ctx, clientID, userID)
	if err != nil {
		return err
	}

	body, err := report.HTML(r)
	if err != nil {
		return err
	}

	if err := u.mailer.Send(ctx, email.Message{To: to, Subject: report.Title(r), HTML: body}); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	metrics.ReportExportsTotal.WithLabelValues(report.FormatHTML).Inc()
	return nil
}
