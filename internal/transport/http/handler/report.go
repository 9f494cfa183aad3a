package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type reportUsecaser interface {
	ClientReport(ctx context.Context, clientID int64, userID string) (*domain.Report, error)
	ExportCSV(ctx context.Context, clientID int64, userID string) ([]byte, error)
	ExportPDF(ctx context.Context, clientID int64, userID string) ([]byte, error)
	EmailReport(ctx context.Context, clientID int64, userID, to string) error
}

type ReportHandler struct {
	reportUsecase reportUsecaser
	logger        *slog.Logger
}

func NewReportHandler(reportUsecase reportUsecaser, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase, logger: logger.With("component", "report_handler")}
}

type reportClient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type reportResponse struct {
	Client      reportClient        `json:"client"`
	WorkEntries []workEntryResponse `json:"workEntries"`
	TotalHours  float64             `json:"totalHours"`
	EntryCount  int                 `json:"entryCount"`
}

// GET /api/reports/client/:clientId
func (h *ReportHandler) ClientReport(ctx *gin.Context) {
	clientID, ok := pathID(ctx, "clientId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidClientID})
		return
	}

	r, err := h.reportUsecase.ClientReport(ctx.Request.Context(), clientID, ctx.GetString(middleware.KeyUserID))
	if err != nil {
		h.respondError(ctx, "client report", err)
		return
	}

	ctx.JSON(http.StatusOK, reportResponse{
		Client:      reportClient{ID: r.Client.ID, Name: r.Client.Name},
		WorkEntries: toWorkEntryResponses(r.Entries),
		TotalHours:  r.TotalHours,
		EntryCount:  r.EntryCount,
	})
}

// GET /api/reports/export/csv/:clientId
func (h *ReportHandler) ExportCSV(ctx *gin.Context) {
	h.export(ctx, "csv", "text/csv; charset=utf-8", h.reportUsecase.ExportCSV)
}

// GET /api/reports/export/pdf/:clientId
func (h *ReportHandler) ExportPDF(ctx *gin.Context) {
	h.export(ctx, "pdf", "application/pdf", h.reportUsecase.ExportPDF)
}

func (h *ReportHandler) export(
	ctx *gin.Context,
	ext, contentType string,
	render func(context.Context, int64, string) ([]byte, error),
) {
	clientID, ok := pathID(ctx, "clientId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidClientID})
		return
	}

	body, err := render(ctx.Request.Context(), clientID, ctx.GetString(middleware.KeyUserID))
	if err != nil {
		h.respondError(ctx, "export "+ext+" report", err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%d.%s"`, clientID, ext))
	ctx.Data(http.StatusOK, contentType, body)
}

// POST /api/reports/email/:clientId
// Sends the report to the caller's own address.
func (h *ReportHandler) Email(ctx *gin.Context) {
	clientID, ok := pathID(ctx, "clientId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidClientID})
		return
	}

	to := ctx.GetString(middleware.KeyUserEmail)
	if to == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errReportEmailMissing})
		return
	}

	if err := h.reportUsecase.EmailReport(ctx.Request.Context(), clientID, ctx.GetString(middleware.KeyUserID), to); err != nil {
		h.respondError(ctx, "email report", err)
		return
	}
	ctx.JSON(http.StatusAccepted, gin.H{"message": "Report sent to " + to})
}

func (h *ReportHandler) respondError(ctx *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrClientNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errClientNotFound})
		return
	}
	h.logger.ErrorContext(ctx.Request.Context(), op, "error", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}
