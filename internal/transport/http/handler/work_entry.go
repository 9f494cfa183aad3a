package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/transport/http/middleware"
	"github.com/ErlanBelekov/timesheet/internal/usecase"
	"github.com/gin-gonic/gin"
)

type workEntryUsecaser interface {
	List(ctx context.Context, userID string, clientID *int64) ([]*domain.WorkEntry, error)
	Get(ctx context.Context, id int64, userID string) (*domain.WorkEntry, error)
	Create(ctx context.Context, input usecase.WorkEntryInput) (*domain.WorkEntry, error)
	Update(ctx context.Context, id int64, input usecase.WorkEntryInput) (*domain.WorkEntry, error)
	Delete(ctx context.Context, id int64, userID string) error
}

type WorkEntryHandler struct {
	workEntryUsecase workEntryUsecaser
	logger           *slog.Logger
}

func NewWorkEntryHandler(workEntryUsecase workEntryUsecaser, logger *slog.Logger) *WorkEntryHandler {
	return &WorkEntryHandler{workEntryUsecase: workEntryUsecase, logger: logger.With("component", "work_entry_handler")}
}

type workEntryRequest struct {
	ClientID    int64   `json:"clientId"    binding:"required,gt=0"`
	Hours       float64 `json:"hours"       binding:"required,gte=0.01,lte=24"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Date        string  `json:"date"        binding:"required,datetime=2006-01-02"`
}

type workEntryResponse struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	ClientName  string    `json:"client_name"`
	Hours       float64   `json:"hours"`
	Description *string   `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toWorkEntryResponse(e *domain.WorkEntry) workEntryResponse {
	return workEntryResponse{
		ID:          e.ID,
		ClientID:    e.ClientID,
		ClientName:  e.ClientName,
		Hours:       e.Hours,
		Description: e.Description,
		Date:        e.Date.Format(domain.DateLayout),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toWorkEntryResponses(entries []*domain.WorkEntry) []workEntryResponse {
	out := make([]workEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toWorkEntryResponse(e))
	}
	return out
}

func (h *WorkEntryHandler) bind(ctx *gin.Context) (usecase.WorkEntryInput, bool) {
	var req workEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return usecase.WorkEntryInput{}, false
	}
	// datetime binding already validated the layout.
	date, _ := time.Parse(domain.DateLayout, req.Date)
	return usecase.WorkEntryInput{
		UserID:      ctx.GetString(middleware.KeyUserID),
		ClientID:    req.ClientID,
		Hours:       req.Hours,
		Description: req.Description,
		Date:        date,
	}, true
}

// GET /api/work-entries?clientId=<id>
func (h *WorkEntryHandler) List(ctx *gin.Context) {
	var clientID *int64
	if raw := ctx.Query("clientId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidClientID})
			return
		}
		clientID = &id
	}

	entries, err := h.workEntryUsecase.List(ctx.Request.Context(), ctx.GetString(middleware.KeyUserID), clientID)
	if err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "list work entries", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"workEntries": toWorkEntryResponses(entries)})
}

// GET /api/work-entries/:id
func (h *WorkEntryHandler) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}

	entry, err := h.workEntryUsecase.Get(ctx.Request.Context(), id, ctx.GetString(middleware.KeyUserID))
	if err != nil {
		if errors.Is(err, domain.ErrWorkEntryNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errWorkEntryNotFound})
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "get work entry", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"workEntry": toWorkEntryResponse(entry)})
}

// POST /api/work-entries
func (h *WorkEntryHandler) Create(ctx *gin.Context) {
	input, ok := h.bind(ctx)
	if !ok {
		return
	}

	entry, err := h.workEntryUsecase.Create(ctx.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidClientID) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidClientID})
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "create work entry", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":   "Work entry created successfully",
		"workEntry": toWorkEntryResponse(entry),
	})
}

// PUT /api/work-entries/:id
func (h *WorkEntryHandler) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	input, ok := h.bind(ctx)
	if !ok {
		return
	}

	entry, err := h.workEntryUsecase.Update(ctx.Request.Context(), id, input)
	if err != nil {
		if errors.Is(err, domain.ErrWorkEntryNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errWorkEntryUpdate})
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "update work entry", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":   "Work entry updated successfully",
		"workEntry": toWorkEntryResponse(entry),
	})
}

// DELETE /api/work-entries/:id
func (h *WorkEntryHandler) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}

	if err := h.workEntryUsecase.Delete(ctx.Request.Context(), id, ctx.GetString(middleware.KeyUserID)); err != nil {
		if errors.Is(err, domain.ErrWorkEntryNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errWorkEntryNotFound})
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "delete work entry", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Work entry deleted successfully"})
}
