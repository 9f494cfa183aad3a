package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/transport/http/middleware"
	"github.com/ErlanBelekov/timesheet/internal/usecase"
	"github.com/gin-gonic/gin"
)

type clientUsecaser interface {
	List(ctx context.Context, userID string) ([]*domain.Client, error)
	Get(ctx context.Context, id int64, userID string) (*domain.Client, error)
	Create(ctx context.Context, input usecase.ClientInput) (*domain.Client, error)
	Update(ctx context.Context, id int64, input usecase.ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id int64, userID string) error
	DeleteAll(ctx context.Context, userID string) (int, error)
}

type ClientHandler struct {
	clientUsecase clientUsecaser
	logger        *slog.Logger
}

func NewClientHandler(clientUsecase clientUsecaser, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{clientUsecase: clientUsecase, logger: logger.With("component", "client_handler")}
}

type clientRequest struct {
	Name        string  `json:"name"        binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

type clientResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (h *ClientHandler) bind(ctx *gin.Context) (usecase.ClientInput, bool) {
	var req clientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return usecase.ClientInput{}, false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Client name is required"})
		return usecase.ClientInput{}, false
	}
	return usecase.ClientInput{
		UserID:      ctx.GetString(middleware.KeyUserID),
		Name:        name,
		Description: req.Description,
	}, true
}

// GET /api/clients
func (h *ClientHandler) List(ctx *gin.Context) {
	clients, err := h.clientUsecase.List(ctx.Request.Context(), ctx.GetString(middleware.KeyUserID))
	if err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "list clients", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	ctx.JSON(http.StatusOK, gin.H{"clients": out})
}

// GET /api/clients/:id
func (h *ClientHandler) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}

	client, err := h.clientUsecase.Get(ctx.Request.Context(), id, ctx.GetString(middleware.KeyUserID))
	if err != nil {
		h.respondError(ctx, "get client", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"client": toClientResponse(client)})
}

// POST /api/clients
func (h *ClientHandler) Create(ctx *gin.Context) {
	input, ok := h.bind(ctx)
	if !ok {
		return
	}

	client, err := h.clientUsecase.Create(ctx.Request.Context(), input)
	if err != nil {
		h.respondError(ctx, "create client", err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Client created successfully",
		"client":  toClientResponse(client),
	})
}

// PUT /api/clients/:id
func (h *ClientHandler) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	input, ok := h.bind(ctx)
	if !ok {
		return
	}

	client, err := h.clientUsecase.Update(ctx.Request.Context(), id, input)
	if err != nil {
		h.respondError(ctx, "update client", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Client updated successfully",
		"client":  toClientResponse(client),
	})
}

// DELETE /api/clients/:id
func (h *ClientHandler) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}

	if err := h.clientUsecase.Delete(ctx.Request.Context(), id, ctx.GetString(middleware.KeyUserID)); err != nil {
		h.respondError(ctx, "delete client", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// DELETE /api/clients
func (h *ClientHandler) DeleteAll(ctx *gin.Context) {
	n, err := h.clientUsecase.DeleteAll(ctx.Request.Context(), ctx.GetString(middleware.KeyUserID))
	if err != nil {
		h.respondError(ctx, "delete all clients", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "All clients deleted successfully", "deleted": n})
}

func (h *ClientHandler) respondError(ctx *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrClientNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errClientNotFound})
		return
	}
	h.logger.ErrorContext(ctx.Request.Context(), op, "error", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}
