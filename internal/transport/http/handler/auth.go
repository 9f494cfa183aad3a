package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/metrics"
	"github.com/ErlanBelekov/timesheet/internal/transport/http/middleware"
	"github.com/ErlanBelekov/timesheet/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Login(ctx context.Context, email string) (*usecase.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID string) (*domain.User, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type loginRequest struct {
	Email string `json:"email" binding:"required,tld_email"`
}

type userResponse struct {
	Email     string    `json:"email,omitempty"`
	Mobile    string    `json:"mobile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Message   string       `json:"message"`
	User      userResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{Email: u.Email, Mobile: u.Mobile, CreatedAt: u.CreatedAt}
}

// POST /api/auth/login
// 201 when the address was seen for the first time, 200 otherwise.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidEmail})
		return
	}

	res, err := h.authUsecase.Login(ctx.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrEmailFormat) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidEmail})
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "login", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	status, message, label := http.StatusOK, "Login successful", "existing"
	if res.Created {
		status, message, label = http.StatusCreated, "User created and logged in successfully", "created"
	}
	metrics.LoginsTotal.WithLabelValues(label).Inc()

	ctx.JSON(status, loginResponse{
		Message:   message,
		User:      toUserResponse(res.User),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(ctx *gin.Context) {
	if err := h.authUsecase.Logout(ctx.Request.Context(), ctx.GetString(middleware.KeySessionID)); err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "logout", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(ctx *gin.Context) {
	user, err := h.authUsecase.Me(ctx.Request.Context(), ctx.GetString(middleware.KeyUserID))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "get current user", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
