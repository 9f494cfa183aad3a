package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/timesheet/internal/auth"
	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Keys the Auth middleware sets on the gin context.
const (
	KeyUserID     = "userID"
	KeyUserEmail  = "userEmail"
	KeyUserMobile = "userMobile"
	KeySessionID  = "sessionID"
	KeyToken      = "token"
)

const outcomeAuthenticated = "authenticated"

// authFailure is how one authentication error is reported to the client.
type authFailure struct {
	status  int
	message string
	outcome string
}

var errInternal = authFailure{http.StatusInternalServerError, "Internal server error", "internal_error"}

// classifyAuthError maps a failed Authenticate call onto its response.
// Anything not recognised is an infrastructure fault.
func classifyAuthError(err error) authFailure {
	switch {
	case errors.Is(err, domain.ErrAuthHeaderMissing):
		return authFailure{http.StatusUnauthorized, "Authorization header required", "header_missing"}
	case errors.Is(err, domain.ErrAuthHeaderFormat):
		return authFailure{http.StatusUnauthorized, "Invalid authorization format", "header_format"}
	case errors.Is(err, domain.ErrEmailHeaderMissing):
		return authFailure{http.StatusUnauthorized, "User email header required", "header_missing"}
	case errors.Is(err, domain.ErrMobileHeaderMissing):
		return authFailure{http.StatusUnauthorized, "User mobile header required", "header_missing"}
	case errors.Is(err, domain.ErrEmailFormat):
		return authFailure{http.StatusBadRequest, "Invalid email format", "email_format"}
	case errors.Is(err, domain.ErrMobileFormat):
		return authFailure{http.StatusBadRequest, "Invalid mobile number format", "mobile_format"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return authFailure{http.StatusUnauthorized, "Invalid token", "token_invalid"}
	case errors.Is(err, domain.ErrTokenExpired):
		return authFailure{http.StatusUnauthorized, "Token expired", "token_expired"}
	case errors.Is(err, domain.ErrTokenEmailFormat):
		return authFailure{http.StatusBadRequest, "Invalid email format in token", "email_format"}
	case errors.Is(err, domain.ErrSessionInvalid):
		return authFailure{http.StatusUnauthorized, "Session expired or invalid", "session_invalid"}
	case errors.Is(err, domain.ErrUserNotFound):
		return authFailure{http.StatusUnauthorized, "User not found", "user_not_found"}
	default:
		return errInternal
	}
}

// Auth runs authn against every request and either binds the resolved
// identity or aborts with the mapped error. Handlers behind it never run for
// an unauthenticated request.
func Auth(authn auth.Authenticator, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")
	variant := string(authn.Variant())

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := authn.Authenticate(ctx, c.Request.Header)
		if err != nil {
			f := classifyAuthError(err)
			if f.status == http.StatusInternalServerError {
				logger.ErrorContext(ctx, "authenticate request", "variant", variant, "error", err)
			} else {
				logger.DebugContext(ctx, "request not authenticated", "variant", variant, "outcome", f.outcome)
			}
			metrics.AuthRequestsTotal.WithLabelValues(variant, f.outcome).Inc()
			c.AbortWithStatusJSON(f.status, gin.H{"error": f.message})
			return
		}

		metrics.AuthRequestsTotal.WithLabelValues(variant, outcomeAuthenticated).Inc()

		c.Set(KeyUserID, id.UserID)
		if id.Email != "" {
			c.Set(KeyUserEmail, id.Email)
		}
		if id.Mobile != "" {
			c.Set(KeyUserMobile, id.Mobile)
		}
		if id.SessionID != "" {
			c.Set(KeySessionID, id.SessionID)
		}
		if id.Token != "" {
			c.Set(KeyToken, id.Token)
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(ctx, id))
		c.Next()
	}
}
