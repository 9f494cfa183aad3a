package httptransport

import (
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/timesheet/internal/auth"
	"github.com/ErlanBelekov/timesheet/internal/transport/http/handler"
	"github.com/ErlanBelekov/timesheet/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Client     *handler.ClientHandler
	WorkEntry  *handler.WorkEntryHandler
	Report     *handler.ReportHandler
	LoginRoute bool // false when tokens come from an external identity provider
}

func NewRouter(logger *slog.Logger, authn auth.Authenticator, h Handlers) (*gin.Engine, error) {
	if err := handler.RegisterValidations(); err != nil {
		return nil, fmt.Errorf("register validations: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(authn, logger)

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	if h.LoginRoute {
		authRoutes.POST("/login", h.Auth.Login)
	}
	authRoutes.POST("/logout", authMW, h.Auth.Logout)
	authRoutes.GET("/me", authMW, h.Auth.Me)

	clients := api.Group("/clients", authMW)
	clients.GET("", h.Client.List)
	clients.POST("", h.Client.Create)
	clients.DELETE("", h.Client.DeleteAll)
	clients.GET("/:id", h.Client.GetByID)
	clients.PUT("/:id", h.Client.Update)
	clients.DELETE("/:id", h.Client.Delete)

	entries := api.Group("/work-entries", authMW)
	entries.GET("", h.WorkEntry.List)
	entries.POST("", h.WorkEntry.Create)
	entries.GET("/:id", h.WorkEntry.GetByID)
	entries.PUT("/:id", h.WorkEntry.Update)
	entries.DELETE("/:id", h.WorkEntry.Delete)

	reports := api.Group("/reports", authMW)
	reports.GET("/client/:clientId", h.Report.ClientReport)
	reports.GET("/export/csv/:clientId", h.Report.ExportCSV)
	reports.GET("/export/pdf/:clientId", h.Report.ExportPDF)
	reports.POST("/email/:clientId", h.Report.Email)

	return r, nil
}
