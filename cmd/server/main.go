package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/timesheet/config"
	"github.com/ErlanBelekov/timesheet/internal/auth"
	"github.com/ErlanBelekov/timesheet/internal/email"
	"github.com/ErlanBelekov/timesheet/internal/health"
	"github.com/ErlanBelekov/timesheet/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/timesheet/internal/log"
	"github.com/ErlanBelekov/timesheet/internal/metrics"
	"github.com/ErlanBelekov/timesheet/internal/repository"
	httptransport "github.com/ErlanBelekov/timesheet/internal/transport/http"
	"github.com/ErlanBelekov/timesheet/internal/transport/http/handler"
	"github.com/ErlanBelekov/timesheet/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(os.Stdout, cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, postgres.MigrateUp); err != nil {
			stop()
			pool.Close()
			log.Fatalf("migrate: %v", err)
		}
		logger.Info("migrations applied")
	}

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	variant := auth.Variant(cfg.AuthVariant)

	userRepo := postgres.NewUserRepository(pool)
	// Only bearer_session keeps server side sessions. A nil interface (not a
	// nil *SessionRepository) tells auth and login to skip them.
	var sessionRepo repository.SessionRepository
	var sessionFinder auth.SessionFinder
	if variant == auth.VariantBearerSession {
		r := postgres.NewSessionRepository(pool)
		sessionRepo, sessionFinder = r, r
	}

	var verifier auth.TokenVerifier = auth.NewHMACVerifier([]byte(cfg.JWTSecret))
	if !cfg.IssuesTokens() {
		jwks, err := auth.NewJWKSVerifier(ctx, cfg.JWKSURL)
		if err != nil {
			stop()
			pool.Close()
			log.Fatalf("jwks: %v", err)
		}
		checker.Add("jwks", jwks)
		verifier = jwks
	}

	authn, err := auth.New(variant, auth.Deps{
		Verifier: verifier,
		Sessions: sessionFinder,
		Users:    userRepo,
		Logger:   logger,
	})
	if err != nil {
		stop()
		pool.Close()
		log.Fatalf("auth: %v", err)
	}

	clientRepo := postgres.NewClientRepository(pool)
	workEntryRepo := postgres.NewWorkEntryRepository(pool)
	mailer := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, sessionRepo, auth.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTTTL))
	clientUsecase := usecase.NewClientUsecase(clientRepo)
	workEntryUsecase := usecase.NewWorkEntryUsecase(workEntryRepo)
	reportUsecase := usecase.NewReportUsecase(clientRepo, workEntryRepo, mailer)

	// Header variants never look at bearer tokens, and with JWKS the identity
	// provider mints them.
	loginRoute := cfg.IssuesTokens() && (variant == auth.VariantBearerSession || variant == auth.VariantBearerStateless)

	router, err := httptransport.NewRouter(logger, authn, httptransport.Handlers{
		Auth:       handler.NewAuthHandler(authUsecase, logger),
		Client:     handler.NewClientHandler(clientUsecase, logger),
		WorkEntry:  handler.NewWorkEntryHandler(workEntryUsecase, logger),
		Report:     handler.NewReportHandler(reportUsecase, logger),
		LoginRoute: loginRoute,
	})
	if err != nil {
		stop()
		pool.Close()
		log.Fatalf("router: %v", err)
	}

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "auth_variant", cfg.AuthVariant)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
