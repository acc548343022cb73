package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/MarufHossain14/clubops-crm/config"
	authadapter "github.com/MarufHossain14/clubops-crm/internal/adapters/auth"
	emailadapter "github.com/MarufHossain14/clubops-crm/internal/adapters/email"
	httpdelivery "github.com/MarufHossain14/clubops-crm/internal/delivery/http"
	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/controllers"
	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/middleware"
	"github.com/MarufHossain14/clubops-crm/internal/repository/postgres"
	"github.com/MarufHossain14/clubops-crm/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title ClubOps CRM API
// @version 1.0
// @description Event management CRM: events, volunteer tasks, RSVPs, sponsors, risk analysis, and notification content generation.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("opening database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("pinging database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	memberRepo := postgres.NewMemberRepository(db)
	orgRepo := postgres.NewOrgRepository(db)
	sponsorRepo := postgres.NewSponsorRepository(db)
	userRepo := postgres.NewUserRepository(db)

	issuer, verifier := authadapter.NewJWTTokens(cfg.JWTSecret)
	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	renderer := emailadapter.NewTemplateRenderer()

	riskSvc := services.NewRiskService(eventRepo, time.Now, serviceTimeout)
	emailSvc := services.NewEmailContentService(eventRepo, taskRepo, renderer, time.Now, serviceTimeout)
	projectSvc := services.NewProjectService(eventRepo, serviceTimeout)
	taskSvc := services.NewTaskService(taskRepo, eventRepo, serviceTimeout)
	rsvpSvc := services.NewRSVPService(rsvpRepo, serviceTimeout)
	memberSvc := services.NewMemberService(memberRepo, serviceTimeout)
	orgSvc := services.NewOrgService(orgRepo, serviceTimeout)
	sponsorSvc := services.NewSponsorService(sponsorRepo, serviceTimeout)
	searchSvc := services.NewSearchService(taskRepo, eventRepo, memberRepo, serviceTimeout)
	authSvc := services.NewAuthService(userRepo, hasher, issuer, serviceTimeout)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		AI:       controllers.NewAIController(logger, riskSvc, emailSvc),
		Auth:     controllers.NewAuthController(logger, authSvc),
		Projects: controllers.NewProjectController(logger, projectSvc),
		Tasks:    controllers.NewTaskController(logger, taskSvc),
		RSVPs:    controllers.NewRSVPController(logger, rsvpSvc),
		Sponsors: controllers.NewSponsorController(logger, sponsorSvc),
		Teams:    controllers.NewTeamController(logger, orgSvc),
		Members:  controllers.NewMemberController(logger, memberSvc),
		Search:   controllers.NewSearchController(logger, searchSvc),
	}, verifier)

	handler := middleware.RequestID(
		middleware.LoggingMiddleware(logger,
			middleware.CORS(cfg.CORSOrigins, mux)))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown", "err", err)
			os.Exit(1)
		}
	}
}
