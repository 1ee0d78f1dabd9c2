package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/assignment"
	assignmentPostgres "github.com/frahmantamala/capacity-tracker/internal/assignment/postgres"
	"github.com/frahmantamala/capacity-tracker/internal/auth"
	"github.com/frahmantamala/capacity-tracker/internal/core/events"
	"github.com/frahmantamala/capacity-tracker/internal/meta"
	"github.com/frahmantamala/capacity-tracker/internal/project"
	projectPostgres "github.com/frahmantamala/capacity-tracker/internal/project/postgres"
	"github.com/frahmantamala/capacity-tracker/internal/transport"
	"github.com/frahmantamala/capacity-tracker/internal/transport/middleware"
	"github.com/frahmantamala/capacity-tracker/internal/transport/rest"
	"github.com/frahmantamala/capacity-tracker/internal/user"
	userPostgres "github.com/frahmantamala/capacity-tracker/internal/user/postgres"
	"github.com/frahmantamala/capacity-tracker/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

const shutdownTimeout = 30 * time.Second

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.EventBus.Shutdown(ctx); err != nil {
			deps.Logger.Error("Event handlers did not finish", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	gdb, err := openGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	timeout := config.Database.QueryTimeout
	users := userPostgres.NewUserRepository(gdb)
	projects := projectPostgres.NewProjectRepository(gdb)
	assignments := assignmentPostgres.NewAssignmentRepository(gdb)

	bus := events.NewEventBus(lg)
	capacityService := assignment.NewCapacityService(assignments, users, lg, timeout)
	assignment.NewOverAllocationWatcher(capacityService, lg).Register(bus)

	tokens := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.TokenDuration)
	authService := auth.NewService(users, tokens, auth.NewBcryptHasher(config.Security.BCryptCost), lg, timeout)

	base := transport.NewBaseHandler(lg)
	handlers := rest.Handlers{
		DB:           db,
		Auth:         auth.NewHandler(base, authService),
		RBAC:         auth.NewRBACAuthorization(lg),
		User:         user.NewHandler(base, user.NewService(users, lg, timeout)),
		Project:      project.NewHandler(base, project.NewService(projects, users, lg, timeout)),
		Assignment:   assignment.NewHandler(base, assignment.NewService(assignments, users, projects, bus, lg, timeout), capacityService),
		Meta:         meta.NewHandler(base),
		LoginLimiter: middleware.NewRateLimiter(config.Security.LoginRatePerMinute, config.Security.LoginBurst),
		Origins:      config.Server.Origins(),
		SpecPath:     config.OpenAPI.SpecPath,
	}

	if config.OpenAPI.ValidateRequests {
		doc, err := middleware.LoadOpenAPI(config.OpenAPI.SpecPath)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		validator, err := middleware.OpenAPIValidator(doc, lg)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		handlers.Validator = validator
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, handlers, lg)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   router,
		EventBus: bus,
		Logger:   lg,
	}, nil
}
