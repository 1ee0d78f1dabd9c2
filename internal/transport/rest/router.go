package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/capacity-tracker/internal/assignment"
	"github.com/frahmantamala/capacity-tracker/internal/auth"
	"github.com/frahmantamala/capacity-tracker/internal/meta"
	"github.com/frahmantamala/capacity-tracker/internal/project"
	"github.com/frahmantamala/capacity-tracker/internal/transport/middleware"
	"github.com/frahmantamala/capacity-tracker/internal/transport/swagger"
	"github.com/frahmantamala/capacity-tracker/internal/user"
)

// Handlers groups everything the router mounts. Validator and LoginLimiter
// are optional.
type Handlers struct {
	DB           Pinger
	Auth         *auth.Handler
	RBAC         *auth.RBACAuthorization
	User         *user.Handler
	Project      *project.Handler
	Assignment   *assignment.Handler
	Meta         *meta.Handler
	LoginLimiter *middleware.RateLimiter
	Validator    func(http.Handler) http.Handler
	Origins      []string
	SpecPath     string
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(h.DB)

	// Apply global middleware
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.CORS(h.Origins))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	if h.SpecPath != "" {
		router.Get(swagger.SpecRoute, swagger.SpecHandler(h.SpecPath))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		if h.Validator != nil {
			r.Use(h.Validator)
		}

		r.Get("/health", healthHandler.Health)
		r.Get("/ping", healthHandler.Ping)
		r.Get("/meta", h.Meta.GetMeta)

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", h.Auth.Register)
			ar.Group(func(lr chi.Router) {
				if h.LoginLimiter != nil {
					lr.Use(h.LoginLimiter.Middleware)
				}
				lr.Post("/login", h.Auth.Login)
			})
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			pr.Get("/profile", h.User.GetProfile)
			pr.Put("/profile", h.User.UpdateProfile)

			pr.Route("/engineers", func(er chi.Router) {
				er.Get("/", h.User.ListEngineers)
				er.With(h.RBAC.RequireManager()).Get("/capacity", h.Assignment.TeamCapacity)
				er.Get("/{id}", h.User.GetEngineer)
				er.Get("/{id}/capacity", h.Assignment.EngineerCapacity)
			})

			pr.Route("/projects", func(pjr chi.Router) {
				pjr.Get("/", h.Project.ListProjects)
				pjr.Get("/stats", h.Project.Stats)
				pjr.With(h.RBAC.RequireManager()).Get("/skill-gap", h.Project.SkillGaps)
				pjr.Get("/{id}", h.Project.GetProject)
				pjr.Get("/{id}/skill-gap", h.Project.SkillGap)

				pjr.Group(func(mr chi.Router) {
					mr.Use(h.RBAC.RequireManager())
					mr.Post("/", h.Project.CreateProject)
					mr.Put("/{id}", h.Project.UpdateProject)
				})
			})

			pr.Route("/assignments", func(asr chi.Router) {
				asr.Get("/", h.Assignment.ListAssignments)
				asr.Get("/engineer/{id}", h.Assignment.ListEngineerAssignments)

				asr.Group(func(mr chi.Router) {
					mr.Use(h.RBAC.RequireManager())
					mr.Post("/", h.Assignment.CreateAssignment)
					mr.Put("/{id}", h.Assignment.UpdateAssignment)
					mr.Delete("/{id}", h.Assignment.DeleteAssignment)
				})
			})
		})
	})
}
