package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/capacity-tracker/internal/assignment"
	assignmentPostgres "github.com/frahmantamala/capacity-tracker/internal/assignment/postgres"
	"github.com/frahmantamala/capacity-tracker/internal/auth"
	userDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/capacity-tracker/internal/core/testdb"
	"github.com/frahmantamala/capacity-tracker/internal/meta"
	"github.com/frahmantamala/capacity-tracker/internal/project"
	projectPostgres "github.com/frahmantamala/capacity-tracker/internal/project/postgres"
	"github.com/frahmantamala/capacity-tracker/internal/transport"
	"github.com/frahmantamala/capacity-tracker/internal/transport/middleware"
	"github.com/frahmantamala/capacity-tracker/internal/transport/rest"
	"github.com/frahmantamala/capacity-tracker/internal/user"
	userPostgres "github.com/frahmantamala/capacity-tracker/internal/user/postgres"
	"github.com/frahmantamala/capacity-tracker/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Router", func() {
	var (
		router        *chi.Mux
		managerToken  string
		engineerToken string
		engineerID    string
	)

	BeforeEach(func() {
		ctx := context.Background()
		lg := logger.Discard()
		db, err := testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		users := userPostgres.NewUserRepository(db)
		projects := projectPostgres.NewProjectRepository(db)
		assignments := assignmentPostgres.NewAssignmentRepository(db)

		tokens := auth.NewJWTTokenGenerator("router-test-secret-router-test-secret", 0)
		authService := auth.NewService(users, tokens, auth.NewBcryptHasher(4), lg, 0)
		base := transport.NewBaseHandler(lg)

		capacitySvc := assignment.NewCapacityService(assignments, users, lg, 0)
		assignmentSvc := assignment.NewService(assignments, users, projects, nil, lg, 0)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Handlers{
			DB:           fakePinger{},
			Auth:         auth.NewHandler(base, authService),
			RBAC:         auth.NewRBACAuthorization(lg),
			User:         user.NewHandler(base, user.NewService(users, lg, 0)),
			Project:      project.NewHandler(base, project.NewService(projects, users, lg, 0)),
			Assignment:   assignment.NewHandler(base, assignmentSvc, capacitySvc),
			Meta:         meta.NewHandler(base),
			LoginLimiter: middleware.NewRateLimiter(60, 2),
		}, lg)

		manager := &userDatamodel.User{Name: "Manager", Email: "manager@example.com", PasswordHash: "x", Role: "manager"}
		engineer := &userDatamodel.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: "engineer", Seniority: "mid", MaxCapacity: 100}
		Expect(users.Create(ctx, manager)).To(Succeed())
		Expect(users.Create(ctx, engineer)).To(Succeed())
		engineerID = engineer.ID

		managerToken, err = tokens.GenerateToken(manager.ID, "manager")
		Expect(err).NotTo(HaveOccurred())
		engineerToken, err = tokens.GenerateToken(engineer.ID, "engineer")
		Expect(err).NotTo(HaveOccurred())
	})

	do := func(method, path, token string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should serve the catalogs without a token", func() {
		w := do(http.MethodGet, "/api/meta", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get(middleware.TraceHeader)).NotTo(BeEmpty())
	})

	It("should require a token for profile reads", func() {
		Expect(do(http.MethodGet, "/api/profile", "", nil).Code).To(Equal(http.StatusUnauthorized))
		Expect(do(http.MethodGet, "/api/profile", "garbage", nil).Code).To(Equal(http.StatusUnauthorized))
		Expect(do(http.MethodGet, "/api/profile", engineerToken, nil).Code).To(Equal(http.StatusOK))
	})

	It("should keep project writes to managers", func() {
		body := map[string]any{"name": "Dashboard", "teamSize": 2}
		Expect(do(http.MethodPost, "/api/projects", engineerToken, body).Code).To(Equal(http.StatusForbidden))
		Expect(do(http.MethodPost, "/api/projects", managerToken, body).Code).To(Equal(http.StatusCreated))
	})

	It("should route static segments ahead of ids", func() {
		Expect(do(http.MethodGet, "/api/projects/stats", engineerToken, nil).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/api/projects/skill-gap", engineerToken, nil).Code).To(Equal(http.StatusForbidden))
		Expect(do(http.MethodGet, "/api/projects/skill-gap", managerToken, nil).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/api/engineers/capacity", managerToken, nil).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/api/engineers/"+engineerID+"/capacity", engineerToken, nil).Code).To(Equal(http.StatusOK))
	})

	It("should run the assignment lifecycle for a manager", func() {
		w := do(http.MethodPost, "/api/projects", managerToken, map[string]any{"name": "Dashboard", "teamSize": 2})
		var p project.Response
		Expect(json.NewDecoder(w.Body).Decode(&p)).To(Succeed())

		Expect(do(http.MethodPost, "/api/assignments", engineerToken, map[string]any{
			"engineerId": engineerID, "projectId": p.ID, "allocationPercentage": 60,
		}).Code).To(Equal(http.StatusForbidden))

		w = do(http.MethodPost, "/api/assignments", managerToken, map[string]any{
			"engineerId": engineerID, "projectId": p.ID, "allocationPercentage": 60,
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var a assignment.Response
		Expect(json.NewDecoder(w.Body).Decode(&a)).To(Succeed())

		w = do(http.MethodGet, "/api/engineers/"+engineerID+"/capacity", engineerToken, nil)
		Expect(w.Body.String()).To(ContainSubstring(`"available":40`))

		Expect(do(http.MethodDelete, "/api/assignments/"+a.ID, managerToken, nil).Code).To(Equal(http.StatusNoContent))
	})

	It("should throttle repeated logins", func() {
		creds := map[string]any{"email": "nobody@example.com", "password": "wrong"}
		Expect(do(http.MethodPost, "/api/auth/login", "", creds).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/api/auth/login", "", creds).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/api/auth/login", "", creds).Code).To(Equal(http.StatusTooManyRequests))
	})
})
