package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/transport"
	"github.com/frahmantamala/capacity-tracker/pkg/logger"
)

type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler  *Handler
		rbac     *RBACAuthorization
		mockRepo *mockUserRepository
		service  *Service
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		service, _ = newTestService(mockRepo)
		handler = NewHandler(transport.NewBaseHandler(logger.Discard()), service)
		rbac = NewRBACAuthorization(logger.Discard())
	})

	post := func(h http.HandlerFunc, body any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h(w, req)
		return w
	}

	ginkgo.It("should answer a successful registration with 201", func() {
		w := post(handler.Register, map[string]any{
			"name": "Carol", "email": "carol@example.com", "password": "password",
			"role": "engineer", "seniority": "junior", "maxCapacity": 50, "department": "QA",
		})
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusCreated))

		var resp RegisterResponse
		gomega.Expect(json.NewDecoder(w.Body).Decode(&resp)).To(gomega.Succeed())
		gomega.Expect(resp.Token).ToNot(gomega.BeEmpty())
		gomega.Expect(resp.User.MaxCapacity).To(gomega.Equal(50))
	})

	ginkgo.It("should answer a duplicate registration with 409", func() {
		w := post(handler.Register, map[string]any{
			"name": "Alice", "email": "alice@example.com", "password": "password",
			"role": "manager", "department": "Frontend",
		})
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusConflict))

		var body errorBody
		gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
		gomega.Expect(body.Error.Message).To(gomega.Equal("Email already registered"))
	})

	ginkgo.It("should answer a malformed body with 400", func() {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()
		handler.Login(w, req)
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
	})

	ginkgo.It("should answer a bad login with the generic message", func() {
		w := post(handler.Login, map[string]any{"email": "alice@example.com", "password": "nope"})
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))

		var body errorBody
		gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
		gomega.Expect(body.Error.Message).To(gomega.Equal("Invalid email or password"))
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var reached bool
		var seen internal.Identity

		protected := func() http.Handler {
			return handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				seen, _ = internal.IdentityFromContext(r.Context())
			}))
		}

		ginkgo.BeforeEach(func() {
			reached = false
			seen = internal.Identity{}
		})

		ginkgo.It("should reject a missing token with 401", func() {
			w := httptest.NewRecorder()
			protected().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(reached).To(gomega.BeFalse())
		})

		ginkgo.It("should reject an invalid token with 401", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			req.Header.Set("Authorization", "Bearer not-a-token")
			w := httptest.NewRecorder()
			protected().ServeHTTP(w, req)
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should attach the identity for a valid token", func() {
			resp, err := service.Login(req().Context(), LoginDTO{Email: "alice@example.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			r.Header.Set("Authorization", "Bearer "+resp.Token)
			w := httptest.NewRecorder()
			protected().ServeHTTP(w, r)

			gomega.Expect(reached).To(gomega.BeTrue())
			gomega.Expect(seen.Role).To(gomega.Equal("engineer"))
			gomega.Expect(seen.ID).To(gomega.Equal(resp.User.ID))
		})
	})

	ginkgo.Describe("RequireRole", func() {
		gate := func(role string) int {
			h := rbac.RequireManager()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))
			r := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
			if role != "" {
				r = r.WithContext(internal.ContextWithIdentity(r.Context(), internal.Identity{ID: "u1", Role: role}))
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			return w.Code
		}

		ginkgo.It("should let managers through", func() {
			gomega.Expect(gate("manager")).To(gomega.Equal(http.StatusNoContent))
		})

		ginkgo.It("should forbid engineers", func() {
			gomega.Expect(gate("engineer")).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should reject anonymous callers with 401", func() {
			gomega.Expect(gate("")).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})

func req() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/", nil)
}
