package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/capacity-tracker/internal/transport/rest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

var _ = Describe("HealthHandler", func() {
	It("should answer ping without touching the database", func() {
		h := rest.NewHealthHandler(fakePinger{err: errors.New("down")})
		w := httptest.NewRecorder()
		h.Ping(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("OK"))
	})

	It("should report healthy when the database responds", func() {
		h := rest.NewHealthHandler(fakePinger{})
		w := httptest.NewRecorder()
		h.Health(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components).To(HaveKey("postgres"))
	})

	It("should report unavailable without leaking the driver error", func() {
		h := rest.NewHealthHandler(fakePinger{err: errors.New("dial tcp 10.0.0.5:5432: refused")})
		w := httptest.NewRecorder()
		h.Health(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(w.Body.String()).NotTo(ContainSubstring("10.0.0.5"))
	})
})
