package meta_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/capacity-tracker/internal/meta"
	"github.com/frahmantamala/capacity-tracker/internal/transport"
	"github.com/frahmantamala/capacity-tracker/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMeta(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Meta Suite")
}

var _ = Describe("Meta handler", func() {
	It("should return every catalog", func() {
		h := meta.NewHandler(transport.NewBaseHandler(logger.Discard()))
		w := httptest.NewRecorder()
		h.GetMeta(w, httptest.NewRequest(http.MethodGet, "/api/meta", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		var body map[string][]string
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body).To(HaveKey("departments"))
		Expect(body["roles"]).To(ConsistOf("engineer", "manager"))
		Expect(body["seniorityLevels"]).To(Equal([]string{"junior", "mid", "senior"}))
		Expect(body["skills"]).To(ContainElement("React"))
		Expect(body["projectStatuses"]).To(ContainElement("planning"))
	})
})
