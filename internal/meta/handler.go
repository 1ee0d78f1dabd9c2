package meta

import (
	"net/http"

	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	"github.com/frahmantamala/capacity-tracker/internal/transport"
)

// Handler exposes the fixed catalogs that forms and validators share.
type Handler struct {
	*transport.BaseHandler
}

func NewHandler(baseHandler *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: baseHandler}
}

// GetMeta handles GET /meta
func (h *Handler) GetMeta(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, catalog.Get())
}
