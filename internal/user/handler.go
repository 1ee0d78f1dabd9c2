package user

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/validation"
	"github.com/frahmantamala/capacity-tracker/internal/transport"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetEngineer(ctx context.Context, id string) (*User, error)
	ListEngineers(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, id string, dto UpdateProfileDTO) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// GetProfile handles GET /profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	u, err := h.Service.GetByID(r.Context(), id.ID)
	if err != nil {
		h.HandleServiceError(w, r, "GetProfile", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}

// UpdateProfile handles PUT /profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	var dto UpdateProfileDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	u, err := h.Service.UpdateProfile(r.Context(), id.ID, dto)
	if err != nil {
		h.HandleServiceError(w, r, "UpdateProfile", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}

// ListEngineers handles GET /engineers
func (h *Handler) ListEngineers(w http.ResponseWriter, r *http.Request) {
	engineers, err := h.Service.ListEngineers(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, "ListEngineers", err)
		return
	}

	resp := make([]Response, 0, len(engineers))
	for _, e := range engineers {
		resp = append(resp, e.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// GetEngineer handles GET /engineers/{id}
func (h *Handler) GetEngineer(w http.ResponseWriter, r *http.Request) {
	engineerID := chi.URLParam(r, "id")
	if appErr := validation.ValidateID("id", engineerID); appErr != nil {
		h.HandleError(w, r, appErr)
		return
	}

	u, err := h.Service.GetEngineer(r.Context(), engineerID)
	if err != nil {
		h.HandleServiceError(w, r, "GetEngineer", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}
