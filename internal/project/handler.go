package project

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/validation"
	"github.com/frahmantamala/capacity-tracker/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, managerID string, dto CreateProjectDTO) (*Project, error)
	Update(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error)
	Stats(ctx context.Context) (*StatsResponse, error)
	SkillGap(ctx context.Context, id string) (*SkillGapResponse, error)
	SkillGaps(ctx context.Context) ([]SkillGapResponse, error)
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

func (h *Handler) projectID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if appErr := validation.ValidateID("id", id); appErr != nil {
		h.HandleError(w, r, appErr)
		return "", false
	}
	return id, true
}

// ListProjects handles GET /projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, "ListProjects", err)
		return
	}
	resp := make([]Response, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, p.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// GetProject handles GET /projects/{id}
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}
	p, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, "GetProject", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

// CreateProject handles POST /projects
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	var dto CreateProjectDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	p, err := h.Service.Create(r.Context(), identity.ID, dto)
	if err != nil {
		h.HandleServiceError(w, r, "CreateProject", err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p.ToResponse())
}

// UpdateProject handles PUT /projects/{id}
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}

	var dto UpdateProjectDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	p, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, r, "UpdateProject", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

// Stats handles GET /projects/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, "Stats", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

// SkillGap handles GET /projects/{id}/skill-gap
func (h *Handler) SkillGap(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}
	gap, err := h.Service.SkillGap(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, "SkillGap", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, gap)
}

// SkillGaps handles GET /projects/skill-gap
func (h *Handler) SkillGaps(w http.ResponseWriter, r *http.Request) {
	gaps, err := h.Service.SkillGaps(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, "SkillGaps", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, gaps)
}
