package assignment

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/capacity"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/dates"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/validation"
	"github.com/frahmantamala/capacity-tracker/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Assignment, error)
	ListByEngineer(ctx context.Context, engineerID string) ([]*Assignment, error)
	Create(ctx context.Context, dto CreateAssignmentDTO) (*Assignment, error)
	Update(ctx context.Context, id string, dto UpdateAssignmentDTO) (*Assignment, error)
	Delete(ctx context.Context, id string) error
}

type CapacityAPI interface {
	EngineerCapacity(ctx context.Context, engineerID string, w capacity.Window) (*CapacityResponse, error)
	TeamCapacity(ctx context.Context, w capacity.Window) ([]CapacityResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Capacity CapacityAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI, capacitySvc CapacityAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
		Capacity:    capacitySvc,
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if appErr := validation.ValidateID("id", id); appErr != nil {
		h.HandleError(w, r, appErr)
		return "", false
	}
	return id, true
}

// ListAssignments handles GET /assignments
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, "ListAssignments", err)
		return
	}
	resp := make([]Response, 0, len(assignments))
	for _, a := range assignments {
		resp = append(resp, a.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// ListEngineerAssignments handles GET /assignments/engineer/{id}
func (h *Handler) ListEngineerAssignments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	assignments, err := h.Service.ListByEngineer(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, "ListEngineerAssignments", err)
		return
	}
	resp := make([]Response, 0, len(assignments))
	for _, a := range assignments {
		resp = append(resp, a.ToDetailedResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// CreateAssignment handles POST /assignments
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var dto CreateAssignmentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	a, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, "CreateAssignment", err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a.ToResponse())
}

// UpdateAssignment handles PUT /assignments/{id}
func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var dto UpdateAssignmentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	a, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, r, "UpdateAssignment", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a.ToResponse())
}

// DeleteAssignment handles DELETE /assignments/{id}
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, r, "DeleteAssignment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EngineerCapacity handles GET /engineers/{id}/capacity
func (h *Handler) EngineerCapacity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	window, appErr := parseWindow(r)
	if appErr != nil {
		h.HandleError(w, r, appErr)
		return
	}

	summary, err := h.Capacity.EngineerCapacity(r.Context(), id, window)
	if err != nil {
		h.HandleServiceError(w, r, "EngineerCapacity", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}

// TeamCapacity handles GET /engineers/capacity
func (h *Handler) TeamCapacity(w http.ResponseWriter, r *http.Request) {
	window, appErr := parseWindow(r)
	if appErr != nil {
		h.HandleError(w, r, appErr)
		return
	}

	team, err := h.Capacity.TeamCapacity(r.Context(), window)
	if err != nil {
		h.HandleServiceError(w, r, "TeamCapacity", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, team)
}

func parseWindow(r *http.Request) (capacity.Window, *internal.AppError) {
	q := r.URL.Query()
	from, err := dates.Parse(q.Get("from"))
	if err != nil {
		return capacity.Window{}, internal.NewValidationFieldError("from", err.Error(), internal.ErrCodeInvalidValue)
	}
	to, err := dates.Parse(q.Get("to"))
	if err != nil {
		return capacity.Window{}, internal.NewValidationFieldError("to", err.Error(), internal.ErrCodeInvalidValue)
	}

	v := validation.NewValidator()
	v.Field("to", to.Time).NotBefore(from.Time, "from")
	if appErr := v.Validate(); appErr != nil {
		return capacity.Window{}, appErr
	}
	return capacity.Window{From: from.Time, To: to.Time}, nil
}
