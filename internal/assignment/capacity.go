package assignment

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/capacity"
	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	userDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/capacity-tracker/internal/user"
)

// CapacityService derives capacity from current assignments on every call.
type CapacityService struct {
	repo         RepositoryAPI
	users        UserLookup
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewCapacityService(repo RepositoryAPI, users UserLookup, logger *slog.Logger, queryTimeout time.Duration) *CapacityService {
	return &CapacityService{
		repo:         repo,
		users:        users,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// EngineerCapacity counts every assignment of the engineer, or only those
// overlapping w when w is set.
func (s *CapacityService) EngineerCapacity(ctx context.Context, engineerID string, w capacity.Window) (*CapacityResponse, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	u, err := s.users.GetByID(ctx, engineerID)
	if err != nil {
		s.logger.Error("failed to load engineer", "engineer_id", engineerID, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	if u == nil || u.Role != catalog.RoleEngineer {
		return nil, internal.ErrEngineerNotFound
	}

	rows, err := s.repo.ListByEngineer(ctx, engineerID)
	if err != nil {
		s.logger.Error("failed to list engineer assignments", "engineer_id", engineerID, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	resp := summarize(u, fromRows(rows), w)
	return &resp, nil
}

// TeamCapacity returns one entry per engineer, including engineers with no
// assignments.
func (s *CapacityService) TeamCapacity(ctx context.Context, w capacity.Window) ([]CapacityResponse, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	engineers, err := s.users.ListByRole(ctx, catalog.RoleEngineer)
	if err != nil {
		s.logger.Error("failed to list engineers", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list assignments", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	byEngineer := make(map[string][]*Assignment, len(engineers))
	for _, a := range fromRows(rows) {
		byEngineer[a.EngineerID] = append(byEngineer[a.EngineerID], a)
	}

	team := make([]CapacityResponse, 0, len(engineers))
	for _, e := range engineers {
		team = append(team, summarize(e, byEngineer[e.ID], w))
	}
	return team, nil
}

func summarize(u *userDatamodel.User, assignments []*Assignment, w capacity.Window) CapacityResponse {
	allocations := Allocations(assignments)
	if !w.IsZero() {
		allocations = capacity.Overlapping(allocations, w)
	}
	return CapacityResponse{
		Engineer: user.FromDataModel(u).ToSummary(),
		Summary:  capacity.Compute(u.MaxCapacity, allocations),
	}
}
