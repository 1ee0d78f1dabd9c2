package assignment

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	assignmentDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/assignment"
	projectDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/project"
	userDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/capacity-tracker/internal/core/events"
)

// RepositoryAPI returns (nil, nil) when an assignment does not exist.
type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*assignmentDatamodel.Assignment, error)
	List(ctx context.Context) ([]*assignmentDatamodel.Assignment, error)
	ListByEngineer(ctx context.Context, engineerID string) ([]*assignmentDatamodel.Assignment, error)
	Create(ctx context.Context, a *assignmentDatamodel.Assignment) error
	Update(ctx context.Context, a *assignmentDatamodel.Assignment) error
	Delete(ctx context.Context, id string) error
}

type UserLookup interface {
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	ListByRole(ctx context.Context, role string) ([]*userDatamodel.User, error)
}

type ProjectLookup interface {
	GetByID(ctx context.Context, id string) (*projectDatamodel.Project, error)
}

type Service struct {
	repo         RepositoryAPI
	users        UserLookup
	projects     ProjectLookup
	publisher    events.Publisher
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(
	repo RepositoryAPI,
	users UserLookup,
	projects ProjectLookup,
	publisher events.Publisher,
	logger *slog.Logger,
	queryTimeout time.Duration,
) *Service {
	return &Service{
		repo:         repo,
		users:        users,
		projects:     projects,
		publisher:    publisher,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

func (s *Service) List(ctx context.Context) ([]*Assignment, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list assignments", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	return fromRows(rows), nil
}

// ListByEngineer fails with ErrEngineerNotFound when id is not an engineer.
func (s *Service) ListByEngineer(ctx context.Context, engineerID string) ([]*Assignment, error) {
	if err := s.requireEngineer(ctx, engineerID); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.repo.ListByEngineer(ctx, engineerID)
	if err != nil {
		s.logger.Error("failed to list engineer assignments", "engineer_id", engineerID, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	return fromRows(rows), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Assignment, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load assignment", "assignment_id", id, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	if row == nil {
		return nil, internal.ErrAssignmentNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateAssignmentDTO) (*Assignment, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}
	if err := s.checkReferences(ctx, dto.EngineerID, dto.ProjectID); err != nil {
		return nil, err
	}

	row := ToDataModel(dto.ToAssignment())
	if err := s.withTimeout(ctx, func(ctx context.Context) error { return s.repo.Create(ctx, row) }); err != nil {
		s.logger.Error("failed to create assignment", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("assignment created",
		"assignment_id", row.ID,
		"engineer_id", row.EngineerID,
		"project_id", row.ProjectID,
		"allocation", row.AllocationPercentage)
	s.publish(ctx, events.NewAssignmentCreatedEvent(row.ID, row.EngineerID, row.ProjectID))
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateAssignmentDTO) (*Assignment, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousEngineer := a.EngineerID

	if appErr := dto.Apply(a); appErr != nil {
		return nil, appErr
	}
	if err := s.checkReferences(ctx, a.EngineerID, a.ProjectID); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Now()

	row := ToDataModel(a)
	if err := s.withTimeout(ctx, func(ctx context.Context) error { return s.repo.Update(ctx, row) }); err != nil {
		s.logger.Error("failed to update assignment", "assignment_id", id, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.publish(ctx, events.NewAssignmentUpdatedEvent(a.ID, a.EngineerID, a.ProjectID))
	if previousEngineer != a.EngineerID {
		s.publish(ctx, events.NewAssignmentDeletedEvent(a.ID, previousEngineer, a.ProjectID))
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.withTimeout(ctx, func(ctx context.Context) error { return s.repo.Delete(ctx, id) }); err != nil {
		s.logger.Error("failed to delete assignment", "assignment_id", id, "error", err)
		return internal.NewInternalError("Server error", err)
	}

	s.logger.Info("assignment deleted", "assignment_id", id)
	s.publish(ctx, events.NewAssignmentDeletedEvent(a.ID, a.EngineerID, a.ProjectID))
	return nil
}

func (s *Service) requireEngineer(ctx context.Context, id string) error {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load engineer", "engineer_id", id, "error", err)
		return internal.NewInternalError("Server error", err)
	}
	if u == nil || u.Role != catalog.RoleEngineer {
		return internal.ErrEngineerNotFound
	}
	return nil
}

func (s *Service) checkReferences(ctx context.Context, engineerID, projectID string) error {
	if err := s.requireEngineer(ctx, engineerID); err != nil {
		return err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		s.logger.Error("failed to load project", "project_id", projectID, "error", err)
		return internal.NewInternalError("Server error", err)
	}
	if p == nil {
		return internal.ErrProjectNotFound
	}
	return nil
}

func (s *Service) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return fn(ctx)
}

// publish never fails the write that triggered it.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func fromRows(rows []*assignmentDatamodel.Assignment) []*Assignment {
	out := make([]*Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}
