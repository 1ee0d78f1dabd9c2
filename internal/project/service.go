package project

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	projectDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/project"
	userDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/capacity-tracker/internal/core/skillgap"
)

// RepositoryAPI returns (nil, nil) when a project does not exist.
type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*projectDatamodel.Project, error)
	List(ctx context.Context) ([]*projectDatamodel.Project, error)
	Create(ctx context.Context, p *projectDatamodel.Project) error
	Update(ctx context.Context, p *projectDatamodel.Project) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// EngineerLister supplies the population whose skills form the pool.
type EngineerLister interface {
	ListByRole(ctx context.Context, role string) ([]*userDatamodel.User, error)
}

type Service struct {
	repo         RepositoryAPI
	engineers    EngineerLister
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(repo RepositoryAPI, engineers EngineerLister, logger *slog.Logger, queryTimeout time.Duration) *Service {
	return &Service{
		repo:         repo,
		engineers:    engineers,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

func (s *Service) List(ctx context.Context) ([]*Project, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	projects := make([]*Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, FromDataModel(row))
	}
	return projects, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Project, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load project", "project_id", id, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	if row == nil {
		return nil, internal.ErrProjectNotFound
	}
	return FromDataModel(row), nil
}

// Create records the calling manager as the project owner.
func (s *Service) Create(ctx context.Context, managerID string, dto CreateProjectDTO) (*Project, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row := ToDataModel(dto.ToProject(managerID))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create project", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("project created", "project_id", row.ID, "manager_id", managerID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appErr := dto.Apply(p); appErr != nil {
		return nil, appErr
	}
	p.UpdatedAt = time.Now()

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := s.repo.Update(ctx, ToDataModel(p)); err != nil {
		s.logger.Error("failed to update project", "project_id", id, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	return p, nil
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("failed to count projects", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	stats := &StatsResponse{
		Planning:  counts[catalog.StatusPlanning],
		Active:    counts[catalog.StatusActive],
		Completed: counts[catalog.StatusCompleted],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

func (s *Service) skillPool(ctx context.Context) ([]string, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	engineers, err := s.engineers.ListByRole(ctx, catalog.RoleEngineer)
	if err != nil {
		s.logger.Error("failed to list engineers for skill pool", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	sets := make([][]string, 0, len(engineers))
	for _, e := range engineers {
		sets = append(sets, e.Skills)
	}
	return skillgap.PoolSkills(sets...), nil
}

func (s *Service) SkillGap(ctx context.Context, id string) (*SkillGapResponse, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pool, err := s.skillPool(ctx)
	if err != nil {
		return nil, err
	}
	gap := p.SkillGap(pool)
	return &gap, nil
}

// SkillGaps computes the gap of every project against one shared pool.
func (s *Service) SkillGaps(ctx context.Context) ([]SkillGapResponse, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	pool, err := s.skillPool(ctx)
	if err != nil {
		return nil, err
	}
	gaps := make([]SkillGapResponse, 0, len(projects))
	for _, p := range projects {
		gaps = append(gaps, p.SkillGap(pool))
	}
	return gaps, nil
}
