package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	userDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/user"
)

// RepositoryAPI returns (nil, nil) when a lookup finds nothing.
type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	ListByRole(ctx context.Context, role string) ([]*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, u *userDatamodel.User) error
}

type Service struct {
	repo         RepositoryAPI
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(repo RepositoryAPI, logger *slog.Logger, queryTimeout time.Duration) *Service {
	return &Service{
		repo:         repo,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load user", "user_id", id, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(u), nil
}

// GetEngineer fails with ErrEngineerNotFound for managers as well as unknown ids.
func (s *Service) GetEngineer(ctx context.Context, id string) (*User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Code == internal.ErrCodeUserNotFound {
			return nil, internal.ErrEngineerNotFound
		}
		return nil, err
	}
	if !u.IsEngineer() {
		return nil, internal.ErrEngineerNotFound
	}
	return u, nil
}

func (s *Service) ListEngineers(ctx context.Context) ([]*User, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.repo.ListByRole(ctx, catalog.RoleEngineer)
	if err != nil {
		s.logger.Error("failed to list engineers", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	engineers := make([]*User, 0, len(rows))
	for _, row := range rows {
		engineers = append(engineers, FromDataModel(row))
	}
	return engineers, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, dto UpdateProfileDTO) (*User, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto.Apply(u)
	u.UpdatedAt = time.Now()

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := s.repo.Update(ctx, ToDataModel(u)); err != nil {
		s.logger.Error("failed to update profile", "user_id", id, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("profile updated", "user_id", id)
	return u, nil
}
