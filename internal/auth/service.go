package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	"github.com/frahmantamala/capacity-tracker/internal/user"
)

// Service registers users and exchanges credentials for tokens.
type Service struct {
	users          user.RepositoryAPI
	tokenGenerator TokenGenerator
	hasher         PasswordHasher
	logger         *slog.Logger
	queryTimeout   time.Duration
}

func NewService(users user.RepositoryAPI, tokenGen TokenGenerator, hasher PasswordHasher, logger *slog.Logger, queryTimeout time.Duration) *Service {
	return &Service{
		users:          users,
		tokenGenerator: tokenGen,
		hasher:         hasher,
		logger:         logger,
		queryTimeout:   queryTimeout,
	}
}

func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*RegisterResponse, error) {
	dto.Normalize()
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	existing, err := s.users.GetByEmail(ctx, dto.Email)
	if err != nil {
		s.logger.Error("register: email lookup failed", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		s.logger.Error("register: hashing failed", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	u := &user.User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         dto.Role,
		Skills:       append([]string{}, dto.Skills...),
		Seniority:    dto.Seniority,
		Department:   dto.Department,
	}
	if dto.MaxCapacity != nil {
		u.MaxCapacity = *dto.MaxCapacity
	}

	row := user.ToDataModel(u)
	if err := s.users.Create(ctx, row); err != nil {
		// a concurrent registration can pass the lookup and still hit the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrEmailTaken
		}
		s.logger.Error("register: insert failed", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	u = user.FromDataModel(row)

	token, err := s.tokenGenerator.GenerateToken(u.ID, u.Role)
	if err != nil {
		s.logger.Error("register: token generation failed", "user_id", u.ID, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return &RegisterResponse{
		Msg:   "User registered successfully",
		Token: token,
		User:  u.ToResponse(),
	}, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row, err := s.users.GetByEmail(ctx, dto.Email)
	if err != nil {
		s.logger.Error("login: user lookup failed", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	if row == nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(row.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(row.ID, row.Role)
	if err != nil {
		s.logger.Error("login: token generation failed", "user_id", row.ID, "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user.FromDataModel(row).ToResponse(),
	}, nil
}

// ValidateAccessToken resolves a bearer token to the caller identity.
func (s *Service) ValidateAccessToken(tokenString string) (internal.Identity, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return internal.Identity{}, err
	}
	if !catalog.IsRole(claims.Role) {
		return internal.Identity{}, internal.ErrInvalidToken
	}
	return internal.Identity{ID: claims.UserID, Role: claims.Role}, nil
}
