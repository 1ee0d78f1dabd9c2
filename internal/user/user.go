package user

import (
	"slices"
	"time"

	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	userDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/user"
)

// User is either an engineer or a manager.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Skills       []string
	Seniority    string
	MaxCapacity  int
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsEngineer() bool {
	return u.Role == catalog.RoleEngineer
}

func (u *User) IsManager() bool {
	return u.Role == catalog.RoleManager
}

func (u *User) HasSkill(skill string) bool {
	return slices.Contains(u.Skills, skill)
}

func (u *User) ToResponse() Response {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return Response{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Skills:      skills,
		Seniority:   u.Seniority,
		MaxCapacity: u.MaxCapacity,
		Department:  u.Department,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToSummary is the reduced engineer shape embedded in capacity views.
func (u *User) ToSummary() EngineerSummary {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return EngineerSummary{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Skills:      skills,
		Seniority:   u.Seniority,
		Department:  u.Department,
		MaxCapacity: u.MaxCapacity,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Skills:       u.Skills,
		Seniority:    u.Seniority,
		MaxCapacity:  u.MaxCapacity,
		Department:   u.Department,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Skills:       u.Skills,
		Seniority:    u.Seniority,
		MaxCapacity:  u.MaxCapacity,
		Department:   u.Department,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
