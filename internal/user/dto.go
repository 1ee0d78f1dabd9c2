package user

import (
	"time"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/validation"
)

// Response never carries the password hash.
type Response struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Skills      []string  `json:"skills"`
	Seniority   string    `json:"seniority,omitempty"`
	MaxCapacity int       `json:"maxCapacity"`
	Department  string    `json:"department"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type EngineerSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Skills      []string `json:"skills"`
	Seniority   string   `json:"seniority"`
	Department  string   `json:"department"`
	MaxCapacity int      `json:"maxCapacity"`
}

// UpdateProfileDTO only touches fields that are present in the request.
type UpdateProfileDTO struct {
	Name        *string   `json:"name"`
	Skills      *[]string `json:"skills"`
	Seniority   *string   `json:"seniority"`
	MaxCapacity *int      `json:"maxCapacity"`
	Department  *string   `json:"department"`
}

func (d UpdateProfileDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(100)
	}
	if d.Skills != nil {
		v.Field("skills", *d.Skills).EachOneOf(catalog.Skills())
	}
	if d.Seniority != nil {
		v.Field("seniority", *d.Seniority).Required().OneOf(catalog.SeniorityLevels())
	}
	if d.MaxCapacity != nil {
		v.Field("maxCapacity", *d.MaxCapacity).
			MinInt(0, internal.ErrCodeInvalidCapacity).
			MaxInt(100, internal.ErrCodeInvalidCapacity)
	}
	if d.Department != nil {
		v.Field("department", *d.Department).Required().OneOf(catalog.Departments())
	}
	return v.Validate()
}

func (d UpdateProfileDTO) Apply(u *User) {
	if d.Name != nil {
		u.Name = *d.Name
	}
	if d.Skills != nil {
		u.Skills = append([]string{}, (*d.Skills)...)
	}
	if d.Seniority != nil {
		u.Seniority = *d.Seniority
	}
	if d.MaxCapacity != nil {
		u.MaxCapacity = *d.MaxCapacity
	}
	if d.Department != nil {
		u.Department = *d.Department
	}
}
