package auth

import (
	"strings"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	return v.Validate()
}

type RegisterDTO struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Skills      []string `json:"skills"`
	Seniority   string   `json:"seniority"`
	MaxCapacity *int     `json:"maxCapacity"`
	Department  string   `json:"department"`
}

// Normalize trims whitespace and lower-cases the email.
func (d *RegisterDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
}

// Validate applies the registration rules. Engineers must state seniority
// and capacity; managers may omit both.
func (d RegisterDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MaxLength(72)
	v.Field("role", d.Role).Required().OneOf(catalog.Roles())
	v.Field("department", d.Department).Required().OneOf(catalog.Departments())
	v.Field("skills", d.Skills).EachOneOf(catalog.Skills())

	seniority := v.Field("seniority", d.Seniority)
	capacity := v.Field("maxCapacity", d.MaxCapacity)
	if d.Role == catalog.RoleEngineer {
		seniority.Required()
		capacity.Required()
	}
	seniority.OneOf(catalog.SeniorityLevels())
	capacity.MinInt(0, internal.ErrCodeInvalidCapacity).MaxInt(100, internal.ErrCodeInvalidCapacity)

	return v.Validate()
}
