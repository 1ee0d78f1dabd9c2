package project

import (
	"time"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/dates"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/validation"
)

type Response struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	StartDate      dates.Date `json:"startDate"`
	EndDate        dates.Date `json:"endDate"`
	RequiredSkills []string   `json:"requiredSkills"`
	TeamSize       int        `json:"teamSize"`
	Status         string     `json:"status"`
	ManagerID      string     `json:"managerId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type SkillGapResponse struct {
	ProjectID      string   `json:"projectId"`
	ProjectName    string   `json:"projectName"`
	RequiredSkills []string `json:"requiredSkills"`
	Matched        []string `json:"matched"`
	Missing        []string `json:"missing"`
}

type StatsResponse struct {
	Total     int `json:"total"`
	Planning  int `json:"planning"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

type CreateProjectDTO struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	StartDate      dates.Date `json:"startDate"`
	EndDate        dates.Date `json:"endDate"`
	RequiredSkills []string   `json:"requiredSkills"`
	TeamSize       *int       `json:"teamSize"`
	Status         string     `json:"status"`
}

func (d CreateProjectDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("description", d.Description).MaxLength(2000)
	v.Field("endDate", d.EndDate.Time).NotBefore(d.StartDate.Time, "startDate")
	v.Field("requiredSkills", d.RequiredSkills).EachOneOf(catalog.Skills())
	v.Field("teamSize", d.TeamSize).Required().MinInt(1, internal.ErrCodeInvalidTeamSize)
	v.Field("status", d.Status).OneOf(catalog.ProjectStatuses())
	return v.Validate()
}

func (d CreateProjectDTO) ToProject(managerID string) *Project {
	status := d.Status
	if status == "" {
		status = catalog.StatusPlanning
	}
	p := &Project{
		Name:           d.Name,
		Description:    d.Description,
		StartDate:      d.StartDate.Time,
		EndDate:        d.EndDate.Time,
		RequiredSkills: append([]string{}, d.RequiredSkills...),
		Status:         status,
		ManagerID:      managerID,
	}
	if d.TeamSize != nil {
		p.TeamSize = *d.TeamSize
	}
	return p
}

// UpdateProjectDTO only touches fields present in the request.
type UpdateProjectDTO struct {
	Name           *string     `json:"name"`
	Description    *string     `json:"description"`
	StartDate      *dates.Date `json:"startDate"`
	EndDate        *dates.Date `json:"endDate"`
	RequiredSkills *[]string   `json:"requiredSkills"`
	TeamSize       *int        `json:"teamSize"`
	Status         *string     `json:"status"`
}

// Apply mutates p and then validates the merged result.
func (d UpdateProjectDTO) Apply(p *Project) *internal.AppError {
	if d.Name != nil {
		p.Name = *d.Name
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.StartDate != nil {
		p.StartDate = d.StartDate.Time
	}
	if d.EndDate != nil {
		p.EndDate = d.EndDate.Time
	}
	if d.RequiredSkills != nil {
		p.RequiredSkills = append([]string{}, (*d.RequiredSkills)...)
	}
	if d.TeamSize != nil {
		p.TeamSize = *d.TeamSize
	}
	if d.Status != nil {
		p.Status = *d.Status
	}

	v := validation.NewValidator()
	v.Field("name", p.Name).Required().MaxLength(200)
	v.Field("description", p.Description).MaxLength(2000)
	v.Field("endDate", p.EndDate).NotBefore(p.StartDate, "startDate")
	v.Field("requiredSkills", p.RequiredSkills).EachOneOf(catalog.Skills())
	v.Field("teamSize", p.TeamSize).MinInt(1, internal.ErrCodeInvalidTeamSize)
	v.Field("status", p.Status).Required().OneOf(catalog.ProjectStatuses())
	return v.Validate()
}
