package project

import (
	"time"

	"github.com/frahmantamala/capacity-tracker/internal/core/common/dates"
	projectDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/project"
	"github.com/frahmantamala/capacity-tracker/internal/core/skillgap"
)

type Project struct {
	ID             string
	Name           string
	Description    string
	StartDate      time.Time
	EndDate        time.Time
	RequiredSkills []string
	TeamSize       int
	Status         string
	ManagerID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *Project) ToResponse() Response {
	skills := p.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return Response{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		StartDate:      dates.New(p.StartDate),
		EndDate:        dates.New(p.EndDate),
		RequiredSkills: skills,
		TeamSize:       p.TeamSize,
		Status:         p.Status,
		ManagerID:      p.ManagerID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// SkillGap compares the project's required skills with the given pool.
func (p *Project) SkillGap(pool []string) SkillGapResponse {
	gap := skillgap.Compute(p.RequiredSkills, pool)
	required := p.RequiredSkills
	if required == nil {
		required = []string{}
	}
	return SkillGapResponse{
		ProjectID:      p.ID,
		ProjectName:    p.Name,
		RequiredSkills: required,
		Matched:        gap.Matched,
		Missing:        gap.Missing,
	}
}

func ToDataModel(p *Project) *projectDatamodel.Project {
	return &projectDatamodel.Project{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		RequiredSkills: p.RequiredSkills,
		TeamSize:       p.TeamSize,
		Status:         p.Status,
		ManagerID:      p.ManagerID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromDataModel(p *projectDatamodel.Project) *Project {
	return &Project{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		RequiredSkills: p.RequiredSkills,
		TeamSize:       p.TeamSize,
		Status:         p.Status,
		ManagerID:      p.ManagerID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
