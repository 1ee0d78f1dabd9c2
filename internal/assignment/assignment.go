package assignment

import (
	"time"

	"github.com/frahmantamala/capacity-tracker/internal/core/capacity"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/dates"
	assignmentDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/assignment"
	"github.com/frahmantamala/capacity-tracker/internal/project"
)

type Assignment struct {
	ID                   string
	EngineerID           string
	ProjectID            string
	AllocationPercentage int
	StartDate            time.Time
	EndDate              time.Time
	Role                 string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// set only when the row was loaded with its associations
	EngineerName string
	Project      *project.Project
}

func (a *Assignment) ToAllocation() capacity.Allocation {
	return capacity.Allocation{
		Percentage: a.AllocationPercentage,
		StartDate:  a.StartDate,
		EndDate:    a.EndDate,
	}
}

func (a *Assignment) ToResponse() Response {
	resp := Response{
		ID:                   a.ID,
		EngineerID:           a.EngineerID,
		ProjectID:            a.ProjectID,
		AllocationPercentage: a.AllocationPercentage,
		StartDate:            dates.New(a.StartDate),
		EndDate:              dates.New(a.EndDate),
		Role:                 a.Role,
		EngineerName:         a.EngineerName,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
	if a.Project != nil {
		resp.ProjectName = a.Project.Name
	}
	return resp
}

// ToDetailedResponse embeds the whole project, as the engineer view needs it.
func (a *Assignment) ToDetailedResponse() Response {
	resp := a.ToResponse()
	if a.Project != nil {
		p := a.Project.ToResponse()
		resp.Project = &p
	}
	return resp
}

func Allocations(assignments []*Assignment) []capacity.Allocation {
	out := make([]capacity.Allocation, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, a.ToAllocation())
	}
	return out
}

func ToDataModel(a *Assignment) *assignmentDatamodel.Assignment {
	return &assignmentDatamodel.Assignment{
		ID:                   a.ID,
		EngineerID:           a.EngineerID,
		ProjectID:            a.ProjectID,
		AllocationPercentage: a.AllocationPercentage,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		Role:                 a.Role,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

func FromDataModel(a *assignmentDatamodel.Assignment) *Assignment {
	out := &Assignment{
		ID:                   a.ID,
		EngineerID:           a.EngineerID,
		ProjectID:            a.ProjectID,
		AllocationPercentage: a.AllocationPercentage,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		Role:                 a.Role,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
	if a.Engineer != nil {
		out.EngineerName = a.Engineer.Name
	}
	if a.Project != nil {
		out.Project = project.FromDataModel(a.Project)
	}
	return out
}
