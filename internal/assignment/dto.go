package assignment

import (
	"time"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/capacity"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/dates"
	"github.com/frahmantamala/capacity-tracker/internal/core/common/validation"
	"github.com/frahmantamala/capacity-tracker/internal/project"
	"github.com/frahmantamala/capacity-tracker/internal/user"
)

type Response struct {
	ID                   string            `json:"id"`
	EngineerID           string            `json:"engineerId"`
	ProjectID            string            `json:"projectId"`
	AllocationPercentage int               `json:"allocationPercentage"`
	StartDate            dates.Date        `json:"startDate"`
	EndDate              dates.Date        `json:"endDate"`
	Role                 string            `json:"role"`
	EngineerName         string            `json:"engineerName,omitempty"`
	ProjectName          string            `json:"projectName,omitempty"`
	Project              *project.Response `json:"project,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// CapacityResponse flattens the capacity summary next to the engineer.
type CapacityResponse struct {
	Engineer user.EngineerSummary `json:"engineer"`
	capacity.Summary
}

type CreateAssignmentDTO struct {
	EngineerID           string     `json:"engineerId"`
	ProjectID            string     `json:"projectId"`
	AllocationPercentage *int       `json:"allocationPercentage"`
	StartDate            dates.Date `json:"startDate"`
	EndDate              dates.Date `json:"endDate"`
	Role                 string     `json:"role"`
}

func (d CreateAssignmentDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("engineerId", d.EngineerID).Required().UUID()
	v.Field("projectId", d.ProjectID).Required().UUID()
	v.Field("allocationPercentage", d.AllocationPercentage).Required().Custom(validation.ValidateAllocation)
	v.Field("endDate", d.EndDate.Time).NotBefore(d.StartDate.Time, "startDate")
	v.Field("role", d.Role).MaxLength(100)
	return v.Validate()
}

func (d CreateAssignmentDTO) ToAssignment() *Assignment {
	a := &Assignment{
		EngineerID: d.EngineerID,
		ProjectID:  d.ProjectID,
		StartDate:  d.StartDate.Time,
		EndDate:    d.EndDate.Time,
		Role:       d.Role,
	}
	if d.AllocationPercentage != nil {
		a.AllocationPercentage = *d.AllocationPercentage
	}
	return a
}

type UpdateAssignmentDTO struct {
	EngineerID           *string     `json:"engineerId"`
	ProjectID            *string     `json:"projectId"`
	AllocationPercentage *int        `json:"allocationPercentage"`
	StartDate            *dates.Date `json:"startDate"`
	EndDate              *dates.Date `json:"endDate"`
	Role                 *string     `json:"role"`
}

// Apply mutates a and validates the merged result.
func (d UpdateAssignmentDTO) Apply(a *Assignment) *internal.AppError {
	if d.EngineerID != nil {
		a.EngineerID = *d.EngineerID
	}
	if d.ProjectID != nil {
		a.ProjectID = *d.ProjectID
	}
	if d.AllocationPercentage != nil {
		a.AllocationPercentage = *d.AllocationPercentage
	}
	if d.StartDate != nil {
		a.StartDate = d.StartDate.Time
	}
	if d.EndDate != nil {
		a.EndDate = d.EndDate.Time
	}
	if d.Role != nil {
		a.Role = *d.Role
	}

	v := validation.NewValidator()
	v.Field("engineerId", a.EngineerID).Required().UUID()
	v.Field("projectId", a.ProjectID).Required().UUID()
	v.Field("allocationPercentage", a.AllocationPercentage).Custom(validation.ValidateAllocation)
	v.Field("endDate", a.EndDate).NotBefore(a.StartDate, "startDate")
	v.Field("role", a.Role).MaxLength(100)
	return v.Validate()
}
