// Package catalog declares the fixed vocabularies shared by request
// validation and the /meta endpoint.
package catalog

import "slices"

const (
	RoleEngineer = "engineer"
	RoleManager  = "manager"

	SeniorityJunior = "junior"
	SeniorityMid    = "mid"
	SenioritySenior = "senior"

	StatusPlanning  = "planning"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

var (
	departments     = []string{"Frontend", "Backend", "Fullstack", "DevOps", "QA", "Data"}
	skills          = []string{"React", "Node.js", "TypeScript", "MongoDB", "Express", "Docker", "AWS", "Python", "Machine Learning"}
	roles           = []string{RoleEngineer, RoleManager}
	seniorityLevels = []string{SeniorityJunior, SeniorityMid, SenioritySenior}
	projectStatuses = []string{StatusPlanning, StatusActive, StatusCompleted}
)

// Catalog is the wire shape served by GET /api/meta.
type Catalog struct {
	Departments     []string `json:"departments"`
	Skills          []string `json:"skills"`
	Roles           []string `json:"roles"`
	SeniorityLevels []string `json:"seniorityLevels"`
	ProjectStatuses []string `json:"projectStatuses"`
}

// Get returns copies so callers cannot mutate the package vocabularies.
func Get() Catalog {
	return Catalog{
		Departments:     slices.Clone(departments),
		Skills:          slices.Clone(skills),
		Roles:           slices.Clone(roles),
		SeniorityLevels: slices.Clone(seniorityLevels),
		ProjectStatuses: slices.Clone(projectStatuses),
	}
}

func Departments() []string     { return slices.Clone(departments) }
func Skills() []string          { return slices.Clone(skills) }
func Roles() []string           { return slices.Clone(roles) }
func SeniorityLevels() []string { return slices.Clone(seniorityLevels) }
func ProjectStatuses() []string { return slices.Clone(projectStatuses) }

func IsDepartment(v string) bool    { return slices.Contains(departments, v) }
func IsSkill(v string) bool         { return slices.Contains(skills, v) }
func IsRole(v string) bool          { return slices.Contains(roles, v) }
func IsSeniority(v string) bool     { return slices.Contains(seniorityLevels, v) }
func IsProjectStatus(v string) bool { return slices.Contains(projectStatuses, v) }
