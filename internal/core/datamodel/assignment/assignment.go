package assignment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	projectDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/project"
	userDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/user"
)

type Assignment struct {
	ID                   string    `gorm:"primaryKey;type:uuid"`
	EngineerID           string    `gorm:"column:engineer_id;type:uuid;not null;index"`
	ProjectID            string    `gorm:"column:project_id;type:uuid;not null;index"`
	AllocationPercentage int       `gorm:"column:allocation_percentage;not null"`
	StartDate            time.Time `gorm:"column:start_date"`
	EndDate              time.Time `gorm:"column:end_date"`
	Role                 string    `gorm:"column:role"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`

	// populated by Preload on list reads
	Engineer *userDatamodel.User       `gorm:"foreignKey:EngineerID"`
	Project  *projectDatamodel.Project `gorm:"foreignKey:ProjectID"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
