package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID             string    `gorm:"primaryKey;type:uuid"`
	Name           string    `gorm:"column:name;not null"`
	Description    string    `gorm:"column:description"`
	StartDate      time.Time `gorm:"column:start_date"`
	EndDate        time.Time `gorm:"column:end_date"`
	RequiredSkills []string  `gorm:"column:required_skills;type:jsonb;serializer:json"`
	TeamSize       int       `gorm:"column:team_size;not null"`
	Status         string    `gorm:"column:status;not null;index"`
	ManagerID      string    `gorm:"column:manager_id;type:uuid;index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
