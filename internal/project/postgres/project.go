package postgres

import (
	"context"
	"errors"

	projectDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/project"
	"github.com/frahmantamala/capacity-tracker/internal/project"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.RepositoryAPI {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*projectDatamodel.Project, error) {
	var p projectDatamodel.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*projectDatamodel.Project, error) {
	var projects []*projectDatamodel.Project
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Create(ctx context.Context, p *projectDatamodel.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) Update(ctx context.Context, p *projectDatamodel.Project) error {
	return r.db.WithContext(ctx).Model(p).
		Select("name", "description", "start_date", "end_date", "required_skills", "team_size", "status", "updated_at").
		Updates(p).Error
}

type statusCount struct {
	Status string
	Count  int
}

func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).Model(&projectDatamodel.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
