package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frahmantamala/capacity-tracker/internal/assignment"
	assignmentDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/assignment"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) assignment.RepositoryAPI {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*assignmentDatamodel.Assignment, error) {
	var a assignmentDatamodel.Assignment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// List preloads both sides so callers can show engineer and project names.
func (r *AssignmentRepository) List(ctx context.Context) ([]*assignmentDatamodel.Assignment, error) {
	var rows []*assignmentDatamodel.Assignment
	err := r.db.WithContext(ctx).
		Preload("Engineer").
		Preload("Project").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) ListByEngineer(ctx context.Context, engineerID string) ([]*assignmentDatamodel.Assignment, error) {
	var rows []*assignmentDatamodel.Assignment
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("engineer_id = ?", engineerID).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) Create(ctx context.Context, a *assignmentDatamodel.Assignment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *AssignmentRepository) Update(ctx context.Context, a *assignmentDatamodel.Assignment) error {
	return r.db.WithContext(ctx).Model(a).
		Omit(clause.Associations).
		Select("engineer_id", "project_id", "allocation_percentage", "start_date", "end_date", "role", "updated_at").
		Updates(a).Error
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&assignmentDatamodel.Assignment{}).Error
}
