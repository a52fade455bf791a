package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fieldtasks/internal/model"
)

// IntegrityRepository finds child rows whose task_id points at no task.
// The schema has no foreign key constraint, so these can appear when the
// write path is bypassed.
type IntegrityRepository struct {
	db *gorm.DB
}

func NewIntegrityRepository(db *gorm.DB) *IntegrityRepository {
	return &IntegrityRepository{db: db}
}

const orphanCondition = "task_id IS NOT NULL AND task_id NOT IN (SELECT id FROM tasks)"

func (r *IntegrityRepository) OrphanMultipleChoices(ctx context.Context) ([]model.MultipleChoice, error) {
	var rows []model.MultipleChoice
	if err := r.db.WithContext(ctx).Where(orphanCondition).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find orphan multiple choices: %w", err)
	}
	return rows, nil
}

func (r *IntegrityRepository) OrphanOptions(ctx context.Context) ([]model.Option, error) {
	var rows []model.Option
	if err := r.db.WithContext(ctx).Where(orphanCondition).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find orphan options: %w", err)
	}
	return rows, nil
}
