package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fieldtasks/internal/model"
)

// TaskRepository is the write path for tasks and their child rows.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Save upserts the task and replaces its multiple-choice and option rows
// in one transaction. Empty ids are filled with fresh UUIDs and child
// task_id columns are pointed at the task.
func (r *TaskRepository) Save(ctx context.Context, agg *model.TaskAggregate) error {
	if agg.Task.ID == "" {
		agg.Task.ID = uuid.NewString()
	}
	taskID := agg.Task.ID
	for i := range agg.MultipleChoices {
		if agg.MultipleChoices[i].ID == "" {
			agg.MultipleChoices[i].ID = uuid.NewString()
		}
		agg.MultipleChoices[i].TaskID = &taskID
	}
	for i := range agg.Options {
		if agg.Options[i].ID == "" {
			agg.Options[i].ID = uuid.NewString()
		}
		agg.Options[i].TaskID = &taskID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&agg.Task).Error; err != nil {
			return fmt.Errorf("upsert task: %w", err)
		}
		if err := deleteChildren(tx, taskID); err != nil {
			return err
		}
		if len(agg.MultipleChoices) > 0 {
			if err := tx.Create(&agg.MultipleChoices).Error; err != nil {
				return fmt.Errorf("create multiple choices: %w", err)
			}
		}
		if len(agg.Options) > 0 {
			if err := tx.Create(&agg.Options).Error; err != nil {
				return fmt.Errorf("create options: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save task %s: %w", taskID, err)
	}
	return nil
}

// Delete removes a task together with its child rows.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, taskID); err != nil {
			return err
		}
		return tx.Where("id = ?", taskID).Delete(&model.Task{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ListIDsByJob returns the ids of a job's tasks in position order.
func (r *TaskRepository) ListIDsByJob(ctx context.Context, jobID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("job_id = ?", jobID).
		Order("position ASC, id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list tasks for job: %w", err)
	}
	return ids, nil
}

func deleteChildren(tx *gorm.DB, taskID string) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&model.MultipleChoice{}).Error; err != nil {
		return fmt.Errorf("delete multiple choices: %w", err)
	}
	if err := tx.Where("task_id = ?", taskID).Delete(&model.Option{}).Error; err != nil {
		return fmt.Errorf("delete options: %w", err)
	}
	return nil
}
