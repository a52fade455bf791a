package service

import (
	"context"
	"fmt"
	"strings"

	"fieldtasks/internal/loader"
	"fieldtasks/internal/model"
	"fieldtasks/internal/repository"
)

// AggregateLoader is the read side used by TaskService.
type AggregateLoader interface {
	Load(ctx context.Context, id string) (model.TaskAggregate, error)
	LoadMany(ctx context.Context, ids []string) ([]model.TaskAggregate, error)
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
	loader   AggregateLoader
}

func NewTaskService(taskRepo *repository.TaskRepository, loader AggregateLoader) *TaskService {
	return &TaskService{taskRepo: taskRepo, loader: loader}
}

var knownTaskTypes = map[model.TaskType]bool{
	model.TaskTypeText:           true,
	model.TaskTypeNumber:         true,
	model.TaskTypeDate:           true,
	model.TaskTypeTime:           true,
	model.TaskTypeMultipleChoice: true,
	model.TaskTypePhoto:          true,
	model.TaskTypeDropPin:        true,
	model.TaskTypeDrawArea:       true,
}

// SaveTask validates and stores a task with its children.
func (s *TaskService) SaveTask(ctx context.Context, agg *model.TaskAggregate) error {
	agg.Task.Label = strings.TrimSpace(agg.Task.Label)
	if agg.Task.Label == "" {
		return fmt.Errorf("label is required")
	}
	if agg.Task.JobID == "" {
		return fmt.Errorf("job id is required")
	}
	if !knownTaskTypes[agg.Task.Type] {
		return fmt.Errorf("unknown task type %q", agg.Task.Type)
	}
	for _, mc := range agg.MultipleChoices {
		if mc.Cardinality != model.SelectOne && mc.Cardinality != model.SelectMultiple {
			return fmt.Errorf("task %q: unknown cardinality %q", agg.Task.Label, mc.Cardinality)
		}
	}
	return s.taskRepo.Save(ctx, agg)
}

func (s *TaskService) GetTask(ctx context.Context, taskID string) (model.TaskAggregate, error) {
	return s.loader.Load(ctx, taskID)
}

// JobTasks loads the aggregates of every task in a job, in position order.
func (s *TaskService) JobTasks(ctx context.Context, jobID string) ([]model.TaskAggregate, error) {
	ids, err := s.taskRepo.ListIDsByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: job %s: %w", loader.ErrStorage, jobID, err)
	}
	return s.loader.LoadMany(ctx, ids)
}

// DeleteTask removes a task and its child rows.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	return s.taskRepo.Delete(ctx, taskID)
}
