package loader_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldtasks/internal/loader"
	"fieldtasks/internal/model"
	"fieldtasks/internal/repository"
)

type env struct {
	db     *gorm.DB
	repo   *repository.TaskRepository
	loader *loader.Loader
}

func newEnv(t *testing.T, opts ...loader.Option) *env {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "tasks.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &env{
		db:     db,
		repo:   repository.NewTaskRepository(db),
		loader: loader.New(repository.NewStore(db), opts...),
	}
}

// saveTask stores a task with n multiple-choice rows and m options, ids
// derived from the task id.
func (e *env) saveTask(t *testing.T, id string, n, m int) {
	t.Helper()
	agg := model.TaskAggregate{
		Task: model.Task{ID: id, JobID: "job-1", Type: model.TaskTypeMultipleChoice, Label: "Question " + id},
	}
	for i := 0; i < n; i++ {
		agg.MultipleChoices = append(agg.MultipleChoices, model.MultipleChoice{
			ID:          fmt.Sprintf("%s-mc%d", id, i),
			Cardinality: model.SelectOne,
		})
	}
	for i := 0; i < m; i++ {
		agg.Options = append(agg.Options, model.Option{
			ID:    fmt.Sprintf("%s-o%d", id, i),
			Code:  fmt.Sprintf("c%d", i),
			Label: fmt.Sprintf("Option %d", i),
			Index: i,
		})
	}
	require.NoError(t, e.repo.Save(context.Background(), &agg))
}

func strPtr(s string) *string { return &s }
