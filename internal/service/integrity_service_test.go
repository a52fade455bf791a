package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fieldtasks/internal/model"
	"fieldtasks/internal/repository"
)

func TestFindOrphans(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	integrity := NewIntegrityService(repository.NewIntegrityRepository(db), zap.NewNop())

	agg := model.TaskAggregate{
		Task:    model.Task{ID: "t1", JobID: "j", Type: model.TaskTypeMultipleChoice, Label: "Q"},
		Options: []model.Option{{ID: "o1"}},
	}
	require.NoError(t, svc.SaveTask(ctx, &agg))

	report, err := integrity.FindOrphans(ctx)
	require.NoError(t, err)
	assert.True(t, report.Empty())

	// Bypass the write path to leave children behind.
	require.NoError(t, db.Where("id = ?", "t1").Delete(&model.Task{}).Error)

	report, err = integrity.FindOrphans(ctx)
	require.NoError(t, err)
	assert.False(t, report.Empty())
	assert.Empty(t, report.MultipleChoices)
	require.Len(t, report.Options, 1)
	assert.Equal(t, "o1", report.Options[0].ID)
}
