package loader_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"fieldtasks/internal/loader"
	"fieldtasks/internal/model"
	"fieldtasks/internal/repository"
)

// fakeStore serves a single task from memory and can be told to fail.
type fakeStore struct {
	task      *model.Task
	choices   []model.MultipleChoice
	options   []model.Option
	beginErr  error
	scanErr   error
	blockRead bool
}

func (f *fakeStore) ReadSnapshot(ctx context.Context, fn func(repository.Reader) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	if f.blockRead {
		<-ctx.Done()
		return ctx.Err()
	}
	return fn(f)
}

func (f *fakeStore) GetByID(_ context.Context, dest any, id string) (bool, error) {
	if f.task == nil || f.task.ID != id {
		return false, nil
	}
	*dest.(*model.Task) = *f.task
	return true, nil
}

func (f *fakeStore) ScanByIndex(_ context.Context, dest any, column string, _ any, _ ...string) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	if column != "task_id" {
		return errors.New("unexpected column " + column)
	}
	switch d := dest.(type) {
	case *[]model.MultipleChoice:
		*d = append(*d, f.choices...)
	case *[]model.Option:
		*d = append(*d, f.options...)
	}
	return nil
}

func TestLoadStorageFailures(t *testing.T) {
	ioErr := errors.New("disk I/O error")
	cases := []struct {
		name  string
		store *fakeStore
	}{
		{"begin", &fakeStore{beginErr: ioErr}},
		{"scan", &fakeStore{task: &model.Task{ID: "t1"}, scanErr: ioErr}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := loader.New(c.store).Load(context.Background(), "t1")
			assert.ErrorIs(t, err, loader.ErrStorage)
			assert.ErrorIs(t, err, ioErr)
			assert.NotErrorIs(t, err, loader.ErrNotFound)
		})
	}
}

func TestLoadTimeout(t *testing.T) {
	l := loader.New(&fakeStore{blockRead: true}, loader.WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := l.Load(context.Background(), "t1")
	assert.ErrorIs(t, err, loader.ErrStorage)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestLoadAsync(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := &fakeStore{
		task:    &model.Task{ID: "t1", Label: "Depth"},
		options: []model.Option{{ID: "o1"}},
	}
	l := loader.New(store)

	res, ok := <-l.LoadAsync(context.Background(), "t1")
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, "Depth", res.Aggregate.Task.Label)
	assert.Empty(t, res.Aggregate.MultipleChoices)
	assert.Len(t, res.Aggregate.Options, 1)

	res = <-l.LoadAsync(context.Background(), "missing")
	assert.ErrorIs(t, res.Err, loader.ErrNotFound)

	ch := l.LoadAsync(context.Background(), "t1")
	<-ch
	_, ok = <-ch
	assert.False(t, ok, "channel should be closed after one result")
}
