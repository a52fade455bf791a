// Package loader assembles task aggregates from the local store.
package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fieldtasks/internal/model"
	"fieldtasks/internal/repository"
)

var (
	// ErrNotFound is returned when the root task does not exist.
	ErrNotFound = errors.New("task not found")
	// ErrStorage wraps any failure of the underlying store, timeouts included.
	ErrStorage = errors.New("storage error")
)

const (
	defaultTimeout = 5 * time.Second
	defaultWorkers = 4
)

// Store hands out consistent read snapshots.
type Store interface {
	ReadSnapshot(ctx context.Context, fn func(repository.Reader) error) error
}

// Loader reads a task and its related rows as one aggregate. It is safe for
// concurrent use.
type Loader struct {
	store   Store
	timeout time.Duration
	workers int
	metrics *Metrics
	log     *zap.Logger
}

type Option func(*Loader)

// WithTimeout bounds each Load. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// WithWorkers sets how many loads LoadMany runs at once.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

func New(store Store, opts ...Option) *Loader {
	l := &Loader{
		store:   store,
		timeout: defaultTimeout,
		workers: defaultWorkers,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the task with the given id plus its multiple-choice and
// option rows. All three reads share one snapshot. Missing children yield
// empty slices, a missing task yields ErrNotFound.
func (l *Loader) Load(ctx context.Context, id string) (model.TaskAggregate, error) {
	start := time.Now()
	agg, err := l.load(ctx, id)
	if err != nil && errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// Abandoned by the caller, e.g. a LoadMany sibling failed first.
		return agg, err
	}
	l.metrics.observe(err, time.Since(start))

	switch {
	case err == nil:
		l.log.Debug("task loaded",
			zap.String("task_id", id),
			zap.Int("multiple_choices", len(agg.MultipleChoices)),
			zap.Int("options", len(agg.Options)))
	case errors.Is(err, ErrStorage):
		l.log.Warn("task load failed", zap.String("task_id", id), zap.Error(err))
	}
	return agg, err
}

func (l *Loader) load(ctx context.Context, id string) (model.TaskAggregate, error) {
	if id == "" {
		return model.TaskAggregate{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var agg model.TaskAggregate
	err := l.store.ReadSnapshot(ctx, func(r repository.Reader) error {
		found, err := r.GetByID(ctx, &agg.Task, id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err := r.ScanByIndex(ctx, &agg.MultipleChoices, "task_id", id, "id"); err != nil {
			return err
		}
		return r.ScanByIndex(ctx, &agg.Options, "task_id", id, "position", "id")
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.TaskAggregate{}, err
		}
		return model.TaskAggregate{}, fmt.Errorf("%w: load task %s: %w", ErrStorage, id, err)
	}

	if agg.MultipleChoices == nil {
		agg.MultipleChoices = []model.MultipleChoice{}
	}
	if agg.Options == nil {
		agg.Options = []model.Option{}
	}
	return agg, nil
}

// Result carries the outcome of an asynchronous load.
type Result struct {
	Aggregate model.TaskAggregate
	Err       error
}

// LoadAsync runs Load on its own goroutine. The returned channel receives
// exactly one Result and is then closed.
func (l *Loader) LoadAsync(ctx context.Context, id string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		agg, err := l.Load(ctx, id)
		out <- Result{Aggregate: agg, Err: err}
	}()
	return out
}

// LoadMany loads several aggregates concurrently, each in its own snapshot.
// The result order matches ids. The first failure cancels the remaining
// loads and is returned. Cancelled siblings are not counted as failures.
func (l *Loader) LoadMany(ctx context.Context, ids []string) ([]model.TaskAggregate, error) {
	out := make([]model.TaskAggregate, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, id := range ids {
		g.Go(func() error {
			agg, err := l.Load(gctx, id)
			if err != nil {
				return err
			}
			out[i] = agg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
