package service

import (
	"context"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"fieldtasks/internal/model"
)

// Fixture is the YAML layout accepted by Seed: one job and its tasks.
//
//	job_id: job-1
//	tasks:
//	  - id: t1
//	    type: multiple_choice
//	    label: Tree species
//	    multiple_choices:
//	      - cardinality: select_one
//	    options:
//	      - code: oak
//	        label: Oak
type Fixture struct {
	JobID string        `yaml:"job_id"`
	Tasks []FixtureTask `yaml:"tasks"`
}

type FixtureTask struct {
	model.Task `yaml:",inline"`

	MultipleChoices []model.MultipleChoice `yaml:"multiple_choices"`
	Options         []model.Option         `yaml:"options"`
}

// ParseFixture decodes a fixture document. Unknown keys are rejected.
func ParseFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if f.JobID == "" {
		return Fixture{}, fmt.Errorf("fixture: job_id is required")
	}
	return f, nil
}

// Seed writes every fixture task through SaveTask. Tasks without an index
// take their position in the file. It returns the saved task ids.
func (s *TaskService) Seed(ctx context.Context, f Fixture) ([]string, error) {
	ids := make([]string, 0, len(f.Tasks))
	for i, ft := range f.Tasks {
		agg := model.TaskAggregate{
			Task:            ft.Task,
			MultipleChoices: slices.Clone(ft.MultipleChoices),
			Options:         slices.Clone(ft.Options),
		}
		agg.Task.JobID = f.JobID
		if agg.Task.Index == 0 {
			agg.Task.Index = i
		}
		for j := range agg.Options {
			if agg.Options[j].Index == 0 {
				agg.Options[j].Index = j
			}
		}
		if err := s.SaveTask(ctx, &agg); err != nil {
			return ids, fmt.Errorf("seed task %d: %w", i, err)
		}
		ids = append(ids, agg.Task.ID)
	}
	return ids, nil
}
