package service

import (
	"context"

	"go.uber.org/zap"

	"fieldtasks/internal/model"
	"fieldtasks/internal/repository"
)

// OrphanReport lists child rows whose task no longer exists.
type OrphanReport struct {
	MultipleChoices []model.MultipleChoice `json:"multiple_choices"`
	Options         []model.Option         `json:"options"`
}

// Empty reports whether no orphans were found.
func (r OrphanReport) Empty() bool {
	return len(r.MultipleChoices) == 0 && len(r.Options) == 0
}

// IntegrityService checks task_id references, which the schema does not
// enforce.
type IntegrityService struct {
	repo *repository.IntegrityRepository
	log  *zap.Logger
}

func NewIntegrityService(repo *repository.IntegrityRepository, log *zap.Logger) *IntegrityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &IntegrityService{repo: repo, log: log}
}

func (s *IntegrityService) FindOrphans(ctx context.Context) (OrphanReport, error) {
	var report OrphanReport
	var err error
	if report.MultipleChoices, err = s.repo.OrphanMultipleChoices(ctx); err != nil {
		return OrphanReport{}, err
	}
	if report.Options, err = s.repo.OrphanOptions(ctx); err != nil {
		return OrphanReport{}, err
	}
	if !report.Empty() {
		s.log.Warn("orphaned child rows",
			zap.Int("multiple_choices", len(report.MultipleChoices)),
			zap.Int("options", len(report.Options)))
	}
	return report, nil
}
