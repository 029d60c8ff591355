// Package service contains the gateway's business logic: accepting
// submissions, describing calculations and packaging their output.
package service

import (
	"github.com/ncobase/calcgate/config"
	"github.com/ncobase/calcgate/data/repository"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/results"
	"github.com/ncobase/calcgate/schema"
	"github.com/ncobase/calcgate/workspace"
)

// Service aggregates all business logic services.
type Service struct {
	Submission  *SubmissionService
	Calculation *CalculationService
	Archive     *ArchiveService
	Results     *results.Service
}

// NewService creates a new service instance with all sub-services initialized.
func NewService(
	cfg *config.Schema,
	ws *workspace.Workspace,
	repo repository.CalculationRepository,
	validator schema.Validator,
	rs *results.Service,
	logger *logger.Logger,
) *Service {
	return &Service{
		Submission:  NewSubmissionService(cfg, ws, repo, validator, logger),
		Calculation: NewCalculationService(ws, repo, rs, logger),
		Archive:     NewArchiveService(ws, logger),
		Results:     rs,
	}
}
