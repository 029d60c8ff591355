package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ncobase/calcgate/config"
	"github.com/ncobase/calcgate/data/repository"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/schema"
	"github.com/ncobase/calcgate/validator"
	"github.com/ncobase/calcgate/workspace"
)

// Identity is the public identity of a submitted calculation.
type Identity struct {
	ID   string `json:"calculation_id"`
	Link string `json:"link"`
}

// SubmissionService accepts job documents.
type SubmissionService struct {
	cfg       *config.Schema
	ws        *workspace.Workspace
	repo      repository.CalculationRepository
	validator schema.Validator
	logger    *logger.Logger
	now       func() time.Time
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(
	cfg *config.Schema,
	ws *workspace.Workspace,
	repo repository.CalculationRepository,
	validator schema.Validator,
	logger *logger.Logger,
) *SubmissionService {
	if cfg == nil {
		cfg = &config.Schema{}
	}
	return &SubmissionService{
		cfg:       cfg,
		ws:        ws,
		repo:      repo,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// SubmitUpload stores an uploaded document in the uploads folder, submits
// it and removes the stored copy again, whatever the outcome.
func (s *SubmissionService) SubmitUpload(ctx context.Context, r io.Reader) (*Identity, error) {
	p, err := s.ws.SaveUpload(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			s.logger.Warnf(ctx, "failed to remove upload %s: %v", p, err)
		}
	}()

	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := DecodeDocument(f)
	if err != nil {
		return nil, err
	}
	return s.Submit(ctx, doc)
}

// Submit validates doc and queues it unless a calculation with the same id
// already finished successfully. A previous attempt that did not finish
// successfully is discarded.
func (s *SubmissionService) Submit(ctx context.Context, doc *Document) (*Identity, error) {
	if err := s.validate(ctx, doc); err != nil {
		return nil, err
	}

	id := doc.CalculationID
	identity := &Identity{ID: id, Link: "/" + id}

	if s.ws.HasConfig(id) {
		finished, err := s.ws.Finished(id)
		if err != nil {
			return nil, err
		}
		if finished {
			s.logger.Infof(ctx, "calculation %s already finished", id)
			return identity, nil
		}
		s.logger.Infof(ctx, "discarding unfinished calculation %s", id)
		if err := s.ws.Purge(id); err != nil {
			return nil, err
		}
	}

	if err := s.ws.Claim(id); err != nil {
		if errors.Is(err, workspace.ErrClaimed) {
			s.logger.Infof(ctx, "calculation %s claimed by a concurrent submission", id)
			return identity, nil
		}
		return nil, err
	}

	if err := s.ws.WriteConfig(id, doc.Raw()); err != nil {
		s.release(ctx, id)
		return nil, err
	}

	now := s.now()
	err := s.repo.Insert(ctx, id, repository.StateQueued, now, now)
	if errors.Is(err, repository.ErrDuplicate) {
		err = s.repo.Requeue(ctx, id, now)
	}
	if err != nil {
		s.release(ctx, id)
		return nil, err
	}

	s.logger.Infof(ctx, "calculation %s queued", id)
	return identity, nil
}

func (s *SubmissionService) validate(ctx context.Context, doc *Document) error {
	if fields := validator.ValidateStruct(doc); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if err := s.check(ctx, schema.KindModflow, doc.Data.MF); err != nil {
		return err
	}
	if doc.HasMT() {
		if err := s.check(ctx, schema.KindMt3d, doc.Data.MT); err != nil {
			return err
		}
	}
	return nil
}

func (s *SubmissionService) check(ctx context.Context, kind schema.Kind, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return &ValidationError{Reason: fmt.Sprintf("%s document is not valid JSON", kind)}
	}

	res := s.validator.Validate(ctx, kind, v)
	switch res.Status {
	case schema.Valid:
		return nil
	case schema.Invalid:
		return &ValidationError{Reason: fmt.Sprintf("This JSON file does not match with the %s JSON Schema: %s", kind, res.Reason)}
	default:
		if s.cfg.UnavailableAsInvalid {
			return &ValidationError{Reason: fmt.Sprintf("%s document could not be validated", kind)}
		}
		return &UnavailableError{Reason: res.Reason}
	}
}

// release removes a directory claimed by a submission that failed later on.
func (s *SubmissionService) release(ctx context.Context, id string) {
	if err := s.ws.Purge(id); err != nil {
		s.logger.Errorf(ctx, "failed to release calculation %s: %v", id, err)
	}
}
