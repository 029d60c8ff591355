package service

import (
	"context"
	"errors"
	"os"

	"github.com/ncobase/calcgate/data/repository"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/results"
	"github.com/ncobase/calcgate/selector"
	"github.com/ncobase/calcgate/workspace"
)

// BinaryNotice replaces the content of binary files.
const BinaryNotice = "This file is a binary file and cannot be shown as text"

// Times describes the time discretization of a calculation.
type Times struct {
	StartDateTime any       `json:"start_date_time"`
	TimeUnit      any       `json:"time_unit"`
	TotalTimes    []float64 `json:"total_times"`
}

// Details is the state and result availability of a calculation.
type Details struct {
	ID          string           `json:"calculation_id"`
	State       repository.State `json:"state"`
	Message     string           `json:"message"`
	Files       []string         `json:"files"`
	Times       Times            `json:"times"`
	LayerValues [][]string       `json:"layer_values"`

	Model *ModelInfo `json:"-"`
}

// File is the text content of one output file.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// CalculationService describes calculations.
type CalculationService struct {
	ws      *workspace.Workspace
	repo    repository.CalculationRepository
	results *results.Service
	logger  *logger.Logger
}

// NewCalculationService creates a new calculation service.
func NewCalculationService(
	ws *workspace.Workspace,
	repo repository.CalculationRepository,
	rs *results.Service,
	logger *logger.Logger,
) *CalculationService {
	return &CalculationService{ws: ws, repo: repo, results: rs, logger: logger}
}

// Exists reports whether a configuration document exists for id.
func (s *CalculationService) Exists(id string) bool {
	return s.ws.HasConfig(id)
}

// Model returns the model info of the stored configuration of id.
func (s *CalculationService) Model(id string) (*ModelInfo, error) {
	if !s.ws.HasConfig(id) {
		return nil, ErrNotFound
	}
	b, err := s.ws.ReadConfig(id)
	if err != nil {
		return nil, err
	}
	return ParseModelInfo(b)
}

// Details returns the state of id together with the result types available
// per layer. The worker log, when present, replaces the stored message.
func (s *CalculationService) Details(ctx context.Context, id string) (*Details, error) {
	model, err := s.Model(id)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	d := &Details{
		ID:      id,
		State:   rec.State,
		Message: rec.Message,
		Model:   model,
	}
	if log, ok := s.ws.ReadLog(id); ok {
		d.Message = log
	}

	if d.Files, err = s.ws.Entries(id); err != nil {
		return nil, err
	}

	avail, err := s.results.Summary(ctx, id)
	if err != nil {
		if errors.Is(err, results.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	d.Times = Times{
		StartDateTime: model.Dis.StartDateTime,
		TimeUnit:      model.Dis.TimeUnit,
		TotalTimes:    avail[selector.TypeHead],
	}

	values := []string{selector.TypeHead}
	for _, t := range []string{selector.TypeBudget, selector.TypeConcentration, selector.TypeDrawdown} {
		if len(avail[t]) > 0 {
			values = append(values, t)
		}
	}
	d.LayerValues = make([][]string, model.Dis.Layers)
	for i := range d.LayerValues {
		d.LayerValues[i] = values
	}
	return d, nil
}

// File returns the content of one file of id. Binary content is replaced by
// BinaryNotice.
func (s *CalculationService) File(ctx context.Context, id, name string) (*File, error) {
	p, err := s.ws.FilePath(id, name)
	if err != nil {
		if errors.Is(err, workspace.ErrInvalidName) || os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	binary, err := workspace.IsBinary(p)
	if err != nil {
		return nil, err
	}
	if binary {
		return &File{Name: name, Content: BinaryNotice}, nil
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return &File{Name: name, Content: string(b)}, nil
}

// List returns every registered calculation.
func (s *CalculationService) List(ctx context.Context) ([]*repository.Calculation, error) {
	return s.repo.List(ctx)
}
