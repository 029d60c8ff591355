// Package results answers result queries over the output of a calculation.
// Each query opens a reader, takes fresh extents from it, validates the
// selectors and only then reads the requested array.
package results

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/selector"
)

var (
	// ErrNotFound is returned for calculations without a configuration document.
	ErrNotFound = errors.New("calculation not found")
	// ErrUnsupported is returned when a reader cannot serve the requested shape.
	ErrUnsupported = errors.New("reader does not support this result type")
)

// Directory locates calculation directories.
type Directory interface {
	Dir(id string) string
	HasConfig(id string) bool
}

// Service is the result query service.
type Service struct {
	dirs   Directory
	opener Opener
	logger *logger.Logger
}

// NewService creates a result query service.
func NewService(dirs Directory, opener Opener, logger *logger.Logger) *Service {
	return &Service{dirs: dirs, opener: opener, logger: logger}
}

// LayerAt returns the layer slice of a head or drawdown result at totim.
func (s *Service) LayerAt(ctx context.Context, id, resultType string, totim float64, layer int) (Layer, error) {
	if err := s.exists(id); err != nil {
		return nil, err
	}
	if err := selector.ValidateType(resultType, selector.TypeHead, selector.TypeDrawdown); err != nil {
		return nil, err
	}

	r, ext, err := s.open(ctx, id, resultType)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := selector.ValidateTime(totim, ext.Times); err != nil {
		return nil, err
	}
	if err := selector.ValidateLayer(layer, ext.Layers); err != nil {
		return nil, err
	}

	lr, ok := r.(LayerReader)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, resultType)
	}
	return lr.ReadLayer(ctx, totim, layer)
}

// TimeSeries returns the full time series of a head or drawdown result at a
// cell.
func (s *Service) TimeSeries(ctx context.Context, id, resultType string, layer, row, column int) ([]SeriesPoint, error) {
	if err := s.exists(id); err != nil {
		return nil, err
	}
	if err := selector.ValidateType(resultType, selector.TypeHead, selector.TypeDrawdown); err != nil {
		return nil, err
	}

	r, ext, err := s.open(ctx, id, resultType)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := selector.ValidateLayer(layer, ext.Layers); err != nil {
		return nil, err
	}
	if err := selector.ValidateRow(row, ext.Rows); err != nil {
		return nil, err
	}
	if err := selector.ValidateColumn(column, ext.Columns); err != nil {
		return nil, err
	}

	lr, ok := r.(LayerReader)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, resultType)
	}
	return lr.ReadSeries(ctx, layer, row, column)
}

// BudgetAt returns the cumulative and incremental budget at totim.
func (s *Service) BudgetAt(ctx context.Context, id string, totim float64) (*BudgetPair, error) {
	br, ext, err := s.openBudget(ctx, id)
	if err != nil {
		return nil, err
	}
	defer br.Close()

	if err := selector.ValidateTime(totim, ext.Times); err != nil {
		return nil, err
	}

	return readPair(func(incremental bool) (Budget, error) {
		return br.ReadBudget(ctx, totim, incremental)
	})
}

// BudgetAtIndex returns the cumulative and incremental budget of the idx-th
// output time.
func (s *Service) BudgetAtIndex(ctx context.Context, id string, idx int) (*BudgetPair, error) {
	br, ext, err := s.openBudget(ctx, id)
	if err != nil {
		return nil, err
	}
	defer br.Close()

	if err := selector.ValidateIndex(idx, len(ext.Times)); err != nil {
		return nil, err
	}

	return readPair(func(incremental bool) (Budget, error) {
		return br.ReadBudgetAt(ctx, idx, incremental)
	})
}

// ConcentrationAt returns the concentration slice of substance at totim and
// layer. Substance is checked before time and layer.
func (s *Service) ConcentrationAt(ctx context.Context, id string, substance int, totim float64, layer int) (Layer, error) {
	if err := s.exists(id); err != nil {
		return nil, err
	}

	r, ext, err := s.open(ctx, id, selector.TypeConcentration)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := selector.ValidateSubstance(substance, ext.Substances); err != nil {
		return nil, err
	}
	if err := selector.ValidateTime(totim, ext.Times); err != nil {
		return nil, err
	}
	if err := selector.ValidateLayer(layer, ext.Layers); err != nil {
		return nil, err
	}

	cr, ok := r.(ConcentrationReader)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, selector.TypeConcentration)
	}
	return cr.ReadConcentration(ctx, substance, totim, layer)
}

// Availability maps result types to their output times.
type Availability map[string][]float64

// Types lists every result type a summary covers.
var Types = []string{selector.TypeHead, selector.TypeBudget, selector.TypeConcentration, selector.TypeDrawdown}

// Summary returns the output times of every result type. A type whose
// reader fails to open reports no times.
func (s *Service) Summary(ctx context.Context, id string) (Availability, error) {
	if err := s.exists(id); err != nil {
		return nil, err
	}

	out := make(Availability, len(Types))
	for _, t := range Types {
		out[t] = []float64{}

		r, ext, err := s.open(ctx, id, t)
		if err != nil {
			s.logger.Debugf(ctx, "no %s results for calculation %s: %v", t, id, err)
			continue
		}
		r.Close()
		if ext.Times != nil {
			out[t] = ext.Times
		}
	}
	return out, nil
}

func (s *Service) exists(id string) error {
	if !s.dirs.HasConfig(id) {
		return ErrNotFound
	}
	return nil
}

func (s *Service) open(ctx context.Context, id, resultType string) (Reader, *Extents, error) {
	r, err := s.opener.Open(ctx, s.dirs.Dir(id), resultType)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s reader: %w", resultType, err)
	}
	ext, err := r.Extents(ctx)
	if err != nil {
		r.Close()
		return nil, nil, fmt.Errorf("read %s extents: %w", resultType, err)
	}
	return r, ext, nil
}

func (s *Service) openBudget(ctx context.Context, id string) (BudgetReader, *Extents, error) {
	if err := s.exists(id); err != nil {
		return nil, nil, err
	}
	r, ext, err := s.open(ctx, id, selector.TypeBudget)
	if err != nil {
		return nil, nil, err
	}
	br, ok := r.(BudgetReader)
	if !ok {
		r.Close()
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupported, selector.TypeBudget)
	}
	return br, ext, nil
}

func readPair(read func(incremental bool) (Budget, error)) (*BudgetPair, error) {
	cumulative, err := read(false)
	if err != nil {
		return nil, err
	}
	incremental, err := read(true)
	if err != nil {
		return nil, err
	}
	return &BudgetPair{Cumulative: cumulative, Incremental: incremental}, nil
}
