package results

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ncobase/calcgate/config"
)

// Extents is what a reader reports about its result file.
type Extents struct {
	Times      []float64 `json:"times"`
	Layers     int       `json:"layers"`
	Substances int       `json:"substances"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
}

// Layer is a 2-D array of one layer, indexed [row][column].
type Layer [][]float64

// SeriesPoint is one (totim, value) pair of a time series.
type SeriesPoint [2]float64

// Budget maps budget terms to their volume.
type Budget map[string]float64

// BudgetPair holds the cumulative and incremental budget of one instant.
type BudgetPair struct {
	Cumulative  Budget `json:"cumulative"`
	Incremental Budget `json:"incremental"`
}

// Reader reads one result type of one calculation.
type Reader interface {
	Extents(ctx context.Context) (*Extents, error)
	Close() error
}

// LayerReader reads head and drawdown results.
type LayerReader interface {
	Reader
	ReadLayer(ctx context.Context, totim float64, layer int) (Layer, error)
	ReadSeries(ctx context.Context, layer, row, column int) ([]SeriesPoint, error)
}

// BudgetReader reads budget results.
type BudgetReader interface {
	Reader
	ReadBudget(ctx context.Context, totim float64, incremental bool) (Budget, error)
	ReadBudgetAt(ctx context.Context, idx int, incremental bool) (Budget, error)
}

// ConcentrationReader reads concentration results.
type ConcentrationReader interface {
	Reader
	ReadConcentration(ctx context.Context, substance int, totim float64, layer int) (Layer, error)
}

// Opener opens a reader of resultType rooted at dir.
type Opener interface {
	Open(ctx context.Context, dir, resultType string) (Reader, error)
}

// OpenerFactory builds an Opener from the results configuration.
type OpenerFactory func(cfg *config.Results) (Opener, error)

var (
	openers   = make(map[string]OpenerFactory)
	openersMu sync.RWMutex
)

// ErrUnknownReader is returned when no reader backend is registered under a name.
var ErrUnknownReader = errors.New("results: unknown reader backend")

// RegisterOpener makes a reader backend available by name.
// It is intended to be called from the init function of backend packages.
func RegisterOpener(name string, factory OpenerFactory) {
	openersMu.Lock()
	defer openersMu.Unlock()

	if factory == nil {
		panic("results: RegisterOpener factory is nil")
	}
	if _, dup := openers[name]; dup {
		panic(fmt.Sprintf("results: RegisterOpener called twice for backend %q", name))
	}
	openers[name] = factory
}

// NewOpener builds the configured reader backend.
func NewOpener(cfg *config.Results) (Opener, error) {
	if cfg == nil {
		return nil, errors.New("results: configuration is missing")
	}

	openersMu.RLock()
	factory, ok := openers[cfg.Reader]
	openersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownReader, cfg.Reader, ListOpeners())
	}
	return factory(cfg)
}

// ListOpeners returns the names of registered reader backends.
func ListOpeners() []string {
	openersMu.RLock()
	defer openersMu.RUnlock()

	names := make([]string, 0, len(openers))
	for name := range openers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
