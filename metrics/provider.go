package metrics

import (
	"github.com/google/wire"
	"github.com/ncobase/calcgate/data/repository"
	"github.com/ncobase/calcgate/logging/logger"
)

// ProviderSet is the wire provider set for the metrics package.
var ProviderSet = wire.NewSet(ProvideMetrics)

// ProvideMetrics creates the metrics registry over the calculation registry.
func ProvideMetrics(repo repository.CalculationRepository, logger *logger.Logger) *Metrics {
	return New(repo, logger)
}
