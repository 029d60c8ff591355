package repository

import "github.com/google/wire"

// ProviderSet is the wire provider set for the repository package.
var ProviderSet = wire.NewSet(NewCalculationRepository)
