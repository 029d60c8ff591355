package data

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/calcgate/data/config"
)

// ProviderSet is the wire provider set for the data package.
// It provides *Data with a cleanup function that closes all connections.
var ProviderSet = wire.NewSet(ProvideData)

// ProvideData initializes and returns the data layer with cleanup function.
func ProvideData(cfg *config.Config) (*Data, func(), error) {
	return New(context.Background(), cfg)
}
