package results

import (
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the results package.
var ProviderSet = wire.NewSet(NewOpener, NewService)
