package schema

import (
	"github.com/google/wire"
	"github.com/ncobase/calcgate/data"
)

// ProviderSet is the wire provider set for the schema package.
var ProviderSet = wire.NewSet(
	ProvideCache,
	NewRemoteValidator,
	wire.Bind(new(Validator), new(*RemoteValidator)),
)

// ProvideCache returns a redis backed cache when redis is configured and an
// in-process cache otherwise.
func ProvideCache(d *data.Data) Cache {
	if d != nil && d.Redis != nil {
		return NewRedisCache(d.Redis, "calcgate:schema:")
	}
	return NewMemoryCache()
}
