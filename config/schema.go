package config

import (
	"time"

	"github.com/spf13/viper"
)

// Schema remote schema validator config struct
type Schema struct {
	Server   string
	Timeout  time.Duration
	CacheTTL time.Duration
	// UnavailableAsInvalid reports an unreachable schema server as an
	// invalid document (422) instead of a temporary failure. Off by default,
	// so submissions made while the schema server is down get 503 and can be
	// retried.
	UnavailableAsInvalid bool
}

func getSchemaConfig(v *viper.Viper) *Schema {
	return &Schema{
		Server:               v.GetString("schema.server"),
		Timeout:              durationOr(v, "schema.timeout", 10*time.Second),
		CacheTTL:             durationOr(v, "schema.cache_ttl", time.Hour),
		UnavailableAsInvalid: v.GetBool("schema.unavailable_as_invalid"),
	}
}

// durationOr returns the duration under key, or def when it is not positive.
func durationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return def
}
