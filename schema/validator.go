package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ncobase/calcgate/config"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sony/gobreaker"
)

// maxSchemaSize bounds a fetched schema body.
const maxSchemaSize = 8 << 20

// RemoteValidator fetches schemas from a schema server, caches their bodies
// and validates documents with them. Referenced schemas are resolved through
// the same cache.
type RemoteValidator struct {
	server string
	ttl    time.Duration
	cache  Cache
	client *http.Client
	cb     *gobreaker.CircuitBreaker
	logger *logger.Logger
}

// NewRemoteValidator creates a validator for the schema server of cfg.
func NewRemoteValidator(cfg *config.Schema, cache Cache, logger *logger.Logger) *RemoteValidator {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &RemoteValidator{
		server: strings.TrimRight(cfg.Server, "/"),
		ttl:    cfg.CacheTTL,
		cache:  cache,
		client: &http.Client{Timeout: cfg.Timeout},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "schema-server",
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}),
		logger: logger,
	}
}

// URL returns the schema location of kind.
func (v *RemoteValidator) URL(kind Kind) string {
	return v.server + kind.Path()
}

// Validate implements Validator.
func (v *RemoteValidator) Validate(ctx context.Context, kind Kind, document any) Result {
	if kind.Path() == "" {
		return Result{Status: Unavailable, Reason: fmt.Sprintf("unknown schema kind %q", kind)}
	}

	compiler := jsonschema.NewCompiler()
	compiler.LoadURL = func(u string) (io.ReadCloser, error) {
		b, err := v.load(ctx, u)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(b)), nil
	}

	sch, err := compiler.Compile(v.URL(kind))
	if err != nil {
		v.logger.Warnf(ctx, "schema %s unavailable: %v", kind, err)
		return Result{Status: Unavailable, Reason: err.Error()}
	}

	if err := sch.Validate(document); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return Result{Status: Invalid, Reason: verr.Error()}
		}
		return Result{Status: Unavailable, Reason: err.Error()}
	}
	return Result{Status: Valid}
}

func (v *RemoteValidator) load(ctx context.Context, u string) ([]byte, error) {
	if b, ok, err := v.cache.Get(ctx, u); err != nil {
		v.logger.Warnf(ctx, "schema cache get %s: %v", u, err)
	} else if ok {
		return b, nil
	}

	b, err := v.fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	if err := v.cache.Set(ctx, u, b, v.ttl); err != nil {
		v.logger.Warnf(ctx, "schema cache set %s: %v", u, err)
	}
	return b, nil
}

func (v *RemoteValidator) fetch(ctx context.Context, u string) ([]byte, error) {
	body, err := v.cb.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		res, err := v.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %d", u, res.StatusCode)
		}
		return io.ReadAll(io.LimitReader(res.Body, maxSchemaSize))
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}
