// Package remote is the result reader backend that delegates array reads to
// a reader sidecar over HTTP. The sidecar owns the binary result formats; the
// gateway only ever sees JSON.
//
//	import _ "github.com/ncobase/calcgate/results/remote"
//
// Requests are GET {endpoint}/{type}/{shape}?path={dir}&... where shape is
// one of extents, layer, series or budget.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ncobase/calcgate/config"
	"github.com/ncobase/calcgate/results"
	"github.com/sony/gobreaker"
)

// Name is the backend name used in configuration files.
const Name = "remote"

// StatusError is a non-2xx answer of the reader sidecar.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("reader responded %d: %s", e.Code, e.Body)
}

// Opener opens readers backed by the reader sidecar.
type Opener struct {
	endpoint string
	client   *http.Client
	cb       *gobreaker.CircuitBreaker
}

// New creates an opener for the sidecar at cfg.Endpoint.
func New(cfg *config.Results) (*Opener, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("remote: endpoint is empty")
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("remote: invalid endpoint: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Opener{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "result-reader",
			MaxRequests: 5,
			Interval:    10 * time.Second,
			Timeout:     5 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			IsSuccessful: func(err error) bool {
				var se *StatusError
				return err == nil || (errors.As(err, &se) && se.Code < http.StatusInternalServerError)
			},
		}),
	}, nil
}

// Open returns a reader of resultType rooted at dir. No request is made
// until the first read.
func (o *Opener) Open(_ context.Context, dir, resultType string) (results.Reader, error) {
	return &reader{opener: o, dir: dir, resultType: resultType}, nil
}

func (o *Opener) get(ctx context.Context, resultType, shape string, query url.Values, out any) error {
	u := o.endpoint + "/" + url.PathEscape(resultType) + "/" + shape + "?" + query.Encode()

	_, err := o.cb.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		res, err := o.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
			return nil, &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(body))}
		}
		return nil, json.NewDecoder(res.Body).Decode(out)
	})
	return err
}

type reader struct {
	opener     *Opener
	dir        string
	resultType string
}

func (r *reader) query(kv ...string) url.Values {
	q := url.Values{"path": {r.dir}}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(kv[i], kv[i+1])
	}
	return q
}

// Extents reports no times and zero extents when the sidecar has no output
// of this type yet.
func (r *reader) Extents(ctx context.Context) (*results.Extents, error) {
	var ext results.Extents
	err := r.opener.get(ctx, r.resultType, "extents", r.query(), &ext)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return &results.Extents{Times: []float64{}}, nil
		}
		return nil, err
	}
	if ext.Times == nil {
		ext.Times = []float64{}
	}
	return &ext, nil
}

func (r *reader) Close() error { return nil }

func (r *reader) ReadLayer(ctx context.Context, totim float64, layer int) (results.Layer, error) {
	var out results.Layer
	err := r.opener.get(ctx, r.resultType, "layer", r.query(
		"totim", formatFloat(totim),
		"layer", strconv.Itoa(layer),
	), &out)
	return out, err
}

func (r *reader) ReadSeries(ctx context.Context, layer, row, column int) ([]results.SeriesPoint, error) {
	var out []results.SeriesPoint
	err := r.opener.get(ctx, r.resultType, "series", r.query(
		"layer", strconv.Itoa(layer),
		"row", strconv.Itoa(row),
		"column", strconv.Itoa(column),
	), &out)
	return out, err
}

func (r *reader) ReadBudget(ctx context.Context, totim float64, incremental bool) (results.Budget, error) {
	var out results.Budget
	err := r.opener.get(ctx, r.resultType, "budget", r.query(
		"totim", formatFloat(totim),
		"incremental", strconv.FormatBool(incremental),
	), &out)
	return out, err
}

func (r *reader) ReadBudgetAt(ctx context.Context, idx int, incremental bool) (results.Budget, error) {
	var out results.Budget
	err := r.opener.get(ctx, r.resultType, "budget", r.query(
		"idx", strconv.Itoa(idx),
		"incremental", strconv.FormatBool(incremental),
	), &out)
	return out, err
}

func (r *reader) ReadConcentration(ctx context.Context, substance int, totim float64, layer int) (results.Layer, error) {
	var out results.Layer
	err := r.opener.get(ctx, r.resultType, "layer", r.query(
		"substance", strconv.Itoa(substance),
		"totim", formatFloat(totim),
		"layer", strconv.Itoa(layer),
	), &out)
	return out, err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func init() {
	results.RegisterOpener(Name, func(cfg *config.Results) (results.Opener, error) {
		return New(cfg)
	})
}
