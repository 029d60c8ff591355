// Package metrics exposes operational metrics in the Prometheus text format.
//
// The per-state calculation gauges read through to the registry on every
// scrape; nothing about calculations is counted in process.
package metrics

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/calcgate/data/repository"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// scrapeTimeout bounds one registry count during a scrape.
const scrapeTimeout = 5 * time.Second

var stateHelp = map[repository.State]string{
	repository.StateQueued:    "Calculations in queue",
	repository.StateRunning:   "Calculations in progress",
	repository.StateSucceeded: "Calculations finished with success",
	repository.StateFailed:    "Calculations finished with error",
}

// StateCounter counts registry records by state.
type StateCounter interface {
	CountByState(ctx context.Context, state repository.State) (int, error)
}

// Metrics owns the Prometheus registry of the gateway.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the registry with the calculation gauges, HTTP request
// metrics and the Go runtime and process collectors.
func New(counter StateCounter, logger *logger.Logger) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, state := range repository.States {
		state := state
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: fmt.Sprintf("number_of_calculated_models_%d", int(state)),
			Help: stateHelp[state],
		}, func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
			defer cancel()

			n, err := counter.CountByState(ctx, state)
			if err != nil {
				logger.Errorf(ctx, "metrics: count calculations in state %d: %v", int(state), err)
				return math.NaN()
			}
			return float64(n)
		}))
	}

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
