// Package handler provides the HTTP surface of the gateway.
package handler

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/metrics"
	"github.com/ncobase/calcgate/net/resp"
	"github.com/ncobase/calcgate/service"
)

//go:embed templates/*.html
var templates embed.FS

// Pinger checks the health of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler aggregates all HTTP handlers.
type Handler struct {
	Submission  *SubmissionHandler
	Calculation *CalculationHandler
	Result      *ResultHandler

	metrics *metrics.Metrics
	pinger  Pinger
	logger  *logger.Logger
}

// NewHandler creates a new handler instance with all sub-handlers initialized.
func NewHandler(svc *service.Service, m *metrics.Metrics, pinger Pinger, logger *logger.Logger) *Handler {
	return &Handler{
		Submission:  NewSubmissionHandler(svc.Submission, logger),
		Calculation: NewCalculationHandler(svc.Calculation, svc.Archive, logger),
		Result:      NewResultHandler(svc.Results, logger),
		metrics:     m,
		pinger:      pinger,
		logger:      logger,
	}
}

// Templates parses the embedded HTML templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"json": toJSON,
	}).ParseFS(templates, "templates/*.html"))
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(Templates())

	r.Use(CORS())
	if h.metrics != nil {
		r.Use(h.metrics.Middleware())
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	r.GET("/health", h.Health)
	r.GET("/list", h.Calculation.List)

	r.GET("/", h.Submission.Form)
	r.POST("/", h.Submission.Submit)

	calc := r.Group("/:id")
	{
		calc.GET("", h.Calculation.Details)
		calc.GET("/files/:name", h.Calculation.File)
		calc.GET("/download", h.Calculation.Download)

		calc.GET("/results/types/:type/layers/:layer/totims/:totim", h.Result.Layer)
		calc.GET("/results/types/budget/totims/:totim", h.Result.BudgetByTotim)
		calc.GET("/results/types/budget/idx/:idx", h.Result.BudgetByIndex)
		calc.GET("/results/types/concentration/substance/:substance/layers/:layer/totims/:totim", h.Result.Concentration)
		calc.GET("/results/types/observations", h.Result.Observations)
		calc.GET("/timeseries/types/:type/layers/:layer/rows/:row/columns/:column", h.Result.TimeSeries)
	}
}

// Health reports liveness and, when a store is attached, its reachability.
func (h *Handler) Health(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			h.logger.Errorf(c.Request.Context(), "health check failed: %v", err)
			resp.Fail(c.Writer, resp.ServiceUnavailable("unhealthy"))
			return
		}
	}
	resp.Success(c.Writer, map[string]string{"status": "healthy"})
}

// wantsJSON reports whether the request negotiated a JSON answer through
// its Content-Type or Accept header.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
