package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/net/resp"
	"github.com/ncobase/calcgate/results"
	"github.com/ncobase/calcgate/selector"
	"github.com/ncobase/calcgate/service"
)

// fail writes the response matching err.
func fail(c *gin.Context, log *logger.Logger, id string, err error) {
	var (
		rej  *selector.Rejection
		verr *service.ValidationError
		unav *service.UnavailableError
	)

	switch {
	case errors.As(err, &rej):
		resp.Fail(c.Writer, resp.NotFound(rej.Error(), rej.Details()))
	case errors.Is(err, results.ErrNotFound), errors.Is(err, service.ErrNotFound):
		resp.Fail(c.Writer, resp.NotFound(fmt.Sprintf("Calculation with id: %s not found.", id)))
	case errors.Is(err, results.ErrNoObservations):
		resp.Fail(c.Writer, resp.NotFound(fmt.Sprintf("Head observations from calculation with id: %s not found.", id)))
	case errors.As(err, &verr):
		if len(verr.Fields) > 0 {
			resp.Fail(c.Writer, resp.Unprocessable(verr.Error(), verr.Fields))
			return
		}
		resp.Fail(c.Writer, resp.Unprocessable(verr.Error()))
	case errors.As(err, &unav):
		log.Warnf(c.Request.Context(), "submission %s: %v", id, err)
		resp.Fail(c.Writer, resp.ServiceUnavailable(unav.Error()))
	default:
		log.Errorf(c.Request.Context(), "request %s failed: %v", c.Request.URL.Path, err)
		resp.Fail(c.Writer, resp.InternalServer(err.Error()))
	}
}

// uintParam parses a non-negative integer path parameter.
func uintParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 31)
	if err != nil {
		resp.Fail(c.Writer, resp.InvalidParam(fmt.Sprintf("%s must be a non-negative integer, got %q", name, c.Param(name))))
		return 0, false
	}
	return int(v), true
}

// floatParam parses a floating point path parameter.
func floatParam(c *gin.Context, name string) (float64, bool) {
	v, err := strconv.ParseFloat(c.Param(name), 64)
	if err != nil {
		resp.Fail(c.Writer, resp.InvalidParam(fmt.Sprintf("%s must be a number, got %q", name, c.Param(name))))
		return 0, false
	}
	return v, true
}

func toJSON(v any) template.JS {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return template.JS("null")
	}
	return template.JS(b)
}
