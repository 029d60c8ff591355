package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/net/resp"
	"github.com/ncobase/calcgate/results"
)

// ResultHandler serves result slices of finished calculations.
type ResultHandler struct {
	s      *results.Service
	logger *logger.Logger
}

// NewResultHandler creates a new result handler.
func NewResultHandler(s *results.Service, logger *logger.Logger) *ResultHandler {
	return &ResultHandler{s: s, logger: logger}
}

// Layer returns one layer of a head or drawdown result.
func (h *ResultHandler) Layer(c *gin.Context) {
	id := c.Param("id")
	layer, ok := uintParam(c, "layer")
	if !ok {
		return
	}
	totim, ok := floatParam(c, "totim")
	if !ok {
		return
	}

	data, err := h.s.LayerAt(c.Request.Context(), id, c.Param("type"), totim, layer)
	if err != nil {
		fail(c, h.logger, id, err)
		return
	}
	resp.Success(c.Writer, data)
}

// TimeSeries returns the values of one cell over all times.
func (h *ResultHandler) TimeSeries(c *gin.Context) {
	id := c.Param("id")
	layer, ok := uintParam(c, "layer")
	if !ok {
		return
	}
	row, ok := uintParam(c, "row")
	if !ok {
		return
	}
	column, ok := uintParam(c, "column")
	if !ok {
		return
	}

	data, err := h.s.TimeSeries(c.Request.Context(), id, c.Param("type"), layer, row, column)
	if err != nil {
		fail(c, h.logger, id, err)
		return
	}
	resp.Success(c.Writer, data)
}

// BudgetByTotim returns the budget at a total time.
func (h *ResultHandler) BudgetByTotim(c *gin.Context) {
	id := c.Param("id")
	totim, ok := floatParam(c, "totim")
	if !ok {
		return
	}

	data, err := h.s.BudgetAt(c.Request.Context(), id, totim)
	if err != nil {
		fail(c, h.logger, id, err)
		return
	}
	resp.Success(c.Writer, data)
}

// BudgetByIndex returns the budget at a time index.
func (h *ResultHandler) BudgetByIndex(c *gin.Context) {
	id := c.Param("id")
	idx, ok := uintParam(c, "idx")
	if !ok {
		return
	}

	data, err := h.s.BudgetAtIndex(c.Request.Context(), id, idx)
	if err != nil {
		fail(c, h.logger, id, err)
		return
	}
	resp.Success(c.Writer, data)
}

// Concentration returns one layer of a substance concentration.
func (h *ResultHandler) Concentration(c *gin.Context) {
	id := c.Param("id")
	substance, ok := uintParam(c, "substance")
	if !ok {
		return
	}
	layer, ok := uintParam(c, "layer")
	if !ok {
		return
	}
	totim, ok := floatParam(c, "totim")
	if !ok {
		return
	}

	data, err := h.s.ConcentrationAt(c.Request.Context(), id, substance, totim, layer)
	if err != nil {
		fail(c, h.logger, id, err)
		return
	}
	resp.Success(c.Writer, data)
}

// Observations returns the head observation table.
func (h *ResultHandler) Observations(c *gin.Context) {
	id := c.Param("id")
	data, err := h.s.Observations(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, id, err)
		return
	}
	resp.Success(c.Writer, data)
}
