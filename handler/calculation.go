package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/net/resp"
	"github.com/ncobase/calcgate/service"
)

// CalculationHandler serves the state and files of calculations.
type CalculationHandler struct {
	s       *service.CalculationService
	archive *service.ArchiveService
	logger  *logger.Logger
}

// NewCalculationHandler creates a new calculation handler.
func NewCalculationHandler(s *service.CalculationService, archive *service.ArchiveService, logger *logger.Logger) *CalculationHandler {
	return &CalculationHandler{s: s, archive: archive, logger: logger}
}

// Details describes a calculation, as JSON or as HTML page.
func (h *CalculationHandler) Details(c *gin.Context) {
	id := c.Param("id")
	d, err := h.s.Details(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, id, err)
		return
	}

	if wantsJSON(c.Request) {
		resp.Success(c.Writer, d)
		return
	}
	c.HTML(http.StatusOK, "details.html", gin.H{
		"id":   id,
		"data": d,
		"path": c.Request.URL.Path,
	})
}

// File returns the text content of one output file.
func (h *CalculationHandler) File(c *gin.Context) {
	id, name := c.Param("id"), c.Param("name")
	if !h.s.Exists(id) {
		fail(c, h.logger, id, service.ErrNotFound)
		return
	}

	f, err := h.s.File(c.Request.Context(), id, name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			resp.Fail(c.Writer, resp.NotFound(fmt.Sprintf("File with name %s not found.", name)))
			return
		}
		fail(c, h.logger, id, err)
		return
	}
	resp.Success(c.Writer, f)
}

// Download streams the calculation directory as zip archive.
func (h *CalculationHandler) Download(c *gin.Context) {
	id := c.Param("id")
	if !h.archive.Exists(id) {
		fail(c, h.logger, id, service.ErrNotFound)
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.archive.FileName(id)))
	c.Status(http.StatusOK)
	if err := h.archive.Write(c.Request.Context(), id, c.Writer); err != nil {
		// headers are gone already
		h.logger.Errorf(c.Request.Context(), "failed to archive calculation %s: %v", id, err)
		_ = c.Error(err)
	}
}

// List lists all registered calculations.
func (h *CalculationHandler) List(c *gin.Context) {
	list, err := h.s.List(c.Request.Context())
	if err != nil {
		fail(c, h.logger, "", err)
		return
	}

	if wantsJSON(c.Request) {
		resp.Success(c.Writer, list)
		return
	}
	c.HTML(http.StatusOK, "list.html", gin.H{"calculations": list})
}
