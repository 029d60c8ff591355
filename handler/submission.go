package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/net/resp"
	"github.com/ncobase/calcgate/service"
)

// SubmissionHandler accepts job documents.
type SubmissionHandler struct {
	s      *service.SubmissionService
	logger *logger.Logger
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(s *service.SubmissionService, logger *logger.Logger) *SubmissionHandler {
	return &SubmissionHandler{s: s, logger: logger}
}

// Form renders the upload form.
func (h *SubmissionHandler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", nil)
}

// Submit accepts a document either as multipart upload or as JSON body.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	ct := c.ContentType()
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		h.upload(c)
	case ct == "application/json":
		h.json(c)
	default:
		resp.Fail(c.Writer, resp.UnsupportedMediaType("Content type not supported."))
	}
}

func (h *SubmissionHandler) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		resp.Fail(c.Writer, resp.UnsupportedMediaType("No file uploaded"))
		return
	}
	if fh.Filename == "" {
		resp.Fail(c.Writer, resp.UnsupportedMediaType("No selected file"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, h.logger, "", err)
		return
	}
	defer f.Close()

	identity, err := h.s.SubmitUpload(c.Request.Context(), f)
	if err != nil {
		fail(c, h.logger, "", err)
		return
	}
	c.Redirect(http.StatusSeeOther, identity.Link)
}

func (h *SubmissionHandler) json(c *gin.Context) {
	doc, err := service.DecodeDocument(c.Request.Body)
	if err != nil {
		fail(c, h.logger, "", err)
		return
	}

	identity, err := h.s.Submit(c.Request.Context(), doc)
	if err != nil {
		fail(c, h.logger, doc.CalculationID, err)
		return
	}
	resp.Success(c.Writer, map[string]any{
		"status":         http.StatusOK,
		"calculation_id": identity.ID,
		"link":           identity.Link,
	})
}
