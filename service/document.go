package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Document is a job document as submitted.
type Document struct {
	CalculationID string       `json:"calculation_id" validate:"required,max=255,printascii,pathsegment"`
	Data          DocumentData `json:"data"`

	raw []byte
}

// DocumentData holds the model packages.
type DocumentData struct {
	MF json.RawMessage `json:"mf" validate:"required"`
	MT json.RawMessage `json:"mt,omitempty"`
}

// HasMT reports whether the optional transport model is present.
func (d *Document) HasMT() bool {
	return present(d.Data.MT)
}

// Raw returns the document bytes as submitted.
func (d *Document) Raw() []byte {
	return d.raw
}

// DecodeDocument reads a job document. A body that is not a JSON object is
// a ValidationError.
func DecodeDocument(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("Content is not valid: %v", err)}
	}
	if !present(doc.Data.MF) {
		doc.Data.MF = nil
	}
	doc.raw = raw
	return &doc, nil
}

func present(m json.RawMessage) bool {
	m = bytes.TrimSpace(m)
	return len(m) > 0 && !bytes.Equal(m, []byte("null"))
}

// MaxLayers bounds the layer count accepted from a stored configuration.
const MaxLayers = 10000

// ErrInvalidModel is returned for stored configurations whose
// discretization cannot describe a model.
var ErrInvalidModel = errors.New("invalid model discretization")

// ModelInfo is the part of the discretization package the details view
// needs.
type ModelInfo struct {
	Dis struct {
		StartDateTime any `json:"start_datetime"`
		TimeUnit      any `json:"itmuni"`
		Layers        int `json:"nlay"`
	} `json:"dis"`
}

// ParseModelInfo extracts the model info from a stored configuration.
func ParseModelInfo(configuration []byte) (*ModelInfo, error) {
	var doc struct {
		Data struct {
			MF ModelInfo `json:"mf"`
		} `json:"data"`
	}
	if err := json.Unmarshal(configuration, &doc); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if n := doc.Data.MF.Dis.Layers; n < 0 || n > MaxLayers {
		return nil, fmt.Errorf("%w: nlay %d out of range [0, %d]", ErrInvalidModel, n, MaxLayers)
	}
	return &doc.Data.MF, nil
}
