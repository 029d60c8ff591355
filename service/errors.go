package service

import (
	"errors"
	"strings"
)

// ErrNotFound is returned for unknown calculations and files.
var ErrNotFound = errors.New("not found")

// ValidationError rejects a submission. Fields carries per-field messages of
// a malformed envelope.
type ValidationError struct {
	Reason string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, m := range e.Fields {
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, " ")
}

// UnavailableError is returned when the schema server cannot be used to
// decide about a submission.
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	return "schema validator unavailable: " + e.Reason
}
