// Package schema validates job documents against the remote MODFLOW/MT3D
// package schemas.
package schema

import (
	"context"
	"fmt"
)

// Kind selects the schema a document is validated against.
type Kind string

const (
	KindModflow Kind = "modflow"
	KindMt3d    Kind = "mt3d"
)

// Path returns the schema location of k relative to the schema server.
func (k Kind) Path() string {
	switch k {
	case KindModflow:
		return "/modflow/packages/mfPackages.json"
	case KindMt3d:
		return "/modflow/packages/mtPackages.json"
	default:
		return ""
	}
}

// Status is the outcome of a validation.
type Status int

const (
	Valid Status = iota
	Invalid
	Unavailable
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Unavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the tagged outcome of Validate. Reason is set unless the
// document is valid.
type Result struct {
	Status Status
	Reason string
}

// OK reports whether the document is valid.
func (r Result) OK() bool { return r.Status == Valid }

// Validator validates a decoded JSON document against the schema of kind.
type Validator interface {
	Validate(ctx context.Context, kind Kind, document any) Result
}
