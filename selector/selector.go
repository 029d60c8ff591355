// Package selector checks result selectors against the extents a reader
// reports. Every mismatch is a hard rejection; nothing is clamped, rounded
// or matched to a nearest value.
package selector

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Result types.
const (
	TypeHead          = "head"
	TypeDrawdown      = "drawdown"
	TypeBudget        = "budget"
	TypeConcentration = "concentration"
)

// Axis names a selector dimension.
type Axis string

const (
	AxisType      Axis = "type"
	AxisTime      Axis = "totim"
	AxisLayer     Axis = "layer"
	AxisSubstance Axis = "substance"
	AxisRow       Axis = "row"
	AxisColumn    Axis = "column"
	AxisIndex     Axis = "idx"
)

// Selector is a request scoped set of result coordinates.
type Selector struct {
	Type      string
	Totim     float64
	Layer     int
	Substance int
	Row       int
	Column    int
	Index     int
}

// Rejection describes a selector value outside what the reader reported.
// Exactly one of Available, Extent, Range or Permitted is set.
type Rejection struct {
	Axis      Axis
	Requested any
	Available []float64
	Extent    int
	Range     [2]int
	Permitted []string
}

// Error implements error.
func (r *Rejection) Error() string {
	switch {
	case r.Permitted != nil:
		return fmt.Sprintf("Type: %v not in the list of permitted types. Permitted types are: %s.",
			r.Requested, strings.Join(r.Permitted, ", "))
	case r.Axis == AxisTime:
		return fmt.Sprintf("Totim: %v not available. Available totims are: %s",
			r.Requested, joinFloats(r.Available))
	case r.Axis == AxisIndex:
		return fmt.Sprintf("TotimKey: %v not available. Available keys are in between: %d and %d",
			r.Requested, r.Range[0], r.Range[1])
	case r.Axis == AxisSubstance:
		return fmt.Sprintf("Substance: %v not available. Number of substances: %d.", r.Requested, r.Extent)
	case r.Axis == AxisLayer:
		return fmt.Sprintf("Layer must be less then the overall number of layers (%d).", r.Extent)
	default:
		return fmt.Sprintf("%s: %v out of range. Must be in between 0 and %d.", r.Axis, r.Requested, r.Extent-1)
	}
}

// Details returns the valid value set or bound carried by the rejection.
func (r *Rejection) Details() map[string]any {
	switch {
	case r.Permitted != nil:
		return map[string]any{"permitted": r.Permitted}
	case r.Axis == AxisTime:
		available := r.Available
		if available == nil {
			available = []float64{}
		}
		return map[string]any{"available": available}
	case r.Axis == AxisIndex:
		return map[string]any{"range": r.Range}
	default:
		return map[string]any{"extent": r.Extent}
	}
}

// ValidateType requires requested to be one of permitted.
func ValidateType(requested string, permitted ...string) error {
	if slices.Contains(permitted, requested) {
		return nil
	}
	return &Rejection{Axis: AxisType, Requested: requested, Permitted: slices.Clone(permitted)}
}

// ValidateTime requires exact membership of requested in available.
func ValidateTime(requested float64, available []float64) error {
	if slices.Contains(available, requested) {
		return nil
	}
	return &Rejection{Axis: AxisTime, Requested: requested, Available: slices.Clone(available)}
}

// ValidateLayer requires 0 <= requested < layers.
func ValidateLayer(requested, layers int) error {
	return validateExtent(AxisLayer, requested, layers)
}

// ValidateSubstance requires 0 <= requested < substances.
func ValidateSubstance(requested, substances int) error {
	return validateExtent(AxisSubstance, requested, substances)
}

// ValidateRow requires 0 <= requested < rows.
func ValidateRow(requested, rows int) error {
	return validateExtent(AxisRow, requested, rows)
}

// ValidateColumn requires 0 <= requested < columns.
func ValidateColumn(requested, columns int) error {
	return validateExtent(AxisColumn, requested, columns)
}

// ValidateIndex requires 0 <= requested < length.
func ValidateIndex(requested, length int) error {
	if requested >= 0 && requested < length {
		return nil
	}
	return &Rejection{Axis: AxisIndex, Requested: requested, Range: [2]int{0, length - 1}}
}

func validateExtent(axis Axis, requested, extent int) error {
	if requested >= 0 && requested < extent {
		return nil
	}
	return &Rejection{Axis: axis, Requested: requested, Extent: extent}
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
