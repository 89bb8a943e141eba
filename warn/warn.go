// Package warn implements the non-fatal warning side channel described in
// spec.md §4.5/§7: ConstantMismatch, LengthMismatch, PrecisionLoss, and
// AliasedFieldOrder never abort an operation, so they are never returned
// as error values. A Collector receives them instead.
package warn

import "fmt"

// Kind identifies which of the four documented warning shapes occurred.
type Kind int

const (
	// ConstantMismatch: an observed value differs from a field's "always" constant.
	ConstantMismatch Kind = iota
	// LengthMismatch: an over-length array/string was truncated, or an
	// under-length array was padded.
	LengthMismatch
	// PrecisionLoss: a float-to-integer coercion discarded a fractional part.
	PrecisionLoss
	// AliasedFieldOrder: two field names were bound to the same codec
	// object at schema-construction time.
	AliasedFieldOrder
)

func (k Kind) String() string {
	switch k {
	case ConstantMismatch:
		return "ConstantMismatch"
	case LengthMismatch:
		return "LengthMismatch"
	case PrecisionLoss:
		return "PrecisionLoss"
	case AliasedFieldOrder:
		return "AliasedFieldOrder"
	default:
		return "Unknown"
	}
}

// Warning is one emitted, non-aborting diagnostic.
type Warning struct {
	Kind    Kind
	Schema  string
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s.%s: %s", w.Kind, w.Schema, w.Field, w.Message)
}

// Collector receives warnings as they are emitted. The zero value of
// *Slice is ready to use; where schema construction, parse, or serialize
// is given a nil Collector, warnings go to Discard.
type Collector interface {
	Collect(Warning)
}

// Slice is the in-memory Collector implementation: it simply appends.
// Tests assert against it directly; production callers may wrap it or
// supply their own Collector that forwards to logx instead.
type Slice struct {
	Warnings []Warning
}

func (s *Slice) Collect(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// Discard is a Collector that drops every warning. Used where a caller has
// no interest in diagnostics but still needs a non-nil Collector.
var Discard Collector = discard{}

type discard struct{}

func (discard) Collect(Warning) {}
