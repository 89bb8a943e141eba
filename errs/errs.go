// Package errs defines the error taxonomy abort-on-sight operations in
// binframe raise, per spec.md §4.5/§7: ShortRead, CoerceError,
// EncodeOutOfRange, VariableSize, SchemaError. Each carries the context a
// caller needs to act on it (field name, and a byte offset or intended
// length where one is known) without parsing an error string.
package errs

import (
	"errors"
	"fmt"

	"github.com/binframe/binframe/wire"
)

// ShortRead reports that a parse ran out of input before a field finished
// decoding.
type ShortRead struct {
	Schema string
	Field  string
	Offset int
	Need   int
	Have   int
}

func (e *ShortRead) Error() string {
	return fmt.Sprintf("%s.%s: short read at offset %d: need %d bytes, have %d", e.Schema, e.Field, e.Offset, e.Need, e.Have)
}

// CoerceError reports that a value assigned to a field could not be
// converted to that field's codec representation.
type CoerceError struct {
	Schema string
	Field  string
	Value  interface{}
	Reason string
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("%s.%s: cannot coerce %#v: %s", e.Schema, e.Field, e.Value, e.Reason)
}

// EncodeOutOfRange reports that a value is outside the representable range
// of its integer codec.
type EncodeOutOfRange struct {
	Schema string
	Field  string
	Value  interface{}
	Width  int
	Signed bool
}

func (e *EncodeOutOfRange) Error() string {
	kind := "unsigned"
	if e.Signed {
		kind = "signed"
	}
	return fmt.Sprintf("%s.%s: value %v out of range for %d-bit %s integer", e.Schema, e.Field, e.Value, e.Width, kind)
}

// VariableSize reports that SizeOf was called without an instance on a
// schema whose size depends on field values.
type VariableSize struct {
	Schema string
}

func (e *VariableSize) Error() string {
	return fmt.Sprintf("%s: size_of() requires an instance: schema is variable-size", e.Schema)
}

// SchemaError reports a problem detected at schema-construction time:
// dangling FromField references, inconsistent discriminator prefix widths,
// or a malformed inheritance merge.
type SchemaError struct {
	Schema string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: %s", e.Schema, e.Reason)
}

// WithContext fills in the Schema/Field/Offset context on an error produced
// by a codec (which knows neither its schema nor its field name) before
// the schema engine returns it to the caller. Errors of unrecognised types
// pass through unchanged.
func WithContext(err error, schema, field string, offset int) error {
	switch e := err.(type) {
	case *ShortRead:
		e.Schema, e.Field, e.Offset = schema, field, offset
		return e
	case *CoerceError:
		e.Schema, e.Field = schema, field
		return e
	case *EncodeOutOfRange:
		e.Schema, e.Field = schema, field
		return e
	default:
		if errors.Is(err, wire.ErrShortRead) {
			return &ShortRead{Schema: schema, Field: field, Offset: offset}
		}
		return err
	}
}

