package schema

import (
	"github.com/binframe/binframe/codec"
	"github.com/binframe/binframe/warn"
)

// Builder is the declarative surface of spec.md §9's "statically typed
// implementation": a record is declared by calling Field once per field, in
// the order the author writes them, and Build freezes the result into an
// immutable *Schema.
type Builder struct {
	name   string
	fields []Field
}

// NewBuilder starts declaring a record named name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Field appends one field, binding codec to name. Each call should pass a
// freshly constructed codec (per spec.md §9 Design Notes, "Disallow shared
// codec objects in the builder API"); Alias exists for the one documented
// exception.
func (b *Builder) Field(name string, c codec.Codec) *Builder {
	b.fields = append(b.fields, Field{Name: name, Codec: c})
	return b
}

// Alias binds an already-used codec object to an additional field name,
// reproducing the AliasedFieldOrder warning path of spec.md §3 for callers
// who deliberately want two fields to share one codec.
func (b *Builder) Alias(name string, c codec.Codec) *Builder {
	return b.Field(name, c)
}

// Build validates the accumulated fields and returns an immutable Schema.
// Fields are ordered by their codec's creation-sequence number (spec.md §3
// "Field ordering rule"), not by the order Field was called.
func (b *Builder) Build(warns warn.Collector) (*Schema, error) {
	return newSchemaFrom(b.name, stableSortBySeq(b.fields), warns)
}
