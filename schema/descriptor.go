package schema

import (
	"strings"

	"github.com/binframe/binframe/wire"
)

// Descriptor returns the schema's wire-format descriptor string (spec.md
// §6): the process-wide byte-order character followed by each field's
// descriptor fragment in field order. FromField lengths are rendered with
// the "?s" placeholder used by codec.Descriptor(-1); call DescriptorFor an
// instance for a fully resolved descriptor.
func (s *Schema) Descriptor() string {
	var b strings.Builder
	b.WriteByte(wire.GlobalOrder().Byte())
	for _, f := range s.fields {
		b.WriteString(fieldDescriptor(f, -1))
	}
	return b.String()
}

// DescriptorFor resolves every FromField length against inst's current
// values before rendering, giving a fully concrete descriptor — its byte
// width equals SizeOf(inst) for any valid instance (spec.md §8 "Descriptor
// consistency").
func (s *Schema) DescriptorFor(inst *Instance) string {
	var b strings.Builder
	b.WriteByte(wire.GlobalOrder().Byte())
	for _, f := range s.fields {
		b.WriteString(fieldDescriptor(f, resolvedLength(f, inst.values)))
	}
	return b.String()
}

func fieldDescriptor(f Field, resolvedLen int) string {
	return f.Codec.Descriptor(resolvedLen)
}
