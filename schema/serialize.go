package schema

import (
	"github.com/binframe/binframe/codec"
	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// resolvedLength returns the length to pass to a field's codec: -1 when the
// codec's own Fixed/Autosized/UntilEOF mode applies, otherwise the current
// integer value of the named sibling field (spec.md §4.3 "Parse"/"Serialize").
func resolvedLength(f Field, values map[string]interface{}) int {
	lenSpec, ok := f.Codec.LengthSpec()
	if !ok || lenSpec.Kind != codec.LengthFromField {
		return -1
	}
	v := values[lenSpec.FieldName]
	switch iv := v.(type) {
	case int64:
		return int(iv)
	case uint64:
		return int(iv)
	}
	return -1
}

// EncodeInto serializes inst's fields, in schema order, directly into enc.
// Used both by Serialize and by the nested-record codec so a record nested
// inside another inlines without an intermediate byte buffer.
func (s *Schema) EncodeInto(enc *wire.Encoder, inst *Instance, warns warn.Collector) error {
	for _, f := range s.fields {
		val := inst.values[f.Name]
		length := resolvedLength(f, inst.values)
		if err := f.Codec.Encode(enc, val, length, collectorFor(s.name, f.Name, warns)); err != nil {
			return errs.WithContext(err, s.name, f.Name, enc.Position())
		}
	}
	return nil
}

// Serialize encodes inst under the process-wide wire byte order
// (spec.md §6 "schema.serialize(instance) -> octet buffer").
func (s *Schema) Serialize(inst *Instance, warns warn.Collector) ([]byte, error) {
	enc := wire.NewEncoder(wire.GlobalOrder())
	if err := s.EncodeInto(enc, inst, warns); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}
