package schema

import (
	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// DecodeFrom reads one instance of s from dec, in field order, resolving
// each FromField length against the already-parsed sibling (spec.md §4.3
// "Parse"). A partial read raises errs.ShortRead naming the offending
// field and byte offset.
func (s *Schema) DecodeFrom(dec *wire.Decoder, warns warn.Collector) (*Instance, error) {
	values := make(map[string]interface{}, len(s.fields))
	for _, f := range s.fields {
		length := resolvedLength(f, values)
		v, err := f.Codec.Decode(dec, length, collectorFor(s.name, f.Name, warns))
		if err != nil {
			return nil, errs.WithContext(err, s.name, f.Name, dec.Position())
		}
		values[f.Name] = v
	}
	return &Instance{schema: s, values: values}, nil
}

// Parse decodes one instance of s from buf under the process-wide wire
// byte order (spec.md §6 "schema.parse(source) -> instance").
func (s *Schema) Parse(buf []byte, warns warn.Collector) (*Instance, error) {
	dec := wire.NewDecoder(buf, wire.GlobalOrder())
	return s.DecodeFrom(dec, warns)
}
