package schema

import (
	"sort"

	"github.com/binframe/binframe/codec"
	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
)

// Schema is the immutable, per-record metadata of spec.md §3 "Record
// schema": an ordered field list plus the derived attributes computed once
// at construction (is-fixed, total-fixed-size, prefix constant). The
// wire-format descriptor is built on demand by Descriptor.
type Schema struct {
	name      string
	fields    []Field
	index     map[string]int
	fixed     bool
	fixedSize int

	hasPrefix  bool
	prefixVal  int64
	prefixSize int
}

// Name returns the record name.
func (s *Schema) Name() string { return s.name }

// Fields returns the schema's effective, ordered field list.
func (s *Schema) Fields() []Field { return s.fields }

// IsFixed reports whether every field (transitively) has a fixed wire
// width, with no Autosized string and no FromField length anywhere.
func (s *Schema) IsFixed() bool { return s.fixed }

// FixedSize returns the schema's total wire width. It is only valid when
// IsFixed() is true; otherwise it returns errs.VariableSize, per spec.md
// §4.3 "A fully fixed-size schema exposes size_of() with no instance."
func (s *Schema) FixedSize() (int, error) {
	if !s.fixed {
		return 0, &errs.VariableSize{Schema: s.name}
	}
	return s.fixedSize, nil
}

// HasPrefix reports whether the first field is a primitive integer with an
// `always` constant, making this schema usable with a discriminating
// parser (spec.md §3 invariant d).
func (s *Schema) HasPrefix() bool { return s.hasPrefix }

// PrefixValue returns the discriminator constant and its wire width in
// bytes. ok is false if HasPrefix() is false.
func (s *Schema) PrefixValue() (value int64, widthBytes int, ok bool) {
	return s.prefixVal, s.prefixSize, s.hasPrefix
}

// FieldIndex returns the position of name in the field order.
func (s *Schema) FieldIndex(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// isIntegerKind reports whether k is one of the eight fixed-width integer
// codec kinds.
func isIntegerKind(k codec.Kind) bool {
	switch k {
	case codec.KindInt8, codec.KindUint8, codec.KindInt16, codec.KindUint16,
		codec.KindInt32, codec.KindUint32, codec.KindInt64, codec.KindUint64:
		return true
	default:
		return false
	}
}

// arrayElementCodec is satisfied by the array codec so schema construction
// can validate the element without codec exporting a concrete type.
type arrayElementCodec interface {
	Element() codec.Codec
}

// newSchemaFrom validates and caches metadata for orderedFields, which must
// already be in final field order: Builder.Build sorts by creation
// sequence first; Extend merges base order with overrides and leaves the
// result untouched (spec.md §3 "Inheritance rule" overrides the general
// ordering rule for derived schemas).
func newSchemaFrom(name string, orderedFields []Field, warns warn.Collector) (*Schema, error) {
	if warns == nil {
		warns = warn.Discard
	}

	index := make(map[string]int, len(orderedFields))
	for i, f := range orderedFields {
		if _, dup := index[f.Name]; dup {
			return nil, &errs.SchemaError{Schema: name, Reason: "duplicate field name " + f.Name}
		}
		index[f.Name] = i
	}

	// AliasedFieldOrder: two distinct field names bound to codec objects
	// sharing one creation-sequence number (spec.md §3 "Field ordering
	// rule": "When two field names share one codec object... a warning is
	// emitted at schema-construction time").
	seenSeq := make(map[int]string, len(orderedFields))
	for _, f := range orderedFields {
		if prevName, dup := seenSeq[f.Codec.Seq()]; dup {
			warns.Collect(warn.Warning{Kind: warn.AliasedFieldOrder, Schema: name, Field: f.Name,
				Message: "shares a codec object with field " + prevName})
		} else {
			seenSeq[f.Codec.Seq()] = f.Name
		}
	}

	for i, f := range orderedFields {
		if err := f.Codec.Options().Validate(); err != nil {
			return nil, &errs.SchemaError{Schema: name, Reason: "field " + f.Name + ": " + err.Error()}
		}
		if lenSpec, ok := f.Codec.LengthSpec(); ok {
			switch lenSpec.Kind {
			case codec.LengthFromField:
				refIdx, ok := index[lenSpec.FieldName]
				if !ok {
					return nil, &errs.SchemaError{Schema: name, Reason: "field " + f.Name + " references undeclared field " + lenSpec.FieldName}
				}
				if refIdx >= i {
					return nil, &errs.SchemaError{Schema: name, Reason: "field " + f.Name + " references " + lenSpec.FieldName + " which is not declared earlier"}
				}
				if !isIntegerKind(orderedFields[refIdx].Codec.Kind()) {
					return nil, &errs.SchemaError{Schema: name, Reason: "field " + f.Name + " length references non-integer field " + lenSpec.FieldName}
				}
			case codec.LengthUntilEOF:
				if arr, ok := f.Codec.(arrayElementCodec); ok {
					elem := arr.Element()
					elemLen, hasLen := elem.LengthSpec()
					if !(elem.Kind() == codec.KindByteString || elem.Kind() == codec.KindTextString) || !hasLen || elemLen.Kind != codec.LengthAutosized {
						return nil, &errs.SchemaError{Schema: name, Reason: "field " + f.Name + ": UntilEOF is only meaningful for an array of Autosized strings"}
					}
				} else {
					return nil, &errs.SchemaError{Schema: name, Reason: "field " + f.Name + ": UntilEOF is only valid on array codecs"}
				}
			}
		}

		// Open question (SPEC_FULL.md §9): always set at both the array
		// level and the element level is treated as a SchemaError.
		if arr, ok := f.Codec.(arrayElementCodec); ok {
			if f.Codec.Options().HasAlways && arr.Element().Options().HasAlways {
				return nil, &errs.SchemaError{Schema: name, Reason: "field " + f.Name + ": always set on both the array and its element codec"}
			}
		}
	}

	fixed := true
	total := 0
	for _, f := range orderedFields {
		if n, ok := f.Codec.FixedSize(); ok {
			total += n
		} else {
			fixed = false
		}
	}

	s := &Schema{
		name:      name,
		fields:    orderedFields,
		index:     index,
		fixed:     fixed,
		fixedSize: total,
	}

	if len(orderedFields) > 0 {
		first := orderedFields[0].Codec
		if isIntegerKind(first.Kind()) && first.Options().HasAlways {
			if v, err := first.Coerce(first.Options().Always, warn.Discard); err == nil {
				var iv int64
				var ok bool
				switch vv := v.(type) {
				case int64:
					iv, ok = vv, true
				case uint64:
					iv, ok = int64(vv), true
				}
				if ok {
					n, _ := first.FixedSize()
					s.hasPrefix = true
					s.prefixVal = iv
					s.prefixSize = n
				}
			}
		}
	}

	return s, nil
}

// stableSortBySeq returns a copy of fields ordered by ascending codec
// creation-sequence number (spec.md §3 "Field ordering rule").
func stableSortBySeq(fields []Field) []Field {
	out := append([]Field{}, fields...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Codec.Seq() < out[j].Codec.Seq() })
	return out
}
