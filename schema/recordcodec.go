package schema

import (
	"github.com/binframe/binframe/codec"
	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// RecordCodec lets a Schema act as a field codec in another schema
// (spec.md §4.3 "Nested records"). It inherits the same default/always
// option surface at the binding site as any other codec.
type RecordCodec struct {
	seq   int
	inner *Schema
	opts  codec.Options
}

// AsCodec wraps inner so it can be bound as a field via schema.Builder.Field.
func AsCodec(inner *Schema, opts ...codec.Option) codec.Codec {
	o := codec.Options{EncErrors: "strict"}
	for _, opt := range opts {
		opt(&o)
	}
	return &RecordCodec{seq: codec.NextSeq(), inner: inner, opts: o}
}

func (r *RecordCodec) Kind() codec.Kind       { return codec.KindRecord }
func (r *RecordCodec) Seq() int               { return r.seq }
func (r *RecordCodec) Options() codec.Options { return r.opts }
func (r *RecordCodec) LengthSpec() (codec.LengthSpec, bool) { return codec.LengthSpec{}, false }

// Zero returns a zero-valued instance of the wrapped schema (every field
// defaulted), used as array padding for arrays of nested records.
func (r *RecordCodec) Zero() interface{} {
	inst, err := r.inner.ZeroInstance(warn.Discard)
	if err != nil {
		return nil
	}
	return inst
}

func (r *RecordCodec) FixedSize() (int, bool) {
	if !r.inner.IsFixed() {
		return 0, false
	}
	n, _ := r.inner.FixedSize()
	return n, true
}

func (r *RecordCodec) Descriptor(int) string {
	d := r.inner.Descriptor()
	if len(d) > 0 {
		return d[1:] // drop the byte-order prefix; nested records inline into the parent's descriptor
	}
	return d
}

func (r *RecordCodec) Coerce(value interface{}, warns warn.Collector) (interface{}, error) {
	inst, ok := value.(*Instance)
	if !ok {
		return nil, &errs.CoerceError{Value: value, Reason: "expected a *schema.Instance of " + r.inner.name}
	}
	if inst.schema != r.inner {
		return nil, &errs.CoerceError{Value: value, Reason: "instance belongs to schema " + inst.schema.name + ", expected " + r.inner.name}
	}
	return inst, nil
}

func (r *RecordCodec) Encode(enc *wire.Encoder, value interface{}, _ int, warns warn.Collector) error {
	inst, ok := value.(*Instance)
	if !ok {
		return &errs.CoerceError{Value: value, Reason: "value was not coerced before encode"}
	}
	return r.inner.EncodeInto(enc, inst, warns)
}

func (r *RecordCodec) Decode(dec *wire.Decoder, _ int, warns warn.Collector) (interface{}, error) {
	return r.inner.DecodeFrom(dec, warns)
}
