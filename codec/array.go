package codec

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// arrayCodec implements spec.md §4.2: a homogeneous sequence combinator
// over any element codec, with a fixed/FromField/UntilEOF length and
// array-level default/always that override the element codec's own.
type arrayCodec struct {
	seq    int
	elem   Codec
	length LengthSpec
	opts   Options
}

// NewArray builds an array codec of elem under the given length specifier.
// UntilEOF is only meaningful when elem is an Autosized string codec
// (spec.md §4.2); it is not rejected here so that schema.Builder can report
// it as a SchemaError with field context.
func NewArray(elem Codec, length LengthSpec, opts ...Option) Codec {
	return &arrayCodec{seq: nextSeq(), elem: elem, length: length, opts: newOptions(opts...)}
}

// Element exposes the array's element codec, used by schema construction to
// validate the "always at both levels" open question (SPEC_FULL.md §9) and
// by the descriptor/size computations below.
func (c *arrayCodec) Element() Codec { return c.elem }

func (c *arrayCodec) Kind() Kind       { return KindArray }
func (c *arrayCodec) Seq() int         { return c.seq }
func (c *arrayCodec) Options() Options { return c.opts }
func (c *arrayCodec) LengthSpec() (LengthSpec, bool) { return c.length, true }
// Zero returns the array's natural default: for a fixed-length array, n
// elements each filled from elementDefault() (spec.md §4.2/§8 "default
// instance equals [[0,0],[0,0],[0,0]]" for a Fixed(3) array of Fixed(2)
// arrays); for a variable-length array, an empty slice.
func (c *arrayCodec) Zero() interface{} {
	if c.length.Kind != LengthFixed {
		return []interface{}{}
	}
	fill := c.elementDefault()
	out := make([]interface{}, c.length.Fixed)
	for i := range out {
		v, err := c.elem.Coerce(fill, warn.Discard)
		if err != nil {
			v = fill
		}
		out[i] = v
	}
	return out
}

func (c *arrayCodec) FixedSize() (int, bool) {
	if c.length.Kind != LengthFixed {
		return 0, false
	}
	elemSize, ok := c.elem.FixedSize()
	if !ok {
		return 0, false
	}
	return c.length.Fixed * elemSize, true
}

// Descriptor expands the element descriptor n times, per spec.md §6.
func (c *arrayCodec) Descriptor(resolvedLen int) string {
	n := resolvedLen
	if c.length.Kind == LengthFixed {
		n = c.length.Fixed
	}
	if n < 0 {
		n = 0
	}
	elemDesc := c.elem.Descriptor(-1)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = elemDesc
	}
	return strings.Join(parts, "")
}

// Coerce accepts any sequence value and coerces each element through the
// element codec (spec.md §4.3).
func (c *arrayCodec) Coerce(value interface{}, warns warn.Collector) (interface{}, error) {
	items, err := toSlice(value)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(items))
	for i, item := range items {
		v, err := c.elem.Coerce(item, warns)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func toSlice(value interface{}) ([]interface{}, error) {
	if s, ok := value.([]interface{}); ok {
		return s, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, &errs.CoerceError{Value: value, Reason: fmt.Sprintf("cannot coerce %T to array", value)}
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// elementDefault resolves the fill value used to pad a short array: the
// array-level default overrides the element-level default, which overrides
// the element codec's natural zero (spec.md §4.2, "Array-level default
// overrides element-level default for autofill").
func (c *arrayCodec) elementDefault() interface{} {
	if c.opts.HasDefault {
		return c.opts.Default
	}
	if eo := c.elem.Options(); eo.HasDefault {
		return eo.Default
	}
	return c.elem.Zero()
}

func (c *arrayCodec) Encode(enc *wire.Encoder, value interface{}, length int, warns warn.Collector) error {
	items, ok := value.([]interface{})
	if !ok {
		return &errs.CoerceError{Value: value, Reason: "value was not coerced before encode"}
	}

	if c.length.Kind == LengthUntilEOF {
		for _, item := range items {
			if err := c.elem.Encode(enc, item, -1, warns); err != nil {
				return err
			}
		}
		return nil
	}

	n := length
	if n < 0 {
		n = c.length.Fixed
	}

	switch {
	case len(items) == n:
		for _, item := range items {
			if err := c.elem.Encode(enc, item, -1, warns); err != nil {
				return err
			}
		}
	case len(items) < n:
		for _, item := range items {
			if err := c.elem.Encode(enc, item, -1, warns); err != nil {
				return err
			}
		}
		fill := c.elementDefault()
		for i := len(items); i < n; i++ {
			coerced, err := c.elem.Coerce(fill, warn.Discard)
			if err != nil {
				return err
			}
			if err := c.elem.Encode(enc, coerced, -1, warns); err != nil {
				return err
			}
		}
		if warns != nil {
			warns.Collect(warn.Warning{Kind: warn.LengthMismatch, Message: fmt.Sprintf("array of length %d padded to %d", len(items), n)})
		}
	default:
		for _, item := range items[:n] {
			if err := c.elem.Encode(enc, item, -1, warns); err != nil {
				return err
			}
		}
		if warns != nil {
			warns.Collect(warn.Warning{Kind: warn.LengthMismatch, Message: fmt.Sprintf("array of length %d truncated to %d", len(items), n)})
		}
	}
	return nil
}

func (c *arrayCodec) Decode(dec *wire.Decoder, length int, warns warn.Collector) (interface{}, error) {
	if c.length.Kind == LengthUntilEOF {
		var out []interface{}
		for dec.Remaining() > 0 {
			v, err := c.elem.Decode(dec, -1, warns)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if out == nil {
			out = []interface{}{}
		}
		return out, nil
	}

	n := length
	if n < 0 {
		n = c.length.Fixed
	}
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		v, err := c.elem.Decode(dec, -1, warns)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
