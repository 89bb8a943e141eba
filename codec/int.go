package codec

import (
	"fmt"
	"math"
	"strconv"

	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// intCodec implements every fixed-width signed/unsigned integer family.
// Signed and unsigned variants round-trip exactly; an out-of-range encode
// fails with errs.EncodeOutOfRange (spec.md §4.1).
type intCodec struct {
	kind    Kind
	width   int // bytes
	signed  bool
	seq     int
	opts    Options
}

func newIntCodec(kind Kind, width int, signed bool, opts ...Option) *intCodec {
	return &intCodec{kind: kind, width: width, signed: signed, seq: nextSeq(), opts: newOptions(opts...)}
}

func NewInt8(opts ...Option) Codec   { return newIntCodec(KindInt8, 1, true, opts...) }
func NewUint8(opts ...Option) Codec  { return newIntCodec(KindUint8, 1, false, opts...) }
func NewInt16(opts ...Option) Codec  { return newIntCodec(KindInt16, 2, true, opts...) }
func NewUint16(opts ...Option) Codec { return newIntCodec(KindUint16, 2, false, opts...) }
func NewInt32(opts ...Option) Codec  { return newIntCodec(KindInt32, 4, true, opts...) }
func NewUint32(opts ...Option) Codec { return newIntCodec(KindUint32, 4, false, opts...) }
func NewInt64(opts ...Option) Codec  { return newIntCodec(KindInt64, 8, true, opts...) }
func NewUint64(opts ...Option) Codec { return newIntCodec(KindUint64, 8, false, opts...) }

func (c *intCodec) Kind() Kind       { return c.kind }
func (c *intCodec) Seq() int         { return c.seq }
func (c *intCodec) Options() Options { return c.opts }
func (c *intCodec) FixedSize() (int, bool) { return c.width, true }
func (c *intCodec) LengthSpec() (LengthSpec, bool) { return LengthSpec{}, false }

// descriptorByte mirrors the well-known byte-packing mini-language:
// b B h H i I q Q (spec.md §6).
func (c *intCodec) descriptorByte() byte {
	switch c.kind {
	case KindInt8:
		return 'b'
	case KindUint8:
		return 'B'
	case KindInt16:
		return 'h'
	case KindUint16:
		return 'H'
	case KindInt32:
		return 'i'
	case KindUint32:
		return 'I'
	case KindInt64:
		return 'q'
	case KindUint64:
		return 'Q'
	default:
		return '?'
	}
}

func (c *intCodec) Descriptor(int) string { return string(c.descriptorByte()) }

func (c *intCodec) Zero() interface{} { return c.represent(0) }

// represent returns v in the codec's own canonical Go type. Every integer
// width stores as int64 except unsigned 64-bit, whose full range does not
// fit in int64: a decoded value above math.MaxInt64 would otherwise wrap to
// a negative int64 and then spuriously fail rangeCheck's "negative is
// invalid for unsigned" test the next time it is coerced (spec.md §8
// Coerce-idempotence). Representing it as uint64 instead keeps every
// round-trip (decode -> re-coerce, or Coerce -> Coerce again) exact.
func (c *intCodec) represent(v int64) interface{} {
	if c.width == 8 && !c.signed {
		return uint64(v)
	}
	return v
}

// rangeCheck reports whether a value fits the codec's width and signedness.
// A signed source value arrives in v (isSigned true), an unsigned one in u.
func (c *intCodec) rangeCheck(schemaField string, v int64, u uint64, isSigned bool) error {
	if c.signed {
		lo, hi := signedRange(c.width)
		if isSigned {
			if v < lo || v > hi {
				return &errs.EncodeOutOfRange{Field: schemaField, Value: v, Width: c.width * 8, Signed: true}
			}
		} else {
			if u > uint64(hi) {
				return &errs.EncodeOutOfRange{Field: schemaField, Value: u, Width: c.width * 8, Signed: true}
			}
		}
		return nil
	}
	hi := unsignedRange(c.width)
	if isSigned {
		if v < 0 || uint64(v) > hi {
			return &errs.EncodeOutOfRange{Field: schemaField, Value: v, Width: c.width * 8, Signed: false}
		}
	} else if u > hi {
		return &errs.EncodeOutOfRange{Field: schemaField, Value: u, Width: c.width * 8, Signed: false}
	}
	return nil
}

func signedRange(width int) (int64, int64) {
	bits := uint(width * 8)
	hi := int64(1)<<(bits-1) - 1
	lo := -(int64(1) << (bits - 1))
	return lo, hi
}

func unsignedRange(width int) uint64 {
	if width == 8 {
		return math.MaxUint64
	}
	return uint64(1)<<(uint(width)*8) - 1
}

// Coerce implements spec.md §4.3: integers accept integers (range-checked),
// single-character byte strings (the character's ordinal), text-convertible
// numerics, and floats (lossy, emits PrecisionLoss).
func (c *intCodec) Coerce(value interface{}, warns warn.Collector) (interface{}, error) {
	switch v := value.(type) {
	case int64:
		if err := c.rangeCheck("", v, 0, true); err != nil {
			return nil, err
		}
		return c.represent(v), nil
	case int:
		return c.Coerce(int64(v), warns)
	case int32:
		return c.Coerce(int64(v), warns)
	case uint64:
		if err := c.rangeCheck("", 0, v, false); err != nil {
			return nil, err
		}
		return c.represent(int64(v)), nil
	case uint:
		return c.Coerce(uint64(v), warns)
	case uint32:
		return c.Coerce(uint64(v), warns)
	case []byte:
		if len(v) == 1 {
			return c.Coerce(int64(v[0]), warns)
		}
		return nil, &errs.CoerceError{Value: value, Reason: "byte string is not a single character"}
	case string:
		if len(v) == 1 {
			return c.Coerce(int64(v[0]), warns)
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &errs.CoerceError{Value: value, Reason: "not an integer-valued string"}
		}
		return c.Coerce(n, warns)
	case float32:
		return c.coerceFloat(float64(v), warns)
	case float64:
		return c.coerceFloat(v, warns)
	default:
		return nil, &errs.CoerceError{Value: value, Reason: fmt.Sprintf("cannot coerce %T to integer", value)}
	}
}

func (c *intCodec) coerceFloat(f float64, warns warn.Collector) (interface{}, error) {
	truncated := int64(f)
	if float64(truncated) != f {
		if warns != nil {
			warns.Collect(warn.Warning{Kind: warn.PrecisionLoss, Message: fmt.Sprintf("float %v truncated to %d", f, truncated)})
		}
	}
	if err := c.rangeCheck("", truncated, 0, true); err != nil {
		return nil, err
	}
	return c.represent(truncated), nil
}

func (c *intCodec) asUint64(value interface{}) (uint64, error) {
	switch v := value.(type) {
	case int64:
		return uint64(v), nil
	case uint64:
		return v, nil
	}
	return 0, &errs.CoerceError{Value: value, Reason: "value was not coerced before encode"}
}

func (c *intCodec) checkAlways(value interface{}, warns warn.Collector) {
	if !c.opts.HasAlways || warns == nil {
		return
	}
	want, err := c.Coerce(c.opts.Always, nil)
	if err != nil {
		return
	}
	if want != value {
		warns.Collect(warn.Warning{Kind: warn.ConstantMismatch, Message: fmt.Sprintf("observed %v, expected constant %v", value, want)})
	}
}

func (c *intCodec) Encode(enc *wire.Encoder, value interface{}, _ int, warns warn.Collector) error {
	c.checkAlways(value, warns)
	u, err := c.asUint64(value)
	if err != nil {
		return err
	}
	switch c.width {
	case 1:
		enc.WriteUint8(uint8(u))
	case 2:
		enc.WriteUint16(uint16(u))
	case 4:
		enc.WriteUint32(uint32(u))
	case 8:
		enc.WriteUint64(u)
	}
	return nil
}

func (c *intCodec) Decode(dec *wire.Decoder, _ int, warns warn.Collector) (interface{}, error) {
	var value int64
	var err error
	switch c.width {
	case 1:
		if c.signed {
			var v int8
			v, err = dec.ReadInt8()
			value = int64(v)
		} else {
			var v uint8
			v, err = dec.ReadUint8()
			value = int64(v)
		}
	case 2:
		if c.signed {
			var v int16
			v, err = dec.ReadInt16()
			value = int64(v)
		} else {
			var v uint16
			v, err = dec.ReadUint16()
			value = int64(v)
		}
	case 4:
		if c.signed {
			var v int32
			v, err = dec.ReadInt32()
			value = int64(v)
		} else {
			var v uint32
			v, err = dec.ReadUint32()
			value = int64(v)
		}
	case 8:
		if c.signed {
			value, err = dec.ReadInt64()
		} else {
			var v uint64
			v, err = dec.ReadUint64()
			value = int64(v)
		}
	}
	if err != nil {
		return nil, err
	}
	rv := c.represent(value)
	c.checkAlways(rv, warns)
	return rv, nil
}
