package codec

import (
	"fmt"
	"strconv"

	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// floatCodec implements the 32/64-bit IEEE-754 float families.
type floatCodec struct {
	kind  Kind
	width int
	seq   int
	opts  Options
}

func NewFloat32(opts ...Option) Codec {
	return &floatCodec{kind: KindFloat32, width: 4, seq: nextSeq(), opts: newOptions(opts...)}
}

func NewFloat64(opts ...Option) Codec {
	return &floatCodec{kind: KindFloat64, width: 8, seq: nextSeq(), opts: newOptions(opts...)}
}

func (c *floatCodec) Kind() Kind               { return c.kind }
func (c *floatCodec) Seq() int                 { return c.seq }
func (c *floatCodec) Options() Options         { return c.opts }
func (c *floatCodec) FixedSize() (int, bool)   { return c.width, true }
func (c *floatCodec) LengthSpec() (LengthSpec, bool) { return LengthSpec{}, false }
func (c *floatCodec) Zero() interface{}        { return float64(0) }

func (c *floatCodec) Descriptor(int) string {
	if c.kind == KindFloat32 {
		return "f"
	}
	return "d"
}

func (c *floatCodec) Coerce(value interface{}, warns warn.Collector) (interface{}, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &errs.CoerceError{Value: value, Reason: "not a float-valued string"}
		}
		return f, nil
	default:
		return nil, &errs.CoerceError{Value: value, Reason: fmt.Sprintf("cannot coerce %T to float", value)}
	}
}

func (c *floatCodec) checkAlways(value interface{}, warns warn.Collector) {
	if !c.opts.HasAlways || warns == nil {
		return
	}
	if value != c.opts.Always {
		warns.Collect(warn.Warning{Kind: warn.ConstantMismatch, Message: fmt.Sprintf("observed %v, expected constant %v", value, c.opts.Always)})
	}
}

func (c *floatCodec) Encode(enc *wire.Encoder, value interface{}, _ int, warns warn.Collector) error {
	c.checkAlways(value, warns)
	f, ok := value.(float64)
	if !ok {
		return &errs.CoerceError{Value: value, Reason: "value was not coerced before encode"}
	}
	if c.width == 4 {
		enc.WriteFloat32(float32(f))
	} else {
		enc.WriteFloat64(f)
	}
	return nil
}

func (c *floatCodec) Decode(dec *wire.Decoder, _ int, warns warn.Collector) (interface{}, error) {
	var value float64
	var err error
	if c.width == 4 {
		var v float32
		v, err = dec.ReadFloat32()
		value = float64(v)
	} else {
		value, err = dec.ReadFloat64()
	}
	if err != nil {
		return nil, err
	}
	c.checkAlways(value, warns)
	return value, nil
}
