package codec

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// byteStringCodec implements the fixed/FromField/Autosized byte-string
// codec of spec.md §4.1.
type byteStringCodec struct {
	seq    int
	length LengthSpec
	opts   Options
}

// NewByteString builds a byte-string codec under the given length specifier.
func NewByteString(length LengthSpec, opts ...Option) Codec {
	return &byteStringCodec{seq: nextSeq(), length: length, opts: newOptions(opts...)}
}

func (c *byteStringCodec) Kind() Kind       { return KindByteString }
func (c *byteStringCodec) Seq() int         { return c.seq }
func (c *byteStringCodec) Options() Options { return c.opts }
func (c *byteStringCodec) Zero() interface{} { return []byte{} }

func (c *byteStringCodec) FixedSize() (int, bool) {
	if c.length.Kind == LengthFixed {
		return c.length.Fixed, true
	}
	return 0, false
}

func (c *byteStringCodec) LengthSpec() (LengthSpec, bool) { return c.length, true }

func (c *byteStringCodec) Descriptor(resolvedLen int) string {
	if c.length.Kind == LengthAutosized {
		return "Z"
	}
	n := resolvedLen
	if c.length.Kind == LengthFixed {
		n = c.length.Fixed
	}
	if n < 0 {
		return "?s"
	}
	return fmt.Sprintf("%ds", n)
}

// Coerce implements spec.md §4.3: bytes as-is, text by UTF-8-like encoding,
// integers rendered to decimal text then bytes.
func (c *byteStringCodec) Coerce(value interface{}, warns warn.Collector) (interface{}, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case int64:
		return []byte(strconv.FormatInt(v, 10)), nil
	case int:
		return []byte(strconv.Itoa(v)), nil
	default:
		return nil, &errs.CoerceError{Value: value, Reason: fmt.Sprintf("cannot coerce %T to byte string", value)}
	}
}

func (c *byteStringCodec) checkAlways(value []byte, warns warn.Collector) {
	if !c.opts.HasAlways || warns == nil {
		return
	}
	want, ok := c.opts.Always.([]byte)
	if !ok {
		if s, ok := c.opts.Always.(string); ok {
			want = []byte(s)
		}
	}
	if !bytes.Equal(want, value) {
		warns.Collect(warn.Warning{Kind: warn.ConstantMismatch, Message: fmt.Sprintf("observed %q, expected constant %q", value, want)})
	}
}

// Encode implements the fixed/FromField padding-and-truncation rule and the
// Autosized null-terminated mode (spec.md §4.1).
func (c *byteStringCodec) Encode(enc *wire.Encoder, value interface{}, length int, warns warn.Collector) error {
	b, ok := value.([]byte)
	if !ok {
		return &errs.CoerceError{Value: value, Reason: "value was not coerced before encode"}
	}
	c.checkAlways(b, warns)

	if c.length.Kind == LengthAutosized {
		enc.WriteBytes(b)
		enc.WriteUint8(0x00)
		return nil
	}

	n := length
	if n < 0 {
		n = c.length.Fixed
	}
	switch {
	case len(b) == n:
		enc.WriteBytes(b)
	case len(b) < n:
		enc.WriteBytes(b)
		enc.WriteBytes(make([]byte, n-len(b)))
	default:
		enc.WriteBytes(b[:n])
		if warns != nil {
			warns.Collect(warn.Warning{Kind: warn.LengthMismatch, Message: fmt.Sprintf("value of length %d truncated to %d", len(b), n)})
		}
	}
	return nil
}

// Decode implements the null-strip-unless-full_string rule (spec.md §4.1
// boundary behaviors): b"foo\0\0" -> b"foo"; with full_string, the raw
// framed bytes are returned untouched.
func (c *byteStringCodec) Decode(dec *wire.Decoder, length int, warns warn.Collector) (interface{}, error) {
	if c.length.Kind == LengthAutosized {
		b, err := dec.ReadUntilZero()
		if err != nil {
			return nil, err
		}
		out := append([]byte{}, b...)
		c.checkAlways(out, warns)
		return out, nil
	}

	n := length
	if n < 0 {
		n = c.length.Fixed
	}
	raw, err := dec.ReadExact(n)
	if err != nil {
		return nil, err
	}
	if c.opts.FullString {
		out := append([]byte{}, raw...)
		c.checkAlways(out, warns)
		return out, nil
	}
	idx := bytes.IndexByte(raw, 0x00)
	var out []byte
	if idx < 0 {
		out = append([]byte{}, raw...)
	} else {
		out = append([]byte{}, raw[:idx]...)
	}
	c.checkAlways(out, warns)
	return out, nil
}
