package codec

import (
	"fmt"

	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// textStringCodec implements spec.md §4.1's text-string codec: the same
// length modes as byte-string, but the decoded value is a Go string and the
// framed bytes pass through the declared encoding/enc_errors policy.
type textStringCodec struct {
	seq    int
	length LengthSpec
	opts   Options
}

// NewTextString builds a text-string codec under the given length
// specifier and encoding.
func NewTextString(length LengthSpec, opts ...Option) Codec {
	return &textStringCodec{seq: nextSeq(), length: length, opts: newOptions(opts...)}
}

func (c *textStringCodec) Kind() Kind        { return KindTextString }
func (c *textStringCodec) Seq() int          { return c.seq }
func (c *textStringCodec) Options() Options  { return c.opts }
func (c *textStringCodec) Zero() interface{} { return "" }

func (c *textStringCodec) FixedSize() (int, bool) {
	if c.length.Kind == LengthFixed {
		return c.length.Fixed, true
	}
	return 0, false
}

func (c *textStringCodec) LengthSpec() (LengthSpec, bool) { return c.length, true }

func (c *textStringCodec) Descriptor(resolvedLen int) string {
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

// Coerce implements spec.md §4.3: text as-is; bytes decoded under the
// codec's own encoding/enc_errors policy.
func (c *textStringCodec) Coerce(value interface{}, warns warn.Collector) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		s, err := decodeText(c.opts.Encoding, c.opts.EncErrors, v)
		if err != nil {
			return nil, &errs.CoerceError{Value: value, Reason: err.Error()}
		}
		return s, nil
	default:
		return nil, &errs.CoerceError{Value: value, Reason: fmt.Sprintf("cannot coerce %T to text string", value)}
	}
}

func (c *textStringCodec) checkAlways(value string, warns warn.Collector) {
	if !c.opts.HasAlways || warns == nil {
		return
	}
	want, _ := c.opts.Always.(string)
	if want != value {
		warns.Collect(warn.Warning{Kind: warn.ConstantMismatch, Message: fmt.Sprintf("observed %q, expected constant %q", value, want)})
	}
}

// Encode encodes the string under the declared encoding, then frames it as a
// byte-string of the codec's length mode (spec.md §4.1).
func (c *textStringCodec) Encode(enc *wire.Encoder, value interface{}, length int, warns warn.Collector) error {
	s, ok := value.(string)
	if !ok {
		return &errs.CoerceError{Value: value, Reason: "value was not coerced before encode"}
	}
	c.checkAlways(s, warns)

	raw, err := encodeText(c.opts.Encoding, c.opts.EncErrors, s)
	if err != nil {
		return &errs.CoerceError{Value: value, Reason: err.Error()}
	}

	if c.length.Kind == LengthAutosized {
		enc.WriteBytes(raw)
		enc.WriteUint8(0x00)
		return nil
	}

	n := length
	if n < 0 {
		n = c.length.Fixed
	}
	switch {
	case len(raw) == n:
		enc.WriteBytes(raw)
	case len(raw) < n:
		enc.WriteBytes(raw)
		enc.WriteBytes(make([]byte, n-len(raw)))
	default:
		enc.WriteBytes(raw[:n])
		if warns != nil {
			warns.Collect(warn.Warning{Kind: warn.LengthMismatch, Message: fmt.Sprintf("value of length %d truncated to %d", len(raw), n)})
		}
	}
	return nil
}

// Decode frames the raw bytes per the length mode, then decodes them under
// the declared encoding (spec.md §4.1; "Autosized with encodings that
// commonly embed null bytes... is accepted but will typically fail to
// decode; no special-case is made").
func (c *textStringCodec) Decode(dec *wire.Decoder, length int, warns warn.Collector) (interface{}, error) {
	var raw []byte
	var err error
	if c.length.Kind == LengthAutosized {
		raw, err = dec.ReadUntilZero()
	} else {
		n := length
		if n < 0 {
			n = c.length.Fixed
		}
		raw, err = dec.ReadExact(n)
	}
	if err != nil {
		return nil, err
	}

	s, err := decodeText(c.opts.Encoding, c.opts.EncErrors, raw)
	if err != nil {
		return nil, &errs.CoerceError{Reason: err.Error()}
	}
	c.checkAlways(s, warns)
	return s, nil
}
