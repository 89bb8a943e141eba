// Package codec implements the primitive and array codecs of spec.md §4.1
// and §4.2: the leaf value types a record schema's fields are built from.
// A Codec is an abstract value carrying a kind tag, its option set, and a
// creation-order sequence number (spec.md §3, "Field ordering rule").
package codec

import (
	"fmt"
	"sync/atomic"

	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// Kind tags which family of codec a value belongs to.
type Kind int

const (
	KindInt8 Kind = iota
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindByteString
	KindTextString
	KindArray
	KindRecord // satisfied by schema.Schema; codec package never constructs one
)

// LengthKind tags one of the three length specifiers of spec.md §3.
type LengthKind int

const (
	LengthFixed LengthKind = iota
	LengthAutosized
	LengthFromField
	// LengthUntilEOF is the array-only "read until EOF" sentinel, meaningful
	// only when the element codec is an autosized string (spec.md §4.2).
	LengthUntilEOF
)

// LengthSpec is the tagged length value of spec.md §3: Fixed(n), Autosized,
// or FromField(name).
type LengthSpec struct {
	Kind      LengthKind
	Fixed     int
	FieldName string
}

// Fixed builds a Fixed(n) length specifier.
func Fixed(n int) LengthSpec { return LengthSpec{Kind: LengthFixed, Fixed: n} }

// Autosized builds a null-terminated length specifier, valid only for
// string codecs.
func Autosized() LengthSpec { return LengthSpec{Kind: LengthAutosized} }

// FromField builds a length specifier that resolves, at parse/serialize
// time, to a previously declared integer sibling field.
func FromField(name string) LengthSpec { return LengthSpec{Kind: LengthFromField, FieldName: name} }

// UntilEOF builds the array-only "read until EOF" length specifier.
func UntilEOF() LengthSpec { return LengthSpec{Kind: LengthUntilEOF} }

func (l LengthSpec) String() string {
	switch l.Kind {
	case LengthFixed:
		return fmt.Sprintf("Fixed(%d)", l.Fixed)
	case LengthAutosized:
		return "Autosized"
	case LengthFromField:
		return fmt.Sprintf("FromField(%s)", l.FieldName)
	case LengthUntilEOF:
		return "UntilEOF"
	default:
		return "Unknown"
	}
}

// Options bundles the shared per-field option surface of spec.md §3:
// default, always, full_string, encoding, enc_errors. default and always
// are mutually exclusive; a violation is a SchemaError at construction.
type Options struct {
	Default     interface{}
	HasDefault  bool
	Always      interface{}
	HasAlways   bool
	FullString  bool
	Encoding    string // present iff the codec kind is text-string
	EncErrors   string // "strict" (default) or "replace"
}

// Option configures a codec at construction time.
type Option func(*Options)

// WithDefault sets the field's fallback value used when an instance is
// constructed with no explicit value. May be a plain value.
func WithDefault(v interface{}) Option {
	return func(o *Options) { o.Default = v; o.HasDefault = true }
}

// WithAlways sets a constant the field is expected to always hold; acts as
// both a default and a validator (spec.md §4.1 "Options semantics").
func WithAlways(v interface{}) Option {
	return func(o *Options) { o.Always = v; o.HasAlways = true }
}

// WithFullString suppresses the null-strip-on-parse behavior of byte-string
// codecs.
func WithFullString() Option {
	return func(o *Options) { o.FullString = true }
}

// WithEncoding names the text encoding a text-string codec decodes/encodes
// through (e.g. "utf-8", "ascii", "latin1", "utf-16").
func WithEncoding(name string) Option {
	return func(o *Options) { o.Encoding = name }
}

// WithEncErrors selects the error policy ("strict" or "replace") applied
// when the declared encoding cannot represent a value.
func WithEncErrors(policy string) Option {
	return func(o *Options) { o.EncErrors = policy }
}

func newOptions(opts ...Option) Options {
	var o Options
	o.EncErrors = "strict"
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Validate enforces the Codec invariant from spec.md §3: "always and
// default are mutually exclusive on one codec."
func (o Options) Validate() error {
	if o.HasDefault && o.HasAlways {
		return fmt.Errorf("codec: default and always are mutually exclusive")
	}
	return nil
}

// seqCounter stamps every constructed codec with a monotonic creation-order
// number, the Go rendering of "creation sequence number" from spec.md §3 —
// see SPEC_FULL.md §3 expansion for why this lives on construction rather
// than on attribute introspection.
var seqCounter int64

func nextSeq() int {
	return int(atomic.AddInt64(&seqCounter, 1))
}

// NextSeq stamps a new creation-order sequence number from the same global
// counter the primitive/array constructors use. Exported so the schema
// package can assign a sequence number to nested-record field codecs
// without codec needing to import schema (which would cycle).
func NextSeq() int { return nextSeq() }

// Codec is the abstract value every record field binds to: a kind tag, its
// options, and a stable creation-order sequence number.
type Codec interface {
	Kind() Kind
	Seq() int
	Options() Options

	// FixedSize reports the codec's wire width in octets when it does not
	// depend on a FromField length or Autosized mode. ok is false for
	// variable-size codecs.
	FixedSize() (n int, ok bool)

	// Descriptor returns the wire-format descriptor fragment for this
	// codec (spec.md §6), given a resolved length for string/array kinds
	// (ignored by fixed-width codecs).
	Descriptor(resolvedLen int) string

	// LengthSpec returns this codec's length specifier, for string and
	// array kinds only.
	LengthSpec() (LengthSpec, bool)

	// Encode writes value to enc. length is the length resolved by the
	// caller for FromField-length codecs; pass -1 when the codec's own
	// Fixed/Autosized mode applies. Non-fatal diagnostics (ConstantMismatch,
	// LengthMismatch) are reported to warns without schema/field context —
	// the schema package's fieldCollector fills that in before forwarding.
	Encode(enc *wire.Encoder, value interface{}, length int, warns warn.Collector) error

	// Decode reads one value from dec. length has the same meaning as in Encode.
	Decode(dec *wire.Decoder, length int, warns warn.Collector) (interface{}, error)

	// Coerce converts a user-supplied value to this codec's representation,
	// per spec.md §4.3 "Coerce". Only hard failures are returned as error;
	// lossy-but-defined conversions (PrecisionLoss) are reported to warns.
	Coerce(value interface{}, warns warn.Collector) (interface{}, error)

	// Zero returns the codec's natural zero value, used as array padding
	// when neither an array-level nor element-level default is set.
	Zero() interface{}
}
