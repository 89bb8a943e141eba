package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

func roundTrip(t *testing.T, c Codec, value interface{}, length int) (interface{}, []byte) {
	t.Helper()
	coerced, err := c.Coerce(value, warn.Discard)
	require.NoError(t, err)

	enc := wire.NewEncoder(wire.BigEndian)
	require.NoError(t, c.Encode(enc, coerced, length, warn.Discard))

	dec := wire.NewDecoder(enc.Bytes(), wire.BigEndian)
	got, err := c.Decode(dec, length, warn.Discard)
	require.NoError(t, err)
	return got, enc.Bytes()
}

func TestIntCodecRoundTrip(t *testing.T) {
	c := NewInt16()
	got, bytes := roundTrip(t, c, -5, -1)
	require.Equal(t, int64(-5), got)
	require.Equal(t, []byte{0xff, 0xfb}, bytes)
}

// TestUint64RoundTripAboveMaxInt64 covers a value that wraps to a negative
// int64 bit pattern internally: both the wire round-trip and a second
// Coerce of the decoded value (simulating Instance.Set reusing it) must
// succeed and return the original magnitude.
func TestUint64RoundTripAboveMaxInt64(t *testing.T) {
	c := NewUint64()
	const want = uint64(1<<63 + 12345)

	got, bytes := roundTrip(t, c, want, -1)
	require.Equal(t, want, got)
	require.Len(t, bytes, 8)

	again, err := c.Coerce(got, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, want, again)
}

func TestIntCodecOutOfRange(t *testing.T) {
	c := NewUint8()
	_, err := c.Coerce(int64(300), warn.Discard)
	require.Error(t, err)
}

func TestIntCodecFloatCoercionWarnsPrecisionLoss(t *testing.T) {
	c := NewInt32()
	var warns warn.Slice
	v, err := c.Coerce(3.7, &warns)
	require.NoError(t, err)
	require.Equal(t, int64(3), v)
	require.Len(t, warns.Warnings, 1)
	require.Equal(t, warn.PrecisionLoss, warns.Warnings[0].Kind)
}

func TestIntCodecConstantMismatchWarning(t *testing.T) {
	c := NewUint8(WithAlways(int64(7)))
	var warns warn.Slice
	enc := wire.NewEncoder(wire.BigEndian)
	require.NoError(t, c.Encode(enc, int64(9), -1, &warns))
	require.Len(t, warns.Warnings, 1)
	require.Equal(t, warn.ConstantMismatch, warns.Warnings[0].Kind)
}

func TestFloatCodecRoundTrip(t *testing.T) {
	c := NewFloat32()
	got, _ := roundTrip(t, c, 2.5, -1)
	require.Equal(t, 2.5, got)
}

func TestByteStringFixedPadsAndTruncates(t *testing.T) {
	c := NewByteString(Fixed(5))
	_, bytes := roundTrip(t, c, []byte("ab"), -1)
	require.Equal(t, []byte{'a', 'b', 0, 0, 0}, bytes)

	var warns warn.Slice
	coerced, err := c.Coerce([]byte("abcdefgh"), &warns)
	require.NoError(t, err)
	enc := wire.NewEncoder(wire.BigEndian)
	require.NoError(t, c.Encode(enc, coerced, -1, &warns))
	require.Equal(t, 5, len(enc.Bytes()))
	require.Len(t, warns.Warnings, 1)
	require.Equal(t, warn.LengthMismatch, warns.Warnings[0].Kind)
}

func TestByteStringAutosizedNullStrip(t *testing.T) {
	c := NewByteString(Autosized())
	got, bytes := roundTrip(t, c, []byte("abc"), -1)
	require.Equal(t, []byte("abc"), got)
	require.Equal(t, append([]byte("abc"), 0x00), bytes)
}

func TestByteStringFixedStripsAtFirstNull(t *testing.T) {
	c := NewByteString(Fixed(5))
	dec := wire.NewDecoder([]byte{'a', 'b', 'c', 0, 0}, wire.BigEndian)
	got, err := c.Decode(dec, -1, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)
}

func TestByteStringFullStringSuppressesStrip(t *testing.T) {
	c := NewByteString(Fixed(5), WithFullString())
	dec := wire.NewDecoder([]byte{'a', 'b', 'c', 0, 0}, wire.BigEndian)
	got, err := c.Decode(dec, -1, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, []byte{'a', 'b', 'c', 0, 0}, got)
}

func TestTextStringRoundTrip(t *testing.T) {
	c := NewTextString(Autosized(), WithEncoding("utf-8"))
	got, _ := roundTrip(t, c, "hello", -1)
	require.Equal(t, "hello", got)
}

func TestArrayFixedPadsWithElementDefault(t *testing.T) {
	elem := NewInt32(WithDefault(int64(0)))
	c := NewArray(elem, Fixed(3))
	got, bytes := roundTrip(t, c, []interface{}{int64(1), int64(2)}, -1)
	require.Equal(t, []interface{}{int64(1), int64(2), int64(0)}, got)
	require.Equal(t, 12, len(bytes))
}

func TestArrayUntilEOF(t *testing.T) {
	elem := NewByteString(Autosized())
	c := NewArray(elem, UntilEOF())
	enc := wire.NewEncoder(wire.BigEndian)
	coerced, err := c.Coerce([]interface{}{[]byte("a"), []byte("bb")}, warn.Discard)
	require.NoError(t, err)
	require.NoError(t, c.Encode(enc, coerced, -1, warn.Discard))

	dec := wire.NewDecoder(enc.Bytes(), wire.BigEndian)
	got, err := c.Decode(dec, -1, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, 0, dec.Remaining())
	require.Equal(t, []interface{}{[]byte("a"), []byte("bb")}, got)
}

func TestSeqOrderingIsMonotonic(t *testing.T) {
	a := NewInt8()
	b := NewInt8()
	require.Less(t, a.Seq(), b.Seq())
}
