package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binframe/binframe/codec"
	"github.com/binframe/binframe/warn"
)

func pointSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewBuilder("Point").
		Field("x", codec.NewInt32()).
		Field("y", codec.NewInt32()).
		Build(warn.Discard)
	require.NoError(t, err)
	return s
}

func TestRoundTrip(t *testing.T) {
	s := pointSchema(t)
	inst, err := s.New(map[string]interface{}{"x": 3, "y": -4}, warn.Discard)
	require.NoError(t, err)

	buf, err := s.Serialize(inst, warn.Discard)
	require.NoError(t, err)
	require.Len(t, buf, 8)

	back, err := s.Parse(buf, warn.Discard)
	require.NoError(t, err)
	require.True(t, inst.Equal(back))
}

func TestSizeConsistency(t *testing.T) {
	s := pointSchema(t)
	inst, err := s.New(map[string]interface{}{"x": 1, "y": 2}, warn.Discard)
	require.NoError(t, err)

	buf, err := s.Serialize(inst, warn.Discard)
	require.NoError(t, err)

	n, err := s.SizeOf(inst, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)

	fixedN, err := s.SizeOf(nil, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, n, fixedN)
}

func TestDescriptorConsistency(t *testing.T) {
	s, err := NewBuilder("Framed").
		Field("length", codec.NewUint16()).
		Field("payload", codec.NewByteString(codec.FromField("length"))).
		Build(warn.Discard)
	require.NoError(t, err)

	inst, err := s.New(map[string]interface{}{"length": 3, "payload": []byte("abc")}, warn.Discard)
	require.NoError(t, err)

	desc := s.DescriptorFor(inst)
	require.Equal(t, "!H3s", desc)

	buf, err := s.Serialize(inst, warn.Discard)
	require.NoError(t, err)
	n, err := s.SizeOf(inst, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
}

func TestFieldOrderingBySeqNotDeclarationOrder(t *testing.T) {
	y := codec.NewInt32()
	x := codec.NewInt32()
	s, err := NewBuilder("Reordered").
		Field("x", x).
		Field("y", y).
		Build(warn.Discard)
	require.NoError(t, err)

	names := make([]string, len(s.Fields()))
	for i, f := range s.Fields() {
		names[i] = f.Name
	}
	require.Equal(t, []string{"y", "x"}, names)
}

func TestAliasedFieldOrderWarning(t *testing.T) {
	shared := codec.NewInt32()
	var warns warn.Slice
	_, err := NewBuilder("Aliased").
		Field("a", shared).
		Alias("b", shared).
		Build(&warns)
	require.NoError(t, err)
	require.Len(t, warns.Warnings, 1)
	require.Equal(t, warn.AliasedFieldOrder, warns.Warnings[0].Kind)
}

func TestFromFieldMustReferenceEarlierIntegerField(t *testing.T) {
	_, err := NewBuilder("BadOrder").
		Field("payload", codec.NewByteString(codec.FromField("length"))).
		Field("length", codec.NewUint16()).
		Build(warn.Discard)
	require.Error(t, err)
}

func TestCoerceIdempotence(t *testing.T) {
	c := codec.NewInt32()
	v1, err := c.Coerce(int64(42), warn.Discard)
	require.NoError(t, err)
	v2, err := c.Coerce(v1, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, v1, v2)
}

// TestCoerceIdempotenceUint64HighBit covers a Uint64 field whose decoded
// value sits above math.MaxInt64: re-coercing that value (as Instance.Set
// would on a round-trip) must not spuriously reject it as negative.
func TestCoerceIdempotenceUint64HighBit(t *testing.T) {
	c := codec.NewUint64()
	v1, err := c.Coerce(uint64(1<<63+7), warn.Discard)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<63+7), v1)

	v2, err := c.Coerce(v1, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, v1, v2)
}

func TestInheritancePreservesBasePositions(t *testing.T) {
	base, err := NewBuilder("Base").
		Field("a", codec.NewInt8()).
		Field("b", codec.NewInt8()).
		Field("c", codec.NewInt8()).
		Build(warn.Discard)
	require.NoError(t, err)

	derived, err := Extend(base, "Derived",
		[]Override{{Name: "b", Codec: codec.NewInt16()}},
		[]Field{{Name: "d", Codec: codec.NewInt8()}},
		warn.Discard)
	require.NoError(t, err)

	names := make([]string, len(derived.Fields()))
	for i, f := range derived.Fields() {
		names[i] = f.Name
	}
	require.Equal(t, []string{"a", "b", "c", "d"}, names)

	bIdx, _ := derived.FieldIndex("b")
	require.Equal(t, 1, bIdx)
	n, ok := derived.Fields()[bIdx].Codec.FixedSize()
	require.True(t, ok)
	require.Equal(t, 2, n)
}

func TestPrefixConstantEnablesDiscrimination(t *testing.T) {
	s, err := NewBuilder("Tagged").
		Field("kind", codec.NewUint8(codec.WithAlways(int64(1)))).
		Field("x", codec.NewInt32()).
		Build(warn.Discard)
	require.NoError(t, err)

	require.True(t, s.HasPrefix())
	val, width, ok := s.PrefixValue()
	require.True(t, ok)
	require.Equal(t, int64(1), val)
	require.Equal(t, 1, width)
}

func TestNestedRecordCodec(t *testing.T) {
	inner, err := NewBuilder("Inner").
		Field("v", codec.NewInt16()).
		Build(warn.Discard)
	require.NoError(t, err)

	outer, err := NewBuilder("Outer").
		Field("tag", codec.NewUint8()).
		Field("inner", AsCodec(inner)).
		Build(warn.Discard)
	require.NoError(t, err)

	innerInst, err := inner.New(map[string]interface{}{"v": 9}, warn.Discard)
	require.NoError(t, err)
	outerInst, err := outer.New(map[string]interface{}{"tag": 1, "inner": innerInst}, warn.Discard)
	require.NoError(t, err)

	buf, err := outer.Serialize(outerInst, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, 3, len(buf))

	back, err := outer.Parse(buf, warn.Discard)
	require.NoError(t, err)
	gotInner, ok := back.Get("inner")
	require.True(t, ok)
	gotInst, ok := gotInner.(*Instance)
	require.True(t, ok)
	v, _ := gotInst.Get("v")
	require.Equal(t, int64(9), v)
}

func TestNestedArrayOfArraysDefault(t *testing.T) {
	inner := codec.NewArray(codec.NewInt32(codec.WithDefault(int64(0))), codec.Fixed(2))
	s, err := NewBuilder("Grid").
		Field("xs", codec.NewArray(inner, codec.Fixed(3))).
		Build(warn.Discard)
	require.NoError(t, err)

	inst, err := s.New(nil, warn.Discard)
	require.NoError(t, err)
	xs, ok := inst.Get("xs")
	require.True(t, ok)
	require.Equal(t, []interface{}{
		[]interface{}{int64(0), int64(0)},
		[]interface{}{int64(0), int64(0)},
		[]interface{}{int64(0), int64(0)},
	}, xs)

	buf, err := s.Serialize(inst, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, 24, len(buf))
}

func TestNestedArrayRecordDefault(t *testing.T) {
	row, err := NewBuilder("Row").
		Field("a", codec.NewInt32(codec.WithDefault(int64(0)))).
		Field("b", codec.NewInt32(codec.WithDefault(int64(0)))).
		Build(warn.Discard)
	require.NoError(t, err)

	s, err := NewBuilder("Grid2").
		Field("rows", codec.NewArray(AsCodec(row), codec.Fixed(3))).
		Build(warn.Discard)
	require.NoError(t, err)

	inst, err := s.New(nil, warn.Discard)
	require.NoError(t, err)
	buf, err := s.Serialize(inst, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, 24, len(buf))
}
