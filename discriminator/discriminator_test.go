package discriminator

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binframe/binframe/codec"
	"github.com/binframe/binframe/schema"
	"github.com/binframe/binframe/warn"
)

func buildPointVector(t *testing.T) (*schema.Schema, *schema.Schema, *Namespace) {
	t.Helper()
	point, err := schema.NewBuilder("Point").
		Field("kind", codec.NewUint16(codec.WithAlways(int64(1)))).
		Field("x", codec.NewInt32()).
		Build(warn.Discard)
	require.NoError(t, err)

	vector, err := schema.NewBuilder("Vector").
		Field("kind", codec.NewUint16(codec.WithAlways(int64(2)))).
		Field("x", codec.NewInt32()).
		Field("y", codec.NewInt32()).
		Build(warn.Discard)
	require.NoError(t, err)

	ns := NewNamespace()
	require.NoError(t, ns.Register(point))
	require.NoError(t, ns.Register(vector))
	return point, vector, ns
}

func TestParseMatchedSchema(t *testing.T) {
	_, vector, ns := buildPointVector(t)
	inst, err := vector.New(map[string]interface{}{"x": 1, "y": 2}, warn.Discard)
	require.NoError(t, err)
	buf, err := vector.Serialize(inst, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), buf[0])
	require.Equal(t, byte(0x02), buf[1])

	result, err := ns.Parse(bufio.NewReader(bytes.NewReader(buf)), warn.Discard)
	require.NoError(t, err)
	require.Equal(t, KindInstance, result.Kind)
	require.Equal(t, "Vector", result.Instance.Schema().Name())
}

func TestParseRawUnrecognized(t *testing.T) {
	_, _, ns := buildPointVector(t)
	input := []byte{0x00, 0x09}
	result, err := ns.Parse(bufio.NewReader(bytes.NewReader(input)), warn.Discard)
	require.NoError(t, err)
	require.Equal(t, KindRawUnrecognized, result.Kind)
	require.Equal(t, input, result.Raw)
}

func TestParseEmpty(t *testing.T) {
	_, _, ns := buildPointVector(t)
	result, err := ns.Parse(bufio.NewReader(bytes.NewReader(nil)), warn.Discard)
	require.NoError(t, err)
	require.Equal(t, KindEmpty, result.Kind)
}

func TestParseIncomplete(t *testing.T) {
	_, _, ns := buildPointVector(t)
	var logged string
	ns.ErrorLog = func(msg string) { logged = msg }

	input := []byte{0x00, 0x01, 0xaa, 0xbb, 0xcc} // prefix matches Point, only 3 of 4 payload bytes present
	result, err := ns.Parse(bufio.NewReader(bytes.NewReader(input)), warn.Discard)
	require.NoError(t, err)
	require.Equal(t, KindIncomplete, result.Kind)
	require.NotEmpty(t, logged)
}

func buildTagged(t *testing.T) (*schema.Schema, *Namespace) {
	t.Helper()
	tagged, err := schema.NewBuilder("Tagged").
		Field("kind", codec.NewUint16(codec.WithAlways(int64(3)))).
		Field("length", codec.NewUint8()).
		Field("payload", codec.NewByteString(codec.FromField("length"))).
		Build(warn.Discard)
	require.NoError(t, err)

	ns := NewNamespace()
	require.NoError(t, ns.Register(tagged))
	return tagged, ns
}

// TestParseVariableSizeDoesNotOverread covers the variable-size path of
// Namespace.Parse directly: two pipelined Tagged records delivered in one
// read must each come back as their own KindInstance result, with the
// second record's bytes left untouched until the second Parse call.
func TestParseVariableSizeDoesNotOverread(t *testing.T) {
	tagged, ns := buildTagged(t)

	first, err := tagged.New(map[string]interface{}{"length": 2, "payload": []byte{0xaa, 0xbb}}, warn.Discard)
	require.NoError(t, err)
	firstBuf, err := tagged.Serialize(first, warn.Discard)
	require.NoError(t, err)

	second, err := tagged.New(map[string]interface{}{"length": 3, "payload": []byte{0x01, 0x02, 0x03}}, warn.Discard)
	require.NoError(t, err)
	secondBuf, err := tagged.Serialize(second, warn.Discard)
	require.NoError(t, err)

	pipelined := append(append([]byte{}, firstBuf...), secondBuf...)
	r := bufio.NewReader(bytes.NewReader(pipelined))

	result, err := ns.Parse(r, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, KindInstance, result.Kind)
	require.Equal(t, []byte{0xaa, 0xbb}, result.Instance.MustGet("payload"))

	result, err = ns.Parse(r, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, KindInstance, result.Kind)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, result.Instance.MustGet("payload"))

	result, err = ns.Parse(r, warn.Discard)
	require.NoError(t, err)
	require.Equal(t, KindEmpty, result.Kind)
}

func TestParseVariableSizeIncomplete(t *testing.T) {
	_, ns := buildTagged(t)
	// kind=3, length=3, but only 1 of 3 payload bytes present.
	input := []byte{0x00, 0x03, 0x03, 0xaa}
	var logged string
	ns.ErrorLog = func(msg string) { logged = msg }

	result, err := ns.Parse(bufio.NewReader(bytes.NewReader(input)), warn.Discard)
	require.NoError(t, err)
	require.Equal(t, KindIncomplete, result.Kind)
	require.NotEmpty(t, logged)
}

func TestRegisterRejectsPrefixWidthMismatch(t *testing.T) {
	narrow, err := schema.NewBuilder("Narrow").
		Field("kind", codec.NewUint8(codec.WithAlways(int64(1)))).
		Build(warn.Discard)
	require.NoError(t, err)

	wide, err := schema.NewBuilder("Wide").
		Field("kind", codec.NewUint16(codec.WithAlways(int64(1)))).
		Build(warn.Discard)
	require.NoError(t, err)

	ns := NewNamespace()
	require.NoError(t, ns.Register(narrow))
	require.Error(t, ns.Register(wide))
}

func TestRegisterRejectsSchemaWithoutPrefix(t *testing.T) {
	noPrefix, err := schema.NewBuilder("NoPrefix").
		Field("x", codec.NewInt32()).
		Build(warn.Discard)
	require.NoError(t, err)

	ns := NewNamespace()
	require.Error(t, ns.Register(noPrefix))
}
