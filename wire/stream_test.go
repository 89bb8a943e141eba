package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := NewEncoder(BigEndian)
	enc.WriteUint16(0x1234)
	enc.WriteInt32(-7)
	enc.WriteFloat64(3.5)
	enc.WriteBytes([]byte("abc"))

	dec := NewDecoder(enc.Bytes(), BigEndian)
	u, err := dec.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u)

	i, err := dec.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-7), i)

	f, err := dec.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, 3.5, f)

	b, err := dec.ReadExact(3)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), b)
}

func TestLittleVsBigEndian(t *testing.T) {
	big := NewEncoder(BigEndian)
	big.WriteUint16(1)
	require.Equal(t, []byte{0x00, 0x01}, big.Bytes())

	little := NewEncoder(LittleEndian)
	little.WriteUint16(1)
	require.Equal(t, []byte{0x01, 0x00}, little.Bytes())
}

func TestReadUntilZero(t *testing.T) {
	dec := NewDecoder([]byte("abc\x00def"), BigEndian)
	b, err := dec.ReadUntilZero()
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), b)
	require.Equal(t, 4, dec.Position())

	rest, err := dec.ReadExact(3)
	require.NoError(t, err)
	require.Equal(t, []byte("def"), rest)
}

func TestShortRead(t *testing.T) {
	dec := NewDecoder([]byte{0x01}, BigEndian)
	_, err := dec.ReadUint32()
	require.ErrorIs(t, err, ErrShortRead)
}

func TestParseOrder(t *testing.T) {
	for _, c := range []byte{'!', '>', '<', '=', '@'} {
		o, err := ParseOrder(c)
		require.NoError(t, err)
		require.Equal(t, c, o.Byte())
	}
	_, err := ParseOrder('x')
	require.Error(t, err)
}
