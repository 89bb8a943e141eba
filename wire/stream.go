package wire

import (
	"errors"
	"math"
)

// ErrShortRead is returned (wrapped) when a Decoder is asked to read past
// the end of its buffer. The schema package turns this into errs.ShortRead
// with field-name and offset context.
var ErrShortRead = errors.New("wire: short read")

// Encoder accumulates bytes for one record's wire representation.
type Encoder struct {
	bytes []byte
	order Order
}

// NewEncoder creates an encoder that writes multi-byte scalars under order.
func NewEncoder(order Order) *Encoder {
	return &Encoder{order: order}
}

// Position returns the number of bytes written so far.
func (e *Encoder) Position() int { return len(e.bytes) }

// Bytes returns the accumulated wire bytes.
func (e *Encoder) Bytes() []byte { return e.bytes }

func (e *Encoder) WriteUint8(v uint8) { e.bytes = append(e.bytes, v) }

func (e *Encoder) WriteBytes(data []byte) { e.bytes = append(e.bytes, data...) }

func (e *Encoder) WriteUint16(v uint16) {
	var buf [2]byte
	e.order.endian().PutUint16(buf[:], v)
	e.bytes = append(e.bytes, buf[:]...)
}

func (e *Encoder) WriteUint32(v uint32) {
	var buf [4]byte
	e.order.endian().PutUint32(buf[:], v)
	e.bytes = append(e.bytes, buf[:]...)
}

func (e *Encoder) WriteUint64(v uint64) {
	var buf [8]byte
	e.order.endian().PutUint64(buf[:], v)
	e.bytes = append(e.bytes, buf[:]...)
}

func (e *Encoder) WriteInt8(v int8)   { e.WriteUint8(uint8(v)) }
func (e *Encoder) WriteInt16(v int16) { e.WriteUint16(uint16(v)) }
func (e *Encoder) WriteInt32(v int32) { e.WriteUint32(uint32(v)) }
func (e *Encoder) WriteInt64(v int64) { e.WriteUint64(uint64(v)) }

func (e *Encoder) WriteFloat32(v float32) { e.WriteUint32(math.Float32bits(v)) }
func (e *Encoder) WriteFloat64(v float64) { e.WriteUint64(math.Float64bits(v)) }

// Decoder reads bytes from a fixed in-memory buffer in sequence, tracking
// the current byte offset for error reporting.
type Decoder struct {
	bytes  []byte
	offset int
	order  Order
}

// NewDecoder creates a decoder over buf that reads multi-byte scalars under order.
func NewDecoder(buf []byte, order Order) *Decoder {
	return &Decoder{bytes: buf, order: order}
}

// Position returns the current byte offset into the buffer.
func (d *Decoder) Position() int { return d.offset }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.bytes) - d.offset }

// Bytes returns the underlying buffer in full, including bytes already read.
func (d *Decoder) Bytes() []byte { return d.bytes }

// ReadExact reads exactly n bytes, or returns ErrShortRead without
// advancing the offset.
func (d *Decoder) ReadExact(n int) ([]byte, error) {
	if n < 0 || d.offset+n > len(d.bytes) {
		return nil, ErrShortRead
	}
	b := d.bytes[d.offset : d.offset+n]
	d.offset += n
	return b, nil
}

// PeekExact reads n bytes without advancing the offset.
func (d *Decoder) PeekExact(n int) ([]byte, error) {
	if n < 0 || d.offset+n > len(d.bytes) {
		return nil, ErrShortRead
	}
	return d.bytes[d.offset : d.offset+n], nil
}

// ReadUntilZero reads bytes up to (and consuming) the first 0x00 octet,
// returning the bytes before the terminator. Used for Autosized strings.
func (d *Decoder) ReadUntilZero() ([]byte, error) {
	for i := d.offset; i < len(d.bytes); i++ {
		if d.bytes[i] == 0x00 {
			b := d.bytes[d.offset:i]
			d.offset = i + 1
			return b, nil
		}
	}
	return nil, ErrShortRead
}

func (d *Decoder) ReadUint8() (uint8, error) {
	b, err := d.ReadExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) ReadUint16() (uint16, error) {
	b, err := d.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return d.order.endian().Uint16(b), nil
}

func (d *Decoder) ReadUint32() (uint32, error) {
	b, err := d.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return d.order.endian().Uint32(b), nil
}

func (d *Decoder) ReadUint64() (uint64, error) {
	b, err := d.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return d.order.endian().Uint64(b), nil
}

func (d *Decoder) ReadInt8() (int8, error) {
	v, err := d.ReadUint8()
	return int8(v), err
}

func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.ReadUint16()
	return int16(v), err
}

func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUint32()
	return int32(v), err
}

func (d *Decoder) ReadInt64() (int64, error) {
	v, err := d.ReadUint64()
	return int64(v), err
}

func (d *Decoder) ReadFloat32() (float32, error) {
	v, err := d.ReadUint32()
	return math.Float32frombits(v), err
}

func (d *Decoder) ReadFloat64() (float64, error) {
	v, err := d.ReadUint64()
	return math.Float64frombits(v), err
}

// PeekUint8 reads without advancing the decoder.
func (d *Decoder) PeekUint8() (uint8, error) {
	b, err := d.PeekExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) PeekUint16() (uint16, error) {
	b, err := d.PeekExact(2)
	if err != nil {
		return 0, err
	}
	return d.order.endian().Uint16(b), nil
}

func (d *Decoder) PeekUint32() (uint32, error) {
	b, err := d.PeekExact(4)
	if err != nil {
		return 0, err
	}
	return d.order.endian().Uint32(b), nil
}

func (d *Decoder) PeekUint64() (uint64, error) {
	b, err := d.PeekExact(8)
	if err != nil {
		return 0, err
	}
	return d.order.endian().Uint64(b), nil
}
