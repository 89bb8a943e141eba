// Package wire implements the fixed-width byte-level encode/decode
// primitives the codec and schema packages build on: scalar reads and
// writes against a process-wide byte order, plus the peek/read-exact/
// read-until-zero operations the variable-length string and
// discriminating-parser modes need.
package wire

import (
	"encoding/binary"
	"fmt"
)

// Order selects the framing convention for multi-byte primitives, mirroring
// the struct packing mini-language named in spec.md §6. Integer widths are
// fixed regardless of the selected order; only the byte arrangement within
// each scalar changes.
type Order byte

const (
	// Network selects big-endian and is the default, matching "!".
	Network Order = '!'
	// BigEndian matches ">".
	BigEndian Order = '>'
	// LittleEndian matches "<".
	LittleEndian Order = '<'
	// NativeStandard matches "=": native byte order, standard (no padding) sizes.
	NativeStandard Order = '='
	// NativeAligned matches "@": native byte order, native sizes. This
	// implementation has no alignment-sensitive primitives, so it behaves
	// identically to NativeStandard.
	NativeAligned Order = '@'
)

// ParseOrder resolves one of the five recognised order characters.
func ParseOrder(c byte) (Order, error) {
	switch Order(c) {
	case Network, BigEndian, LittleEndian, NativeStandard, NativeAligned:
		return Order(c), nil
	default:
		return 0, fmt.Errorf("wire: unrecognised byte order %q", c)
	}
}

// byteOrder is the process-wide setting, per spec.md §5: "set once at
// startup, read on every encode/decode; callers that change it mid-run are
// responsible for quiescing all codec work." There is no lock here by
// design — see SPEC_FULL.md §5.
var byteOrder = Network

// SetGlobalOrder sets the process-wide wire byte order. Call it once,
// before any concurrent codec use begins.
func SetGlobalOrder(o Order) {
	byteOrder = o
}

// GlobalOrder returns the current process-wide wire byte order.
func GlobalOrder() Order {
	return byteOrder
}

// endian resolves an Order to the concrete encoding/binary.ByteOrder used
// for multi-byte scalars. Native orders resolve to the host's native byte
// order via encoding/binary.NativeEndian.
func (o Order) endian() binary.ByteOrder {
	switch o {
	case LittleEndian:
		return binary.LittleEndian
	case NativeStandard, NativeAligned:
		return nativeEndian()
	default:
		return binary.BigEndian
	}
}

// nativeEndian reports the host's native byte order without unsafe, by
// checking how encoding/binary.NativeEndian round-trips a known value.
func nativeEndian() binary.ByteOrder {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 0x0102)
	if buf[0] == 0x01 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Byte returns the descriptor character for this order, as prepended to a
// schema's wire-format descriptor string (spec.md §6).
func (o Order) Byte() byte {
	return byte(o)
}
