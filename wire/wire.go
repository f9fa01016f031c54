// Package wire defines the byte-level vocabulary of the servo controller
// protocol: the command selector, opcodes, reply sentinels, and the 4-byte
// primitives used for every numeric parameter crossing the wire.
//
// All multi-byte values are little-endian. Floats travel as IEEE-754
// single precision.
package wire

import (
	"encoding/binary"
	"math"
)

// Selector prefixes every command frame sent to the controller.
const Selector = 0xAA

// Opcodes, sent immediately after the selector.
const (
	OpHandshake = 249
	OpInfo      = '?'
	OpDiscover  = 'D'
	OpSetMode   = 'M'
	OpSetAddr   = 'I'
	OpLoad      = 'L'
	OpRun       = 'R'
)

// Reply sentinels.
const (
	HandshakeAck = 250
	Ack          = 1
	Nack         = 0
)

// DiscoverRecordSize is the fixed width of one discovery record:
// u8 channel, u8 address, u32 model code.
const DiscoverRecordSize = 6

// PutFloat32 appends v as a 4-byte single-precision float.
func PutFloat32(b []byte, v float64) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
	return append(b, buf[:]...)
}

// Float32 reads a 4-byte single-precision float.
func Float32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// PutUint32 appends v as 4 bytes.
func PutUint32(b []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(b, buf[:]...)
}

// Uint32 reads 4 bytes as an unsigned integer.
func Uint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}
