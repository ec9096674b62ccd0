// Package byteio implements the little-endian and variable-length integer
// primitives shared by the Thrift compact-protocol codec and the column
// encodings.
package byteio

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrTruncated is returned when a variable-length integer is missing its
// continuation byte, or would overflow the target width.
var ErrTruncated = errors.New("byteio: truncated or oversized varint")

// PutUint32 writes v to b in little-endian order. b must have length >= 4.
func PutUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

// PutUint64 writes v to b in little-endian order. b must have length >= 8.
func PutUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

// GetUint32 reads a little-endian uint32 from b. b must have length >= 4.
func GetUint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// GetUint64 reads a little-endian uint64 from b. b must have length >= 8.
func GetUint64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

// PutFloat32 writes v to b in little-endian IEEE-754 order.
func PutFloat32(b []byte, v float32) { PutUint32(b, math.Float32bits(v)) }

// PutFloat64 writes v to b in little-endian IEEE-754 order.
func PutFloat64(b []byte, v float64) { PutUint64(b, math.Float64bits(v)) }

// GetFloat32 reads a little-endian IEEE-754 float32 from b.
func GetFloat32(b []byte) float32 { return math.Float32frombits(GetUint32(b)) }

// GetFloat64 reads a little-endian IEEE-754 float64 from b.
func GetFloat64(b []byte) float64 { return math.Float64frombits(GetUint64(b)) }

// AppendUvarint appends the base-128 varint encoding of v to dst.
func AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendVarint appends the zigzag+varint encoding of v to dst.
func AppendVarint(dst []byte, v int64) []byte {
	return AppendUvarint(dst, ZigZagEncode64(v))
}

// Uvarint decodes an unsigned varint from b, returning the value and the
// number of bytes consumed. maxBytes bounds how many bytes may be consumed
// (5 for 32-bit values, 10 for 64-bit values) to satisfy spec §4.1's "fails
// on overflow past the width" requirement.
func Uvarint(b []byte, maxBytes int) (uint64, int, error) {
	var v uint64
	for i := 0; i < len(b) && i < maxBytes; i++ {
		c := b[i]
		v |= uint64(c&0x7f) << (7 * uint(i))
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrTruncated
}

// Varint decodes a zigzag+varint signed integer from b.
func Varint(b []byte, maxBytes int) (int64, int, error) {
	u, n, err := Uvarint(b, maxBytes)
	if err != nil {
		return 0, 0, err
	}
	return ZigZagDecode64(u), n, nil
}

// ZigZagEncode64 maps a signed integer to an unsigned one such that small
// magnitudes (positive or negative) map to small unsigned values.
func ZigZagEncode64(n int64) uint64 { return uint64(n<<1) ^ uint64(n>>63) }

// ZigZagDecode64 inverts ZigZagEncode64.
func ZigZagDecode64(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }

// ZigZagEncode32 is the 32-bit counterpart of ZigZagEncode64.
func ZigZagEncode32(n int32) uint32 { return uint32(n<<1) ^ uint32(n>>31) }

// ZigZagDecode32 inverts ZigZagEncode32.
func ZigZagDecode32(u uint32) int32 { return int32(u>>1) ^ -int32(u&1) }
