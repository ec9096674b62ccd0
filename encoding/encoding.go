// Package encoding implements the parquet value encodings used to serialize
// column pages (spec §4.5/§4.6): PLAIN, the RLE/bit-packed hybrid,
// DELTA_BINARY_PACKED, dictionary indices, and BYTE_STREAM_SPLIT, plus the
// 4-byte length-prefixed level codec used for definition/repetition levels.
//
// Each encoding is a flat, non-generic implementation rather than the
// code-generated-per-type approach the teacher package uses internally;
// the defensive bounds this module enforces throughout (arena-backed
// allocation, explicit remaining-byte checks) are easier to keep correct in
// one reviewable file per encoding than across a generics/amd64/purego
// build-tag split. See DESIGN.md for the full rationale.
package encoding

import (
	"errors"
	"fmt"
	"io"

	"github.com/arrowlake/parquet/deprecated"
	"github.com/arrowlake/parquet/format"
)

var (
	// ErrInvalidEncoding is returned when encoded bytes violate the format
	// that an encoding's decoder expects (truncated streams, a bit-packed
	// run with an impossible width, a value count that doesn't divide
	// evenly into the number of encoded bytes).
	ErrInvalidEncoding = errors.New("encoding: invalid encoded data")

	// ErrInvalidRLE is returned by the RLE/bit-packed hybrid decoder when a
	// run header or bit-packed group is malformed.
	ErrInvalidRLE = fmt.Errorf("%w: invalid RLE/bit-packed run", ErrInvalidEncoding)

	// ErrInvalidDelta is returned by the DELTA_BINARY_PACKED decoder when a
	// block or miniblock header is malformed.
	ErrInvalidDelta = fmt.Errorf("%w: invalid delta-encoded block", ErrInvalidEncoding)

	// ErrNotSupported is returned when an encoding does not support the
	// physical type requested of it.
	ErrNotSupported = errors.New("encoding: not supported for this physical type")
)

// BitWidth returns the minimum number of bits needed to represent values in
// [0, maxValue], i.e. ceil(log2(maxValue+1)). It is used to size RLE/bit-packed
// runs and delta miniblocks.
func BitWidth(maxValue uint64) int {
	w := 0
	for maxValue != 0 {
		w++
		maxValue >>= 1
	}
	return w
}

// ByteWidth returns the number of bytes needed to hold a bit-packed value of
// the given bit width, rounded up.
func ByteWidth(bitWidth int) int {
	return (bitWidth + 7) / 8
}

// Encoding is implemented by the codecs in this package. An Encoding value is
// safe to use concurrently; Encoder and Decoder instances are not.
type Encoding interface {
	fmt.Stringer

	// Encoding returns the parquet wire code for this codec.
	Encoding() format.Encoding

	// CanEncode reports whether this codec can serialize values of the
	// given physical type.
	CanEncode(format.Type) bool

	// NewEncoder returns an Encoder writing to w. w may be nil, in which
	// case Reset must be called with a non-nil writer before use.
	NewEncoder(w io.Writer) Encoder

	// NewDecoder returns a Decoder reading from r. r may be nil, in which
	// case Reset must be called with a non-nil reader before use.
	NewDecoder(r io.Reader) Decoder
}

// Encoder is implemented by per-codec encoder types. Every method appends to
// the byte stream started (or continued) since the last Reset.
type Encoder interface {
	// Reset clears encoder state and switches the destination writer.
	Reset(w io.Writer)

	// Encoding returns the parquet wire code produced by this encoder.
	Encoding() format.Encoding

	EncodeBoolean(data []bool) error
	EncodeInt32(data []int32) error
	EncodeInt64(data []int64) error
	EncodeInt96(data []deprecated.Int96) error
	EncodeFloat(data []float32) error
	EncodeDouble(data []float64) error

	// EncodeByteArray encodes a list of variable-length byte array values,
	// each given as its own slice.
	EncodeByteArray(data [][]byte) error

	// EncodeFixedLenByteArray encodes data as a contiguous run of
	// fixed-length values of the given size.
	EncodeFixedLenByteArray(size int, data []byte) error

	// SetBitWidth configures the bit width used by encodings whose wire
	// format depends on it (RLE/bit-packed levels, dictionary indices).
	SetBitWidth(bitWidth int)
}

// Decoder is implemented by per-codec decoder types. Every Decode* method
// returns the number of values written into data, or io.EOF once the
// underlying stream is exhausted.
type Decoder interface {
	Reset(r io.Reader)
	Encoding() format.Encoding

	DecodeBoolean(data []bool) (int, error)
	DecodeInt32(data []int32) (int, error)
	DecodeInt64(data []int64) (int, error)
	DecodeInt96(data []deprecated.Int96) (int, error)
	DecodeFloat(data []float32) (int, error)
	DecodeDouble(data []float64) (int, error)

	// DecodeByteArray decodes into dst, appending one []byte per value
	// (each aliasing a fresh slice, not the input buffer, since the
	// underlying reader is not guaranteed to keep its bytes alive).
	DecodeByteArray(dst [][]byte) ([][]byte, error)

	DecodeFixedLenByteArray(size int, data []byte) (int, error)

	SetBitWidth(bitWidth int)
}
