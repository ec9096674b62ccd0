package encoding

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/arrowlake/parquet/deprecated"
	"github.com/arrowlake/parquet/format"
)

// EncodeLevels encodes definition or repetition levels using the RLE hybrid
// wrapped in a 4-byte little-endian length prefix, the format DataPage v1
// uses for its level streams (spec §4.4). maxLevel determines the bit width;
// a maxLevel of 0 means the column has no levels to encode.
func EncodeLevels(levels []int32, maxLevel int) ([]byte, error) {
	if maxLevel == 0 {
		return nil, nil
	}
	var body bytes.Buffer
	enc := RLE{}.NewEncoder(&body)
	enc.SetBitWidth(BitWidth(uint64(maxLevel)))
	if err := enc.EncodeInt32(levels); err != nil {
		return nil, err
	}
	out := make([]byte, 4+body.Len())
	binary.LittleEndian.PutUint32(out, uint32(body.Len()))
	copy(out[4:], body.Bytes())
	return out, nil
}

// DecodeLevels is the inverse of EncodeLevels, reading exactly the
// length-prefixed block from r and filling levels (len(levels) determines
// how many values are expected).
func DecodeLevels(r io.Reader, levels []int32, maxLevel int) error {
	if maxLevel == 0 {
		for i := range levels {
			levels[i] = 0
		}
		return nil
	}
	var lenBuf [4]byte
	if _, err := readFull(r, lenBuf[:]); err != nil {
		return fmt.Errorf("%w: truncated level stream length prefix", ErrInvalidEncoding)
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	body := make([]byte, n)
	if _, err := readFull(r, body); err != nil {
		return fmt.Errorf("%w: truncated level stream", ErrInvalidEncoding)
	}
	dec := RLE{}.NewDecoder(bytes.NewReader(body))
	dec.SetBitWidth(BitWidth(uint64(maxLevel)))
	got, err := dec.DecodeInt32(levels)
	if err != nil && err != io.EOF {
		return err
	}
	if got != len(levels) {
		return fmt.Errorf("%w: decoded %d levels, wanted %d", ErrInvalidEncoding, got, len(levels))
	}
	return nil
}

// DictionaryIndex wraps RLE as the index-stream encoding used by
// PLAIN_DICTIONARY and RLE_DICTIONARY data pages: a 1-byte bit-width prefix
// followed by the RLE/bit-packed hybrid stream (spec §4.6).
type DictionaryIndex struct{}

func (DictionaryIndex) String() string { return "RLE_DICTIONARY" }
func (DictionaryIndex) Encoding() format.Encoding { return format.RLEDictionary }
func (DictionaryIndex) CanEncode(t format.Type) bool { return t == format.Int32 }

func (DictionaryIndex) NewEncoder(w io.Writer) Encoder { return &dictIndexEncoder{w: w} }
func (DictionaryIndex) NewDecoder(r io.Reader) Decoder { return &dictIndexDecoder{r: r} }

type dictIndexEncoder struct {
	w        io.Writer
	bitWidth int
}

func (e *dictIndexEncoder) Reset(w io.Writer)        { e.w = w }
func (e *dictIndexEncoder) Encoding() format.Encoding { return format.RLEDictionary }
func (e *dictIndexEncoder) SetBitWidth(bitWidth int)  { e.bitWidth = bitWidth }

func (e *dictIndexEncoder) EncodeInt32(data []int32) error {
	if _, err := e.w.Write([]byte{byte(e.bitWidth)}); err != nil {
		return err
	}
	inner := RLE{}.NewEncoder(e.w)
	inner.SetBitWidth(e.bitWidth)
	return inner.EncodeInt32(data)
}

func (e *dictIndexEncoder) EncodeBoolean([]bool) error                { return ErrNotSupported }
func (e *dictIndexEncoder) EncodeInt64([]int64) error                 { return ErrNotSupported }
func (e *dictIndexEncoder) EncodeInt96(data []deprecated.Int96) error {
	return ErrNotSupported
}
func (e *dictIndexEncoder) EncodeFloat([]float32) error               { return ErrNotSupported }
func (e *dictIndexEncoder) EncodeDouble([]float64) error              { return ErrNotSupported }
func (e *dictIndexEncoder) EncodeByteArray([][]byte) error            { return ErrNotSupported }
func (e *dictIndexEncoder) EncodeFixedLenByteArray(int, []byte) error { return ErrNotSupported }

type dictIndexDecoder struct {
	r        io.Reader
	bitWidth int
}

func (d *dictIndexDecoder) Reset(r io.Reader)        { d.r = r }
func (d *dictIndexDecoder) Encoding() format.Encoding { return format.RLEDictionary }
func (d *dictIndexDecoder) SetBitWidth(bitWidth int)  { d.bitWidth = bitWidth }

func (d *dictIndexDecoder) DecodeInt32(data []int32) (int, error) {
	var b [1]byte
	if _, err := readFull(d.r, b[:]); err != nil {
		return 0, err
	}
	inner := RLE{}.NewDecoder(d.r)
	inner.SetBitWidth(int(b[0]))
	return inner.DecodeInt32(data)
}

func (d *dictIndexDecoder) DecodeBoolean([]bool) (int, error) { return 0, ErrNotSupported }
func (d *dictIndexDecoder) DecodeInt64([]int64) (int, error)  { return 0, ErrNotSupported }
func (d *dictIndexDecoder) DecodeInt96(data []deprecated.Int96) (int, error) {
	return 0, ErrNotSupported
}
func (d *dictIndexDecoder) DecodeFloat([]float32) (int, error)  { return 0, ErrNotSupported }
func (d *dictIndexDecoder) DecodeDouble([]float64) (int, error) { return 0, ErrNotSupported }
func (d *dictIndexDecoder) DecodeByteArray(dst [][]byte) ([][]byte, error) {
	return dst, ErrNotSupported
}
func (d *dictIndexDecoder) DecodeFixedLenByteArray(int, []byte) (int, error) {
	return 0, ErrNotSupported
}
