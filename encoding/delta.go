package encoding

import (
	"fmt"
	"io"

	"github.com/arrowlake/parquet/deprecated"
	"github.com/arrowlake/parquet/format"
)

// DeltaBinaryPacked implements DELTA_BINARY_PACKED (spec §4.5): values are
// split into blocks of blockSize, each block into miniblocksPerBlock
// miniblocks, each miniblock bit-packed at its own minimal width around the
// block's minimum delta.
type DeltaBinaryPacked struct{}

const (
	deltaBlockSize         = 128
	deltaMiniBlocksPerBlock = 4
	deltaValuesPerMiniBlock = deltaBlockSize / deltaMiniBlocksPerBlock
)

func (DeltaBinaryPacked) String() string           { return "DELTA_BINARY_PACKED" }
func (DeltaBinaryPacked) Encoding() format.Encoding { return format.DeltaBinaryPacked }
func (DeltaBinaryPacked) CanEncode(t format.Type) bool {
	return t == format.Int32 || t == format.Int64
}
func (DeltaBinaryPacked) NewEncoder(w io.Writer) Encoder { return &deltaEncoder{w: w} }
func (DeltaBinaryPacked) NewDecoder(r io.Reader) Decoder { return &deltaDecoder{r: r} }

type deltaEncoder struct {
	w io.Writer
}

func (e *deltaEncoder) Reset(w io.Writer)        { e.w = w }
func (e *deltaEncoder) Encoding() format.Encoding { return format.DeltaBinaryPacked }
func (e *deltaEncoder) SetBitWidth(int)           {}

func (e *deltaEncoder) EncodeInt32(data []int32) error {
	values := make([]int64, len(data))
	for i, v := range data {
		values[i] = int64(v)
	}
	return e.encode(values)
}

func (e *deltaEncoder) EncodeInt64(data []int64) error { return e.encode(data) }

func (e *deltaEncoder) encode(data []int64) error {
	header := byteio_PutUvarint(uint64(deltaBlockSize))
	header = append(header, byteio_PutUvarint(uint64(deltaMiniBlocksPerBlock))...)
	header = append(header, byteio_PutUvarint(uint64(len(data)))...)
	if len(data) == 0 {
		header = append(header, byteio_PutZigZag(0)...)
		_, err := e.w.Write(header)
		return err
	}
	header = append(header, byteio_PutZigZag(data[0])...)
	if _, err := e.w.Write(header); err != nil {
		return err
	}

	prev := data[0]
	for start := 1; start < len(data); start += deltaBlockSize {
		end := start + deltaBlockSize
		if end > len(data) {
			end = len(data)
		}
		block := data[start:end]
		deltas := make([]int64, len(block))
		for i, v := range block {
			deltas[i] = v - prev
			prev = v
		}
		if err := e.writeBlock(deltas); err != nil {
			return err
		}
	}
	return nil
}

func (e *deltaEncoder) writeBlock(deltas []int64) error {
	minDelta := deltas[0]
	for _, d := range deltas[1:] {
		if d < minDelta {
			minDelta = d
		}
	}
	relative := make([]uint64, len(deltas))
	for i, d := range deltas {
		relative[i] = uint64(d - minDelta)
	}

	bitWidths := make([]byte, deltaMiniBlocksPerBlock)
	for mb := 0; mb < deltaMiniBlocksPerBlock; mb++ {
		lo := mb * deltaValuesPerMiniBlock
		if lo >= len(relative) {
			break
		}
		hi := lo + deltaValuesPerMiniBlock
		if hi > len(relative) {
			hi = len(relative)
		}
		var max uint64
		for _, v := range relative[lo:hi] {
			if v > max {
				max = v
			}
		}
		bitWidths[mb] = byte(BitWidth(max))
	}

	buf := byteio_PutZigZag(minDelta)
	buf = append(buf, bitWidths...)
	if _, err := e.w.Write(buf); err != nil {
		return err
	}

	for mb := 0; mb < deltaMiniBlocksPerBlock; mb++ {
		lo := mb * deltaValuesPerMiniBlock
		if lo >= len(relative) {
			// emit a zero-filled miniblock to keep the layout regular; the
			// value count field lets the decoder know not to read these.
			out := make([]byte, deltaValuesPerMiniBlock*int(bitWidths[mb])/8)
			if _, err := e.w.Write(out); err != nil {
				return err
			}
			continue
		}
		hi := lo + deltaValuesPerMiniBlock
		padded := make([]int32, deltaValuesPerMiniBlock)
		for i := lo; i < hi && i < len(relative); i++ {
			padded[i-lo] = int32(relative[i])
		}
		out := make([]byte, deltaValuesPerMiniBlock*int(bitWidths[mb])/8)
		bitpackEncode(out, padded, int(bitWidths[mb]))
		if _, err := e.w.Write(out); err != nil {
			return err
		}
	}
	return nil
}

func (e *deltaEncoder) EncodeBoolean([]bool) error                { return ErrNotSupported }
func (e *deltaEncoder) EncodeInt96([]deprecated.Int96) error       { return ErrNotSupported }
func (e *deltaEncoder) EncodeFloat([]float32) error                { return ErrNotSupported }
func (e *deltaEncoder) EncodeDouble([]float64) error               { return ErrNotSupported }
func (e *deltaEncoder) EncodeByteArray([][]byte) error             { return ErrNotSupported }
func (e *deltaEncoder) EncodeFixedLenByteArray(int, []byte) error  { return ErrNotSupported }

type deltaDecoder struct {
	r io.Reader
}

func (d *deltaDecoder) Reset(r io.Reader)        { d.r = r }
func (d *deltaDecoder) Encoding() format.Encoding { return format.DeltaBinaryPacked }
func (d *deltaDecoder) SetBitWidth(int)           {}

func (d *deltaDecoder) decode() ([]int64, error) {
	blockSize, err := readUvarintFromReader(d.r)
	if err != nil {
		return nil, err
	}
	miniBlocks, err := readUvarintFromReader(d.r)
	if err != nil {
		return nil, err
	}
	total, err := readUvarintFromReader(d.r)
	if err != nil {
		return nil, err
	}
	first, err := readZigZagFromReader(d.r)
	if err != nil {
		return nil, err
	}
	if blockSize == 0 || miniBlocks == 0 || blockSize%uint64(miniBlocks) != 0 {
		return nil, fmt.Errorf("%w: block size %d not divisible by %d miniblocks", ErrInvalidDelta, blockSize, miniBlocks)
	}
	if total > 1<<32 {
		return nil, fmt.Errorf("%w: value count %d too large", ErrInvalidDelta, total)
	}

	values := make([]int64, 0, total)
	if total == 0 {
		return values, nil
	}
	values = append(values, first)
	prev := first
	valuesPerMiniBlock := int(blockSize / miniBlocks)

	for int64(len(values)) < int64(total) {
		minDelta, err := readZigZagFromReader(d.r)
		if err != nil {
			return nil, fmt.Errorf("%w: truncated block header", ErrInvalidDelta)
		}
		widths := make([]byte, miniBlocks)
		if _, err := readFull(d.r, widths); err != nil {
			return nil, fmt.Errorf("%w: truncated bit-width array", ErrInvalidDelta)
		}
		for _, w := range widths {
			if w > 64 {
				return nil, fmt.Errorf("%w: miniblock bit width %d out of range", ErrInvalidDelta, w)
			}
		}
		for mb := 0; mb < int(miniBlocks) && int64(len(values)) < int64(total); mb++ {
			nbytes := valuesPerMiniBlock * int(widths[mb]) / 8
			buf := make([]byte, nbytes)
			if _, err := readFull(d.r, buf); err != nil {
				return nil, fmt.Errorf("%w: truncated miniblock", ErrInvalidDelta)
			}
			unpacked := make([]int32, valuesPerMiniBlock)
			bitpackDecode(unpacked, buf, int(widths[mb]))
			for _, u := range unpacked {
				if int64(len(values)) >= int64(total) {
					break
				}
				prev = prev + minDelta + int64(uint32(u))
				values = append(values, prev)
			}
		}
	}
	return values, nil
}

func (d *deltaDecoder) DecodeInt32(data []int32) (int, error) {
	values, err := d.decode()
	if err != nil {
		return 0, err
	}
	n := len(values)
	if n > len(data) {
		n = len(data)
	}
	for i := 0; i < n; i++ {
		data[i] = int32(values[i])
	}
	return n, nil
}

func (d *deltaDecoder) DecodeInt64(data []int64) (int, error) {
	values, err := d.decode()
	if err != nil {
		return 0, err
	}
	n := copy(data, values)
	return n, nil
}

func (d *deltaDecoder) DecodeBoolean([]bool) (int, error)             { return 0, ErrNotSupported }
func (d *deltaDecoder) DecodeInt96([]deprecated.Int96) (int, error)    { return 0, ErrNotSupported }
func (d *deltaDecoder) DecodeFloat([]float32) (int, error)            { return 0, ErrNotSupported }
func (d *deltaDecoder) DecodeDouble([]float64) (int, error)           { return 0, ErrNotSupported }
func (d *deltaDecoder) DecodeByteArray(dst [][]byte) ([][]byte, error) { return dst, ErrNotSupported }
func (d *deltaDecoder) DecodeFixedLenByteArray(int, []byte) (int, error) {
	return 0, ErrNotSupported
}
