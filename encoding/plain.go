package encoding

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/arrowlake/parquet/byteio"
	"github.com/arrowlake/parquet/deprecated"
	"github.com/arrowlake/parquet/format"
)

// Plain implements the PLAIN encoding (spec §4.5): values are written back
// to back in their natural binary layout, byte arrays prefixed with a
// 4-byte little-endian length.
type Plain struct{}

func (Plain) String() string                { return "PLAIN" }
func (Plain) Encoding() format.Encoding     { return format.Plain }
func (Plain) CanEncode(format.Type) bool    { return true }
func (Plain) NewEncoder(w io.Writer) Encoder { return &plainEncoder{w: w} }
func (Plain) NewDecoder(r io.Reader) Decoder { return &plainDecoder{r: r} }

type plainEncoder struct {
	w   io.Writer
	buf [8]byte
}

func (e *plainEncoder) Reset(w io.Writer)            { e.w = w }
func (e *plainEncoder) Encoding() format.Encoding     { return format.Plain }
func (e *plainEncoder) SetBitWidth(int)               {}

func (e *plainEncoder) EncodeBoolean(data []bool) error {
	packed := make([]byte, (len(data)+7)/8)
	for i, v := range data {
		if v {
			packed[i/8] |= 1 << uint(i%8)
		}
	}
	_, err := e.w.Write(packed)
	return err
}

func (e *plainEncoder) EncodeInt32(data []int32) error {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	_, err := e.w.Write(buf)
	return err
}

func (e *plainEncoder) EncodeInt64(data []int64) error {
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	_, err := e.w.Write(buf)
	return err
}

func (e *plainEncoder) EncodeInt96(data []deprecated.Int96) error {
	buf := make([]byte, 12*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*12:], v[0])
		binary.LittleEndian.PutUint32(buf[i*12+4:], v[1])
		binary.LittleEndian.PutUint32(buf[i*12+8:], v[2])
	}
	_, err := e.w.Write(buf)
	return err
}

func (e *plainEncoder) EncodeFloat(data []float32) error {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		byteio.PutFloat32(buf[i*4:], v)
	}
	_, err := e.w.Write(buf)
	return err
}

func (e *plainEncoder) EncodeDouble(data []float64) error {
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		byteio.PutFloat64(buf[i*8:], v)
	}
	_, err := e.w.Write(buf)
	return err
}

func (e *plainEncoder) EncodeByteArray(data [][]byte) error {
	for _, v := range data {
		binary.LittleEndian.PutUint32(e.buf[:4], uint32(len(v)))
		if _, err := e.w.Write(e.buf[:4]); err != nil {
			return err
		}
		if len(v) > 0 {
			if _, err := e.w.Write(v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *plainEncoder) EncodeFixedLenByteArray(size int, data []byte) error {
	_, err := e.w.Write(data)
	return err
}

type plainDecoder struct {
	r io.Reader
}

func (d *plainDecoder) Reset(r io.Reader)        { d.r = r }
func (d *plainDecoder) Encoding() format.Encoding { return format.Plain }
func (d *plainDecoder) SetBitWidth(int)           {}

func readFull(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

func (d *plainDecoder) DecodeBoolean(data []bool) (int, error) {
	packed := make([]byte, (len(data)+7)/8)
	n, err := readFull(d.r, packed)
	count := 0
	for i := range data {
		if i/8 >= n {
			break
		}
		data[i] = packed[i/8]&(1<<uint(i%8)) != 0
		count++
	}
	if count == 0 && err != nil {
		return 0, err
	}
	if count < len(data) {
		return count, io.EOF
	}
	return count, nil
}

func (d *plainDecoder) DecodeInt32(data []int32) (int, error) {
	buf := make([]byte, 4*len(data))
	n, err := readFull(d.r, buf)
	count := n / 4
	for i := 0; i < count; i++ {
		data[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	if count < len(data) {
		if err == nil {
			err = io.EOF
		}
		return count, err
	}
	return count, nil
}

func (d *plainDecoder) DecodeInt64(data []int64) (int, error) {
	buf := make([]byte, 8*len(data))
	n, err := readFull(d.r, buf)
	count := n / 8
	for i := 0; i < count; i++ {
		data[i] = int64(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	if count < len(data) {
		if err == nil {
			err = io.EOF
		}
		return count, err
	}
	return count, nil
}

func (d *plainDecoder) DecodeInt96(data []deprecated.Int96) (int, error) {
	buf := make([]byte, 12*len(data))
	n, err := readFull(d.r, buf)
	count := n / 12
	for i := 0; i < count; i++ {
		data[i][0] = binary.LittleEndian.Uint32(buf[i*12:])
		data[i][1] = binary.LittleEndian.Uint32(buf[i*12+4:])
		data[i][2] = binary.LittleEndian.Uint32(buf[i*12+8:])
	}
	if count < len(data) {
		if err == nil {
			err = io.EOF
		}
		return count, err
	}
	return count, nil
}

func (d *plainDecoder) DecodeFloat(data []float32) (int, error) {
	buf := make([]byte, 4*len(data))
	n, err := readFull(d.r, buf)
	count := n / 4
	for i := 0; i < count; i++ {
		data[i] = byteio.GetFloat32(buf[i*4:])
	}
	if count < len(data) {
		if err == nil {
			err = io.EOF
		}
		return count, err
	}
	return count, nil
}

func (d *plainDecoder) DecodeDouble(data []float64) (int, error) {
	buf := make([]byte, 8*len(data))
	n, err := readFull(d.r, buf)
	count := n / 8
	for i := 0; i < count; i++ {
		data[i] = byteio.GetFloat64(buf[i*8:])
	}
	if count < len(data) {
		if err == nil {
			err = io.EOF
		}
		return count, err
	}
	return count, nil
}

func (d *plainDecoder) DecodeByteArray(dst [][]byte) ([][]byte, error) {
	var lenBuf [4]byte
	for {
		if _, err := readFull(d.r, lenBuf[:]); err != nil {
			if err == io.EOF {
				return dst, nil
			}
			return dst, err
		}
		n := binary.LittleEndian.Uint32(lenBuf[:])
		if n > format.MaxByteArrayLength {
			return dst, fmt.Errorf("%w: byte array length %d exceeds limit", ErrInvalidEncoding, n)
		}
		v := make([]byte, n)
		if n > 0 {
			if _, err := readFull(d.r, v); err != nil {
				return dst, fmt.Errorf("%w: truncated byte array value", ErrInvalidEncoding)
			}
		}
		dst = append(dst, v)
	}
}

func (d *plainDecoder) DecodeFixedLenByteArray(size int, data []byte) (int, error) {
	n, err := readFull(d.r, data)
	count := n / size
	if count < len(data)/size {
		if err == nil {
			err = io.EOF
		}
		return count, err
	}
	return count, nil
}
