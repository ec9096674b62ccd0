// Package thriftcompact implements the Thrift compact protocol used to
// encode Parquet's footer and page headers. It is hand-written rather than
// delegated to a generic reflection-based Thrift library because the
// defensive-decoding contract of spec §4.3 (bounded nesting, per-container
// remaining-bytes checks, and per-structure caps) needs to live at the wire
// codec layer itself, where a generic library gives no hook for it.
package thriftcompact

import (
	"errors"
	"fmt"

	"github.com/arrowlake/parquet/byteio"
)

// Wire types, as defined by the Thrift compact protocol.
const (
	TypeStop         = 0
	TypeBoolTrue     = 1
	TypeBoolFalse    = 2
	TypeByte         = 3
	TypeI16          = 4
	TypeI32          = 5
	TypeI64          = 6
	TypeDouble       = 7
	TypeBinary       = 8
	TypeList         = 9
	TypeSet          = 10
	TypeMap          = 11
	TypeStruct       = 12
	TypeUUID         = 13
)

// ErrInvalidMetadata is returned whenever the decoder's defensive checks
// reject the input (nesting too deep, container too large, a STOP byte
// where an element type was expected, unknown/invalid wire types).
var ErrInvalidMetadata = errors.New("thriftcompact: invalid metadata")

// MaxNestingDepth is the maximum struct nesting depth a Decoder will
// tolerate before failing with ErrInvalidMetadata.
const MaxNestingDepth = 32

// FieldHeader describes one field encountered while reading a struct.
type FieldHeader struct {
	ID   int16
	Type byte
	// BoolValue holds the inline boolean payload carried by field headers
	// of wire type TypeBoolTrue/TypeBoolFalse; valid only when Type is one
	// of those two.
	BoolValue bool
}

// Decoder reads Thrift compact-protocol values out of a byteio.Reader.
type Decoder struct {
	r     *byteio.Reader
	depth int

	// lastFieldID per struct nesting level, mirroring the encoder's
	// delta-tracking scheme.
	lastFieldID []int16

	// pendingBool holds an inline bool value read as part of a field
	// header, consumed by the next ReadBool call.
	pendingBool    bool
	hasPendingBool bool
}

// NewDecoder constructs a Decoder over buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{r: byteio.NewReader(buf)}
}

func (d *Decoder) remaining() int { return d.r.Len() }

// Pos returns the number of bytes consumed from the decoder's input so far.
func (d *Decoder) Pos() int { return d.r.Pos() }

// ReadStructBegin enters a new struct, enforcing the nesting-depth cap.
func (d *Decoder) ReadStructBegin() error {
	d.depth++
	if d.depth > MaxNestingDepth {
		return fmt.Errorf("%w: struct nesting exceeds %d", ErrInvalidMetadata, MaxNestingDepth)
	}
	d.lastFieldID = append(d.lastFieldID, 0)
	return nil
}

// ReadStructEnd leaves the current struct.
func (d *Decoder) ReadStructEnd() {
	d.depth--
	d.lastFieldID = d.lastFieldID[:len(d.lastFieldID)-1]
}

// ReadFieldBegin reads the next field header. A header byte of 0 signals
// the end of the struct (FieldHeader.Type == TypeStop).
func (d *Decoder) ReadFieldBegin() (FieldHeader, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return FieldHeader{}, err
	}
	if b == 0 {
		return FieldHeader{Type: TypeStop}, nil
	}

	delta := int16(b >> 4)
	wireType := b & 0x0f

	top := len(d.lastFieldID) - 1
	var id int16
	if delta == 0 {
		v, _, err := d.readVarint(5)
		if err != nil {
			return FieldHeader{}, err
		}
		id = int16(v)
	} else {
		id = d.lastFieldID[top] + delta
	}
	d.lastFieldID[top] = id

	fh := FieldHeader{ID: id, Type: wireType}
	switch wireType {
	case TypeBoolTrue:
		fh.BoolValue = true
		d.pendingBool, d.hasPendingBool = true, true
	case TypeBoolFalse:
		fh.BoolValue = false
		d.pendingBool, d.hasPendingBool = false, true
	}
	return fh, nil
}

func (d *Decoder) readVarint(maxBytes int) (int64, int, error) {
	u, n, err := d.readUvarint(maxBytes)
	if err != nil {
		return 0, 0, err
	}
	return byteio.ZigZagDecode64(u), n, nil
}

func (d *Decoder) readUvarint(maxBytes int) (uint64, int, error) {
	peek := d.r.Peek(maxBytes)
	v, n, err := byteio.Uvarint(peek, maxBytes)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	_ = d.r.Skip(n)
	return v, n, nil
}

// ReadBool reads a boolean value, consuming an inline value from a
// preceding field header when one is pending.
func (d *Decoder) ReadBool() (bool, error) {
	if d.hasPendingBool {
		d.hasPendingBool = false
		return d.pendingBool, nil
	}
	b, err := d.r.ReadByte()
	if err != nil {
		return false, err
	}
	return b == TypeBoolTrue, nil
}

// ReadByte reads a single raw byte.
func (d *Decoder) ReadByte() (byte, error) { return d.r.ReadByte() }

// ReadI16 reads a zigzag+varint i16.
func (d *Decoder) ReadI16() (int16, error) {
	v, _, err := d.readVarint(3)
	return int16(v), err
}

// ReadI32 reads a zigzag+varint i32.
func (d *Decoder) ReadI32() (int32, error) {
	v, _, err := d.readVarint(5)
	return int32(v), err
}

// ReadI64 reads a zigzag+varint i64.
func (d *Decoder) ReadI64() (int64, error) {
	v, _, err := d.readVarint(10)
	return v, err
}

// ReadDouble reads 8 raw little-endian bytes as a float64.
func (d *Decoder) ReadDouble() (float64, error) {
	b, err := d.r.Read(8)
	if err != nil {
		return 0, err
	}
	return byteio.GetFloat64(b), nil
}

// ReadBinary reads a varint length prefix followed by that many raw bytes,
// returned as a slice aliasing the decoder's input (zero-copy).
func (d *Decoder) ReadBinary() ([]byte, error) {
	n, _, err := d.readUvarint(5)
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(d.remaining()) {
		return nil, fmt.Errorf("%w: binary length %d exceeds remaining %d bytes", ErrInvalidMetadata, n, d.remaining())
	}
	return d.r.Read(int(n))
}

// ReadString is ReadBinary with a string result.
func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadBinary()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadUUID reads 16 raw bytes.
func (d *Decoder) ReadUUID() ([]byte, error) { return d.r.Read(16) }

// ListHeader describes the element type and count of a list or set.
type ListHeader struct {
	ElemType byte
	Size     int
}

// ReadListBegin reads a list/set header, rejecting counts that cannot
// possibly fit in the remaining bytes (each element is at least 1 byte).
func (d *Decoder) ReadListBegin() (ListHeader, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return ListHeader{}, err
	}
	size := int(b >> 4)
	elemType := b & 0x0f
	if size == 0x0f {
		v, _, err := d.readUvarint(5)
		if err != nil {
			return ListHeader{}, err
		}
		size = int(v)
	}
	if elemType == TypeStop {
		return ListHeader{}, fmt.Errorf("%w: list element type is STOP", ErrInvalidMetadata)
	}
	if size > d.remaining() {
		return ListHeader{}, fmt.Errorf("%w: list size %d exceeds remaining %d bytes", ErrInvalidMetadata, size, d.remaining())
	}
	return ListHeader{ElemType: elemType, Size: size}, nil
}

// MapHeader describes the key/value types and count of a map.
type MapHeader struct {
	KeyType   byte
	ValueType byte
	Size      int
}

// ReadMapBegin reads a map header. A zero count is encoded with no type
// byte at all.
func (d *Decoder) ReadMapBegin() (MapHeader, error) {
	v, _, err := d.readUvarint(5)
	if err != nil {
		return MapHeader{}, err
	}
	size := int(v)
	if size == 0 {
		return MapHeader{}, nil
	}
	b, err := d.r.ReadByte()
	if err != nil {
		return MapHeader{}, err
	}
	kt := b >> 4
	vt := b & 0x0f
	if kt == TypeStop || vt == TypeStop {
		return MapHeader{}, fmt.Errorf("%w: map key/value type is STOP", ErrInvalidMetadata)
	}
	// a map entry needs at least 2 bytes (one per key/value minimum).
	if size*2 > d.remaining() {
		return MapHeader{}, fmt.Errorf("%w: map size %d exceeds remaining %d bytes", ErrInvalidMetadata, size, d.remaining())
	}
	return MapHeader{KeyType: kt, ValueType: vt, Size: size}, nil
}

// Skip consumes and discards one value of the given wire type, recursing
// into containers and structs while honoring the nesting-depth cap. A
// wireType of TypeStop is always an error: a STOP smuggled in as a
// container element type must never silently succeed, or a crafted file
// could make Skip loop forever trying to skip zero elements one short.
func (d *Decoder) Skip(wireType byte) error {
	switch wireType {
	case TypeStop:
		return fmt.Errorf("%w: cannot skip STOP", ErrInvalidMetadata)
	case TypeBoolTrue, TypeBoolFalse:
		_, err := d.ReadBool()
		return err
	case TypeByte:
		_, err := d.ReadByte()
		return err
	case TypeI16, TypeI32, TypeI64:
		_, _, err := d.readVarint(10)
		return err
	case TypeDouble:
		_, err := d.ReadDouble()
		return err
	case TypeBinary:
		_, err := d.ReadBinary()
		return err
	case TypeUUID:
		_, err := d.ReadUUID()
		return err
	case TypeList, TypeSet:
		lh, err := d.ReadListBegin()
		if err != nil {
			return err
		}
		for i := 0; i < lh.Size; i++ {
			if err := d.Skip(lh.ElemType); err != nil {
				return err
			}
		}
		return nil
	case TypeMap:
		mh, err := d.ReadMapBegin()
		if err != nil {
			return err
		}
		for i := 0; i < mh.Size; i++ {
			if err := d.Skip(mh.KeyType); err != nil {
				return err
			}
			if err := d.Skip(mh.ValueType); err != nil {
				return err
			}
		}
		return nil
	case TypeStruct:
		if err := d.ReadStructBegin(); err != nil {
			return err
		}
		defer d.ReadStructEnd()
		for {
			fh, err := d.ReadFieldBegin()
			if err != nil {
				return err
			}
			if fh.Type == TypeStop {
				return nil
			}
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown wire type %d", ErrInvalidMetadata, wireType)
	}
}
