package thriftcompact

import "github.com/arrowlake/parquet/byteio"

// Encoder writes Thrift compact-protocol values into a growable buffer.
type Encoder struct {
	buf         []byte
	lastFieldID []int16
}

// NewEncoder constructs an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Bytes returns the encoded output so far.
func (e *Encoder) Bytes() []byte { return e.buf }

// Reset clears the encoder's output for reuse.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.lastFieldID = e.lastFieldID[:0]
}

// WriteStructBegin enters a new struct.
func (e *Encoder) WriteStructBegin() { e.lastFieldID = append(e.lastFieldID, 0) }

// WriteStructEnd emits the STOP byte terminating the current struct.
func (e *Encoder) WriteStructEnd() {
	e.buf = append(e.buf, 0)
	e.lastFieldID = e.lastFieldID[:len(e.lastFieldID)-1]
}

// WriteFieldHeader emits a field header for field id with the given wire
// type, using delta form when possible.
func (e *Encoder) WriteFieldHeader(id int16, wireType byte) {
	top := len(e.lastFieldID) - 1
	delta := id - e.lastFieldID[top]
	if delta > 0 && delta <= 15 {
		e.buf = append(e.buf, byte(delta)<<4|wireType)
	} else {
		e.buf = append(e.buf, wireType)
		e.buf = byteio.AppendVarint(e.buf, int64(id))
	}
	e.lastFieldID[top] = id
}

// WriteBoolField emits a field header whose wire type carries the boolean
// value inline (TypeBoolTrue/TypeBoolFalse).
func (e *Encoder) WriteBoolField(id int16, v bool) {
	wireType := byte(TypeBoolFalse)
	if v {
		wireType = TypeBoolTrue
	}
	e.WriteFieldHeader(id, wireType)
}

// WriteBool emits a standalone boolean byte (used outside of field
// headers, e.g. inside lists).
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.buf = append(e.buf, TypeBoolTrue)
	} else {
		e.buf = append(e.buf, TypeBoolFalse)
	}
}

// WriteByte emits one raw byte.
func (e *Encoder) WriteByte(v byte) { e.buf = append(e.buf, v) }

// WriteI16 emits a zigzag+varint i16.
func (e *Encoder) WriteI16(v int16) { e.buf = byteio.AppendVarint(e.buf, int64(v)) }

// WriteI32 emits a zigzag+varint i32.
func (e *Encoder) WriteI32(v int32) { e.buf = byteio.AppendVarint(e.buf, int64(v)) }

// WriteI64 emits a zigzag+varint i64.
func (e *Encoder) WriteI64(v int64) { e.buf = byteio.AppendVarint(e.buf, v) }

// WriteDouble emits 8 raw little-endian bytes.
func (e *Encoder) WriteDouble(v float64) {
	var b [8]byte
	byteio.PutFloat64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// WriteBinary emits a varint length prefix followed by v.
func (e *Encoder) WriteBinary(v []byte) {
	e.buf = byteio.AppendUvarint(e.buf, uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// WriteString is WriteBinary for a string.
func (e *Encoder) WriteString(v string) {
	e.buf = byteio.AppendUvarint(e.buf, uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// WriteUUID emits 16 raw bytes.
func (e *Encoder) WriteUUID(v []byte) { e.buf = append(e.buf, v...) }

// WriteListBegin emits a list/set header for size elements of elemType.
func (e *Encoder) WriteListBegin(elemType byte, size int) {
	if size <= 14 {
		e.buf = append(e.buf, byte(size)<<4|elemType)
	} else {
		e.buf = append(e.buf, 0xf0|elemType)
		e.buf = byteio.AppendUvarint(e.buf, uint64(size))
	}
}

// WriteMapBegin emits a map header for size key/value pairs. A size of 0
// emits only the zero-length varint, with no type byte.
func (e *Encoder) WriteMapBegin(keyType, valueType byte, size int) {
	e.buf = byteio.AppendUvarint(e.buf, uint64(size))
	if size == 0 {
		return
	}
	e.buf = append(e.buf, keyType<<4|valueType)
}
