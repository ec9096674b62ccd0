package thriftcompact

import "testing"

func TestFieldHeaderRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteStructBegin()
	e.WriteFieldHeader(1, TypeI32)
	e.WriteI32(42)
	e.WriteFieldHeader(2, TypeBinary)
	e.WriteBinary([]byte("hello"))
	e.WriteFieldHeader(20, TypeI64) // delta > 15, forces the long form
	e.WriteI64(123456789)
	e.WriteStructEnd()

	d := NewDecoder(e.Bytes())
	if err := d.ReadStructBegin(); err != nil {
		t.Fatal(err)
	}

	fh, err := d.ReadFieldBegin()
	if err != nil || fh.ID != 1 || fh.Type != TypeI32 {
		t.Fatalf("field 1: %+v %v", fh, err)
	}
	i32, err := d.ReadI32()
	if err != nil || i32 != 42 {
		t.Fatalf("i32: %d %v", i32, err)
	}

	fh, err = d.ReadFieldBegin()
	if err != nil || fh.ID != 2 || fh.Type != TypeBinary {
		t.Fatalf("field 2: %+v %v", fh, err)
	}
	bin, err := d.ReadBinary()
	if err != nil || string(bin) != "hello" {
		t.Fatalf("binary: %q %v", bin, err)
	}

	fh, err = d.ReadFieldBegin()
	if err != nil || fh.ID != 20 || fh.Type != TypeI64 {
		t.Fatalf("field 20: %+v %v", fh, err)
	}
	i64, err := d.ReadI64()
	if err != nil || i64 != 123456789 {
		t.Fatalf("i64: %d %v", i64, err)
	}

	fh, err = d.ReadFieldBegin()
	if err != nil || fh.Type != TypeStop {
		t.Fatalf("expected stop: %+v %v", fh, err)
	}
	d.ReadStructEnd()
}

func TestBoolFieldInline(t *testing.T) {
	e := NewEncoder()
	e.WriteStructBegin()
	e.WriteBoolField(1, true)
	e.WriteBoolField(2, false)
	e.WriteStructEnd()

	d := NewDecoder(e.Bytes())
	_ = d.ReadStructBegin()

	fh, _ := d.ReadFieldBegin()
	v, err := d.ReadBool()
	if err != nil || !v || fh.ID != 1 {
		t.Fatalf("bool true: %v %v %+v", v, err, fh)
	}
	fh, _ = d.ReadFieldBegin()
	v, err = d.ReadBool()
	if err != nil || v || fh.ID != 2 {
		t.Fatalf("bool false: %v %v %+v", v, err, fh)
	}
}

func TestListRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteListBegin(TypeI32, 3)
	e.WriteI32(1)
	e.WriteI32(2)
	e.WriteI32(3)

	d := NewDecoder(e.Bytes())
	lh, err := d.ReadListBegin()
	if err != nil || lh.Size != 3 || lh.ElemType != TypeI32 {
		t.Fatalf("list header: %+v %v", lh, err)
	}
	for i, want := range []int32{1, 2, 3} {
		v, err := d.ReadI32()
		if err != nil || v != want {
			t.Fatalf("elem %d: %d %v", i, v, err)
		}
	}
}

func TestLargeListForcesLongForm(t *testing.T) {
	e := NewEncoder()
	e.WriteListBegin(TypeByte, 20)
	for i := 0; i < 20; i++ {
		e.WriteByte(byte(i))
	}
	d := NewDecoder(e.Bytes())
	lh, err := d.ReadListBegin()
	if err != nil || lh.Size != 20 {
		t.Fatalf("long-form list: %+v %v", lh, err)
	}
}

func TestMapRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteMapBegin(TypeBinary, TypeI32, 2)
	e.WriteString("a")
	e.WriteI32(1)
	e.WriteString("b")
	e.WriteI32(2)

	d := NewDecoder(e.Bytes())
	mh, err := d.ReadMapBegin()
	if err != nil || mh.Size != 2 {
		t.Fatalf("map header: %+v %v", mh, err)
	}
	k, _ := d.ReadString()
	v, _ := d.ReadI32()
	if k != "a" || v != 1 {
		t.Fatalf("entry 0: %q %d", k, v)
	}
}

func TestEmptyMapHasNoTypeByte(t *testing.T) {
	e := NewEncoder()
	e.WriteMapBegin(TypeBinary, TypeI32, 0)
	if len(e.Bytes()) != 1 {
		t.Fatalf("empty map should encode to a single zero-length varint byte, got %d bytes", len(e.Bytes()))
	}
}

func TestSkipStopIsError(t *testing.T) {
	d := NewDecoder(nil)
	if err := d.Skip(TypeStop); err == nil {
		t.Fatal("expected error skipping STOP")
	}
}

func TestNestingDepthExceeded(t *testing.T) {
	d := &Decoder{r: nil}
	d.depth = MaxNestingDepth
	if err := d.ReadStructBegin(); err == nil {
		t.Fatal("expected nesting depth error")
	}
}

func TestListSizeExceedingRemainingBytesRejected(t *testing.T) {
	// header claims 100 elements of 1-byte type but only a few bytes follow.
	buf := []byte{0xf3, 100, 1, 2, 3}
	d := NewDecoder(buf)
	if _, err := d.ReadListBegin(); err == nil {
		t.Fatal("expected oversized list to be rejected")
	}
}
