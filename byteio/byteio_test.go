package byteio

import "testing"

func TestZigZagRoundTrip64(t *testing.T) {
	for n := int64(-1000000); n <= 1000000; n += 997 {
		if got := ZigZagDecode64(ZigZagEncode64(n)); got != n {
			t.Fatalf("zigzag64(%d) = %d", n, got)
		}
	}
}

func TestZigZagRoundTrip32(t *testing.T) {
	for n := int32(-1000000); n <= 1000000; n += 997 {
		if got := ZigZagDecode32(ZigZagEncode32(n)); got != n {
			t.Fatalf("zigzag32(%d) = %d", n, got)
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16383, 16384, 1 << 35, ^uint64(0)}
	for _, v := range values {
		buf := AppendUvarint(nil, v)
		if len(buf) > 10 {
			t.Fatalf("varint(%d) used %d bytes, want <= 10", v, len(buf))
		}
		got, n, err := Uvarint(buf, 10)
		if err != nil {
			t.Fatalf("uvarint(%d): %v", v, err)
		}
		if n != len(buf) || got != v {
			t.Fatalf("uvarint(%d) = %d, %d bytes", v, got, n)
		}
	}
}

func TestVarintTruncated(t *testing.T) {
	buf := []byte{0x80, 0x80, 0x80} // continuation bits with no terminator
	if _, _, err := Uvarint(buf, 5); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestCRC32Deterministic(t *testing.T) {
	a := CRC32([]byte("the quick brown fox"))
	b := CRC32([]byte("the quick brown fox"))
	if a != b {
		t.Fatal("CRC32 should be deterministic")
	}
}

func TestFloatRoundTrip(t *testing.T) {
	b := make([]byte, 8)
	PutFloat64(b, 3.14159)
	if got := GetFloat64(b); got != 3.14159 {
		t.Fatalf("float64 round trip: %v", got)
	}
	b32 := make([]byte, 4)
	PutFloat32(b32, 2.5)
	if got := GetFloat32(b32); got != 2.5 {
		t.Fatalf("float32 round trip: %v", got)
	}
}
