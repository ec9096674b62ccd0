package encoding

import (
	"bytes"
	"math"
	"testing"
)

func TestBitWidth(t *testing.T) {
	cases := []struct {
		max  uint64
		want int
	}{
		{0, 0}, {1, 1}, {2, 2}, {3, 2}, {4, 3}, {255, 8}, {256, 9},
	}
	for _, c := range cases {
		if got := BitWidth(c.max); got != c.want {
			t.Errorf("BitWidth(%d) = %d, want %d", c.max, got, c.want)
		}
	}
}

func TestPlainInt32RoundTrip(t *testing.T) {
	data := []int32{1, -2, 3, math.MaxInt32, math.MinInt32}
	var buf bytes.Buffer
	enc := Plain{}.NewEncoder(&buf)
	if err := enc.EncodeInt32(data); err != nil {
		t.Fatal(err)
	}
	dec := Plain{}.NewDecoder(&buf)
	got := make([]int32, len(data))
	n, err := dec.DecodeInt32(got)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("decoded %d values, want %d", n, len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("value %d: got %d want %d", i, got[i], data[i])
		}
	}
}

func TestPlainByteArrayRoundTrip(t *testing.T) {
	data := [][]byte{[]byte("hello"), []byte(""), []byte("parquet")}
	var buf bytes.Buffer
	enc := Plain{}.NewEncoder(&buf)
	if err := enc.EncodeByteArray(data); err != nil {
		t.Fatal(err)
	}
	dec := Plain{}.NewDecoder(&buf)
	got, err := dec.DecodeByteArray(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(data) {
		t.Fatalf("got %d values, want %d", len(got), len(data))
	}
	for i := range data {
		if !bytes.Equal(got[i], data[i]) {
			t.Fatalf("value %d: got %q want %q", i, got[i], data[i])
		}
	}
}

func TestPlainDoubleRoundTrip(t *testing.T) {
	data := []float64{0, 1.5, -3.25, math.Inf(1), math.Inf(-1)}
	var buf bytes.Buffer
	enc := Plain{}.NewEncoder(&buf)
	if err := enc.EncodeDouble(data); err != nil {
		t.Fatal(err)
	}
	dec := Plain{}.NewDecoder(&buf)
	got := make([]float64, len(data))
	if _, err := dec.DecodeDouble(got); err != nil {
		t.Fatal(err)
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("value %d: got %v want %v", i, got[i], data[i])
		}
	}
}

func TestRLERunLength(t *testing.T) {
	data := make([]int32, 100)
	for i := range data {
		data[i] = 7
	}
	var buf bytes.Buffer
	enc := RLE{}.NewEncoder(&buf)
	enc.SetBitWidth(BitWidth(7))
	if err := enc.EncodeInt32(data); err != nil {
		t.Fatal(err)
	}
	// a single run should need far fewer bytes than one per value.
	if buf.Len() > 10 {
		t.Fatalf("run-length encoding took %d bytes, expected a compact run", buf.Len())
	}
	dec := RLE{}.NewDecoder(&buf)
	dec.SetBitWidth(BitWidth(7))
	got := make([]int32, len(data))
	n, err := dec.DecodeInt32(got)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("decoded %d values, want %d", n, len(data))
	}
	for i := range data {
		if got[i] != 7 {
			t.Fatalf("value %d: got %d want 7", i, got[i])
		}
	}
}

func TestRLEBitPackedMixed(t *testing.T) {
	data := []int32{0, 1, 2, 0, 1, 2, 3, 1, 0, 2, 1, 3}
	var buf bytes.Buffer
	enc := RLE{}.NewEncoder(&buf)
	enc.SetBitWidth(BitWidth(3))
	if err := enc.EncodeInt32(data); err != nil {
		t.Fatal(err)
	}
	dec := RLE{}.NewDecoder(&buf)
	dec.SetBitWidth(BitWidth(3))
	got := make([]int32, len(data))
	n, err := dec.DecodeInt32(got)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("decoded %d values, want %d", n, len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("value %d: got %d want %d", i, got[i], data[i])
		}
	}
}

func TestDeltaBinaryPackedRoundTrip(t *testing.T) {
	data := make([]int64, 500)
	v := int64(1000)
	for i := range data {
		v += int64(i%7) - 3
		data[i] = v
	}
	var buf bytes.Buffer
	enc := DeltaBinaryPacked{}.NewEncoder(&buf)
	if err := enc.EncodeInt64(data); err != nil {
		t.Fatal(err)
	}
	dec := DeltaBinaryPacked{}.NewDecoder(&buf)
	got := make([]int64, len(data))
	n, err := dec.DecodeInt64(got)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("decoded %d values, want %d", n, len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("value %d: got %d want %d", i, got[i], data[i])
		}
	}
}

func TestDeltaBinaryPackedEmpty(t *testing.T) {
	var buf bytes.Buffer
	enc := DeltaBinaryPacked{}.NewEncoder(&buf)
	if err := enc.EncodeInt64(nil); err != nil {
		t.Fatal(err)
	}
	dec := DeltaBinaryPacked{}.NewDecoder(&buf)
	n, err := dec.DecodeInt64(nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("got %d values, want 0", n)
	}
}

func TestByteStreamSplitDoubleRoundTrip(t *testing.T) {
	data := []float64{1.1, -2.2, 3.3, 0, math.Pi}
	var buf bytes.Buffer
	enc := ByteStreamSplit{}.NewEncoder(&buf)
	if err := enc.EncodeDouble(data); err != nil {
		t.Fatal(err)
	}
	dec := ByteStreamSplit{}.NewDecoder(&buf)
	got := make([]float64, len(data))
	n, err := dec.DecodeDouble(got)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("decoded %d values, want %d", n, len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("value %d: got %v want %v", i, got[i], data[i])
		}
	}
}

func TestLevelsRoundTrip(t *testing.T) {
	levels := []int32{0, 1, 1, 2, 2, 2, 0, 1}
	encoded, err := EncodeLevels(levels, 2)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]int32, len(levels))
	if err := DecodeLevels(bytes.NewReader(encoded), got, 2); err != nil {
		t.Fatal(err)
	}
	for i := range levels {
		if got[i] != levels[i] {
			t.Fatalf("level %d: got %d want %d", i, got[i], levels[i])
		}
	}
}

func TestLevelsZeroMaxLevel(t *testing.T) {
	encoded, err := EncodeLevels([]int32{0, 0, 0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if encoded != nil {
		t.Fatalf("expected no bytes for maxLevel 0, got %d", len(encoded))
	}
	got := make([]int32, 3)
	if err := DecodeLevels(bytes.NewReader(nil), got, 0); err != nil {
		t.Fatal(err)
	}
	for _, v := range got {
		if v != 0 {
			t.Fatalf("expected all-zero levels, got %v", got)
		}
	}
}

func TestDictionaryIndexRoundTrip(t *testing.T) {
	data := []int32{0, 1, 2, 3, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	var buf bytes.Buffer
	enc := DictionaryIndex{}.NewEncoder(&buf)
	enc.SetBitWidth(BitWidth(3))
	if err := enc.EncodeInt32(data); err != nil {
		t.Fatal(err)
	}
	dec := DictionaryIndex{}.NewDecoder(&buf)
	got := make([]int32, len(data))
	n, err := dec.DecodeInt32(got)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("decoded %d values, want %d", n, len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("value %d: got %d want %d", i, got[i], data[i])
		}
	}
}
