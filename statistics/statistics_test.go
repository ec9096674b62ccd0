package statistics

import (
	"math"
	"testing"

	"github.com/arrowlake/parquet/format"
)

func le32Bytes(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func le64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> uint(8*i))
	}
	return b
}

func TestCompareInt32(t *testing.T) {
	cmp := ComparatorFor(format.Int32)
	neg := int32(-5)
	a := le32Bytes(uint32(neg))
	b := le32Bytes(uint32(int32(5)))
	if cmp(a, b) >= 0 {
		t.Fatalf("expected -5 < 5")
	}
	if cmp(b, a) <= 0 {
		t.Fatalf("expected 5 > -5")
	}
	if cmp(a, a) != 0 {
		t.Fatalf("expected equal")
	}
}

func TestCompareDoubleNaNSortsHighest(t *testing.T) {
	cmp := ComparatorFor(format.Double)
	nan := le64Bytes(math.Float64bits(math.NaN()))
	inf := le64Bytes(math.Float64bits(math.Inf(1)))
	if cmp(nan, inf) <= 0 {
		t.Fatalf("expected NaN to sort above +Inf")
	}
}

func TestCompareDoubleNegativeBeforePositive(t *testing.T) {
	cmp := ComparatorFor(format.Double)
	neg := le64Bytes(math.Float64bits(-1.5))
	pos := le64Bytes(math.Float64bits(1.5))
	if cmp(neg, pos) >= 0 {
		t.Fatalf("expected -1.5 < 1.5")
	}
}

func TestTrackerMinMax(t *testing.T) {
	tr := NewTracker(format.Int32)
	values := []int32{5, -3, 10, 0}
	for _, v := range values {
		tr.Observe(le32Bytes(uint32(v)))
	}
	tr.ObserveNull()
	stats := tr.Statistics()
	if int32(le32(stats.Min)) != -3 {
		t.Fatalf("min: got %d, want -3", int32(le32(stats.Min)))
	}
	if int32(le32(stats.Max)) != 10 {
		t.Fatalf("max: got %d, want 10", int32(le32(stats.Max)))
	}
	if stats.NullCount != 1 {
		t.Fatalf("null count: got %d, want 1", stats.NullCount)
	}
}

func TestColumnIndexBoundaryOrderAscending(t *testing.T) {
	b := NewColumnIndexBuilder(format.Int32)
	for _, pair := range [][2]int32{{0, 5}, {6, 10}, {11, 20}} {
		tr := NewTracker(format.Int32)
		tr.Observe(le32Bytes(uint32(pair[0])))
		tr.Observe(le32Bytes(uint32(pair[1])))
		b.AddPage(tr)
	}
	idx := b.Build()
	if idx.BoundaryOrder != format.Ascending {
		t.Fatalf("boundary order: got %v, want Ascending", idx.BoundaryOrder)
	}
}

func TestColumnIndexBoundaryOrderWithNullPage(t *testing.T) {
	b := NewColumnIndexBuilder(format.Int32)
	tr1 := NewTracker(format.Int32)
	tr1.Observe(le32Bytes(uint32(1)))
	b.AddPage(tr1)
	b.AddPage(NewTracker(format.Int32)) // all-null page
	tr3 := NewTracker(format.Int32)
	tr3.Observe(le32Bytes(uint32(2)))
	b.AddPage(tr3)
	idx := b.Build()
	if !idx.NullPages[1] {
		t.Fatalf("expected page 1 to be marked all-null")
	}
	if idx.BoundaryOrder != format.Ascending {
		t.Fatalf("boundary order should ignore the null page, got %v", idx.BoundaryOrder)
	}
}

func TestRowGroupMatches(t *testing.T) {
	stats := format.Statistics{HasMin: true, HasMax: true, Min: le32Bytes(0), Max: le32Bytes(100)}
	keepOutOfRange := func(min, max []byte) bool { return int32(le32(max)) >= 200 }
	if RowGroupMatches(stats, keepOutOfRange) {
		t.Fatalf("expected row group to be pruned")
	}
	keepInRange := func(min, max []byte) bool { return int32(le32(max)) >= 50 }
	if !RowGroupMatches(stats, keepInRange) {
		t.Fatalf("expected row group to match")
	}
}
