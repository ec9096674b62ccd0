// Package statistics implements per-physical-type value comparison (spec
// §4.8), the running min/max/null-count tracker used while writing a
// column chunk, and the column/offset-index row-group pruning queries used
// while reading one.
package statistics

import (
	"bytes"
	"math"

	"github.com/arrowlake/parquet/deprecated"
	"github.com/arrowlake/parquet/format"
)

// Comparator orders the encoded bytes of two values of the same physical
// type, returning a negative, zero, or positive value the way bytes.Compare
// does. NaN is never considered less than or greater than any value except
// to establish the total order required to keep a min/max tracker
// well-defined: NaN sorts greater than every other float, including +Inf,
// matching the convention parquet-mr uses for statistics.
type Comparator func(a, b []byte) int

// ComparatorFor returns the Comparator for a leaf column's physical type.
// Byte array and fixed-length byte array columns compare lexicographically
// regardless of any logical/converted type layered on top; spec §4.8 leaves
// logical-type-aware ordering (e.g. signed vs unsigned integers sharing a
// physical INT32) as a caller concern layered above this package.
func ComparatorFor(t format.Type) Comparator {
	switch t {
	case format.Boolean:
		return compareBoolean
	case format.Int32:
		return compareInt32
	case format.Int64:
		return compareInt64
	case format.Int96:
		return compareInt96
	case format.Float:
		return compareFloat
	case format.Double:
		return compareDouble
	default:
		return bytes.Compare
	}
}

func compareBoolean(a, b []byte) int {
	av, bv := a[0] != 0, b[0] != 0
	switch {
	case av == bv:
		return 0
	case !av:
		return -1
	default:
		return 1
	}
}

func compareInt32(a, b []byte) int {
	av := int32(le32(a))
	bv := int32(le32(b))
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func compareInt64(a, b []byte) int {
	av := int64(le64(a))
	bv := int64(le64(b))
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func compareInt96(a, b []byte) int {
	av := deprecated.Int96{le32(a[0:4]), le32(a[4:8]), le32(a[8:12])}
	bv := deprecated.Int96{le32(b[0:4]), le32(b[4:8]), le32(b[8:12])}
	switch {
	case av.Less(bv):
		return -1
	case bv.Less(av):
		return 1
	default:
		return 0
	}
}

// totalOrderFloat64 maps a float64 to a uint64 preserving total order with
// NaN sorting above every other value, including +Inf.
func totalOrderFloat64(f float64) uint64 {
	if math.IsNaN(f) {
		return math.MaxUint64
	}
	u := math.Float64bits(f)
	if u>>63 == 1 {
		return ^u
	}
	return u ^ (1 << 63)
}

func totalOrderFloat32(f float32) uint32 {
	if f != f { // NaN
		return math.MaxUint32
	}
	u := math.Float32bits(f)
	if u>>31 == 1 {
		return ^u
	}
	return u ^ (1 << 31)
}

func compareFloat(a, b []byte) int {
	av := totalOrderFloat32(math.Float32frombits(le32(a)))
	bv := totalOrderFloat32(math.Float32frombits(le32(b)))
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func compareDouble(a, b []byte) int {
	av := totalOrderFloat64(math.Float64frombits(le64(a)))
	bv := totalOrderFloat64(math.Float64frombits(le64(b)))
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func le64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

// Tracker accumulates the min, max, and null count for one column chunk or
// page as values are written, for later emission as a format.Statistics or a
// format.ColumnIndex entry. It keeps no distinct count.
type Tracker struct {
	cmp       Comparator
	hasValue  bool
	min, max  []byte
	nullCount int64
	count     int64
}

// NewTracker returns a Tracker for the given physical type.
func NewTracker(t format.Type) *Tracker {
	return &Tracker{cmp: ComparatorFor(t)}
}

// Observe folds one non-null encoded value into the running min/max.
func (t *Tracker) Observe(value []byte) {
	t.count++
	if !t.hasValue {
		t.min = append([]byte(nil), value...)
		t.max = append([]byte(nil), value...)
		t.hasValue = true
		return
	}
	if t.cmp(value, t.min) < 0 {
		t.min = append(t.min[:0], value...)
	}
	if t.cmp(value, t.max) > 0 {
		t.max = append(t.max[:0], value...)
	}
}

// ObserveNull records one null value.
func (t *Tracker) ObserveNull() { t.nullCount++ }

// Statistics returns the accumulated format.Statistics. MinExact/MaxExact are
// always reported true: this tracker never truncates values, unlike some
// writers that shorten long byte-array min/max bounds for page indexes.
func (t *Tracker) Statistics() format.Statistics {
	s := format.Statistics{
		HasNullCount: true,
		NullCount:    t.nullCount,
	}
	if t.hasValue {
		s.HasMin, s.Min = true, t.min
		s.HasMax, s.Max = true, t.max
		s.HasMinExact, s.MinExact = true, true
		s.HasMaxExact, s.MaxExact = true, true
	}
	return s
}

// NullCount returns the number of nulls observed so far.
func (t *Tracker) NullCount() int64 { return t.nullCount }

// HasValue reports whether at least one non-null value was observed.
func (t *Tracker) HasValue() bool { return t.hasValue }

// Min and Max return the current bounds; callers must not retain the
// returned slices past the next Observe call.
func (t *Tracker) Min() []byte { return t.min }
func (t *Tracker) Max() []byte { return t.max }

// Reset clears the tracker for reuse on the next page.
func (t *Tracker) Reset() {
	t.hasValue = false
	t.min = t.min[:0]
	t.max = t.max[:0]
	t.nullCount = 0
	t.count = 0
}
