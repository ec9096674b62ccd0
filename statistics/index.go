package statistics

import "github.com/arrowlake/parquet/format"

// ColumnIndexBuilder accumulates one format.ColumnIndex entry per data page
// of a column chunk (spec §4.9), used by readers to prune pages without
// touching their data.
type ColumnIndexBuilder struct {
	cmp           Comparator
	nullPages     []bool
	minValues     [][]byte
	maxValues     [][]byte
	nullCounts    []int64
	boundaryOrder format.BoundaryOrder
}

// NewColumnIndexBuilder returns a builder for the given physical type.
func NewColumnIndexBuilder(t format.Type) *ColumnIndexBuilder {
	return &ColumnIndexBuilder{cmp: ComparatorFor(t)}
}

// AddPage records one page's statistics. An all-null page passes min=max=nil.
func (b *ColumnIndexBuilder) AddPage(t *Tracker) {
	b.nullPages = append(b.nullPages, !t.HasValue())
	if t.HasValue() {
		b.minValues = append(b.minValues, append([]byte(nil), t.Min()...))
		b.maxValues = append(b.maxValues, append([]byte(nil), t.Max()...))
	} else {
		b.minValues = append(b.minValues, nil)
		b.maxValues = append(b.maxValues, nil)
	}
	b.nullCounts = append(b.nullCounts, t.NullCount())
}

// Build finalizes the index, computing the boundary order (spec §4.9: pages
// whose min/max are monotonically ascending or descending across the whole
// chunk get an index a reader can binary-search instead of linear-scan).
func (b *ColumnIndexBuilder) Build() *format.ColumnIndex {
	order := b.detectBoundaryOrder()
	return &format.ColumnIndex{
		NullPages:     b.nullPages,
		MinValues:     b.minValues,
		MaxValues:     b.maxValues,
		BoundaryOrder: order,
		HasNullCounts: true,
		NullCounts:    b.nullCounts,
	}
}

func (b *ColumnIndexBuilder) detectBoundaryOrder() format.BoundaryOrder {
	ascending, descending := true, true
	var prevMin, prevMax []byte
	haveFirst := false
	for i := range b.minValues {
		if b.nullPages[i] {
			continue
		}
		if haveFirst {
			if b.cmp(b.minValues[i], prevMin) < 0 || b.cmp(b.maxValues[i], prevMax) < 0 {
				ascending = false
			}
			if b.cmp(b.minValues[i], prevMin) > 0 || b.cmp(b.maxValues[i], prevMax) > 0 {
				descending = false
			}
		}
		prevMin, prevMax = b.minValues[i], b.maxValues[i]
		haveFirst = true
	}
	switch {
	case ascending && haveFirst:
		return format.Ascending
	case descending && haveFirst:
		return format.Descending
	default:
		return format.Unordered
	}
}

// PagesMatching returns the indexes of pages in idx whose [min, max] range
// could contain a value satisfying keep, given the chunk's comparator. keep
// is called with a page's (min, max) and should return false only when it
// can prove no value in that range matches the predicate (used to prune,
// e.g., "column > 100" against a page whose max is 50).
func PagesMatching(idx *format.ColumnIndex, keep func(min, max []byte) bool) []int {
	var matches []int
	for i := range idx.MinValues {
		if idx.NullPages[i] {
			continue
		}
		if keep(idx.MinValues[i], idx.MaxValues[i]) {
			matches = append(matches, i)
		}
	}
	return matches
}

// RowGroupMatches reports whether a row group's chunk-level statistics could
// contain a value satisfying keep; used to prune whole row groups before
// even opening their column/offset indexes.
func RowGroupMatches(stats format.Statistics, keep func(min, max []byte) bool) bool {
	if !stats.HasMin || !stats.HasMax {
		return true
	}
	return keep(stats.Min, stats.Max)
}
