// Package arena implements a bump allocator used to own all parsed Parquet
// metadata (schema elements, strings, statistics bytes) for the lifetime of
// a reader or writer, so that none of it needs individual release.
//
// The allocator generalizes the growing-buffer style used throughout the
// read path (see byteio.Buffer) into a list of fixed blocks that support
// save/restore marks, per spec §4.2.
package arena

import "errors"

// ErrOutOfMemory is the only failure mode an Arena can produce; it is
// returned when a new block cannot be allocated.
var ErrOutOfMemory = errors.New("arena: out of memory")

// DefaultBlockSize is the minimum size of a block linked into the arena.
const DefaultBlockSize = 64 * 1024

type block struct {
	data []byte
	used int
	next *block
}

// Arena is a singly-linked list of blocks. Allocations bump the current
// block's used counter; when a block cannot satisfy a request the arena
// walks to (or links) the next block.
type Arena struct {
	head  *block
	cur   *block
	total int
}

// New constructs an empty Arena. No block is allocated until the first
// Alloc call.
func New() *Arena { return &Arena{} }

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

func newBlock(size int) *block {
	return &block{data: make([]byte, size)}
}

// Alloc returns size bytes aligned to align (which must be a power of two),
// owned by the arena. The returned slice is zeroed.
func (a *Arena) Alloc(size, align int) []byte {
	if size == 0 {
		return nil
	}
	if align < 1 {
		align = 1
	}

	for b := a.cur; b != nil; b = b.next {
		off := alignUp(b.used, align)
		if off+size <= len(b.data) {
			b.used = off + size
			a.cur = b
			a.total += size
			return b.data[off : off+size : off+size]
		}
	}

	need := size + align
	blockSize := DefaultBlockSize
	if need > blockSize {
		blockSize = need
	}
	nb := newBlock(blockSize)
	if a.head == nil {
		a.head = nb
	} else {
		// link after the current tail so reset/restore still walk every
		// block ever allocated.
		tail := a.head
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = nb
	}
	a.cur = nb

	off := alignUp(0, align)
	nb.used = off + size
	a.total += size
	return nb.data[off : off+size : off+size]
}

// AllocBytes is a convenience wrapper for byte-aligned allocations.
func (a *Arena) AllocBytes(size int) []byte { return a.Alloc(size, 1) }

// DupBytes returns an arena-owned copy of v.
func (a *Arena) DupBytes(v []byte) []byte {
	if len(v) == 0 {
		return nil
	}
	b := a.AllocBytes(len(v))
	copy(b, v)
	return b
}

// DupString returns an arena-owned copy of s.
func (a *Arena) DupString(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := a.AllocBytes(len(s))
	copy(b, s)
	return string(b)
}

// Mark identifies a point in the arena's allocation history that Restore
// can rewind to.
type Mark struct {
	block *block
	used  int
	total int
}

// Save returns a Mark for the arena's current state.
func (a *Arena) Save() Mark {
	if a.cur == nil {
		return Mark{}
	}
	return Mark{block: a.cur, used: a.cur.used, total: a.total}
}

// Restore rewinds the arena to m, zeroing the used region of every block
// allocated into since the mark (including blocks after m.block), so that a
// fresh Alloc after Restore returns the same address a fresh Alloc would
// have returned had the intervening allocations never happened.
func (a *Arena) Restore(m Mark) {
	if m.block == nil {
		a.Reset()
		return
	}
	for b := m.block.next; b != nil; b = b.next {
		zero(b.data[:b.used])
		b.used = 0
	}
	zero(m.block.data[m.used:m.block.used])
	m.block.used = m.used
	a.cur = m.block
	a.total = m.total
}

// Reset zeros every block's used counter without freeing memory, making all
// blocks available for reuse.
func (a *Arena) Reset() {
	for b := a.head; b != nil; b = b.next {
		zero(b.data[:b.used])
		b.used = 0
	}
	a.cur = a.head
	a.total = 0
}

// Destroy releases every block. The arena must not be used afterwards
// except via a fresh call to New.
func (a *Arena) Destroy() {
	a.head = nil
	a.cur = nil
	a.total = 0
}

// TotalAllocated returns the cumulative number of bytes handed out by Alloc
// since the arena was created or last Reset.
func (a *Arena) TotalAllocated() int { return a.total }

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
