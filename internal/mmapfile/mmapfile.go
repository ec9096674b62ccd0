// Package mmapfile memory-maps a file read-only so that page and footer
// reads can return slices aliasing the kernel's page cache instead of
// copying into a buffer (spec §5.2's zero-copy read path). Pages handed out
// by this package must not be retained once the File is closed.
package mmapfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a read-only memory-mapped file.
type File struct {
	f    *os.File
	data []byte
}

// Open maps the file at path read-only for its full size.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &File{f: f}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmapfile: mmap %q: %w", path, err)
	}
	return &File{f: f, data: data}, nil
}

// Bytes returns the whole mapped region, aliasing the kernel page cache.
func (m *File) Bytes() []byte { return m.data }

// Size returns the length of the mapped region.
func (m *File) Size() int64 { return int64(len(m.data)) }

// ReadAt returns a slice of the mapped region, aliasing it (no copy). It
// never returns a short read; it errors instead, since an mmap region has no
// partial-read concept.
func (m *File) ReadAt(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > int64(len(m.data)) {
		return nil, fmt.Errorf("mmapfile: range [%d, %d) out of bounds for %d-byte file", offset, offset+length, len(m.data))
	}
	return m.data[offset : offset+length], nil
}

// Close unmaps the file and closes the underlying descriptor. Any slices
// previously returned by Bytes/ReadAt must not be used afterward.
func (m *File) Close() error {
	var err error
	if m.data != nil {
		err = unix.Munmap(m.data)
		m.data = nil
	}
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
