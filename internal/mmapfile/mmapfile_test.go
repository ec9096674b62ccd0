package mmapfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenAndReadAt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	want := []byte("the quick brown fox jumps over the lazy dog")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if f.Size() != int64(len(want)) {
		t.Fatalf("size: got %d, want %d", f.Size(), len(want))
	}

	got, err := f.ReadAt(4, 5)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "quick" {
		t.Fatalf("ReadAt: got %q, want %q", got, "quick")
	}

	if string(f.Bytes()) != string(want) {
		t.Fatalf("Bytes: got %q, want %q", f.Bytes(), want)
	}
}

func TestReadAtOutOfBounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.ReadAt(3, 10); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}

func TestOpenEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if f.Size() != 0 {
		t.Fatalf("expected empty file, got size %d", f.Size())
	}
}
