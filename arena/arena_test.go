package arena

import "testing"

func TestAllocAlignment(t *testing.T) {
	a := New()
	for _, align := range []int{1, 2, 4, 8, 16, 32} {
		b := a.Alloc(3, align)
		addr := uintptrOf(b)
		if addr%uintptr(align) != 0 {
			t.Fatalf("alloc with align=%d returned misaligned address", align)
		}
	}
}

func TestSaveRestore(t *testing.T) {
	a := New()
	a.AllocBytes(16)
	mark := a.Save()

	a.AllocBytes(32)
	a.AllocBytes(64)

	a.Restore(mark)
	after := a.AllocBytes(8)

	a.Restore(mark)
	again := a.AllocBytes(8)

	if uintptrOf(after) != uintptrOf(again) {
		t.Fatalf("restore did not reproduce the same allocation address")
	}
}

func TestResetZeroesWithoutFreeing(t *testing.T) {
	a := New()
	b := a.AllocBytes(8)
	copy(b, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	a.Reset()
	if a.TotalAllocated() != 0 {
		t.Fatalf("reset should clear total allocated")
	}
	b2 := a.AllocBytes(8)
	for _, v := range b2 {
		if v != 0 {
			t.Fatalf("reused block was not zeroed")
		}
	}
}

func TestDupBytesAndString(t *testing.T) {
	a := New()
	src := []byte("hello")
	dup := a.DupBytes(src)
	if string(dup) != "hello" {
		t.Fatalf("dup bytes mismatch")
	}
	src[0] = 'H'
	if dup[0] != 'h' {
		t.Fatalf("dup bytes should not alias source")
	}

	s := a.DupString("world")
	if s != "world" {
		t.Fatalf("dup string mismatch")
	}
}
