package physmem

import (
	"testing"

	"github.com/ryogrid/vmxlate/storage/backingstore"
)

func TestReadWriteWord(t *testing.T) {
	store := backingstore.NewMemStore()
	defer store.Close()

	mem := New(16, 4, store)
	if err := mem.WriteWord(5, 42); err != nil {
		t.Fatalf("WriteWord() error = %v", err)
	}
	got, err := mem.ReadWord(5)
	if err != nil {
		t.Fatalf("ReadWord() error = %v", err)
	}
	if got != 42 {
		t.Fatalf("ReadWord() = %d, want 42", got)
	}
}

func TestEvictAndRestoreRoundTrip(t *testing.T) {
	store := backingstore.NewMemStore()
	defer store.Close()

	mem := New(4, 2, store)
	for i := uint64(0); i < 4; i++ {
		if err := mem.WriteWord(i, int64(i)+100); err != nil {
			t.Fatalf("WriteWord(%d) error = %v", i, err)
		}
	}
	if err := mem.Evict(0, 7); err != nil {
		t.Fatalf("Evict() error = %v", err)
	}

	// overwrite frame 0 with garbage, then restore page 7 back into it.
	for i := uint64(0); i < 4; i++ {
		if err := mem.WriteWord(i, -1); err != nil {
			t.Fatalf("WriteWord(%d) error = %v", i, err)
		}
	}
	if err := mem.Restore(0, 7); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	for i := uint64(0); i < 4; i++ {
		got, err := mem.ReadWord(i)
		if err != nil {
			t.Fatalf("ReadWord(%d) error = %v", i, err)
		}
		if got != int64(i)+100 {
			t.Errorf("ReadWord(%d) after restore = %d, want %d", i, got, int64(i)+100)
		}
	}
}

func TestRestoreNeverEvictedReadsZero(t *testing.T) {
	store := backingstore.NewMemStore()
	defer store.Close()

	mem := New(4, 2, store)
	for i := uint64(0); i < 4; i++ {
		if err := mem.WriteWord(i, 99); err != nil {
			t.Fatalf("WriteWord(%d) error = %v", i, err)
		}
	}
	if err := mem.Restore(1, 123); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	for i := uint64(4); i < 8; i++ {
		got, err := mem.ReadWord(i)
		if err != nil {
			t.Fatalf("ReadWord(%d) error = %v", i, err)
		}
		if got != 0 {
			t.Errorf("ReadWord(%d) on never-evicted page = %d, want 0", i, got)
		}
	}
}

func TestOutOfRangeAddressPanics(t *testing.T) {
	store := backingstore.NewMemStore()
	defer store.Close()

	mem := New(4, 2, store)
	defer func() {
		if recover() == nil {
			t.Fatalf("ReadWord() out of range did not panic")
		}
	}()
	mem.ReadWord(8)
}
