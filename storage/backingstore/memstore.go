// Package backingstore provides the per-virtual-page external stores that
// a physical-memory simulator evicts to and restores from.
package backingstore

import (
	"encoding/binary"

	"github.com/dsnet/golib/memfile"
)

const wordBytes = 8

// MemStore is an in-memory BackingStore backed by a memfile.File: a
// plain byte slice addressed through the same ReaderAt/WriterAt seam a
// real file would expose. It never touches disk, so it is the default
// store for tests and for short-lived translator instances.
type MemStore struct {
	f    *memfile.File
	buf  []byte
	size int64 // number of valid bytes currently backing f
}

// NewMemStore creates an empty in-memory backing store.
func NewMemStore() *MemStore {
	buf := make([]byte, 0)
	return &MemStore{
		f:   memfile.New(buf),
		buf: buf,
	}
}

func (m *MemStore) offsetFor(page uint64, length int) (int64, int64) {
	start := int64(page) * int64(length) * wordBytes
	end := start + int64(length)*wordBytes
	return start, end
}

// ensure grows the underlying buffer (and rewraps it in a fresh
// memfile.File) so that [0,end) is addressable.
func (m *MemStore) ensure(end int64) {
	if end <= int64(len(m.buf)) {
		return
	}
	grown := make([]byte, end)
	copy(grown, m.buf)
	m.buf = grown
	m.f = memfile.New(m.buf)
}

// Evict writes words to the store entry for page.
func (m *MemStore) Evict(page uint64, words []int64) error {
	start, end := m.offsetFor(page, len(words))
	m.ensure(end)

	raw := make([]byte, len(words)*wordBytes)
	for i, w := range words {
		binary.LittleEndian.PutUint64(raw[i*wordBytes:], uint64(w))
	}
	if _, err := m.f.WriteAt(raw, start); err != nil {
		return err
	}
	if end > m.size {
		m.size = end
	}
	return nil
}

// Restore reads back the store entry for page. A page never evicted
// reads as all-zero words.
func (m *MemStore) Restore(page uint64, length int) ([]int64, error) {
	start, end := m.offsetFor(page, length)
	words := make([]int64, length)
	if start >= m.size {
		// never written: zero words, per this store's deterministic
		// default.
		return words, nil
	}
	raw := make([]byte, end-start)
	n, err := m.f.ReadAt(raw, start)
	if err != nil && n == 0 {
		return words, err
	}
	for i := 0; i < length; i++ {
		words[i] = int64(binary.LittleEndian.Uint64(raw[i*wordBytes:]))
	}
	return words, nil
}

// Close releases the in-memory buffer.
func (m *MemStore) Close() error {
	return m.f.Close()
}
