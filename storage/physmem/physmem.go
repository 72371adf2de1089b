// Package physmem is the concrete PhysicalMemory: a flat array of
// NumFrames*PageSize words, with evict/restore delegated to a
// BackingStore. A single owner of the raw storage array, exposing
// read/write/page-in/page-out primitives; it holds no page-table, latch,
// or pin-count concepts of its own — those belong to the translator core
// that sits above it.
package physmem

import (
	"fmt"

	"github.com/ryogrid/vmxlate/interfaces"
)

// FlatMemory is the default PhysicalMemory implementation.
type FlatMemory struct {
	pageSize  uint64
	numFrames uint64
	words     []int64
	store     interfaces.BackingStore
}

// New creates a FlatMemory of numFrames frames, each pageSize words,
// backed by store for evict/restore.
func New(pageSize, numFrames uint64, store interfaces.BackingStore) *FlatMemory {
	if pageSize == 0 || numFrames == 0 {
		panic("physmem: pageSize and numFrames must be > 0")
	}
	return &FlatMemory{
		pageSize:  pageSize,
		numFrames: numFrames,
		words:     make([]int64, pageSize*numFrames),
		store:     store,
	}
}

func (m *FlatMemory) PageSize() uint64  { return m.pageSize }
func (m *FlatMemory) NumFrames() uint64 { return m.numFrames }

func (m *FlatMemory) checkAddr(addr uint64) {
	if addr >= uint64(len(m.words)) {
		panic(fmt.Sprintf("physmem: address %d out of range [0, %d)", addr, len(m.words)))
	}
}

// ReadWord reads one word at a word-granular physical address.
func (m *FlatMemory) ReadWord(addr uint64) (int64, error) {
	m.checkAddr(addr)
	return m.words[addr], nil
}

// WriteWord persists one word at a word-granular physical address.
func (m *FlatMemory) WriteWord(addr uint64, w int64) error {
	m.checkAddr(addr)
	m.words[addr] = w
	return nil
}

// Evict writes frame's words out to the backing store entry for
// virtualPage.
func (m *FlatMemory) Evict(frame uint64, virtualPage uint64) error {
	if frame >= m.numFrames {
		panic(fmt.Sprintf("physmem: frame %d out of range [0, %d)", frame, m.numFrames))
	}
	start := frame * m.pageSize
	words := make([]int64, m.pageSize)
	copy(words, m.words[start:start+m.pageSize])
	return m.store.Evict(virtualPage, words)
}

// Restore overwrites frame's words from the backing store entry for
// virtualPage.
func (m *FlatMemory) Restore(frame uint64, virtualPage uint64) error {
	if frame >= m.numFrames {
		panic(fmt.Sprintf("physmem: frame %d out of range [0, %d)", frame, m.numFrames))
	}
	words, err := m.store.Restore(virtualPage, int(m.pageSize))
	if err != nil {
		return err
	}
	start := frame * m.pageSize
	copy(m.words[start:start+m.pageSize], words)
	return nil
}
