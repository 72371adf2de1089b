// Package vmxlate implements a virtual-memory address translator over a
// simulated physical memory: byte-addressable (word-addressable) reads
// and writes against a large virtual address space, backed by a small
// pool of physical frames and translated through a multi-level
// hierarchical page table stored inside those same frames.
package vmxlate

import (
	"fmt"

	"github.com/ryogrid/vmxlate/interfaces"
)

// Translator is the public entry point: construct one over a
// Config and a PhysicalMemory, then call Initialize once and Read/Write
// thereafter. A Translator is not safe for concurrent use — the model is
// strictly single-threaded, matching the original design.
type Translator struct {
	cfg Config
	res resolved
	pm  interfaces.PhysicalMemory

	stats Stats
}

// NewTranslator builds a Translator over pm. pm must already be sized for
// cfg's NumFrames/PageSize; NewTranslator does not allocate physical
// memory itself (storage/physmem does that).
func NewTranslator(cfg Config, pm interfaces.PhysicalMemory) *Translator {
	res := cfg.resolve()
	if pm.PageSize() != res.pageSize {
		panic(fmt.Sprintf("vmxlate: physical memory page size %d does not match config (%d)", pm.PageSize(), res.pageSize))
	}
	if pm.NumFrames() != res.numFrames {
		panic(fmt.Sprintf("vmxlate: physical memory frame count %d does not match config (%d)", pm.NumFrames(), res.numFrames))
	}
	return &Translator{cfg: cfg, res: res, pm: pm}
}

// Initialize zeroes frame 0, the root table. It is idempotent-destructive:
// any prior page-table state is lost.
func (t *Translator) Initialize() {
	t.clearTable(0)
	t.stats = Stats{}
}

// Read performs a word-granular read at a virtual address. status is
// StatusOutOfRange if addr is not a valid virtual address, else StatusOK.
func (t *Translator) Read(addr VirtualAddress) (Word, Status) {
	if !t.inRange(addr) {
		return 0, StatusOutOfRange
	}
	page, offset := t.split(addr)
	_, leaf := t.translate(page)
	physAddr := uint64(leaf)*t.res.pageSize + offset
	w, err := t.pm.ReadWord(physAddr)
	if err != nil {
		panic(fmt.Sprintf("vmxlate: physical memory read failed: %v", err))
	}
	return Word(w), StatusOK
}

// Write performs a word-granular write at a virtual address. status is
// StatusOutOfRange if addr is not a valid virtual address, else StatusOK.
func (t *Translator) Write(addr VirtualAddress, w Word) Status {
	if !t.inRange(addr) {
		return StatusOutOfRange
	}
	page, offset := t.split(addr)
	_, leaf := t.translate(page)
	physAddr := uint64(leaf)*t.res.pageSize + offset
	if err := t.pm.WriteWord(physAddr, int64(w)); err != nil {
		panic(fmt.Sprintf("vmxlate: physical memory write failed: %v", err))
	}
	return StatusOK
}

// Stats returns a snapshot of the frame-selection engine's activity
// counters since the last Initialize.
func (t *Translator) Stats() Stats {
	return t.stats
}

// inRange reports whether addr is a valid virtual address. The original
// source checked `addr > VIRTUAL_MEMORY_SIZE`; this is the corrected
// `>=` check (see SPEC_FULL.md, Open Question 2).
func (t *Translator) inRange(addr VirtualAddress) bool {
	return uint64(addr) < t.res.virtualMemorySize
}

// split breaks a virtual address into its page number and within-page
// offset.
func (t *Translator) split(addr VirtualAddress) (PageNumber, uint64) {
	offset := uint64(addr) & t.res.offsetMask
	page := uint64(addr) >> t.cfg.OffsetWidth
	return PageNumber(page), offset
}

// translate walks the page-table hierarchy for virtual page p, allocating
// any missing interior tables and the leaf frame along the way, and
// restoring the leaf's backing-store contents if it was newly allocated
// on this walk. It returns the physical address of the deepest slot
// pointing at the leaf, and the leaf frame itself.
func (t *Translator) translate(p PageNumber) (slotAddr PhysicalAddress, leaf FrameID) {
	current := FrameID(0)
	shouldRestore := false

	for i := uint(0); i < t.res.tablesDepth; i++ {
		idx := t.indexAt(p, i)
		slotAddr = PhysicalAddress(uint64(current)*t.res.pageSize + idx)

		val, err := t.pm.ReadWord(uint64(slotAddr))
		if err != nil {
			panic(fmt.Sprintf("vmxlate: page-table read failed: %v", err))
		}

		if val == 0 {
			shouldRestore = true
			next := t.selectFrame(current, p)
			if err := t.pm.WriteWord(uint64(slotAddr), int64(next)); err != nil {
				panic(fmt.Sprintf("vmxlate: page-table write failed: %v", err))
			}
			current = next
		} else {
			current = FrameID(val)
		}
	}

	if shouldRestore {
		if err := t.pm.Restore(uint64(current), uint64(p)); err != nil {
			panic(fmt.Sprintf("vmxlate: restore failed: %v", err))
		}
	}

	return slotAddr, current
}

// indexAt extracts the i-th most-significant OffsetWidth-bit slice of
// virtual page p (0-indexed from the root level), normalized into
// [0, PageSize).
func (t *Translator) indexAt(p PageNumber, i uint) uint64 {
	shift := (t.res.tablesDepth - 1 - i) * t.cfg.OffsetWidth
	return (uint64(p) >> shift) & t.res.tableIndexMask
}
