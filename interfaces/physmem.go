// Package interfaces isolates the translator core from the concrete
// physical-memory and backing-store implementations, mirroring the
// teacher's split between BufMgr and its ParentBufMgr/ParentPage seams.
package interfaces

// PhysicalMemory is the simulated physical memory the translator core
// reads and writes through. Implementations own NumFrames*PageSize words
// of storage and delegate paging to a BackingStore.
type PhysicalMemory interface {
	// ReadWord reads one word at a word-granular physical address.
	ReadWord(addr uint64) (int64, error)

	// WriteWord persists one word at a word-granular physical address.
	WriteWord(addr uint64, w int64) error

	// Evict writes the frame's PageSize words to the backing store entry
	// for virtualPage and leaves the frame's in-memory contents
	// unspecified until the next Restore or clear.
	Evict(frame uint64, virtualPage uint64) error

	// Restore overwrites the frame's PageSize words from the backing
	// store entry for virtualPage.
	Restore(frame uint64, virtualPage uint64) error

	// PageSize returns the number of words per frame.
	PageSize() uint64

	// NumFrames returns the number of frames this memory holds.
	NumFrames() uint64
}
