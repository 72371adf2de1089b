package vmxlate

// Word is one signed-integer storage unit, the unit physical memory and
// the backing store exchange.
type Word int64

// FrameID identifies one physical frame, in [0, NumFrames).
type FrameID uint64

// PageNumber is a virtual page number, in [0, NumPages).
type PageNumber uint64

// PhysicalAddress is a word-granular address into the flat physical
// memory array: frame*PageSize + offset.
type PhysicalAddress uint64

// VirtualAddress is a word-granular address into the virtual address
// space: page*PageSize + offset.
type VirtualAddress uint64
