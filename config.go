package vmxlate

import "fmt"

// Config describes the fixed address-width parameters of a translator
// instance. Values are validated once, at construction, and never change
// for the lifetime of a Translator.
type Config struct {
	// OffsetWidth is the number of bits indexing within a frame.
	OffsetWidth uint

	// VirtualAddressWidth is the total number of bits in a virtual address.
	VirtualAddressWidth uint

	// PhysicalAddressWidth is the total number of bits in a physical
	// address. NumFrames = 2^(PhysicalAddressWidth - OffsetWidth).
	PhysicalAddressWidth uint
}

// resolved holds the derived constants computed once from a Config.
type resolved struct {
	pageSize            uint64
	numFrames           uint64
	tablesDepth         uint
	numPages            uint64
	virtualMemorySize   uint64
	offsetMask          uint64
	tableIndexMask      uint64
}

// resolve validates cfg and derives the parameters the translator core
// needs on every access. It panics on a malformed configuration, the same
// way a constructor rejects a buffer pool too small to hold a single hash
// chain.
func (cfg Config) resolve() resolved {
	if cfg.OffsetWidth == 0 {
		panic("vmxlate: OffsetWidth must be > 0")
	}
	if cfg.PhysicalAddressWidth <= cfg.OffsetWidth {
		panic(fmt.Sprintf("vmxlate: PhysicalAddressWidth (%d) must exceed OffsetWidth (%d)", cfg.PhysicalAddressWidth, cfg.OffsetWidth))
	}
	if cfg.VirtualAddressWidth <= cfg.OffsetWidth {
		panic(fmt.Sprintf("vmxlate: VirtualAddressWidth (%d) must exceed OffsetWidth (%d)", cfg.VirtualAddressWidth, cfg.OffsetWidth))
	}
	if cfg.VirtualAddressWidth >= 63 || cfg.PhysicalAddressWidth >= 63 {
		panic("vmxlate: address widths must fit in a signed 64-bit word count")
	}

	pageSize := uint64(1) << cfg.OffsetWidth
	numFrames := uint64(1) << (cfg.PhysicalAddressWidth - cfg.OffsetWidth)

	vpnWidth := cfg.VirtualAddressWidth - cfg.OffsetWidth
	tablesDepth := (vpnWidth + cfg.OffsetWidth - 1) / cfg.OffsetWidth // ceil(vpnWidth / OffsetWidth)
	if tablesDepth == 0 {
		tablesDepth = 1
	}

	return resolved{
		pageSize:          pageSize,
		numFrames:         numFrames,
		tablesDepth:       tablesDepth,
		numPages:          uint64(1) << vpnWidth,
		virtualMemorySize: uint64(1) << cfg.VirtualAddressWidth,
		offsetMask:        pageSize - 1,
		tableIndexMask:    pageSize - 1,
	}
}
