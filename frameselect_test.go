package vmxlate

import "testing"

func TestEmptyInteriorReclamation(t *testing.T) {
	tr := newTestTranslator(t, smallConfig())

	// Build a full 4-level path for one page, then evict just its leaf
	// via eviction of an unrelated page's selection isn't controllable
	// directly, so instead we construct the empty-interior case the
	// way the traversal itself would discover it: allocate a branch,
	// then free its leaf's parent slot directly (simulating what an
	// eviction of that leaf would do) and confirm the now-empty interior
	// frame is the one selectFrame reclaims.
	page := PageNumber(0x2000)
	leafSlotAddr, _ := tr.translate(page)
	emptyInterior := FrameID(uint64(leafSlotAddr) / tr.res.pageSize)

	// leaf's parent interior frame: detach the leaf (as an eviction
	// would), leaving that interior frame with all slots zero.
	if err := tr.pm.WriteWord(uint64(leafSlotAddr), 0); err != nil {
		t.Fatalf("failed to detach leaf: %v", err)
	}

	// locate the grandparent slot that points at emptyInterior, so we
	// can confirm it gets zeroed by reclamation.
	grandparent := FrameID(0)
	for i := uint(0); i < tr.res.tablesDepth-2; i++ {
		idx := tr.indexAt(page, i)
		val, err := tr.pm.ReadWord(uint64(grandparent)*tr.res.pageSize + idx)
		if err != nil {
			t.Fatalf("ReadWord: %v", err)
		}
		grandparent = FrameID(val)
	}
	grandparentSlotAddr := uint64(grandparent)*tr.res.pageSize + tr.indexAt(page, tr.res.tablesDepth-2)

	got := tr.selectFrame(FrameID(999999), PageNumber(0))
	if got != emptyInterior {
		t.Fatalf("selectFrame() = %d, want reclaimed empty interior frame %d", got, emptyInterior)
	}
	if tr.Stats().FramesReclaimed != 1 {
		t.Fatalf("Stats().FramesReclaimed = %d, want 1", tr.Stats().FramesReclaimed)
	}

	val, err := tr.pm.ReadWord(grandparentSlotAddr)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if val != 0 {
		t.Fatalf("reclaimed frame's former parent slot = %d, want 0", val)
	}
}

func TestSelfPathProtection(t *testing.T) {
	tr := newTestTranslator(t, smallConfig())

	// Writing to a fresh page in an empty translator allocates three
	// interior frames (levels 0-2) plus a leaf (level 3). None of the
	// three just-added interior frames may be selected as the leaf's
	// frame: if they were, the tree would contain a cycle/self-reference.
	page := PageNumber(0x4321)
	_, leaf := tr.translate(page)

	// Walk the path again to discover the interior frames that were
	// wired for this page.
	interiorFrames := map[FrameID]bool{0: true}
	current := FrameID(0)
	for i := uint(0); i < tr.res.tablesDepth-1; i++ {
		idx := tr.indexAt(page, i)
		slotAddr := uint64(current)*tr.res.pageSize + idx
		val, err := tr.pm.ReadWord(slotAddr)
		if err != nil {
			t.Fatalf("ReadWord: %v", err)
		}
		current = FrameID(val)
		interiorFrames[current] = true
	}

	if interiorFrames[leaf] {
		t.Fatalf("leaf frame %d collides with an interior frame on its own path: %v", leaf, interiorFrames)
	}
}

func TestCyclicDistance(t *testing.T) {
	const numPages = 65536

	tests := []struct {
		a, b PageNumber
		want int64
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, numPages - 1, 1},
		{10, numPages - 10, 20},
		{0, numPages / 2, numPages / 2},
	}
	for _, tt := range tests {
		if got := cyclicDistance(tt.a, tt.b, numPages); got != tt.want {
			t.Errorf("cyclicDistance(%d, %d, %d) = %d, want %d", tt.a, tt.b, numPages, got, tt.want)
		}
	}
}

func TestMaxFrameClaim(t *testing.T) {
	tr := newTestTranslator(t, smallConfig())

	// With an empty translator (only frame 0, the root, in use),
	// selectFrame must claim frame 1 rather than reclaim or evict.
	got := tr.selectFrame(0, PageNumber(0))
	if got != 1 {
		t.Fatalf("selectFrame() on empty tree = %d, want 1", got)
	}
	if tr.Stats().FramesClaimed != 1 {
		t.Fatalf("Stats().FramesClaimed = %d, want 1", tr.Stats().FramesClaimed)
	}
}
