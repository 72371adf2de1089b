package vmxlate

import "fmt"

// frameScan is the single traversal's accumulator, carrying the three
// priorities' running state at once so the whole page-table tree is
// walked exactly once per miss. Preferred over out-parameters per the
// original design notes: a tagged result the caller inspects after the
// walk returns, rather than threading pointers through the recursion.
type frameScan struct {
	maxFrame FrameID

	haveVictim   bool
	bestDistance int64
	victimPage   PageNumber
	victimFrame  FrameID
	victimParent PhysicalAddress

	haveReclaimed bool
	reclaimed     FrameID
}

// selectFrame obtains one frame ready to be wired into the page-table
// slot that triggered the miss. protected is the frame most recently
// wired into the path under construction in this same translation walk
// (or the current frame itself, at the first miss) — it may never be
// selected for reclamation or eviction, since detaching it would corrupt
// the path being built.
func (t *Translator) selectFrame(protected FrameID, target PageNumber) FrameID {
	scan := &frameScan{maxFrame: 0}
	t.walk(0, 0, 0, 0, protected, target, scan)

	if scan.haveReclaimed {
		t.stats.FramesReclaimed++
		return scan.reclaimed
	}

	if scan.maxFrame+1 < FrameID(t.res.numFrames) {
		fresh := scan.maxFrame + 1
		t.clearTable(fresh)
		t.stats.FramesClaimed++
		return fresh
	}

	if !scan.haveVictim {
		panic("vmxlate: frame pool exhausted with no eviction candidate found")
	}
	if err := t.pm.Evict(uint64(scan.victimFrame), uint64(scan.victimPage)); err != nil {
		panic(fmt.Sprintf("vmxlate: evict failed: %v", err))
	}
	t.clearTable(scan.victimFrame)
	if err := t.pm.WriteWord(uint64(scan.victimParent), 0); err != nil {
		panic(fmt.Sprintf("vmxlate: failed to detach evicted page's parent slot: %v", err))
	}
	t.stats.PagesEvicted++
	return scan.victimFrame
}

// walk is the depth-first traversal shared by all three selection
// priorities. frame is the node being visited, depth its distance from
// the root, pageAcc the virtual page number accumulated along the
// descent so far, and parentSlot the physical address of the slot in
// frame's parent that points at frame (unused at the root).
//
// It short-circuits as soon as an empty, non-root, non-protected interior
// frame is found: that frame is detached from its parent immediately and
// recorded as the priority-1 answer, and no further nodes need visiting.
func (t *Translator) walk(frame FrameID, depth uint, pageAcc PageNumber, parentSlot PhysicalAddress, protected FrameID, target PageNumber, scan *frameScan) {
	if frame > scan.maxFrame {
		scan.maxFrame = frame
	}

	if depth == t.res.tablesDepth {
		dist := cyclicDistance(target, pageAcc, t.res.numPages)
		if !scan.haveVictim || dist > scan.bestDistance {
			scan.haveVictim = true
			scan.bestDistance = dist
			scan.victimPage = pageAcc
			scan.victimFrame = frame
			scan.victimParent = parentSlot
		}
		return
	}

	empty := true
	for i := uint64(0); i < t.res.pageSize; i++ {
		slotAddr := PhysicalAddress(uint64(frame)*t.res.pageSize + i)
		val, err := t.pm.ReadWord(uint64(slotAddr))
		if err != nil {
			panic(fmt.Sprintf("vmxlate: page-table read failed during frame selection: %v", err))
		}
		if val == 0 {
			continue
		}
		empty = false

		child := FrameID(val)
		childPage := (pageAcc << t.cfg.OffsetWidth) | PageNumber(i)
		t.walk(child, depth+1, childPage, slotAddr, protected, target, scan)
		if scan.haveReclaimed {
			return
		}
	}

	if empty && frame != 0 && frame != protected {
		if err := t.pm.WriteWord(uint64(parentSlot), 0); err != nil {
			panic(fmt.Sprintf("vmxlate: failed to detach reclaimed frame's parent slot: %v", err))
		}
		scan.haveReclaimed = true
		scan.reclaimed = frame
	}
}
