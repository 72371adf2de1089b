package vmxlate

import "fmt"

// clearTable zeroes all PageSize words of frame. Used whenever a frame
// transitions to the interior-table role, or after eviction when the new
// resident will be restored.
func (t *Translator) clearTable(frame FrameID) {
	base := uint64(frame) * t.res.pageSize
	for i := uint64(0); i < t.res.pageSize; i++ {
		if err := t.pm.WriteWord(base+i, 0); err != nil {
			panic(fmt.Sprintf("vmxlate: failed to clear frame %d: %v", frame, err))
		}
	}
}

// cyclicDistance is the shorter of the two arcs between a and b around a
// ring of numPages positions: min(|a-b|, numPages-|a-b|). The
// subtraction runs in int64, wide enough to hold numPages, per the
// original design notes.
func cyclicDistance(a, b PageNumber, numPages uint64) int64 {
	diff := int64(a) - int64(b)
	if diff < 0 {
		diff = -diff
	}
	other := int64(numPages) - diff
	if other < diff {
		return other
	}
	return diff
}
