package vmxlate

// Status is the result code returned by the public read/write API, in the
// teacher's BLTErr idiom: a small named int enum rather than a bare bool
// or a stringly-typed error, since the wire contract is fixed at two
// values and callers branch on it directly.
type Status int

const (
	// StatusOutOfRange is returned when a virtual address lies outside
	// [0, VirtualMemorySize).
	StatusOutOfRange Status = 0

	// StatusOK is returned when the access completed.
	StatusOK Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusOutOfRange:
		return "out of range"
	case StatusOK:
		return "ok"
	default:
		return "unknown status"
	}
}
