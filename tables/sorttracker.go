package tables

// sortTracker records whether keys of a self-sorting table have been appended
// in non-decreasing order. Once dirty it stays dirty.
type sortTracker struct {
	last  uint64
	dirty bool
}

func (s *sortTracker) observe(key uint64) {
	if key < s.last {
		s.dirty = true
	}
	s.last = key
}
