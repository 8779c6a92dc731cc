// Package sparse provides a sparse set of NFA state IDs.
//
// A sparse set supports O(1) insertion, membership testing and clearing,
// which is what a state-set simulation needs to track the states entered
// during one generation.
package sparse

// SparseSet is a set of uint32 values below a fixed capacity.
// The sparse array maps values to indices in the dense array; a value is a
// member only when the two agree, so Clear never has to touch sparse.
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // members in insertion order
}

// NewSparseSet creates a new sparse set for values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds a value and reports whether it was newly added.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: len(dense) < capacity <= MaxUint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains returns true if the value is in the set
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all elements in O(1) time
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}
