package models

// VisibilitySet collects the cells reported visible during a single pass.
//
// The same world cell is reachable from several sectors and several recursion
// branches, so Add deduplicates through a per-pass seen bitmap: a cell is
// appended at most once no matter how many scans touch it.
type VisibilitySet struct {
	size  Vec3i
	seen  []bool
	cells []Vec3i
}

func NewVisibilitySet(size Vec3i) *VisibilitySet {
	return &VisibilitySet{
		size: size,
		seen: make([]bool, size.X*size.Y*size.Z),
	}
}

// Add reports the cell as visible. It returns true when the cell was not
// already in the set. Cells outside the volume bounds are ignored.
func (s *VisibilitySet) Add(c Vec3i) bool {
	if !s.inBounds(c) {
		return false
	}

	i := s.index(c)
	if s.seen[i] {
		return false
	}

	s.seen[i] = true
	s.cells = append(s.cells, c)
	return true
}

func (s *VisibilitySet) Visible(c Vec3i) bool {
	if !s.inBounds(c) {
		return false
	}
	return s.seen[s.index(c)]
}

// Cells returns the visible cells in report order.
func (s *VisibilitySet) Cells() []Vec3i {
	return s.cells
}

func (s *VisibilitySet) Len() int {
	return len(s.cells)
}

func (s *VisibilitySet) inBounds(c Vec3i) bool {
	return c.X >= 0 && c.X < s.size.X &&
		c.Y >= 0 && c.Y < s.size.Y &&
		c.Z >= 0 && c.Z < s.size.Z
}

func (s *VisibilitySet) index(c Vec3i) int {
	return c.X + s.size.X*(c.Y+s.size.Y*c.Z)
}
