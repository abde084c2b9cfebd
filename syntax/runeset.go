package syntax

// RuneSet is an ordered set of characters. Membership checks are O(1) and
// iteration yields members in first-insertion order, which keeps class
// rendering and debug output stable.
type RuneSet struct {
	runes []rune
	index map[rune]struct{}
}

// NewRuneSet creates a RuneSet containing the given runes, in order.
func NewRuneSet(runes ...rune) *RuneSet {
	s := &RuneSet{index: make(map[rune]struct{}, len(runes))}
	for _, r := range runes {
		s.Add(r)
	}
	return s
}

// Add inserts r into the set. Duplicates keep their original position.
func (s *RuneSet) Add(r rune) {
	if _, ok := s.index[r]; ok {
		return
	}
	s.index[r] = struct{}{}
	s.runes = append(s.runes, r)
}

// Contains reports whether r is a member of the set.
func (s *RuneSet) Contains(r rune) bool {
	_, ok := s.index[r]
	return ok
}

// Runes returns the members in insertion order. The slice is shared; callers
// must not modify it.
func (s *RuneSet) Runes() []rune {
	return s.runes
}

// Len returns the number of members.
func (s *RuneSet) Len() int {
	return len(s.runes)
}
