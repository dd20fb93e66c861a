package scanner

import "sort"

type snapshot struct {
	offset int
	stack  Stack
}

// Snapshots maps document offsets to saved stacks, ordered by offset.
type Snapshots struct {
	entries []snapshot
}

// Save records stack at offset, dropping every entry at or beyond offset:
// content past a new save point may have changed.
func (s *Snapshots) Save(offset int, stack Stack) {
	i := s.ceiling(offset)
	s.entries = append(s.entries[:i], snapshot{offset: offset, stack: stack})
}

// Restore returns the stack saved at the greatest offset <= offset and
// drops every entry after it. ok is false when no such entry exists.
func (s *Snapshots) Restore(offset int) (at int, stack Stack, ok bool) {
	i := s.ceiling(offset + 1)
	if i == 0 {
		return 0, Stack{}, false
	}
	e := s.entries[i-1]
	s.entries = s.entries[:i]
	return e.offset, e.stack, true
}

func (s *Snapshots) Clear() {
	s.entries = s.entries[:0]
}

func (s *Snapshots) Len() int {
	return len(s.entries)
}

func (s *Snapshots) Offsets() []int {
	out := make([]int, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.offset
	}
	return out
}

// ceiling returns the index of the first entry with offset >= off.
func (s *Snapshots) ceiling(off int) int {
	return sort.Search(len(s.entries), func(i int) bool { return s.entries[i].offset >= off })
}
