package text

import "jjcolor/internal/log"

// EOF is returned by Source.Read past the end of its range.
const EOF rune = -1

// Source is the sequential character stream the scanner consumes.
// Unread pushes back the most recently read character; callers only unread
// what they read themselves.
type Source interface {
	Read() rune
	Unread()
	Offset() int
}

// RangeSource reads a Document over [start, end).
type RangeSource struct {
	doc    Document
	start  int
	end    int
	offset int
}

// NewRangeSource bounds reads to [offset, offset+length), clamped to doc.
func NewRangeSource(doc Document, offset int, length int) *RangeSource {
	n := doc.Len()
	start := max(0, min(offset, n))
	end := max(start, min(start+max(length, 0), n))
	return &RangeSource{doc: doc, start: start, end: end, offset: start}
}

func (s *RangeSource) Read() rune {
	if s.offset >= s.end {
		// A read past the end still advances, so Unread stays symmetric.
		s.offset++
		return EOF
	}
	r, err := s.doc.Char(s.offset)
	if err != nil {
		log.Warn(log.CatScanner, "document read failed, treating as EOF", "offset", s.offset, "error", err)
		s.end = s.offset
		s.offset++
		return EOF
	}
	s.offset++
	return r
}

func (s *RangeSource) Unread() {
	if s.offset > s.start {
		s.offset--
	}
}

func (s *RangeSource) Offset() int {
	return min(s.offset, s.end)
}

func (s *RangeSource) Start() int { return s.start }
func (s *RangeSource) End() int   { return s.end }
