// Package matcher finds the peer of a bracket next to the caret.
package matcher

import (
	"errors"
	"strings"

	"jjcolor/internal/log"
	"jjcolor/internal/text"
)

// Side says which end of a pair the search started from.
type Side int

const (
	AnchorOpen Side = iota
	AnchorClose
)

func (s Side) String() string {
	if s == AnchorClose {
		return "close"
	}
	return "open"
}

// Pair holds the offsets of both delimiters of a matched pair.
type Pair struct {
	Open   int
	Close  int
	Anchor Side
}

// Region returns the span covering both delimiters.
func (p Pair) Region() (offset int, length int) {
	return p.Open, p.Close - p.Open + 1
}

// Peer returns the offset of the end the search did not start from.
func (p Pair) Peer() int {
	if p.Anchor == AnchorOpen {
		return p.Close
	}
	return p.Open
}

var peers = map[rune]rune{
	'{': '}', '<': '>', '[': ']', '(': ')',
	'}': '{', '>': '<', ']': '[', ')': '(',
}

func isOpening(r rune) bool {
	return r == '{' || r == '<' || r == '[' || r == '('
}

const (
	quote      = '"'
	apostrophe = '\''
	// maxCharLiteral is the longest char literal, '\uXXXX', quotes included.
	maxCharLiteral = 8
)

var errNoPeer = errors.New("no balanced peer")

// Matcher matches the four bracket kinds while skipping double-quoted
// strings. It keeps no state between calls.
type Matcher struct{}

func New() *Matcher {
	return &Matcher{}
}

// Match inspects the character just before caret. For an opening bracket it
// searches forward for the balanced closing one, for a closing bracket
// backward. ok is false when there is no bracket or no balanced peer.
func (m *Matcher) Match(doc text.Document, caret int) (Pair, bool) {
	if caret <= 0 || caret > doc.Len() {
		return Pair{}, false
	}
	at := caret - 1
	r, err := doc.Char(at)
	if err != nil {
		log.Warn(log.CatMatcher, "reading bracket failed", "offset", at, "error", err)
		return Pair{}, false
	}
	peer, ok := peers[r]
	if !ok {
		return Pair{}, false
	}

	s := scan{doc: doc}
	if isOpening(r) {
		end, err := s.forward(at+1, r, peer)
		if err != nil {
			s.report(err, at)
			return Pair{}, false
		}
		return Pair{Open: at, Close: end, Anchor: AnchorOpen}, true
	}
	start, err := s.backward(at-1, r, peer)
	if err != nil {
		s.report(err, at)
		return Pair{}, false
	}
	return Pair{Open: start, Close: at, Anchor: AnchorClose}, true
}

type scan struct {
	doc text.Document
}

func (s scan) report(err error, at int) {
	if errors.Is(err, errNoPeer) {
		return
	}
	log.Warn(log.CatMatcher, "bracket search failed", "offset", at, "error", err)
}

// forward looks for the peer of the bracket same, starting at pos. depth
// counts unmatched occurrences of same, including the seed.
func (s scan) forward(pos int, same rune, peer rune) (int, error) {
	depth := 1
	for n := s.doc.Len(); pos < n; pos++ {
		r, err := s.doc.Char(pos)
		if err != nil {
			return 0, err
		}
		switch r {
		case quote:
			escaped, err := s.escaped(pos)
			if err != nil {
				return 0, err
			}
			if escaped {
				continue
			}
			if pos, err = s.skipStringForward(pos + 1); err != nil {
				return 0, err
			}
		case apostrophe:
			end, ok, err := s.charLiteralFrom(pos)
			if err != nil {
				return 0, err
			}
			if ok {
				pos = end
			}
		case same:
			depth++
		case peer:
			if depth--; depth == 0 {
				return pos, nil
			}
		}
	}
	return 0, errNoPeer
}

func (s scan) backward(pos int, same rune, peer rune) (int, error) {
	depth := 1
	for ; pos >= 0; pos-- {
		r, err := s.doc.Char(pos)
		if err != nil {
			return 0, err
		}
		switch r {
		case quote:
			escaped, err := s.escaped(pos)
			if err != nil {
				return 0, err
			}
			if escaped {
				continue
			}
			if pos, err = s.skipStringBackward(pos - 1); err != nil {
				return 0, err
			}
		case apostrophe:
			start, ok, err := s.charLiteralTo(pos)
			if err != nil {
				return 0, err
			}
			if ok {
				pos = start
			}
		case same:
			depth++
		case peer:
			if depth--; depth == 0 {
				return pos, nil
			}
		}
	}
	return 0, errNoPeer
}

// skipStringForward returns the offset of the quote that closes a string
// whose body starts at pos. A string never spans lines: at a line break the
// offset before it is returned and the search resumes on the next line.
func (s scan) skipStringForward(pos int) (int, error) {
	for n := s.doc.Len(); pos < n; pos++ {
		r, err := s.doc.Char(pos)
		if err != nil {
			return 0, err
		}
		switch r {
		case '\n', '\r':
			return pos - 1, nil
		case '\\':
			if next, err := s.doc.Char(pos + 1); err == nil && next != '\n' && next != '\r' {
				pos++
			}
		case quote:
			return pos, nil
		}
	}
	return 0, errNoPeer
}

// skipStringBackward returns the offset of the opening quote of a string
// whose closing quote sits just after pos. When the line has no unescaped
// quote before it, the closing quote was a stray one and pos+1 is returned
// so the search carries on from there.
func (s scan) skipStringBackward(pos int) (int, error) {
	start := pos
	for ; pos >= 0; pos-- {
		r, err := s.doc.Char(pos)
		if err != nil {
			return 0, err
		}
		switch r {
		case '\n', '\r':
			return start + 1, nil
		case quote:
			escaped, err := s.escaped(pos)
			if err != nil {
				return 0, err
			}
			if !escaped {
				return pos, nil
			}
		}
	}
	return start + 1, nil
}

// escaped reports whether the character at pos follows an odd number of
// backslashes.
func (s scan) escaped(pos int) (bool, error) {
	count := 0
	for i := pos - 1; i >= 0; i-- {
		r, err := s.doc.Char(i)
		if err != nil {
			return false, err
		}
		if r != '\\' {
			break
		}
		count++
	}
	return count%2 == 1, nil
}

// charLiteralFrom reports whether a Java char literal opens at pos and, if
// so, the offset of its closing apostrophe. An apostrophe that does not
// start a well-formed literal, as in "don't", is plain text.
func (s scan) charLiteralFrom(pos int) (int, bool, error) {
	last := min(pos+maxCharLiteral-1, s.doc.Len()-1)
	for end := pos + 2; end <= last; end++ {
		r, err := s.doc.Char(end)
		if err != nil {
			return 0, false, err
		}
		if r != apostrophe {
			continue
		}
		ok, err := s.charLiteralBody(pos+1, end)
		if err != nil || ok {
			return end, ok, err
		}
	}
	return 0, false, nil
}

// charLiteralTo is charLiteralFrom for a literal that closes at pos.
func (s scan) charLiteralTo(pos int) (int, bool, error) {
	first := max(pos-maxCharLiteral+1, 0)
	for start := pos - 2; start >= first; start-- {
		r, err := s.doc.Char(start)
		if err != nil {
			return 0, false, err
		}
		if r != apostrophe {
			continue
		}
		ok, err := s.charLiteralBody(start+1, pos)
		if err != nil || ok {
			return start, ok, err
		}
	}
	return 0, false, nil
}

// charLiteralBody reports whether [from, to) is the body of a char literal:
// one character other than an apostrophe, backslash or line break, or an
// escape sequence.
func (s scan) charLiteralBody(from int, to int) (bool, error) {
	body := make([]rune, 0, to-from)
	for i := from; i < to; i++ {
		r, err := s.doc.Char(i)
		if err != nil {
			return false, err
		}
		body = append(body, r)
	}
	return isCharLiteralBody(body), nil
}

func isCharLiteralBody(body []rune) bool {
	if len(body) == 1 {
		r := body[0]
		return r != apostrophe && r != '\\' && r != '\n' && r != '\r'
	}
	if len(body) < 2 || body[0] != '\\' {
		return false
	}
	esc := body[1:]
	switch {
	case len(esc) == 1 && strings.ContainsRune(`btnfrs"'\\`, esc[0]):
		return true
	case esc[0] == 'u':
		hex := strings.TrimLeft(string(esc), "u")
		return len(hex) == 4 && strings.Trim(hex, "0123456789abcdefABCDEF") == ""
	case len(esc) <= 3:
		return strings.Trim(string(esc), "01234567") == ""
	}
	return false
}
