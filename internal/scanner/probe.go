package scanner

import (
	"unicode"
	"unicode/utf8"

	"jjcolor/internal/text"
)

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r != text.EOF && unicode.IsLetter(r))
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r != text.EOF && unicode.IsDigit(r))
}

func isSpace(r rune) bool {
	return r != text.EOF && unicode.IsSpace(r)
}

func peek(src text.Source) rune {
	r := src.Read()
	src.Unread()
	return r
}

func unreadN(src text.Source, n int) {
	for ; n > 0; n-- {
		src.Unread()
	}
}

func consume(src text.Source, n int) {
	for ; n > 0; n-- {
		src.Read()
	}
}

func consumeWord(src text.Source, w string) {
	consume(src, utf8.RuneCountInString(w))
}

// isAt reports whether the source continues with s. Nothing is consumed.
func isAt(src text.Source, s string) bool {
	n := 0
	ok := true
	for _, want := range s {
		n++
		if src.Read() != want {
			ok = false
			break
		}
	}
	unreadN(src, n)
	return ok
}

// readIdent consumes one identifier. It returns "" and consumes nothing when
// the source is not at an identifier start.
func readIdent(src text.Source) string {
	r := src.Read()
	if !isIdentStart(r) {
		src.Unread()
		return ""
	}
	buf := make([]rune, 0, 16)
	for isIdentPart(r) {
		buf = append(buf, r)
		r = src.Read()
	}
	src.Unread()
	return string(buf)
}

// identAhead looks at the identifier under the cursor and the first
// non-space character after it. Nothing is consumed.
func identAhead(src text.Source) (word string, delim rune) {
	n := 1
	r := src.Read()
	if !isIdentStart(r) {
		src.Unread()
		return "", r
	}
	buf := make([]rune, 0, 16)
	for isIdentPart(r) {
		buf = append(buf, r)
		r = src.Read()
		n++
	}
	for isSpace(r) {
		r = src.Read()
		n++
	}
	unreadN(src, n)
	return string(buf), r
}
