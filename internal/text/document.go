// Package text holds the rune-indexed document model shared by the scanner
// and the delimiter matcher, and the bounded character source the scanner
// reads from.
package text

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOutOfRange is returned by Document.Char for offsets outside [0, Len).
var ErrOutOfRange = errors.New("offset out of range")

// Document is random-access text addressed by rune offset.
type Document interface {
	Len() int
	Char(offset int) (rune, error)
}

// Doc is an immutable in-memory Document.
type Doc struct {
	runes      []rune
	lineStarts []int
}

func NewDocument(s string) *Doc {
	runes := []rune(s)
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Doc{runes: runes, lineStarts: starts}
}

func (d *Doc) Len() int {
	return len(d.runes)
}

func (d *Doc) Char(offset int) (rune, error) {
	if offset < 0 || offset >= len(d.runes) {
		return 0, fmt.Errorf("char at %d (len %d): %w", offset, len(d.runes), ErrOutOfRange)
	}
	return d.runes[offset], nil
}

func (d *Doc) String() string {
	return string(d.runes)
}

// Slice returns the text of [from, to), clamped to the document.
func (d *Doc) Slice(from int, to int) string {
	from = max(0, min(from, len(d.runes)))
	to = max(from, min(to, len(d.runes)))
	return string(d.runes[from:to])
}

// LineCount counts lines; a trailing newline opens a final empty line.
func (d *Doc) LineCount() int {
	return len(d.lineStarts)
}

// LineStart returns the offset of 0-based line i, clamped to the document.
func (d *Doc) LineStart(i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(d.lineStarts) {
		return len(d.runes)
	}
	return d.lineStarts[i]
}

// LineEnd returns the offset just past line i, including its newline.
func (d *Doc) LineEnd(i int) int {
	return d.LineStart(i + 1)
}

// LineOf returns the 0-based line containing offset.
func (d *Doc) LineOf(offset int) int {
	if offset <= 0 {
		return 0
	}
	idx := sort.Search(len(d.lineStarts), func(i int) bool { return d.lineStarts[i] > offset })
	return idx - 1
}

// Line returns line i without its trailing newline.
func (d *Doc) Line(i int) string {
	start := d.LineStart(i)
	end := d.LineEnd(i)
	if end > start && d.runes[end-1] == '\n' {
		end--
	}
	return string(d.runes[start:end])
}
