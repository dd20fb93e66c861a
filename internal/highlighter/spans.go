package highlighter

import (
	"sort"
	"unicode/utf8"

	"jjcolor/internal/scanner"
	"jjcolor/internal/text"
)

// Span colors runes [Start, End) of a line or document.
type Span struct {
	Start int
	End   int
	Cat   scanner.Category
}

func plainSpans(text string) []Span {
	runeLen := utf8.RuneCountInString(text)
	if runeLen == 0 {
		return nil
	}
	return []Span{{Start: 0, End: runeLen, Cat: scanner.CatDefault}}
}

// SpansFromTokens turns classifier tokens into spans relative to base,
// merged and covering [0, runeLen).
func SpansFromTokens(tokens []scanner.Token, base int, runeLen int) []Span {
	spans := make([]Span, 0, len(tokens))
	for _, tok := range tokens {
		cat := tok.Cat
		if cat == scanner.CatWhitespace {
			cat = scanner.CatDefault
		}
		spans = append(spans, Span{Start: tok.Offset - base, End: tok.End() - base, Cat: cat})
	}
	return normalizeSpans(spans, runeLen)
}

func normalizeSpans(spans []Span, runeLen int) []Span {
	if runeLen <= 0 {
		return nil
	}

	clean := make([]Span, 0, len(spans))
	for _, span := range spans {
		start := max(span.Start, 0)
		end := min(span.End, runeLen)
		if end <= start {
			continue
		}
		clean = append(clean, Span{Start: start, End: end, Cat: span.Cat})
	}

	sort.SliceStable(clean, func(i, j int) bool {
		if clean[i].Start == clean[j].Start {
			return clean[i].End < clean[j].End
		}
		return clean[i].Start < clean[j].Start
	})

	out := make([]Span, 0, len(clean)+2)
	cursor := 0
	for _, span := range clean {
		start := max(span.Start, cursor)
		if span.End <= start {
			continue
		}
		if start > cursor {
			out = appendMergedSpan(out, cursor, start, scanner.CatDefault)
		}
		out = appendMergedSpan(out, start, span.End, span.Cat)
		cursor = span.End
	}
	if cursor < runeLen {
		out = appendMergedSpan(out, cursor, runeLen, scanner.CatDefault)
	}
	return out
}

func appendMergedSpan(spans []Span, start int, end int, cat scanner.Category) []Span {
	if end <= start {
		return spans
	}
	if len(spans) > 0 {
		last := &spans[len(spans)-1]
		if last.End == start && last.Cat == cat {
			last.End = end
			return spans
		}
	}
	return append(spans, Span{Start: start, End: end, Cat: cat})
}

// SplitLines cuts document-wide spans at line boundaries. A line's newline
// is not part of its spans.
func SplitLines(spans []Span, doc *text.Doc) [][]Span {
	out := make([][]Span, doc.LineCount())
	idx := 0
	for i := range out {
		start := doc.LineStart(i)
		end := start + len([]rune(doc.Line(i)))
		if end <= start {
			continue
		}
		for idx < len(spans) && spans[idx].End <= start {
			idx++
		}
		var line []Span
		for j := idx; j < len(spans) && spans[j].Start < end; j++ {
			line = append(line, Span{
				Start: max(spans[j].Start, start) - start,
				End:   min(spans[j].End, end) - start,
				Cat:   spans[j].Cat,
			})
		}
		out[i] = normalizeSpans(line, end-start)
	}
	return out
}

// runeIndex maps byte offsets of src to rune offsets.
type runeIndex []int

func newRuneIndex(src []byte) runeIndex {
	idx := make(runeIndex, len(src)+1)
	r := 0
	for b := 0; b < len(src); {
		_, size := utf8.DecodeRune(src[b:])
		for k := 0; k < size && b+k < len(src); k++ {
			idx[b+k] = r
		}
		b += size
		r++
	}
	idx[len(src)] = r
	return idx
}

func (ri runeIndex) at(b int) int {
	return ri[max(0, min(b, len(ri)-1))]
}
