package highlighter

import (
	"jjcolor/internal/scanner"
	"jjcolor/internal/text"
)

// Scan classifies doc with c, handing it ranges of chunk runes, or one
// line per range when chunk is not positive. Every range after the first
// saves a snapshot, as an editor driving the classifier would.
func Scan(c *scanner.Classifier, doc *text.Doc, chunk int) []scanner.Token {
	var out []scanner.Token
	if chunk <= 0 {
		for i := 0; i < doc.LineCount(); i++ {
			start := doc.LineStart(i)
			end := doc.LineEnd(i)
			if end <= start {
				continue
			}
			out = append(out, c.ScanRange(doc, start, end-start)...)
		}
		return out
	}
	for off := 0; off < doc.Len(); off += chunk {
		out = append(out, c.ScanRange(doc, off, chunk)...)
	}
	return out
}

func highlightGrammar(src string, chunk int) []Span {
	doc := text.NewDocument(src)
	tokens := Scan(scanner.New(), doc, chunk)
	return SpansFromTokens(tokens, 0, doc.Len())
}
