package scanner

import (
	"testing"

	"jjcolor/internal/text"
)

type lexeme struct {
	Text string
	Cat  Category
}

func scanAll(t *testing.T, src string) (*text.Doc, []Token) {
	t.Helper()
	doc := text.NewDocument(src)
	c := New()
	return doc, c.ScanRange(doc, 0, doc.Len())
}

// significant drops whitespace tokens.
func significant(doc *text.Doc, toks []Token) []lexeme {
	out := make([]lexeme, 0, len(toks))
	for _, tok := range toks {
		if tok.Cat == CatWhitespace {
			continue
		}
		out = append(out, lexeme{Text: doc.Slice(tok.Offset, tok.End()), Cat: tok.Cat})
	}
	return out
}

func categoryOf(doc *text.Doc, toks []Token, want string) (Category, bool) {
	for _, tok := range toks {
		if doc.Slice(tok.Offset, tok.End()) == want {
			return tok.Cat, true
		}
	}
	return CatEOF, false
}

func scanChunks(c *Classifier, doc text.Document, from int, chunk int) []Token {
	var out []Token
	for off := from; off < doc.Len(); off += chunk {
		out = append(out, c.ScanRange(doc, off, chunk)...)
	}
	return out
}
