package highlighter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjcolor/internal/lang"
	"jjcolor/internal/scanner"
)

const calcGrammar = `options {
  STATIC = false;
}

PARSER_BEGIN(Calc)
public class Calc {}
PARSER_END(Calc)

/* tokens
   follow */
TOKEN : { < NUMBER: (["0"-"9"])+ > }

void Expr() : {} { Term() ( "+" Term() )* }
`

// catAt returns the category covering rune offset off.
func catAt(t *testing.T, spans []Span, off int) scanner.Category {
	t.Helper()
	for _, s := range spans {
		if off >= s.Start && off < s.End {
			return s.Cat
		}
	}
	t.Fatalf("no span covers offset %d", off)
	return scanner.CatEOF
}

func offsetOf(t *testing.T, src string, needle string) int {
	t.Helper()
	i := strings.Index(src, needle)
	require.GreaterOrEqual(t, i, 0, "missing %q", needle)
	return len([]rune(src[:i]))
}

func requirePartition(t *testing.T, spans []Span, runeLen int) {
	t.Helper()
	cursor := 0
	for _, s := range spans {
		require.Equal(t, cursor, s.Start)
		require.Greater(t, s.End, s.Start)
		cursor = s.End
	}
	require.Equal(t, runeLen, cursor)
}

func TestHighlight_Grammar(t *testing.T) {
	h := New(Config{Workers: 1, CacheSize: 8})
	defer h.Close()

	spans := h.Highlight(Request{Lang: lang.JavaCC, Text: calcGrammar})

	requirePartition(t, spans, len([]rune(calcGrammar)))
	assert.Equal(t, scanner.CatJavaCCKeyword, catAt(t, spans, offsetOf(t, calcGrammar, "options")))
	assert.Equal(t, scanner.CatJavaCCOption, catAt(t, spans, offsetOf(t, calcGrammar, "STATIC")))
	assert.Equal(t, scanner.CatJavaBlockComment, catAt(t, spans, offsetOf(t, calcGrammar, "follow")))
	assert.Equal(t, scanner.CatBNFProductionName, catAt(t, spans, offsetOf(t, calcGrammar, "Expr")))
	assert.Equal(t, scanner.CatBNFProductionCall, catAt(t, spans, offsetOf(t, calcGrammar, "Term")))
}

func TestHighlight_ChunkedRangesStillPartition(t *testing.T) {
	for _, chunk := range []int{0, 1, 7, 64} {
		h := New(Config{Workers: 1, ChunkSize: chunk})
		spans := h.Highlight(Request{Lang: lang.JJTree, Text: calcGrammar})
		h.Close()

		requirePartition(t, spans, len([]rune(calcGrammar)))
	}
}

func TestHighlight_Java(t *testing.T) {
	src := "/** Doc. */\nclass Foo {\n  void bar() { baz(\"s\", 42); }\n}\n"
	h := New(Config{Workers: 1})
	defer h.Close()

	spans := h.Highlight(Request{Lang: lang.Java, Text: src})

	requirePartition(t, spans, len([]rune(src)))
	assert.Equal(t, scanner.CatJavadocComment, catAt(t, spans, 0))
	assert.Equal(t, scanner.CatJavaKeyword, catAt(t, spans, offsetOf(t, src, "class")))
	assert.Equal(t, scanner.CatParserName, catAt(t, spans, offsetOf(t, src, "Foo")))
	assert.Equal(t, scanner.CatJavaKeyword, catAt(t, spans, offsetOf(t, src, "void")))
	assert.Equal(t, scanner.CatBNFProductionName, catAt(t, spans, offsetOf(t, src, "bar")))
	assert.Equal(t, scanner.CatBNFProductionCall, catAt(t, spans, offsetOf(t, src, "baz")))
	assert.Equal(t, scanner.CatJavaString, catAt(t, spans, offsetOf(t, src, `"s"`)))
	assert.Equal(t, scanner.CatJavaNumeric, catAt(t, spans, offsetOf(t, src, "42")))
	assert.Equal(t, scanner.CatJavaPunctuation, catAt(t, spans, offsetOf(t, src, "{")))
}

func TestHighlight_PlainAndEmpty(t *testing.T) {
	h := New(Config{})
	defer h.Close()

	assert.Equal(t, []Span{{Start: 0, End: 3, Cat: scanner.CatDefault}}, h.Highlight(Request{Lang: lang.Plain, Text: "a{}"}))
	assert.Nil(t, h.Highlight(Request{Lang: lang.JavaCC, Text: ""}))
}

func TestHighlight_Caches(t *testing.T) {
	h := New(Config{Workers: 1, CacheSize: 4})
	defer h.Close()
	req := Request{Lang: lang.JavaCC, Text: "TOKEN : { <A: \"a\"> }"}

	_, ok := h.Lookup(req)
	require.False(t, ok)

	want := h.Highlight(req)
	got, ok := h.Lookup(req)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestQueue_WorkersFillCache(t *testing.T) {
	h := New(Config{Workers: 2, CacheSize: 4096})
	defer h.Close()

	reqs := []Request{
		{Lang: lang.JavaCC, Text: calcGrammar, File: "calc.jj"},
		{Lang: lang.Java, Text: "class A {}", File: "A.java"},
		{Lang: lang.Plain, Text: "notes", File: "README"},
	}
	for _, req := range reqs {
		h.Queue(req)
		h.Queue(req)
	}

	require.Eventually(t, func() bool {
		for _, req := range reqs {
			if _, ok := h.Lookup(req); !ok {
				return false
			}
		}
		return true
	}, 5*time.Second, 10*time.Millisecond)

	got, _ := h.Lookup(reqs[0])
	assert.Equal(t, h.Highlight(reqs[0]), got)
}

func TestClose_IsIdempotent(t *testing.T) {
	h := New(Config{Workers: 3})
	h.Close()
	h.Close()
}
