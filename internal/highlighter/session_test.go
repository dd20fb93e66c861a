package highlighter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"jjcolor/internal/lang"
	"jjcolor/internal/scanner"
	"jjcolor/internal/text"
)

func allLines(s *Session) [][]Span {
	out := make([][]Span, s.LineCount())
	for i := range out {
		out[i] = s.Line(i)
	}
	return out
}

func TestSession_MatchesLineRangedHighlight(t *testing.T) {
	h := New(Config{Workers: 1})
	defer h.Close()

	want := SplitLines(h.Highlight(Request{Lang: lang.JavaCC, Text: calcGrammar}), text.NewDocument(calcGrammar))
	s := NewSession(lang.JavaCC, calcGrammar)

	assert.Equal(t, want, allLines(s))
}

func TestSession_BlockCommentSpansLines(t *testing.T) {
	s := NewSession(lang.JavaCC, "/* one\ntwo */ options")

	assert.Equal(t, []Span{{Start: 0, End: 6, Cat: scanner.CatJavaBlockComment}}, s.Line(0))
	line := s.Line(1)
	require.NotEmpty(t, line)
	assert.Equal(t, Span{Start: 0, End: 6, Cat: scanner.CatJavaBlockComment}, line[0])
	assert.Equal(t, scanner.CatJavaCCKeyword, line[len(line)-1].Cat)
}

func TestSession_OutOfRangeLine(t *testing.T) {
	s := NewSession(lang.JavaCC, "options {}")

	assert.Nil(t, s.Line(-1))
	assert.Nil(t, s.Line(1))
}

func TestSession_UpdateRescansFromChangedLine(t *testing.T) {
	before := "TOKEN : {\n  < A: \"a\" >\n}\nvoid p() : {} { <A> }\n"
	after := "/*\nTOKEN : {\n  < A: \"a\" >\n}\nvoid p() : {} { <A> }\n"

	s := NewSession(lang.JavaCC, before)
	allLines(s)
	s.Update(after)

	assert.Equal(t, allLines(NewSession(lang.JavaCC, after)), allLines(s))
	for _, span := range s.Line(4) {
		assert.Equal(t, scanner.CatJavaBlockComment, span.Cat)
	}
}

func TestSession_UpdateKeepsEarlierLines(t *testing.T) {
	before := "options {\n  STATIC = false;\n}\n"
	s := NewSession(lang.JavaCC, before)
	first := s.Line(0)

	s.Update(before + "TOKEN : { <B: \"b\"> }\n")

	assert.Equal(t, first, s.Line(0))
	assert.Equal(t, 5, s.LineCount())
	assert.Equal(t, scanner.CatJavaCCKeyword, s.Line(3)[0].Cat)
}

func TestSession_TokenAt(t *testing.T) {
	src := "options {\n  STATIC = true;\n}"
	s := NewSession(lang.JavaCC, src)

	tok, stack, ok := s.TokenAt(offsetOf(t, src, "TIC"))
	require.True(t, ok)
	assert.Equal(t, scanner.CatJavaCCOption, tok.Cat)
	assert.Equal(t, offsetOf(t, src, "STATIC"), tok.Offset)
	assert.Equal(t, 6, tok.Length)
	assert.Equal(t, scanner.InOptionsBlock, stack.Top().Kind)

	_, _, ok = s.TokenAt(len(src))
	assert.False(t, ok)
}

func TestSession_JavaAndPlain(t *testing.T) {
	java := NewSession(lang.Java, "class A {\n}\n")
	require.Equal(t, 3, java.LineCount())
	assert.Equal(t, scanner.CatJavaKeyword, java.Line(0)[0].Cat)

	tok, stack, ok := java.TokenAt(6)
	require.True(t, ok)
	assert.Equal(t, scanner.CatParserName, tok.Cat)
	assert.Equal(t, 0, stack.Depth())

	plain := NewSession(lang.Plain, "x\ny")
	plain.Update("x\nyz")
	assert.Equal(t, []Span{{Start: 0, End: 2, Cat: scanner.CatDefault}}, plain.Line(1))
}

var sessionLines = []string{
	"options {",
	"  LOOKAHEAD = 2;",
	"}",
	"/* open",
	"close */",
	"/** doc",
	"TOKEN : {",
	"  < #DIGIT: [\"0\"-\"9\"] >",
	"}",
	"void e() #E : {} {",
	"  f() ( \"x\" | <DIGIT> )*",
	"}",
	"\"unterminated",
	"PARSER_BEGIN(P) class P {",
	"} PARSER_END(P)",
	"",
}

func TestProperty_SessionUpdateMatchesFreshScan(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		gen := rapid.SliceOfN(rapid.SampledFrom(sessionLines), 1, 14)
		lines := gen.Draw(rt, "lines")

		s := NewSession(lang.JJTree, strings.Join(lines, "\n"))
		scanned := rapid.IntRange(0, len(lines)-1).Draw(rt, "scanned")
		for i := 0; i <= scanned; i++ {
			s.Line(i)
		}

		edits := rapid.IntRange(1, 4).Draw(rt, "edits")
		for e := 0; e < edits; e++ {
			at := rapid.IntRange(0, len(lines)).Draw(rt, "at")
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				lines = append(lines[:at:at], append([]string{rapid.SampledFrom(sessionLines).Draw(rt, "insert")}, lines[at:]...)...)
			case 1:
				if at < len(lines) && len(lines) > 1 {
					lines = append(lines[:at:at], lines[at+1:]...)
				}
			case 2:
				if at < len(lines) {
					lines[at] = rapid.SampledFrom(sessionLines).Draw(rt, "replace")
				}
			}
			s.Update(strings.Join(lines, "\n"))
			if rapid.Bool().Draw(rt, "rescan") {
				allLines(s)
			}
		}

		fresh := NewSession(lang.JJTree, strings.Join(lines, "\n"))
		require.Equal(rt, allLines(fresh), allLines(s))
	})
}
