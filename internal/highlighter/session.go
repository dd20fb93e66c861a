package highlighter

import (
	"context"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"jjcolor/internal/lang"
	"jjcolor/internal/log"
	"jjcolor/internal/scanner"
	"jjcolor/internal/text"
)

// scanned is one classified token and the stack it was scanned from.
type scanned struct {
	tok   scanner.Token
	stack scanner.Stack
}

// Session highlights one open document line by line, on demand. After an
// edit only lines from the first changed one are scanned again: the
// classifier rewinds to the snapshot it saved at that line's start.
type Session struct {
	mu   sync.Mutex
	lang lang.ID
	doc  *text.Doc

	classifier *scanner.Classifier
	tokens     [][]scanned
	lines      [][]Span
	// valid counts the leading lines whose spans match doc.
	valid int
}

func NewSession(id lang.ID, src string) *Session {
	s := &Session{lang: id, classifier: scanner.New()}
	s.reset(src)
	return s
}

func (s *Session) Lang() lang.ID {
	return s.lang
}

func (s *Session) Doc() *text.Doc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

func (s *Session) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.LineCount()
}

// Line returns the spans of line i, scanning up to it if needed.
func (s *Session) Line(i int) []Span {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= s.doc.LineCount() {
		return nil
	}
	s.scanThrough(i)
	return s.lines[i]
}

// TokenAt returns the token covering offset and the stack it was scanned
// from. Outside grammar documents the stack is empty.
func (s *Session) TokenAt(offset int) (scanner.Token, scanner.Stack, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if offset < 0 || offset >= s.doc.Len() {
		return scanner.Token{}, scanner.Stack{}, false
	}
	line := s.doc.LineOf(offset)
	s.scanThrough(line)

	if !s.lang.IsGrammar() {
		base := s.doc.LineStart(line)
		for _, span := range s.lines[line] {
			if offset-base >= span.Start && offset-base < span.End {
				tok := scanner.Token{Offset: base + span.Start, Length: span.End - span.Start, Cat: span.Cat}
				return tok, scanner.Stack{}, true
			}
		}
		return scanner.Token{}, scanner.Stack{}, false
	}

	toks := s.tokens[line]
	i := sort.Search(len(toks), func(i int) bool { return toks[i].tok.End() > offset })
	if i == len(toks) || toks[i].tok.Offset > offset {
		return scanner.Token{}, scanner.Stack{}, false
	}
	return toks[i].tok, toks[i].stack, true
}

// Update replaces the text. Lines before the first changed one keep their
// spans.
func (s *Session) Update(src string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if src == s.doc.String() {
		return
	}
	if !s.lang.IsGrammar() {
		s.reset(src)
		return
	}

	next := text.NewDocument(src)
	first := firstChangedLine(s.doc, next)
	s.doc = next
	s.valid = min(s.valid, first)

	tokens := make([][]scanned, next.LineCount())
	copy(tokens, s.tokens[:s.valid])
	lines := make([][]Span, next.LineCount())
	copy(lines, s.lines[:s.valid])
	s.tokens, s.lines = tokens, lines

	log.Debug(log.CatHighlight, "session updated", "first_changed_line", first, "lines", next.LineCount())
}

func (s *Session) reset(src string) {
	s.doc = text.NewDocument(src)
	n := s.doc.LineCount()
	s.tokens = make([][]scanned, n)
	s.lines = make([][]Span, n)
	s.valid = 0

	switch {
	case s.lang.IsGrammar():
		s.classifier.Initialize()
	case s.lang == lang.Java:
		parser := sitter.NewParser()
		defer parser.Close()
		if spans, ok := highlightJava(context.Background(), parser, src); ok {
			s.lines = SplitLines(spans, s.doc)
			s.valid = n
			return
		}
		fallthrough
	default:
		for i := 0; i < n; i++ {
			s.lines[i] = plainSpans(s.doc.Line(i))
		}
		s.valid = n
	}
}

func (s *Session) scanThrough(line int) {
	for s.valid <= line {
		s.scanLine(s.valid)
		s.valid++
	}
}

func (s *Session) scanLine(i int) {
	start := s.doc.LineStart(i)
	end := s.doc.LineEnd(i)

	src := s.classifier.SetRange(s.doc, start, end-start)
	var toks []scanned
	var plain []scanner.Token
	for {
		stack := s.classifier.Stack()
		tok := s.classifier.Evaluate(src)
		if tok.IsEOF() {
			break
		}
		toks = append(toks, scanned{tok: tok, stack: stack})
		plain = append(plain, tok)
	}

	s.tokens[i] = toks
	s.lines[i] = SpansFromTokens(plain, start, len([]rune(s.doc.Line(i))))
}

// firstChangedLine returns the first line of b that may classify
// differently from a. The last line of a counts as changed when b grew,
// since it gains a newline.
func firstChangedLine(a *text.Doc, b *text.Doc) int {
	n := min(a.LineCount(), b.LineCount())
	for i := 0; i < n; i++ {
		if a.Line(i) != b.Line(i) {
			return i
		}
	}
	if a.LineCount() != b.LineCount() {
		return n - 1
	}
	return n
}
