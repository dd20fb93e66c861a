package scanner

import (
	"sync"

	"jjcolor/internal/log"
	"jjcolor/internal/text"
)

// maxTransitions bounds the number of stack changes a single Evaluate call
// may make without consuming input.
const maxTransitions = 64

// Classifier tokenizes one document. Evaluate, SetRange and the snapshot
// operations are serialized, so an editor thread and a background analysis
// thread may share an instance, but each document needs its own.
type Classifier struct {
	mu sync.Mutex

	stack     Stack
	snapshots Snapshots

	hasRange   bool
	lastOffset int
}

func New() *Classifier {
	c := &Classifier{}
	c.initialize()
	return c
}

// Initialize resets the stack to the top-level context and forgets every
// snapshot except the one for offset 0.
func (c *Classifier) Initialize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initialize()
}

func (c *Classifier) initialize() {
	c.stack = NewStack(ctx(AtFirstLevel))
	c.snapshots.Clear()
	c.snapshots.Save(0, c.stack)
}

// Save records the current stack as the state at offset.
func (c *Classifier) Save(offset int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.save(offset)
}

func (c *Classifier) save(offset int) {
	c.snapshots.Save(offset, c.stack)
}

// Restore makes the stack saved at the greatest offset <= offset live again
// and returns that offset. Without such a snapshot the classifier is
// reinitialized and 0 is returned.
func (c *Classifier) Restore(offset int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restore(offset)
}

func (c *Classifier) restore(offset int) int {
	at, stack, ok := c.snapshots.Restore(offset)
	if !ok {
		log.Debug(log.CatScanner, "no snapshot at or before offset, reinitializing", "offset", offset)
		c.initialize()
		return 0
	}
	c.stack = stack
	return at
}

// SetRange announces that the following Evaluate calls cover
// [offset, offset+length) of doc and returns the source to pass them.
// The first range initializes; a range at or before the previous one
// rewinds to a snapshot; a later range saves the current state at offset.
func (c *Classifier) SetRange(doc text.Document, offset int, length int) *text.RangeSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setRange(doc, offset, length)
}

func (c *Classifier) setRange(doc text.Document, offset int, length int) *text.RangeSource {
	switch {
	case !c.hasRange:
		c.initialize()
	case offset <= c.lastOffset:
		c.restore(offset)
	default:
		c.save(offset)
	}
	c.hasRange = true
	c.lastOffset = offset
	return text.NewRangeSource(doc, offset, length)
}

// Evaluate classifies the next token from src. At the end of the range it
// returns a CatEOF token and leaves the stack as it is.
func (c *Classifier) Evaluate(src text.Source) Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evaluate(src)
}

// ScanRange runs SetRange and then Evaluate to the end of the range while
// holding the lock throughout. The EOF token is not included.
func (c *Classifier) ScanRange(doc text.Document, offset int, length int) []Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	src := c.setRange(doc, offset, length)
	var out []Token
	for {
		tok := c.evaluate(src)
		if tok.IsEOF() {
			return out
		}
		out = append(out, tok)
	}
}

// Stack returns the live stack. The value is immutable and safe to keep.
func (c *Classifier) Stack() Stack {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack
}

func (c *Classifier) SnapshotOffsets() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshots.Offsets()
}

func (c *Classifier) evaluate(src text.Source) Token {
	start := src.Offset()
	for i := 0; ; i++ {
		if peek(src) == text.EOF {
			return Token{Offset: start, Cat: CatEOF}
		}
		if i >= maxTransitions {
			log.Error(log.CatScanner, "no progress after context transitions, consuming one character",
				"offset", start, "stack", c.stack.String())
			src.Read()
			return Token{Offset: start, Length: 1, Cat: CatDefault}
		}

		cat, consumed := c.step(src)
		if !consumed {
			continue
		}
		if n := src.Offset() - start; n > 0 {
			return Token{Offset: start, Length: n, Cat: cat}
		}
		log.Error(log.CatScanner, "rule matched without consuming input", "offset", start, "category", cat)
		src.Read()
		return Token{Offset: start, Length: 1, Cat: CatDefault}
	}
}

func (c *Classifier) push(state Context) {
	c.stack = c.stack.Push(state)
}

func (c *Classifier) pop() {
	next, ok := c.stack.Pop()
	if !ok {
		log.Error(log.CatScanner, "refusing to pop the bottom context", "stack", c.stack.String())
		return
	}
	c.stack = next
}

func (c *Classifier) replace(state Context) {
	c.stack = c.stack.Replace(state)
}

// mark replaces the one-shot flags of the top context with f.
func (c *Classifier) mark(f Flags) {
	top := c.stack.Top()
	top.Flags = top.Flags&^oneShotFlags | f
	c.replace(top)
}
