package highlighter

import (
	"container/list"
	"sync"

	"jjcolor/internal/lang"
)

// cacheKey identifies one highlight result. Chunk is only part of the key
// for grammar languages, where the classifier range length can change how
// a range boundary is resumed; Java and plain text ignore it.
type cacheKey struct {
	Lang  lang.ID
	Text  string
	Chunk int
}

func newCacheKey(req Request, chunk int) cacheKey {
	key := cacheKey{Lang: req.Lang, Text: req.Text}
	if req.Lang.IsGrammar() {
		key.Chunk = chunk
	}
	return key
}

type cacheEntry struct {
	key   cacheKey
	spans []Span
}

// weight is the number of spans an entry holds, at least 1 so empty
// results still count toward the budget.
func (e *cacheEntry) weight() int {
	return max(len(e.spans), 1)
}

// spanLRU bounds the total number of cached spans rather than the number
// of documents. The most recently set entry is always kept, even when it
// alone exceeds the budget.
type spanLRU struct {
	mu     sync.Mutex
	budget int
	used   int
	ll     *list.List
	items  map[cacheKey]*list.Element
}

func newSpanLRU(budget int) *spanLRU {
	return &spanLRU{
		budget: max(budget, 1),
		ll:     list.New(),
		items:  make(map[cacheKey]*list.Element),
	}
}

func (c *spanLRU) Get(key cacheKey) ([]Span, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(elem)
	return elem.Value.(*cacheEntry).spans, true
}

func (c *spanLRU) Set(key cacheKey, spans []Span) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*cacheEntry)
		c.used -= entry.weight()
		entry.spans = spans
		c.used += entry.weight()
		c.ll.MoveToFront(elem)
	} else {
		entry := &cacheEntry{key: key, spans: spans}
		c.items[key] = c.ll.PushFront(entry)
		c.used += entry.weight()
	}
	c.evict()
}

func (c *spanLRU) evict() {
	for c.used > c.budget && c.ll.Len() > 1 {
		back := c.ll.Back()
		entry := back.Value.(*cacheEntry)
		c.used -= entry.weight()
		delete(c.items, entry.key)
		c.ll.Remove(back)
	}
}

// Len reports the number of cached results.
func (c *spanLRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Spans reports the number of cached spans counted against the budget.
func (c *spanLRU) Spans() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}
