// Package highlighter turns classified tokens into merged color spans. It
// drives the grammar classifier for JavaCC, JJTree and JTB input and a
// tree-sitter parse for plain Java, caches results and keeps incremental
// per-document sessions.
package highlighter

import (
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"jjcolor/internal/lang"
	"jjcolor/internal/log"
)

type Config struct {
	Workers   int
	// CacheSize bounds the total number of spans kept across cached results.
	CacheSize int
	// ChunkSize is the classifier range length; 0 scans one line per range.
	ChunkSize int
}

// Request asks for the spans of a whole document. File is informational.
type Request struct {
	Lang lang.ID
	Text string
	File string
}

type Highlighter struct {
	cache *spanLRU
	tasks chan Request
	chunk int

	pendingMu sync.Mutex
	pending   map[cacheKey]struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func New(cfg Config) *Highlighter {
	workers := max(cfg.Workers, 1)

	h := &Highlighter{
		cache:   newSpanLRU(cfg.CacheSize),
		tasks:   make(chan Request, workers*64),
		chunk:   max(cfg.ChunkSize, 0),
		pending: make(map[cacheKey]struct{}),
	}

	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go h.worker()
	}
	return h
}

// Highlight computes spans on the calling goroutine and caches them.
func (h *Highlighter) Highlight(req Request) []Span {
	key := h.keyFor(req)
	if spans, ok := h.cache.Get(key); ok {
		return spans
	}

	parser := sitter.NewParser()
	defer parser.Close()

	spans := h.highlightWithParser(parser, req)
	h.cache.Set(key, spans)
	return spans
}

func (h *Highlighter) Lookup(req Request) ([]Span, bool) {
	return h.cache.Get(h.keyFor(req))
}

// Queue schedules req on the worker pool. Requests already cached, already
// pending, or arriving while the queue is full are dropped.
func (h *Highlighter) Queue(req Request) {
	if req.Text == "" {
		return
	}

	key := h.keyFor(req)
	if _, ok := h.cache.Get(key); ok {
		return
	}

	h.pendingMu.Lock()
	if _, ok := h.pending[key]; ok {
		h.pendingMu.Unlock()
		return
	}
	h.pending[key] = struct{}{}
	h.pendingMu.Unlock()

	select {
	case h.tasks <- req:
	default:
		log.Debug(log.CatHighlight, "highlight queue full, dropping request", "file", req.File)
		h.pendingMu.Lock()
		delete(h.pending, key)
		h.pendingMu.Unlock()
	}
}

// Close stops the workers after the queued requests are done. Queue must
// not be called afterwards.
func (h *Highlighter) Close() {
	h.closeOnce.Do(func() {
		close(h.tasks)
	})
	h.wg.Wait()
}

func (h *Highlighter) worker() {
	defer h.wg.Done()

	parser := sitter.NewParser()
	defer parser.Close()

	for req := range h.tasks {
		spans := h.highlightWithParser(parser, req)
		key := h.keyFor(req)
		h.cache.Set(key, spans)

		h.pendingMu.Lock()
		delete(h.pending, key)
		h.pendingMu.Unlock()
	}
}

func (h *Highlighter) keyFor(req Request) cacheKey {
	return newCacheKey(req, h.chunk)
}

func (h *Highlighter) highlightWithParser(parser *sitter.Parser, req Request) []Span {
	if req.Text == "" {
		return nil
	}

	switch {
	case req.Lang.IsGrammar():
		return highlightGrammar(req.Text, h.chunk)
	case req.Lang == lang.Java:
		if spans, ok := highlightJava(context.Background(), parser, req.Text); ok {
			return spans
		}
	}
	return plainSpans(req.Text)
}
