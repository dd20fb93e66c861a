// Package prefs distributes presentation preference changes to registered
// handlers. Handlers are plain functions registered under a name and torn
// down explicitly or when the hub closes.
package prefs

import (
	"context"
	"sync"

	"jjcolor/internal/log"
	"jjcolor/internal/pubsub"
)

// Override replaces parts of one category's presentation. Nil fields keep
// the theme's value.
type Override struct {
	Foreground string `mapstructure:"fg" yaml:"fg,omitempty"`
	Background string `mapstructure:"bg" yaml:"bg,omitempty"`
	Bold       *bool  `mapstructure:"bold" yaml:"bold,omitempty"`
	Italic     *bool  `mapstructure:"italic" yaml:"italic,omitempty"`
	Underline  *bool  `mapstructure:"underline" yaml:"underline,omitempty"`
}

// Change describes one preference update. An empty Theme keeps the current
// style; Overrides are keyed by category name; Removed lists categories whose
// overrides go back to the style's values.
type Change struct {
	Theme     string
	Overrides map[string]Override
	Removed   []string
}

func (c Change) Empty() bool {
	return c.Theme == "" && len(c.Overrides) == 0 && len(c.Removed) == 0
}

type handler struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Hub fans Changes out to named handlers.
type Hub struct {
	broker *pubsub.Broker[Change]

	mu       sync.Mutex
	handlers map[string]*handler
}

func NewHub() *Hub {
	return &Hub{
		broker:   pubsub.NewBroker[Change](),
		handlers: make(map[string]*handler),
	}
}

func (h *Hub) Publish(c Change) {
	if c.Empty() {
		return
	}
	log.Debug(log.CatPrefs, "publishing preference change", "theme", c.Theme, "overrides", len(c.Overrides), "removed", len(c.Removed))
	h.broker.Publish(pubsub.ChangeEvent, c)
}

// Subscribe exposes the raw event stream for callers that select on it.
func (h *Hub) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return h.broker.Subscribe(ctx)
}

// Handle runs fn for every Change published after Handle returns, until ctx
// ends, the returned stop function is called or the hub closes. Registering a
// second handler under the same name stops the first one.
func (h *Hub) Handle(ctx context.Context, name string, fn func(Change)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	events := h.broker.Subscribe(ctx)
	hd := &handler{cancel: cancel, done: make(chan struct{})}

	h.mu.Lock()
	prev := h.handlers[name]
	h.handlers[name] = hd
	h.mu.Unlock()
	if prev != nil {
		prev.stop()
	}

	go func() {
		defer close(hd.done)
		for ev := range events {
			fn(ev.Payload)
		}
	}()

	return func() {
		h.mu.Lock()
		if h.handlers[name] == hd {
			delete(h.handlers, name)
		}
		h.mu.Unlock()
		hd.stop()
	}
}

func (hd *handler) stop() {
	hd.cancel()
	<-hd.done
}

// Handlers lists the registered handler names.
func (h *Hub) Handlers() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.handlers))
	for name := range h.handlers {
		names = append(names, name)
	}
	return names
}

// Close stops every handler and waits for the running ones to return.
func (h *Hub) Close() {
	h.broker.Close()

	h.mu.Lock()
	handlers := h.handlers
	h.handlers = make(map[string]*handler)
	h.mu.Unlock()

	for _, hd := range handlers {
		hd.stop()
	}
}
