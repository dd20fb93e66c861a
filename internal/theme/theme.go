// Package theme resolves each token category to colors and font attributes.
// A theme starts from a chroma style and layers per-category overrides on
// top; preference changes are applied through a prefs.Hub handler.
package theme

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"jjcolor/internal/log"
	"jjcolor/internal/prefs"
	"jjcolor/internal/scanner"
)

const DefaultName = "nord"

type FontStyle uint8

const (
	Bold FontStyle = 1 << iota
	Italic
	Underline
)

func (f FontStyle) Has(s FontStyle) bool {
	return f&s != 0
}

// Attribute is the presentation of one category. An empty Background means
// the terminal's own.
type Attribute struct {
	Foreground string
	Background string
	Style      FontStyle
}

// Palette holds the colors that do not belong to a token category.
type Palette struct {
	Text        string
	Background  string
	InputBG     string
	SelectionBG string
	MatchBG     string
	Muted       string
	Accent      string
	Error       string
}

// Theme is safe for concurrent use; Apply may run on a handler goroutine
// while renderers call Style.
type Theme struct {
	mu        sync.RWMutex
	name      string
	palette   Palette
	base      map[scanner.Category]Attribute
	overrides map[string]prefs.Override
	resolved  map[scanner.Category]Attribute
}

// Load builds a theme from the named chroma style and applies overrides,
// keyed by category name.
func Load(name string, overrides map[string]prefs.Override) (*Theme, error) {
	t := &Theme{overrides: make(map[string]prefs.Override)}
	if err := t.setStyle(name); err != nil {
		return nil, err
	}
	for cat, o := range overrides {
		t.setOverride(cat, o)
	}
	t.resolve()
	return t, nil
}

// Default returns the nord theme, or a fixed fallback when chroma does not
// ship it.
func Default() *Theme {
	if t, err := Load(DefaultName, nil); err == nil {
		return t
	}
	t := &Theme{
		name:      "fallback",
		overrides: make(map[string]prefs.Override),
		palette: Palette{
			Text:        "#D8DEE9",
			Background:  "#2E3440",
			InputBG:     "#3B4252",
			SelectionBG: "#434C5E",
			MatchBG:     "#5E81AC",
			Muted:       "#4C566A",
			Accent:      "#88C0D0",
			Error:       "#BF616A",
		},
		base: make(map[scanner.Category]Attribute),
	}
	for _, cat := range scanner.Categories() {
		t.base[cat] = Attribute{Foreground: t.palette.Text}
	}
	t.resolve()
	return t
}

// Names lists the available chroma styles, sorted.
func Names() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

func (t *Theme) Name() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name
}

func (t *Theme) Palette() Palette {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.palette
}

func (t *Theme) Lookup(cat scanner.Category) Attribute {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if a, ok := t.resolved[cat]; ok {
		return a
	}
	return Attribute{Foreground: t.palette.Text}
}

// LookupName resolves a category by its name, e.g. "javacc-option".
func (t *Theme) LookupName(name string) (Attribute, bool) {
	cat, err := scanner.ParseCategory(name)
	if err != nil {
		return Attribute{}, false
	}
	return t.Lookup(cat), true
}

// Style returns the lipgloss style for cat. Selected text is drawn on the
// selection background.
func (t *Theme) Style(cat scanner.Category, selected bool) lipgloss.Style {
	a := t.Lookup(cat)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Foreground))
	if a.Background != "" {
		style = style.Background(lipgloss.Color(a.Background))
	}
	if selected {
		style = style.Background(lipgloss.Color(t.Palette().SelectionBG))
	}
	if a.Style.Has(Bold) {
		style = style.Bold(true)
	}
	if a.Style.Has(Italic) {
		style = style.Italic(true)
	}
	if a.Style.Has(Underline) {
		style = style.Underline(true)
	}
	return style
}

// Apply merges a preference change. A change naming an unknown style is
// rejected as a whole.
func (t *Theme) Apply(c prefs.Change) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c.Theme != "" && normalizeName(c.Theme) != t.name {
		if err := t.setStyle(c.Theme); err != nil {
			return err
		}
	}
	for _, name := range c.Removed {
		delete(t.overrides, name)
	}
	for name, o := range c.Overrides {
		t.setOverride(name, o)
	}
	t.resolve()
	log.Info(log.CatTheme, "theme updated", "theme", t.name, "overrides", len(t.overrides))
	return nil
}

// Listen registers Apply as the "theme" handler on hub.
func (t *Theme) Listen(ctx context.Context, hub *prefs.Hub) (stop func()) {
	return hub.Handle(ctx, "theme", func(c prefs.Change) {
		if err := t.Apply(c); err != nil {
			log.Warn(log.CatTheme, "ignoring preference change", "error", err)
		}
	})
}

func (t *Theme) setStyle(name string) error {
	style, lookup, err := resolveStyle(name)
	if err != nil {
		return err
	}

	bg := pickBackground(style, "#2E3440", chroma.Background, chroma.LineHighlight)
	fg := pickForeground(style, "#D8DEE9", chroma.Text, chroma.Background)
	selection := pickBackground(style, adjustTone(bg, autoDelta(bg, 18, -18)), chroma.LineHighlight)

	t.name = lookup
	t.palette = Palette{
		Text:        fg,
		Background:  bg,
		InputBG:     adjustTone(bg, autoDelta(bg, 12, -12)),
		SelectionBG: selection,
		MatchBG:     adjustTone(selection, autoDelta(selection, 28, -28)),
		Muted:       pickForeground(style, adjustTone(fg, -48), chroma.LineNumbers, chroma.Comment),
		Accent:      pickForeground(style, fg, chroma.NameFunction, chroma.Keyword),
		Error:       pickForeground(style, "#BF616A", chroma.Error),
	}
	t.base = make(map[scanner.Category]Attribute, len(categorySources))
	for cat, src := range categorySources {
		t.base[cat] = attributeFrom(style, src, fg, bg)
	}
	return nil
}

func (t *Theme) setOverride(name string, o prefs.Override) {
	if _, err := scanner.ParseCategory(name); err != nil {
		log.Warn(log.CatTheme, "override for unknown category", "category", name)
		return
	}
	if o.Foreground != "" && !validColor(o.Foreground) {
		log.Warn(log.CatTheme, "invalid foreground color", "category", name, "color", o.Foreground)
		o.Foreground = ""
	}
	if o.Background != "" && !validColor(o.Background) {
		log.Warn(log.CatTheme, "invalid background color", "category", name, "color", o.Background)
		o.Background = ""
	}
	t.overrides[name] = o
}

func (t *Theme) resolve() {
	out := make(map[scanner.Category]Attribute, len(t.base))
	for cat, a := range t.base {
		out[cat] = a
	}
	for name, o := range t.overrides {
		cat, err := scanner.ParseCategory(name)
		if err != nil {
			continue
		}
		a := out[cat]
		if o.Foreground != "" {
			a.Foreground = o.Foreground
		}
		if o.Background != "" {
			a.Background = o.Background
		}
		a.Style = applyFlag(a.Style, Bold, o.Bold)
		a.Style = applyFlag(a.Style, Italic, o.Italic)
		a.Style = applyFlag(a.Style, Underline, o.Underline)
		out[cat] = a
	}
	t.resolved = out
}

func applyFlag(style FontStyle, flag FontStyle, set *bool) FontStyle {
	switch {
	case set == nil:
		return style
	case *set:
		return style | flag
	default:
		return style &^ flag
	}
}

func resolveStyle(name string) (*chroma.Style, string, error) {
	requested := strings.TrimSpace(name)
	if requested == "" {
		requested = DefaultName
	}
	lookup := normalizeName(requested)

	names := styles.Names()
	for _, n := range names {
		if n != lookup {
			continue
		}
		if style := styles.Get(lookup); style != nil {
			return style, lookup, nil
		}
	}
	if near := rankNames(names, requested, 3); len(near) > 0 {
		return nil, "", fmt.Errorf("unknown theme %q. did you mean: %s", requested, strings.Join(near, ", "))
	}
	sort.Strings(names)
	return nil, "", fmt.Errorf("unknown theme %q. try one of: %s", requested, strings.Join(themeHints(names), ", "))
}

func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "":
		return DefaultName
	case "solarized":
		return "solarized-dark"
	case "one-dark":
		return "onedark"
	default:
		return n
	}
}

func themeHints(all []string) []string {
	wanted := []string{"nord", "dracula", "monokai", "github", "github-dark", "solarized-dark", "solarized-light", "gruvbox", "onedark"}
	set := make(map[string]bool, len(all))
	for _, n := range all {
		set[n] = true
	}
	out := make([]string, 0, len(wanted))
	for _, name := range wanted {
		if set[name] {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return all[:min(8, len(all))]
	}
	return out
}
