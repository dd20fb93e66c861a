// Package viewer is the read-only terminal viewer behind "jjcolor view".
package viewer

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jjcolor/internal/config"
	"jjcolor/internal/highlighter"
	"jjcolor/internal/lang"
	"jjcolor/internal/log"
	"jjcolor/internal/matcher"
	"jjcolor/internal/prefs"
	"jjcolor/internal/theme"
	"jjcolor/internal/watcher"
)

type Options struct {
	Path       string
	Lang       lang.ID // overrides detection when set
	ConfigPath string
	Config     config.Config
	Theme      *theme.Theme
	Hub        *prefs.Hub
	Docs       *highlighter.DocumentCache
}

// filesChangedMsg carries paths reported by the watcher.
type filesChangedMsg struct {
	paths []string
}

// refreshMsg redraws the view once preference handlers have had time to run.
type refreshMsg struct{}

const refreshDelay = 50 * time.Millisecond

type Model struct {
	opts Options
	cfg  config.Config

	doc     *highlighter.Document
	session *highlighter.Session
	matcher *matcher.Matcher

	width  int
	height int

	caret   int
	goalCol int
	top     int
	left    int

	prompt    textinput.Model
	prompting bool

	watcher *watcher.Watcher
	changes <-chan []string

	status string
	errMsg string
}

// New loads the document and, when enabled, starts watching it and the
// config file.
func New(opts Options) (Model, error) {
	if opts.Docs == nil {
		opts.Docs = highlighter.NewDocumentCache(highlighter.DefaultDocumentExpiration, highlighter.DefaultDocumentCleanup)
	}
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}

	doc, err := opts.Docs.Load(opts.Path)
	if err != nil {
		return Model{}, err
	}
	if opts.Lang != "" {
		doc = doc.WithLang(opts.Lang)
	}

	input := textinput.New()
	input.Prompt = "go to> "
	input.Placeholder = "line, line:col or @offset"
	input.CharLimit = 32
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Theme.Palette().Accent))

	m := Model{
		opts:    opts,
		cfg:     opts.Config,
		doc:     doc,
		session: highlighter.NewSession(doc.Lang, doc.Text),
		matcher: matcher.New(),
		prompt:  input,
	}

	if opts.Config.Viewer.Watch {
		paths := []string{doc.Path}
		if opts.ConfigPath != "" {
			if abs, err := filepath.Abs(opts.ConfigPath); err == nil {
				opts.ConfigPath = abs
				m.opts.ConfigPath = abs
			}
			paths = append(paths, opts.ConfigPath)
		}
		wcfg := watcher.DefaultConfig(paths...)
		if opts.Config.Viewer.Debounce > 0 {
			wcfg.DebounceDur = opts.Config.Viewer.Debounce
		}
		if w, err := watcher.New(wcfg); err != nil {
			log.Warn(log.CatUI, "watching disabled", "error", err)
		} else if ch, err := w.Start(); err != nil {
			log.Warn(log.CatUI, "watching disabled", "error", err)
			_ = w.Stop()
		} else {
			m.watcher, m.changes = w, ch
		}
	}

	return m, nil
}

// Close stops the watcher.
func (m Model) Close() {
	if m.watcher != nil {
		if err := m.watcher.Stop(); err != nil {
			log.Warn(log.CatUI, "stopping watcher", "error", err)
		}
	}
}

func (m Model) Init() tea.Cmd {
	return m.listen()
}

func (m Model) listen() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		paths, ok := <-ch
		if !ok {
			return nil
		}
		return filesChangedMsg{paths: paths}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.Width = max(8, m.width-16)
		m.ensureVisible()
		return m, nil

	case filesChangedMsg:
		m.handleChanges(msg.paths)
		refresh := tea.Tick(refreshDelay, func(time.Time) tea.Msg { return refreshMsg{} })
		return m, tea.Batch(m.listen(), refresh)

	case refreshMsg:
		return m, nil

	case editorDoneMsg:
		if msg.err != nil {
			m.errMsg = "editor: " + msg.err.Error()
			return m, nil
		}
		m.reloadDocument()
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "left", "h":
		m.moveCaret(-1)
	case "right", "l":
		m.moveCaret(1)
	case "up", "k":
		m.moveLine(-1)
	case "down", "j":
		m.moveLine(1)
	case "pgup", "ctrl+u":
		m.moveLine(-m.bodyHeight())
	case "pgdown", "ctrl+d":
		m.moveLine(m.bodyHeight())
	case "home", "0":
		m.setCaret(m.doc.Doc.LineStart(m.line()))
	case "end", "$":
		line := m.line()
		m.setCaret(m.doc.Doc.LineStart(line) + len([]rune(m.doc.Doc.Line(line))))
	case "g":
		m.setCaret(0)
	case "G":
		m.setCaret(m.doc.Doc.Len())
	case "%":
		if pair, ok := m.match(); ok {
			m.setCaret(pair.Peer())
		}
	case "e":
		return m.openEditor()
	case ":":
		m.prompting = true
		m.prompt.SetValue("")
		cmd := m.prompt.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case "enter":
		m.prompting = false
		m.prompt.Blur()
		if err := m.goTo(m.prompt.Value()); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// goTo accepts "line", "line:col" (both 1-based) or "@offset".
func (m *Model) goTo(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil
	}
	if rest, ok := strings.CutPrefix(target, "@"); ok {
		off, err := strconv.Atoi(rest)
		if err != nil || off < 0 {
			return fmt.Errorf("invalid offset %q", rest)
		}
		m.setCaret(off)
		return nil
	}

	lineStr, colStr, hasCol := strings.Cut(target, ":")
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return fmt.Errorf("invalid line %q", lineStr)
	}
	col := 1
	if hasCol {
		if col, err = strconv.Atoi(colStr); err != nil || col < 1 {
			return fmt.Errorf("invalid column %q", colStr)
		}
	}
	doc := m.doc.Doc
	idx := min(line-1, doc.LineCount()-1)
	width := len([]rune(doc.Line(idx)))
	m.setCaret(doc.LineStart(idx) + min(col-1, width))
	return nil
}

func (m *Model) handleChanges(paths []string) {
	for _, p := range paths {
		switch {
		case p == m.doc.Path:
			m.reloadDocument()
		case m.opts.ConfigPath != "" && p == m.opts.ConfigPath:
			m.reloadConfig()
		}
	}
}

func (m *Model) reloadDocument() {
	m.opts.Docs.Invalidate(m.doc.Path)
	doc, err := m.opts.Docs.Load(m.doc.Path)
	if err != nil {
		m.errMsg = "reload failed: " + err.Error()
		log.Warn(log.CatUI, "document reload failed", "path", m.doc.Path, "error", err)
		return
	}
	if m.opts.Lang != "" {
		doc = doc.WithLang(m.opts.Lang)
	}
	m.doc = doc
	m.session.Update(doc.Text)
	m.setCaret(m.caret)
	m.status = "reloaded"
	m.errMsg = ""
	log.Debug(log.CatUI, "document reloaded", "path", doc.Path)
}

func (m *Model) reloadConfig() {
	next, err := config.Reload(m.opts.ConfigPath)
	if err != nil {
		m.errMsg = "config: " + err.Error()
		log.Warn(log.CatConfig, "config reload failed", "path", m.opts.ConfigPath, "error", err)
		return
	}
	change := config.Diff(m.cfg, next)
	m.cfg = next
	if m.opts.Hub != nil {
		m.opts.Hub.Publish(change)
	}
	m.status = "config reloaded"
	m.errMsg = ""
}

func (m Model) match() (matcher.Pair, bool) {
	return m.matcher.Match(m.doc.Doc, m.caret+1)
}

// Caret reports the caret offset.
func (m Model) Caret() int {
	return m.caret
}
