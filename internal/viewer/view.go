package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jjcolor/internal/scanner"
)

type mark uint8

const (
	markNone mark = iota
	markMatch
	markCaret
)

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderBody(), m.renderStatus(), m.renderFooter())
}

func (m Model) renderHeader() string {
	p := m.opts.Theme.Palette()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Background(lipgloss.Color(p.InputBG)).Bold(true)
	title := fmt.Sprintf(" %s  [%s]  theme %s", m.doc.Path, m.doc.Lang, m.opts.Theme.Name())
	return style.Render(padRightANSI(truncateText(title, m.width), m.width))
}

func (m Model) renderBody() string {
	p := m.opts.Theme.Palette()
	numStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted))
	marks := m.marks()
	doc := m.doc.Doc

	h := m.bodyHeight()
	lines := make([]string, 0, h)
	for i := m.top; i < m.top+h && i < doc.LineCount(); i++ {
		prefix := numStyle.Render(fmt.Sprintf("%6d ", i+1))
		lines = append(lines, prefix+m.renderLine(i, marks))
	}
	for len(lines) < h {
		lines = append(lines, numStyle.Render("     ~"))
	}
	return strings.Join(lines, "\n")
}

// marks flags the caret cell and, when the caret is on a delimiter with a
// balanced peer, both delimiters.
func (m Model) marks() map[int]mark {
	out := map[int]mark{}
	if pair, ok := m.match(); ok {
		out[pair.Open] = markMatch
		out[pair.Close] = markMatch
	}
	out[m.caret] = markCaret
	return out
}

func (m Model) renderLine(i int, marks map[int]mark) string {
	doc := m.doc.Doc
	start := doc.LineStart(i)
	runes := []rune(doc.Line(i))
	tab := m.cfg.Viewer.TabWidth
	width := m.codeWidth()

	var b strings.Builder
	used := 0
	full := false
	for _, span := range m.session.Line(i) {
		for pos := max(span.Start, m.left); pos < span.End && !full; {
			mk := marks[start+pos]
			var seg strings.Builder
			j := pos
			for j < span.End && marks[start+j] == mk {
				w := cellWidth(runes[j], tab)
				if used+w > width {
					full = true
					break
				}
				seg.WriteString(cellText(runes[j], tab))
				used += w
				j++
			}
			if j > pos {
				b.WriteString(m.cellStyle(span.Cat, mk).Render(seg.String()))
			}
			pos = j
		}
		if full {
			break
		}
	}

	end := start + len(runes)
	if marks[end] == markCaret && !full && used < width && len(runes) >= m.left {
		b.WriteString(m.cellStyle(scanner.CatDefault, markCaret).Render(" "))
	}
	return b.String()
}

func (m Model) cellStyle(cat scanner.Category, mk mark) lipgloss.Style {
	style := m.opts.Theme.Style(cat, false)
	switch mk {
	case markCaret:
		return style.Reverse(true)
	case markMatch:
		return style.Background(lipgloss.Color(m.opts.Theme.Palette().MatchBG)).Bold(true)
	}
	return style
}

func (m Model) renderStatus() string {
	p := m.opts.Theme.Palette()
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)).Background(lipgloss.Color(p.SelectionBG))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Background(lipgloss.Color(p.SelectionBG))

	status := m.statusText()
	line := statusStyle.Render(padRightANSI(truncateText(status, m.width), m.width))
	if m.errMsg != "" {
		msg := truncateText(m.errMsg, max(m.width-lipgloss.Width(status)-2, 0))
		if msg != "" {
			line = statusStyle.Render(truncateText(status, m.width)+"  ") + errStyle.Render(msg)
			line = padRightANSI(line, m.width)
		}
	}
	return line
}

// statusText describes the caret: position, token category, the scanner
// context stack and the matching delimiter if any.
func (m Model) statusText() string {
	parts := []string{fmt.Sprintf("Ln %d, Col %d  @%d", m.line()+1, m.column()+1, m.caret)}
	if tok, stack, ok := m.session.TokenAt(m.caret); ok {
		parts = append(parts, tok.Cat.String())
		if stack.Depth() > 0 {
			parts = append(parts, stack.String())
		}
	}
	if pair, ok := m.match(); ok {
		parts = append(parts, fmt.Sprintf("match %d-%d", pair.Open, pair.Close))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return " " + strings.Join(parts, "  |  ")
}

func (m Model) renderFooter() string {
	if m.prompting {
		p := m.opts.Theme.Palette()
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)).Background(lipgloss.Color(p.InputBG))
		return style.Render(padRightANSI(m.prompt.View(), m.width))
	}
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.opts.Theme.Palette().Muted))
	help := "arrows/hjkl move  pgup/pgdn page  g/G start/end  % jump to match  : go to  e edit  q quit"
	return footerStyle.Render(truncateText(help, m.width))
}
