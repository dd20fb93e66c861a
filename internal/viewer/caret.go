package viewer

func (m Model) line() int {
	return m.doc.Doc.LineOf(m.caret)
}

func (m Model) column() int {
	return m.caret - m.doc.Doc.LineStart(m.line())
}

// setCaret clamps off to the document and scrolls it into view. The caret
// may rest on the end of the document.
func (m *Model) setCaret(off int) {
	m.caret = max(0, min(off, m.doc.Doc.Len()))
	m.goalCol = m.column()
	m.ensureVisible()
}

func (m *Model) moveCaret(delta int) {
	m.setCaret(m.caret + delta)
}

// moveLine keeps the column the caret had before vertical movement began.
func (m *Model) moveLine(delta int) {
	doc := m.doc.Doc
	line := max(0, min(m.line()+delta, doc.LineCount()-1))
	width := len([]rune(doc.Line(line)))
	goal := m.goalCol
	m.caret = doc.LineStart(line) + min(goal, width)
	m.ensureVisible()
	m.goalCol = goal
}

func (m *Model) ensureVisible() {
	h := m.bodyHeight()
	line := m.line()
	if line < m.top {
		m.top = line
	}
	if line >= m.top+h {
		m.top = line - h + 1
	}
	m.top = max(m.top, 0)

	w := m.codeWidth()
	col := m.column()
	if col < m.left {
		m.left = col
	}
	if col >= m.left+w {
		m.left = col - w + 1
	}
	m.left = max(m.left, 0)
}

const (
	headerHeight = 1
	footerHeight = 2
	gutterWidth  = 7
)

func (m Model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m Model) codeWidth() int {
	return max(m.width-gutterWidth, 1)
}
