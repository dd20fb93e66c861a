package viewer

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// editorDoneMsg reports that the external editor exited.
type editorDoneMsg struct {
	err error
}

// editorCommand builds the command that opens file at a 1-based line and
// column. template may use {file}, {line} and {col}; when it is empty the
// $EDITOR (or vi) is started with "+line file".
func editorCommand(template string, file string, line int, col int) (*exec.Cmd, error) {
	template = strings.TrimSpace(template)
	if template == "" {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}
		template = editor + " +{line} {file}"
	}

	parts, err := splitCommandLine(template)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}

	repl := strings.NewReplacer(
		"{file}", file,
		"{line}", strconv.Itoa(line),
		"{col}", strconv.Itoa(col),
	)
	for i := range parts {
		parts[i] = repl.Replace(parts[i])
	}
	if _, err := exec.LookPath(parts[0]); err != nil {
		return nil, fmt.Errorf("editor command not found: %s", parts[0])
	}
	return exec.Command(parts[0], parts[1:]...), nil
}

// splitCommandLine splits on unquoted whitespace. Single and double quotes
// group words and are removed.
func splitCommandLine(input string) ([]string, error) {
	var parts []string
	var current strings.Builder
	active := false
	var quote rune

	for _, r := range input {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			active = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if active {
				parts = append(parts, current.String())
				current.Reset()
				active = false
			}
		default:
			current.WriteRune(r)
			active = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("editor command has unclosed quote")
	}
	if active {
		parts = append(parts, current.String())
	}
	return parts, nil
}

// openEditor suspends the program while the editor runs on the document.
func (m Model) openEditor() (Model, tea.Cmd) {
	c, err := editorCommand(m.cfg.Viewer.Editor, m.doc.Path, m.line()+1, m.column()+1)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	return m, tea.ExecProcess(c, func(err error) tea.Msg {
		return editorDoneMsg{err: err}
	})
}
