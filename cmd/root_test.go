package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const optionsGrammar = "options { STATIC = true; }"

// execute runs the root command against a config path that does not exist,
// so every run starts from the defaults.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTokensCommand(t *testing.T) {
	path := writeFile(t, "opts.jj", optionsGrammar)

	out, err := execute(t, "tokens", path)
	require.NoError(t, err)

	assert.Contains(t, out, "javacc-keyword")
	assert.Contains(t, out, `"options"`)
	assert.Contains(t, out, "javacc-option")
	assert.NotContains(t, out, "whitespace")
	assert.Contains(t, out, "stack: AT_FIRST_LEVEL\n")
}

func TestTokensCommand_RejectsJava(t *testing.T) {
	path := writeFile(t, "A.java", "class A {}")

	_, err := execute(t, "tokens", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a grammar")
}

func TestLangFlag(t *testing.T) {
	t.Cleanup(func() { langFlag = "" })
	path := writeFile(t, "opts.jj", optionsGrammar)

	_, err := execute(t, "--lang", "java", "tokens", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a grammar")

	_, err = execute(t, "--lang", "cobol", "tokens", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --lang")

	out, err := execute(t, "--lang", "JJTree", "tokens", path)
	require.NoError(t, err)
	assert.Contains(t, out, "javacc-option")
}

func TestMatchCommand(t *testing.T) {
	path := writeFile(t, "opts.jj", optionsGrammar)

	out, err := execute(t, "match", path, "9")
	require.NoError(t, err)
	assert.Equal(t, "open 8 close 25 anchor open region 8+18\n", out)

	out, err = execute(t, "match", path, "3")
	require.NoError(t, err)
	assert.Equal(t, "no match\n", out)

	_, err = execute(t, "match", path, "x")
	require.Error(t, err)
}

func TestHighlightCommand_PlainOutputKeepsText(t *testing.T) {
	grammar := writeFile(t, "calc.jj", "options {\n  STATIC = false;\n}\n")
	java := writeFile(t, "A.java", "class A {}\n")

	out, err := execute(t, "highlight", "--color", "never", grammar, java)
	require.NoError(t, err)

	want := "==> " + grammar + " <==\noptions {\n  STATIC = false;\n}\n" +
		"==> " + java + " <==\nclass A {}\n"
	assert.Equal(t, want, out)
}

func TestHighlightCommand_Errors(t *testing.T) {
	t.Cleanup(func() { highlightColor = "never" })

	_, err := execute(t, "highlight", "--color", "never", filepath.Join(t.TempDir(), "missing.jj"))
	require.Error(t, err)

	_, err = execute(t, "highlight", "--color", "sometimes", writeFile(t, "a.jj", "x"))
	require.Error(t, err)
}

func TestThemesCommand(t *testing.T) {
	out, err := execute(t, "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "* nord\n")

	out, err = execute(t, "themes", "drac")
	require.NoError(t, err)
	assert.Contains(t, out, "  dracula\n")

	_, err = execute(t, "themes", "qqqqqq")
	require.Error(t, err)

	out, err = execute(t, "themes", "--categories")
	require.NoError(t, err)
	assert.Contains(t, out, "bnf-production-name")
	assert.NotContains(t, out, "eof ")
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)
	require.FileExists(t, path)

	_, err = execute(t, "config", "init", path)
	require.Error(t, err)

	_, err = execute(t, "config", "init", "--force", path)
	require.NoError(t, err)
	configForce = false
}
