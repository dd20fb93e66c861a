package highlighter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjcolor/internal/lang"
)

func TestDocumentCache_LoadDetectsAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.jj")
	require.NoError(t, os.WriteFile(path, []byte("options {\r\n}\r\n"), 0o644))

	c := NewDocumentCache(DefaultDocumentExpiration, DefaultDocumentCleanup)
	doc, err := c.Load(path)
	require.NoError(t, err)

	assert.Equal(t, lang.JavaCC, doc.Lang)
	assert.Equal(t, "options {\n}\n", doc.Text)
	assert.Equal(t, 3, doc.Doc.LineCount())
	assert.True(t, filepath.IsAbs(doc.Path))
}

func TestDocumentCache_SniffsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grammar.txt")
	require.NoError(t, os.WriteFile(path, []byte("// header\nPARSER_BEGIN(X)\n"), 0o644))

	doc, err := NewDocumentCache(time.Minute, time.Minute).Load(path)
	require.NoError(t, err)
	assert.Equal(t, lang.JavaCC, doc.Lang)
}

func TestDocumentCache_ReusesUntilModified(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jjt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))
	c := NewDocumentCache(time.Minute, time.Minute)

	first, err := c.Load(path)
	require.NoError(t, err)
	again, err := c.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, again)

	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))
	later := first.ModTime.Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "two", changed.Text)

	c.Invalidate(path)
	reloaded, err := c.Load(path)
	require.NoError(t, err)
	assert.NotSame(t, changed, reloaded)
}

func TestDocumentCache_MissingFile(t *testing.T) {
	_, err := NewDocumentCache(time.Minute, time.Minute).Load(filepath.Join(t.TempDir(), "nope.jj"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDocument_WithLangLeavesCacheAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Calc.java")
	require.NoError(t, os.WriteFile(path, []byte("options {}"), 0o644))

	c := NewDocumentCache(time.Minute, time.Minute)
	doc, err := c.Load(path)
	require.NoError(t, err)
	require.Equal(t, lang.Java, doc.Lang)

	as := doc.WithLang(lang.JavaCC)
	assert.Equal(t, lang.JavaCC, as.Lang)
	assert.Same(t, doc.Doc, as.Doc)

	again, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, lang.Java, again.Lang)
}
