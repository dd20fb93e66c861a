package theme

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjcolor/internal/prefs"
	"jjcolor/internal/scanner"
)

func boolPtr(b bool) *bool { return &b }

func TestLoad_Known(t *testing.T) {
	th, err := Load("dracula", nil)
	require.NoError(t, err)

	p := th.Palette()
	assert.NotEmpty(t, p.Text)
	assert.NotEmpty(t, p.SelectionBG)
	for _, cat := range scanner.Categories() {
		assert.NotEmpty(t, th.Lookup(cat).Foreground, "category %s", cat)
	}
	assert.True(t, th.Lookup(scanner.CatJavaCCKeyword).Style.Has(Bold))
	assert.True(t, th.Lookup(scanner.CatTokenLabelPrivateDefinition).Style.Has(Italic))
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("this-theme-does-not-exist", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "try one of")
}

func TestLoad_NormalizesName(t *testing.T) {
	th, err := Load("  Solarized ", nil)
	require.NoError(t, err)
	assert.Equal(t, "solarized-dark", th.Name())

	th, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultName, th.Name())
}

func TestOverrides(t *testing.T) {
	th, err := Load("nord", map[string]prefs.Override{
		"javacc-option":  {Foreground: "#FF0000", Underline: boolPtr(true)},
		"javacc-keyword": {Bold: boolPtr(false)},
		"token-label":    {Background: "not-a-color"},
		"no-such-cat":    {Foreground: "#00FF00"},
	})
	require.NoError(t, err)

	opt := th.Lookup(scanner.CatJavaCCOption)
	assert.Equal(t, "#FF0000", opt.Foreground)
	assert.True(t, opt.Style.Has(Underline))

	assert.False(t, th.Lookup(scanner.CatJavaCCKeyword).Style.Has(Bold))
	assert.Empty(t, th.Lookup(scanner.CatTokenLabel).Background)

	attr, ok := th.LookupName("javacc-option")
	require.True(t, ok)
	assert.Equal(t, opt, attr)
	_, ok = th.LookupName("no-such-cat")
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	th, err := Load("nord", map[string]prefs.Override{"java-keyword": {Foreground: "#123456"}})
	require.NoError(t, err)

	require.NoError(t, th.Apply(prefs.Change{
		Theme:     "monokai",
		Overrides: map[string]prefs.Override{"lexical-state": {Foreground: "#ABCDEF"}},
	}))
	assert.Equal(t, "monokai", th.Name())
	assert.Equal(t, "#123456", th.Lookup(scanner.CatJavaKeyword).Foreground, "overrides survive a style switch")
	assert.Equal(t, "#ABCDEF", th.Lookup(scanner.CatLexicalState).Foreground)

	require.NoError(t, th.Apply(prefs.Change{Removed: []string{"java-keyword"}}))
	assert.NotEqual(t, "#123456", th.Lookup(scanner.CatJavaKeyword).Foreground)

	err = th.Apply(prefs.Change{Theme: "nope", Overrides: map[string]prefs.Override{"lexical-state": {Foreground: "#000000"}}})
	require.Error(t, err)
	assert.Equal(t, "monokai", th.Name())
	assert.Equal(t, "#ABCDEF", th.Lookup(scanner.CatLexicalState).Foreground, "rejected change leaves the theme alone")
}

func TestListen(t *testing.T) {
	th := Default()
	hub := prefs.NewHub()
	defer hub.Close()

	stop := th.Listen(context.Background(), hub)
	defer stop()

	hub.Publish(prefs.Change{Overrides: map[string]prefs.Override{"jjtree-node-name": {Foreground: "#010203"}}})

	require.Eventually(t, func() bool {
		return th.Lookup(scanner.CatJJTreeNodeName).Foreground == "#010203"
	}, time.Second, 5*time.Millisecond)
}

func TestStyle(t *testing.T) {
	th, err := Load("nord", map[string]prefs.Override{
		"bnf-production-name": {Foreground: "#112233", Italic: boolPtr(true)},
	})
	require.NoError(t, err)

	s := th.Style(scanner.CatBNFProductionName, false)
	assert.True(t, s.GetBold())
	assert.True(t, s.GetItalic())
	assert.Equal(t, lipgloss.Color("#112233"), s.GetForeground())

	sel := th.Style(scanner.CatBNFProductionName, true)
	assert.Equal(t, lipgloss.Color(th.Palette().SelectionBG), sel.GetBackground())
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "nord")
	assert.IsIncreasing(t, names)
}

func TestAdjustTone(t *testing.T) {
	assert.Equal(t, "#0A0A0A", adjustTone("#000000", 10))
	assert.Equal(t, "#FFFFFF", adjustTone("#F0F0F0", 40))
	assert.Equal(t, "bogus", adjustTone("bogus", 10))
}

func TestValidColor(t *testing.T) {
	for _, c := range []string{"#fff", "#A1B2C3", "0", "255"} {
		assert.True(t, validColor(c), c)
	}
	for _, c := range []string{"", "#12", "#GGGGGG", "256", "red"} {
		assert.False(t, validColor(c), c)
	}
}
