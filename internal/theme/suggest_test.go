package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankNames(t *testing.T) {
	names := []string{"solarized-dark", "solarized-light", "dracula", "github-dark", "nord"}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"prefix", "drac", 3, []string{"dracula"}},
		{"shorter name ranks first", "sd", 3, []string{"solarized-dark", "solarized-light"}},
		{"consecutive word match ranks first", "dark", 2, []string{"github-dark", "solarized-dark"}},
		{"case and space insensitive", "  NORD ", 3, []string{"nord"}},
		{"no match", "xyz", 3, []string{}},
		{"empty query", "", 3, nil},
		{"limit", "a", 1, []string{"dracula"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rankNames(names, tt.query, tt.limit))
		})
	}
}

func TestLoad_SuggestsCloseNames(t *testing.T) {
	_, err := Load("dracul", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean: dracula")
}

func TestSuggest(t *testing.T) {
	assert.Contains(t, Suggest("monok", 5), "monokai")
	assert.Empty(t, Suggest("", 5))
}
