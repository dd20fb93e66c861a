package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryNamesRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	assert.NotContains(t, Categories(), CatEOF)
}

func TestParseCategoryUnknown(t *testing.T) {
	_, err := ParseCategory("no-such-category")
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "AT_BNF_LOOKAHEAD", AtBNFLookahead.String())
	assert.Equal(t, "KIND(99)", Kind(99).String())
	assert.Equal(t, "AT_EXPANSION_CHOICES[0x10]", Context{Kind: AtExpansionChoices, Flags: FlagGroup}.String())
}
