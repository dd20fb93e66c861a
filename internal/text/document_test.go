package text

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Char(t *testing.T) {
	d := NewDocument("añb")

	r, err := d.Char(1)
	require.NoError(t, err)
	assert.Equal(t, 'ñ', r)
	assert.Equal(t, 3, d.Len())

	_, err = d.Char(3)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = d.Char(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDocument_Lines(t *testing.T) {
	d := NewDocument("one\ntwo\n\nfour")

	assert.Equal(t, 4, d.LineCount())
	assert.Equal(t, []string{"one", "two", "", "four"}, []string{d.Line(0), d.Line(1), d.Line(2), d.Line(3)})
	assert.Equal(t, 4, d.LineStart(1))
	assert.Equal(t, 8, d.LineEnd(1))
	assert.Equal(t, d.Len(), d.LineEnd(3))

	assert.Equal(t, 0, d.LineOf(3))
	assert.Equal(t, 1, d.LineOf(4))
	assert.Equal(t, 2, d.LineOf(8))
	assert.Equal(t, 3, d.LineOf(d.Len()))
}

func TestDocument_TrailingNewlineOpensEmptyLine(t *testing.T) {
	d := NewDocument("x\n")
	assert.Equal(t, 2, d.LineCount())
	assert.Equal(t, "", d.Line(1))
}

func TestDocument_SliceClamps(t *testing.T) {
	d := NewDocument("hello")
	assert.Equal(t, "ell", d.Slice(1, 4))
	assert.Equal(t, "hello", d.Slice(-3, 99))
	assert.Equal(t, "", d.Slice(4, 2))
}
