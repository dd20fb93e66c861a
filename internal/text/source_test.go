package text

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeSource_ReadsWithinRange(t *testing.T) {
	src := NewRangeSource(NewDocument("abcdef"), 1, 3)

	assert.Equal(t, 'b', src.Read())
	assert.Equal(t, 'c', src.Read())
	assert.Equal(t, 'd', src.Read())
	assert.Equal(t, EOF, src.Read())
	assert.Equal(t, 4, src.Offset())
}

func TestRangeSource_UnreadAfterEOF(t *testing.T) {
	src := NewRangeSource(NewDocument("ab"), 0, 2)
	src.Read()
	src.Read()
	src.Read()
	src.Read()

	src.Unread()
	src.Unread()
	assert.Equal(t, 2, src.Offset())
	src.Unread()
	assert.Equal(t, 'b', src.Read())
}

func TestRangeSource_UnreadStopsAtStart(t *testing.T) {
	src := NewRangeSource(NewDocument("abc"), 1, 2)
	src.Unread()
	assert.Equal(t, 1, src.Offset())
	assert.Equal(t, 'b', src.Read())
}

func TestRangeSource_Clamps(t *testing.T) {
	doc := NewDocument("abc")

	src := NewRangeSource(doc, 2, 50)
	assert.Equal(t, 2, src.Start())
	assert.Equal(t, 3, src.End())

	src = NewRangeSource(doc, 9, 5)
	assert.Equal(t, 3, src.Start())
	assert.Equal(t, EOF, src.Read())

	src = NewRangeSource(doc, 0, -4)
	assert.Equal(t, 0, src.End())
}

type failingDoc struct{ failAt int }

func (f failingDoc) Len() int { return 10 }

func (f failingDoc) Char(offset int) (rune, error) {
	if offset >= f.failAt {
		return 0, errors.New("storage gone")
	}
	return 'x', nil
}

func TestRangeSource_ReadErrorIsEOF(t *testing.T) {
	src := NewRangeSource(failingDoc{failAt: 2}, 0, 10)

	assert.Equal(t, 'x', src.Read())
	assert.Equal(t, 'x', src.Read())
	assert.Equal(t, EOF, src.Read())
	assert.Equal(t, EOF, src.Read())
	assert.Equal(t, 2, src.Offset())
}
