package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jjcolor/internal/text"
)

func TestMatchNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int // characters consumed, 0 when rejected
	}{
		{"0", 1},
		{"07;", 2},
		{"42L", 3},
		{"1_000_000", 9},
		{"3.14", 4},
		{"1.", 2},
		{".5", 2},
		{".5f", 3},
		{".", 0},
		{".x", 0},
		{"1e10", 4},
		{"1.e5", 4},
		{"1.5e-3d", 7},
		{"1e+5f", 5},
		{"1e", 0},
		{"1e+", 0},
		{"0x1F", 4},
		{"0x1F;", 4},
		{"0xCAFEL", 7},
		{"0x", 0},
		{"0x1.8p3", 7},
		{"0x.8p-1f", 8},
		{"0x1.8", 0},
		{"0x1p", 0},
		{"0b1010", 6},
		{"0b", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			doc := text.NewDocument(tt.in)
			src := text.NewRangeSource(doc, 0, doc.Len())

			ok := matchNumber(src)

			assert.Equal(t, tt.want > 0, ok)
			assert.Equal(t, tt.want, src.Offset())
		})
	}
}

func TestMatchNumber_RejectionRewindsMidDocument(t *testing.T) {
	doc := text.NewDocument("x = 0x1.8;")
	src := text.NewRangeSource(doc, 4, 6)

	assert.False(t, matchNumber(src))
	assert.Equal(t, 4, src.Offset())
	assert.Equal(t, '0', src.Read())
}
