package theme

import (
	"sort"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2/styles"
)

// Suggest ranks the known theme names against a partial or misspelled
// query, best first. An empty query returns nothing.
func Suggest(query string, limit int) []string {
	return rankNames(styles.Names(), query, limit)
}

type scoredName struct {
	name  string
	score int
}

func rankNames(names []string, query string, limit int) []string {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 || limit <= 0 {
		return nil
	}

	hits := make([]scoredName, 0, len(names))
	for _, n := range names {
		if score, ok := subsequenceScore(n, q); ok {
			hits = append(hits, scoredName{name: n, score: score})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].name < hits[j].name
	})

	out := make([]string, 0, min(limit, len(hits)))
	for _, h := range hits[:min(limit, len(hits))] {
		out = append(out, h.name)
	}
	return out
}

// subsequenceScore matches query as a subsequence of name. Matches at the
// start of a word and consecutive matches score higher; short names win
// ties.
func subsequenceScore(name string, query []rune) (int, bool) {
	qi, pos, last, score := 0, 0, -2, 0
	prev := rune(0)
	for _, r := range name {
		r = unicode.ToLower(r)
		if qi < len(query) && r == query[qi] {
			bonus := 10
			if pos == 0 || isWordBreak(prev) {
				bonus += 8
			}
			if last+1 == pos {
				bonus += 6
			}
			score += bonus
			last = pos
			qi++
		}
		prev = r
		pos++
	}
	if qi != len(query) {
		return 0, false
	}
	return score - (pos - len(query)), true
}

func isWordBreak(r rune) bool {
	return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
}
