package hltb

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a title for comparison: lowercase, diacritics stripped, punctuation removed,
// whitespace collapsed. "Pokémon Legends: Arceus" becomes "pokemon legends arceus".
func Normalize(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, folded)

	return strings.Join(strings.Fields(cleaned), " ")
}

// match is a candidate annotated with its similarity to the query.
type match struct {
	Candidate
	exact    bool
	distance int
}

// comparator orders two matches: negative puts a first, positive puts b first, zero defers to
// the next comparator in the chain.
type comparator func(a, b match) int

// matchOrder is the tie-break chain applied by BestMatch, most significant first.
var matchOrder = []comparator{preferExact, preferCloser, preferPopular}

func preferExact(a, b match) int {
	switch {
	case a.exact == b.exact:
		return 0
	case a.exact:
		return -1
	default:
		return 1
	}
}

func preferCloser(a, b match) int {
	return a.distance - b.distance
}

func preferPopular(a, b match) int {
	return b.CompAllCount - a.CompAllCount
}

func compareMatches(a, b match) int {
	for _, cmp := range matchOrder {
		if result := cmp(a, b); result != 0 {
			return result
		}
	}
	return 0
}

// BestMatch picks the candidate closest to query. An exact normalized match always wins;
// otherwise the lowest edit distance wins and ties go to the candidate with more recorded
// completions. Returns nil for an empty candidate list.
func BestMatch(query string, candidates []Candidate) *Candidate {
	if len(candidates) == 0 {
		return nil
	}

	target := Normalize(query)
	matches := make([]match, len(candidates))
	for i, candidate := range candidates {
		name := Normalize(candidate.GameName)
		matches[i] = match{
			Candidate: candidate,
			exact:     name == target,
			distance:  levenshtein.ComputeDistance(target, name),
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return compareMatches(matches[i], matches[j]) < 0
	})

	best := matches[0].Candidate
	return &best
}
