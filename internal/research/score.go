package research

import (
	"strings"
	"unicode"
)

// Relevance computes the Jaccard index between the token sets of a candidate
// title and the topic. Returns a value in [0,1]; 0.0 when either input is
// empty or the sets share no universe. A coarse, deterministic relevance
// proxy — not semantic similarity.
func Relevance(title, topic string) float64 {
	a := tokenSet(title)
	b := tokenSet(topic)
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// tokenSet splits s into a set of lowercase words on non-alphanumeric
// boundaries.
func tokenSet(s string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
