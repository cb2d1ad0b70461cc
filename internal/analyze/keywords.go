package analyze

import (
	"sort"
	"strings"
	"unicode"
)

// topKeywords is how many frequency-ranked keywords an analysis carries.
const topKeywords = 10

// stopwords is a compact English stopword list covering the words that show
// up in forum titles. Lookups are against lower-cased tokens.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "been", "but", "by",
		"can", "could", "did", "do", "does", "doing", "for", "from", "had",
		"has", "have", "he", "her", "here", "his", "how", "i", "if", "in",
		"into", "is", "it", "its", "just", "me", "my", "no", "not", "now",
		"of", "on", "or", "our", "out", "over", "she", "so", "some", "than",
		"that", "the", "their", "them", "then", "there", "these", "they",
		"this", "to", "too", "up", "was", "we", "were", "what", "when",
		"where", "which", "while", "who", "why", "will", "with", "would",
		"you", "your",
	} {
		stopwords[w] = struct{}{}
	}
}

// ExtractKeywords tokenises text, drops stopwords and punctuation, and
// returns the ten most frequent tokens. Ties keep first-occurrence order so
// repeated calls on the same text always agree.
func ExtractKeywords(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range tokens {
		if _, skip := stopwords[tok]; skip {
			continue
		}
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	ranked := make([]string, 0, len(counts))
	for tok := range counts {
		ranked = append(ranked, tok)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})

	if len(ranked) > topKeywords {
		ranked = ranked[:topKeywords]
	}
	return ranked
}
