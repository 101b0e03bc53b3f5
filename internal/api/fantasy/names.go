package fantasy

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ToRankingName converts an ESPN display name to the form used on ranking
// pages: "Patrick Mahomes" becomes "P. Mahomes" and "Chiefs D/ST" becomes
// "Chiefs".
func ToRankingName(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "D/ST") {
		return strings.TrimSpace(strings.ReplaceAll(name, "D/ST", ""))
	}

	first, rest, ok := strings.Cut(name, " ")
	if !ok {
		return name
	}
	initial, _ := utf8.DecodeRuneInString(first)
	return string(initial) + ". " + strings.TrimSpace(rest)
}

// normalizeName folds accents and case and collapses whitespace.
func normalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// similarity is the Levenshtein ratio of two normalized names, in [0, 1].
func similarity(a, b string) float64 {
	a, b = normalizeName(a), normalizeName(b)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(longest)
}
