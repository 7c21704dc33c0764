package util

import (
	"regexp"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

var (
	reQuotes   = regexp.MustCompile(`["'` + "`" + `«»]`)
	reSpaces   = regexp.MustCompile(`[\s\x{00A0}\x{200B}\x{FEFF}]+`)
	reAlphaNum = regexp.MustCompile(`[^A-Z0-9]`)
)

// CleanHeader canonicalizes one column label: quote characters removed,
// invisible and repeated whitespace collapsed, ends trimmed. Applied once per
// table so header drift between exports does not fail validation.
func CleanHeader(input string) string {
	s := reQuotes.ReplaceAllString(input, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanHeaders returns a cleaned copy of a header row.
func CleanHeaders(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = CleanHeader(c)
	}
	return out
}

// NormalizeDoc reduces a free-text document number to its comparable key:
// uppercased with every character outside A-Z0-9 removed. Missing input
// normalizes to "", which is never treated as a cross-ledger match.
func NormalizeDoc(input string) string {
	return reAlphaNum.ReplaceAllString(strings.ToUpper(input), "")
}

// ratioOptions uses substitution cost 1 so a single miskeyed character in a
// short document number still clears the default similarity threshold.
var ratioOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// SimilarityRatio scores two strings on a 0-100 scale from their edit
// distance over combined length. Either side empty scores 0.
func SimilarityRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	ar := []rune(a)
	br := []rune(b)
	dist := levenshtein.DistanceForStrings(ar, br, ratioOptions)
	total := len(ar) + len(br)
	return 100 * float64(total-dist) / float64(total)
}
