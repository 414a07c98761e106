package alerr

import (
	"fmt"
	"strings"
)

// maxSuggestDistance bounds how far a suggestion may be from the input.
const maxSuggestDistance = 3

// editDistance returns the Levenshtein distance between a and b, by rune.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag = row[j]
			row[j] = next
		}
	}
	return row[len(rb)]
}

// foldKey normalizes a name for comparison: lower case, single spaces.
func foldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// suggestLimit scales the allowed distance with input length, so short
// names only match single-character slips.
func suggestLimit(input string) int {
	return min(maxSuggestDistance, max(1, len([]rune(input))/3))
}

// Closest returns the option nearest to input, ignoring case and repeated
// whitespace. An option identical to input is never suggested. Ties go to
// the earliest option.
func Closest(input string, options []string) (string, bool) {
	key := foldKey(input)
	limit := suggestLimit(key)

	best, bestDist := "", limit+1
	for _, opt := range options {
		if opt == input {
			continue
		}
		if d := editDistance(key, foldKey(opt)); d < bestDist {
			best, bestDist = opt, d
		}
	}
	return best, bestDist <= limit
}

// SuggestSimilar returns a `did you mean "X"?` hint for the closest option,
// or "" when nothing is close enough.
func SuggestSimilar(input string, options []string) string {
	if match, ok := Closest(input, options); ok {
		return fmt.Sprintf("did you mean %q?", match)
	}
	return ""
}
