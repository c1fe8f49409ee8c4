package reconcile

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns a ratio between 0.0 and 1.0 for two normalized names.
// It is the better of the edit-distance ratio on the raw strings and on the
// strings with their tokens sorted, so reordered words still score high.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	direct := editRatio(a, b)
	sorted := editRatio(sortTokens(a), sortTokens(b))
	if sorted > direct {
		return sorted
	}
	return direct
}

func editRatio(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
