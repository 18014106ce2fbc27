package enrich

import (
	"slices"
	"strings"
)

// SortAlphabetically returns a copy of results ordered by character name,
// comparing bytes case-sensitively. Equal names keep their input order.
func SortAlphabetically(results []Result) []Result {
	out := slices.Clone(results)
	slices.SortStableFunc(out, func(a, b Result) int {
		return strings.Compare(a.CharacterName, b.CharacterName)
	})
	return out
}
