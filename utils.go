package simtoi

import (
	"strings"
)

func Filter[T any](slice []T, predicate func(T) bool) []T {
	filtered := make([]T, 0, len(slice))
	for _, elem := range slice {
		if predicate(elem) {
			filtered = append(filtered, elem)
		}
	}
	return filtered
}

// Splits a comma separated option value, dropping blank entries.
func SplitList(value string) []string {
	items := strings.Split(value, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}

	return Filter(items, func(item string) bool {
		return len(item) > 0
	})
}

var gnuplotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Wraps s in a gnuplot double-quoted string.
func gnuplotQuote(s string) string {
	return `"` + gnuplotEscaper.Replace(s) + `"`
}
