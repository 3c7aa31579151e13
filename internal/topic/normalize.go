// Package topic cleans up user-entered study topics before they reach a prompt.
package topic

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// corrections maps known misspelled fragments to their canonical spelling.
// Matching is by substring over the lowercased topic, so a fragment may fire
// inside a longer word; that is an accepted limitation of the dictionary.
var corrections = []struct {
	wrong string
	right string
}{
	{"baisce", "basics"},
	{"basiscs", "basics"},
	{"blokchain", "blockchain"},
	{"blockchian", "blockchain"},
	{"pyhton", "python"},
	{"javscript", "javascript"},
	{"javasript", "javascript"},
	{"machne learning", "machine learning"},
	{"machine lerning", "machine learning"},
	{"algoritm", "algorithm"},
	{"datastructure", "data structure"},
	{"statistcs", "statistics"},
	{"calculas", "calculus"},
	{"devlopment", "development"},
}

// Result is the outcome of Normalize.
type Result struct {
	Topic     string
	Corrected bool
}

// Normalize rewrites known misspellings and title-cases the topic.
// Corrected is true when the output differs from the input other than by
// letter case; callers show a notice quoting Result.Topic in that case.
func Normalize(raw string) Result {
	trimmed := strings.Join(strings.Fields(raw), " ")
	lower := strings.ToLower(trimmed)

	fixed := lower
	for _, c := range corrections {
		fixed = strings.ReplaceAll(fixed, c.wrong, c.right)
	}

	// Casers carry state and must not be shared across goroutines.
	out := cases.Title(language.English).String(fixed)
	return Result{
		Topic:     out,
		Corrected: !strings.EqualFold(out, trimmed),
	}
}
