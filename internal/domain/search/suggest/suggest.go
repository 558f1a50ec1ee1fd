// Package suggest proposes titles and tags for a partially typed query.
package suggest

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/docfind/internal/domain/document"
	"github.com/kailas-cloud/docfind/internal/domain/search/normalize"
)

// Suggestion limits.
const (
	// MinQueryRunes is the shortest query that yields suggestions.
	MinQueryRunes = 2
	DefaultLimit  = 10
	MaxLimit      = 50
)

// Kind is the origin of a suggestion.
type Kind string

// Suggestion kinds.
const (
	KindTitle Kind = "title"
	KindTag   Kind = "tag"
)

// Suggestion is a completion candidate in its original spelling.
type Suggestion struct {
	Text string
	Kind Kind
}

// Suggest returns titles, then tags, whose folded form contains the folded
// query. Duplicates (by original text) are dropped and the result is capped
// at limit; limit < 1 means DefaultLimit.
func Suggest(docs []document.Document, q string, limit int) []Suggestion {
	if utf8.RuneCountInString(strings.TrimSpace(q)) < MinQueryRunes {
		return nil
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	needle := normalize.Fold(q)
	var (
		out  []Suggestion
		seen = make(map[string]struct{})
	)
	add := func(text string, kind Kind) bool {
		if len(out) >= limit {
			return false
		}
		if _, ok := seen[text]; ok {
			return true
		}
		if !strings.Contains(normalize.Fold(text), needle) {
			return true
		}
		seen[text] = struct{}{}
		out = append(out, Suggestion{Text: text, Kind: kind})
		return true
	}

	for i := range docs {
		if !add(docs[i].Title(), KindTitle) {
			return out
		}
	}
	for i := range docs {
		for _, tag := range docs[i].Tags() {
			if !add(tag, KindTag) {
				return out
			}
		}
	}
	return out
}
