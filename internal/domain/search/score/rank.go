package score

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/docfind/internal/domain/search/result"
	"github.com/kailas-cloud/docfind/internal/domain/search/sortorder"
)

// Hit is a matched document awaiting ranking.
type Hit struct {
	Match       result.Match
	FoldedTitle string
}

// Rank orders hits and returns their matches.
//
// Relevance: score desc, CreatedAt desc, ID asc.
// Date: CreatedAt desc, then relevance.
// Title: folded title asc, then relevance.
// The order is total, so it never depends on input order for distinct IDs.
func Rank(hits []Hit, order sortorder.Order) []result.Match {
	byRelevance := func(a, b *Hit) int {
		da, db := a.Match.Document(), b.Match.Document()
		return cmp.Or(
			cmp.Compare(b.Match.Score(), a.Match.Score()),
			db.CreatedAt().Compare(da.CreatedAt()),
			cmp.Compare(da.ID(), db.ID()),
		)
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch order {
		case sortorder.Date:
			da, db := a.Match.Document(), b.Match.Document()
			if c := db.CreatedAt().Compare(da.CreatedAt()); c != 0 {
				return c
			}
		case sortorder.Title:
			if c := cmp.Compare(a.FoldedTitle, b.FoldedTitle); c != 0 {
				return c
			}
		}
		return byRelevance(&a, &b)
	})

	out := make([]result.Match, len(hits))
	for i := range hits {
		out[i] = hits[i].Match
	}
	return out
}
