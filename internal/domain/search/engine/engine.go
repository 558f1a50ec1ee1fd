// Package engine runs a search over an in-memory corpus snapshot:
// parse, filter, score, rank and paginate within a single call.
package engine

import (
	"context"

	"github.com/kailas-cloud/docfind/internal/domain/document"
	"github.com/kailas-cloud/docfind/internal/domain/search/fuzzy"
	"github.com/kailas-cloud/docfind/internal/domain/search/page"
	"github.com/kailas-cloud/docfind/internal/domain/search/query"
	"github.com/kailas-cloud/docfind/internal/domain/search/request"
	"github.com/kailas-cloud/docfind/internal/domain/search/result"
	"github.com/kailas-cloud/docfind/internal/domain/search/score"
)

// Config holds the values applied when a request leaves scoring or paging unset.
type Config struct {
	Weights  score.Weights
	Fuzzy    fuzzy.Policy
	PageSize int
}

// DefaultConfig returns weights 3/2/1 with phrase boost 1.5, the default
// fuzzy policy and five results per page.
func DefaultConfig() Config {
	return Config{
		Weights:  score.DefaultWeights(),
		Fuzzy:    fuzzy.DefaultPolicy(),
		PageSize: page.DefaultSize,
	}
}

// Search evaluates req against docs and returns the requested page.
//
// docs is treated as a read-only snapshot. The only errors are a
// *domain.QuerySyntaxError from parsing and ctx.Err() when the caller gives
// up; ctx is checked between documents.
func Search(ctx context.Context, docs []document.Document, req request.Request, cfg Config) (result.Page, error) {
	root, err := query.Parse(req.Query())
	if err != nil {
		return result.Page{}, err
	}

	scorer := score.NewScorer(req.Weights(cfg.Weights), req.Fuzzy(cfg.Fuzzy))
	filters := req.Filters()

	var hits []score.Hit
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return result.Page{}, err
		}
		doc := &docs[i]
		if !filters.Matches(doc) {
			continue
		}
		view := score.NewView(*doc)
		ev := scorer.Score(root, view)
		if !ev.Matched {
			continue
		}
		hits = append(hits, score.Hit{
			Match:       result.New(*doc, ev.Score, ev.Spans),
			FoldedTitle: view.FoldedTitle(),
		})
	}

	ranked := score.Rank(hits, req.Order())
	size := req.PageSize()
	if size < 1 {
		size = cfg.PageSize
	}
	return page.Paginate(ranked, req.Page(), size), nil
}
