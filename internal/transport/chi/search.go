package chi

import (
	"fmt"
	"net/http"

	"github.com/kailas-cloud/docfind/internal/domain"
	domdoc "github.com/kailas-cloud/docfind/internal/domain/document"
	"github.com/kailas-cloud/docfind/internal/domain/search/filter"
	"github.com/kailas-cloud/docfind/internal/domain/search/request"
	"github.com/kailas-cloud/docfind/internal/domain/search/result"
	"github.com/kailas-cloud/docfind/internal/domain/search/score"
	"github.com/kailas-cloud/docfind/internal/domain/search/sortorder"
)

// SearchDocuments handles GET /api/v1/search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	req, err := s.searchRequestFromParams(params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SearchHit, len(res.Items))
	for i := range res.Items {
		items[i] = searchHitFromMatch(&res.Items[i])
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:         req.Query(),
		Sort:          string(req.Order()),
		Items:         items,
		Page:          res.Page,
		PageSize:      res.PageSize,
		TotalPages:    res.TotalPages,
		TotalItems:    res.TotalItems,
		RequestedPage: res.RequestedPage,
		Clamped:       res.Clamped(),
		HasNext:       res.HasNext(),
		HasPrev:       res.HasPrev(),
	})
}

// Suggest handles GET /api/v1/search/suggestions.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	params, err := bindSuggestParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	out, err := s.search.Suggest(r.Context(), deref(params.Q), deref(params.Limit))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]Suggestion, len(out))
	for i, sg := range out {
		items[i] = Suggestion{Text: sg.Text, Kind: string(sg.Kind)}
	}
	writeJSON(w, http.StatusOK, SuggestionListResponse{Items: items})
}

// SearchHistory handles GET /api/v1/search/history.
func (s *Server) SearchHistory(w http.ResponseWriter, r *http.Request) {
	params, err := bindHistoryParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	entries, err := s.search.History(r.Context(), deref(params.Limit))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		items[i] = HistoryEntry{Query: e.Query, Hits: e.Hits, At: e.At}
	}
	writeJSON(w, http.StatusOK, HistoryListResponse{Items: items})
}

// Stats handles GET /api/v1/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := s.search.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		TotalDocuments: st.TotalDocuments,
		PageSize:       st.PageSize,
		TotalPages:     st.TotalPages,
		SearchesToday:  st.SearchesToday,
	})
}

func (s *Server) searchRequestFromParams(p SearchParams) (request.Request, error) {
	from, err := filter.ParseDate(deref(p.From))
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: from: %w", domain.ErrInvalidRequest, err)
	}
	to, err := filter.ParseDate(deref(p.To))
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: to: %w", domain.ErrInvalidRequest, err)
	}
	filters, err := filter.NewExpression(deref(p.Tag), from, to)
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	req, err := request.New(request.Params{
		Query:    deref(p.Q),
		Page:     deref(p.Page),
		PageSize: deref(p.PageSize),
		Order:    sortorder.Order(deref(p.Sort)),
		Filters:  filters,
		Weights:  s.weightsFromParams(p),
	})
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return req, nil
}

// weightsFromParams overlays any given weight on the configured defaults.
// Returns nil when the request sets none.
func (s *Server) weightsFromParams(p SearchParams) *score.Weights {
	if p.TitleWeight == nil && p.TagWeight == nil && p.BodyWeight == nil && p.PhraseBoost == nil {
		return nil
	}
	w := s.search.Weights()
	if p.TitleWeight != nil {
		w.Title = *p.TitleWeight
	}
	if p.TagWeight != nil {
		w.Tag = *p.TagWeight
	}
	if p.BodyWeight != nil {
		w.Body = *p.BodyWeight
	}
	if p.PhraseBoost != nil {
		w.PhraseBoost = *p.PhraseBoost
	}
	return &w
}

func searchHitFromMatch(m *result.Match) SearchHit {
	doc := m.Document()
	tags := doc.Tags()
	if tags == nil {
		tags = []string{}
	}
	return SearchHit{
		ID:         doc.ID(),
		Title:      doc.Title(),
		Tags:       tags,
		CreatedAt:  doc.CreatedAt(),
		Filename:   doc.Attachment().Filename,
		Score:      m.Score(),
		Highlights: highlights(&doc, m.Spans()),
	}
}

func highlights(doc *domdoc.Document, spans []result.Span) []Highlight {
	out := make([]Highlight, len(spans))
	for i, sp := range spans {
		out[i] = Highlight{
			Field: sp.Field.String(),
			Index: sp.Index,
			Start: sp.Start,
			End:   sp.End,
			Text:  sp.Text(doc),
		}
	}
	return out
}
