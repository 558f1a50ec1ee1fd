package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// SearchParams are the query parameters of GET /api/v1/search.
type SearchParams struct {
	Q           *string   `form:"q,omitempty" json:"q,omitempty"`
	Page        *int      `form:"page,omitempty" json:"page,omitempty"`
	PageSize    *int      `form:"page_size,omitempty" json:"page_size,omitempty"`
	Sort        *string   `form:"sort,omitempty" json:"sort,omitempty"`
	Tag         *[]string `form:"tag,omitempty" json:"tag,omitempty"`
	From        *string   `form:"from,omitempty" json:"from,omitempty"`
	To          *string   `form:"to,omitempty" json:"to,omitempty"`
	TitleWeight *float64  `form:"title_weight,omitempty" json:"title_weight,omitempty"`
	TagWeight   *float64  `form:"tag_weight,omitempty" json:"tag_weight,omitempty"`
	BodyWeight  *float64  `form:"body_weight,omitempty" json:"body_weight,omitempty"`
	PhraseBoost *float64  `form:"phrase_boost,omitempty" json:"phrase_boost,omitempty"`
}

// SuggestParams are the query parameters of GET /api/v1/search/suggestions.
type SuggestParams struct {
	Q     *string `form:"q,omitempty" json:"q,omitempty"`
	Limit *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// HistoryParams are the query parameters of GET /api/v1/search/history.
type HistoryParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// paramError reports a query or path parameter that failed to bind.
type paramError struct {
	name string
	err  error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %v", e.name, e.err)
}

func (e *paramError) Unwrap() error { return e.err }

func bindQuery(r *http.Request, name string, explode bool, dest any) error {
	if err := runtime.BindQueryParameter("form", explode, false, name, r.URL.Query(), dest); err != nil {
		return &paramError{name: name, err: err}
	}
	return nil
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var p SearchParams
	binds := []struct {
		name    string
		explode bool
		dest    any
	}{
		{"q", true, &p.Q},
		{"page", true, &p.Page},
		{"page_size", true, &p.PageSize},
		{"sort", true, &p.Sort},
		{"tag", true, &p.Tag},
		{"from", true, &p.From},
		{"to", true, &p.To},
		{"title_weight", true, &p.TitleWeight},
		{"tag_weight", true, &p.TagWeight},
		{"body_weight", true, &p.BodyWeight},
		{"phrase_boost", true, &p.PhraseBoost},
	}
	for _, b := range binds {
		if err := bindQuery(r, b.name, b.explode, b.dest); err != nil {
			return SearchParams{}, err
		}
	}
	return p, nil
}

func bindSuggestParams(r *http.Request) (SuggestParams, error) {
	var p SuggestParams
	if err := bindQuery(r, "q", true, &p.Q); err != nil {
		return SuggestParams{}, err
	}
	if err := bindQuery(r, "limit", true, &p.Limit); err != nil {
		return SuggestParams{}, err
	}
	return p, nil
}

func bindHistoryParams(r *http.Request) (HistoryParams, error) {
	var p HistoryParams
	if err := bindQuery(r, "limit", true, &p.Limit); err != nil {
		return HistoryParams{}, err
	}
	return p, nil
}

// bindDocumentID binds the {id} path parameter.
func bindDocumentID(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", &paramError{name: "id", err: err}
	}
	return id, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
