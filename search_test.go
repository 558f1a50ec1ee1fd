package docfind

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 9, 0, 0, 0, time.UTC)
}

func testCorpus() []Document {
	return []Document{
		{ID: "dh", Title: "Đại học Bách khoa", Body: "Thông tin tuyển sinh", Tags: []string{"giáo dục"}, CreatedAt: day(1)},
		{ID: "py", Title: "Lập trình Python", Body: "Nhập môn cho người mới", Tags: []string{"lập trình"}, CreatedAt: day(2)},
		{ID: "web", Title: "Lập trình web", Body: "HTML, CSS và website", Tags: []string{"lập trình", "web"}, CreatedAt: day(3)},
	}
}

func ids(p PageResult) []string {
	out := make([]string, len(p.Items))
	for i, m := range p.Items {
		out[i] = m.Document.ID
	}
	return out
}

func TestNormalize(t *testing.T) {
	if Normalize("Đại  Học ") != Normalize("dai hoc") {
		t.Errorf("Normalize mismatch: %q vs %q", Normalize("Đại  Học "), Normalize("dai hoc"))
	}
	if got := Normalize("Đại học"); got != "dai hoc" {
		t.Errorf("Normalize() = %q", got)
	}
}

func TestSearch_DiacriticInsensitive(t *testing.T) {
	res, err := Search(context.Background(), testCorpus(), "dai hoc", 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(res); !reflect.DeepEqual(got, []string{"dh"}) {
		t.Fatalf("ids = %v", got)
	}
	spans := res.Items[0].Spans
	if len(spans) != 2 || spans[0].Field != "title" || spans[0].Text != "Đại" || spans[1].Text != "học" {
		t.Errorf("spans = %+v", spans)
	}
}

func TestSearch_Queries(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"lập trình AND NOT python", []string{"web"}},
		{"python OR web", []string{"web", "py"}},
		{`"lập trình web"`, []string{"web"}},
		{"web*", []string{"web"}},
		{"pythn", []string{"py"}},
		{"", []string{"web", "py", "dh"}},
		{"kubernetes", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, err := Search(context.Background(), testCorpus(), tt.query, 1, 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := ids(res); len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearch_ClampsPage(t *testing.T) {
	corpus := make([]Document, 12)
	for i := range corpus {
		corpus[i] = Document{ID: fmt.Sprintf("d%02d", i), Title: "Tài liệu", CreatedAt: day(i + 1)}
	}

	res, err := Search(context.Background(), corpus, "tai lieu", 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Page != 3 || res.TotalPages != 3 || res.TotalItems != 12 || res.RequestedPage != 10 || !res.Clamped {
		t.Errorf("res = %+v", res)
	}
	if len(res.Items) != 2 {
		t.Errorf("items on last page = %d, want 2", len(res.Items))
	}
}

func TestSearch_EmptyCorpus(t *testing.T) {
	res, err := Search(context.Background(), nil, "bất kỳ", 4, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Page != 1 || res.TotalPages != 1 || len(res.Items) != 0 {
		t.Errorf("res = %+v", res)
	}
}

func TestSearch_SyntaxError(t *testing.T) {
	_, err := Search(context.Background(), testCorpus(), `web "lập trình`, 1, 5)
	if !errors.Is(err, ErrQuerySyntax) {
		t.Fatalf("expected ErrQuerySyntax, got %v", err)
	}
	var se *QuerySyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *QuerySyntaxError, got %T", err)
	}
	if se.Pos != 4 || se.Token != `"` {
		t.Errorf("pos=%d token=%q", se.Pos, se.Token)
	}
}

func TestSearch_InvalidCorpus(t *testing.T) {
	tests := []struct {
		name   string
		corpus []Document
	}{
		{"missing title", []Document{{ID: "a"}}},
		{"bad id", []Document{{ID: "a b", Title: "x"}}},
		{"duplicate id", []Document{{ID: "a", Title: "x"}, {ID: "a", Title: "y"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Search(context.Background(), tt.corpus, "x", 1, 5); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSearch_Options(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		query string
		opts  []SearchOption
		want  []string
	}{
		{"tags", "", []SearchOption{WithTags("Lập trình", "WEB")}, []string{"web"}},
		{"date sort", "lap trinh", []SearchOption{WithSort(SortDate)}, []string{"web", "py"}},
		{"title sort", "", []SearchOption{WithSort(SortTitle)}, []string{"dh", "py", "web"}},
		{"created range", "", []SearchOption{WithCreatedRange(day(1), day(2))}, []string{"py", "dh"}},
		{"open range", "", []SearchOption{WithCreatedRange(day(3), time.Time{})}, []string{"web"}},
		{"strict fuzzy", "pythn", []SearchOption{WithFuzzy(FuzzyPolicy{ExactMaxLen: 20, OneEditMaxLen: 20, MaxEdits: 1})}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Search(ctx, testCorpus(), tt.query, 1, 10, tt.opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := ids(res); len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearch_WeightsOverride(t *testing.T) {
	corpus := []Document{
		{ID: "t", Title: "python", Body: "khác", CreatedAt: day(2)},
		{ID: "b", Title: "khác", Body: "python", CreatedAt: day(1)},
	}
	ctx := context.Background()

	res, _ := Search(ctx, corpus, "python", 1, 5)
	if res.Items[0].Document.ID != "t" {
		t.Errorf("default weights: first = %s, want t", res.Items[0].Document.ID)
	}

	w := DefaultWeights()
	w.Title = 0.5
	res, _ = Search(ctx, corpus, "python", 1, 5, WithWeights(w))
	if res.Items[0].Document.ID != "b" {
		t.Errorf("title weight 0.5: first = %s, want b", res.Items[0].Document.ID)
	}
}

func TestSearch_InvalidOptions(t *testing.T) {
	ctx := context.Background()
	bad := [][]SearchOption{
		{WithSort("random")},
		{WithWeights(Weights{Title: -1})},
		{WithWeights(Weights{Title: math.NaN(), Tag: 2, Body: 1})},
		{WithWeights(Weights{Title: 3, Tag: 2, Body: math.Inf(1)})},
		{WithCreatedRange(day(5), day(1))},
	}
	for i, opts := range bad {
		if _, err := Search(ctx, testCorpus(), "x", 1, 5, opts...); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestSearch_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, _ := Search(ctx, testCorpus(), "lap OR dai", 1, 5)
	b, _ := Search(ctx, testCorpus(), "lap OR dai", 1, 5)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("results differ:\n%+v\n%+v", a, b)
	}
}
