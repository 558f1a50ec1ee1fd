package result

import (
	"github.com/kailas-cloud/docfind/internal/domain/document"
	"github.com/kailas-cloud/docfind/internal/domain/search/page"
)

// Field identifies the document field a span was found in.
type Field int

// Searchable fields.
const (
	Title Field = iota
	Tags
	Body
)

func (f Field) String() string {
	switch f {
	case Title:
		return "title"
	case Tags:
		return "tags"
	case Body:
		return "body"
	default:
		return "unknown"
	}
}

// Span is a highlighted range in the ORIGINAL text of a field.
// Index is the tag position for Tags and 0 otherwise.
type Span struct {
	Field Field
	Index int
	Start int
	End   int
}

// Text returns the original substring covered by the span.
func (s Span) Text(doc *document.Document) string {
	var src string
	switch s.Field {
	case Title:
		src = doc.Title()
	case Body:
		src = doc.Body()
	case Tags:
		tags := doc.Tags()
		if s.Index < 0 || s.Index >= len(tags) {
			return ""
		}
		src = tags[s.Index]
	}
	if s.Start < 0 || s.End > len(src) || s.Start > s.End {
		return ""
	}
	return src[s.Start:s.End]
}

// Match is a single search hit.
type Match struct {
	doc   document.Document
	score float64
	spans []Span
}

// New creates a search hit.
func New(doc document.Document, score float64, spans []Span) Match {
	return Match{doc: doc, score: score, spans: spans}
}

// DocumentID returns the matched document identifier.
func (m *Match) DocumentID() string { return m.doc.ID() }

// Document returns the matched document.
func (m *Match) Document() document.Document { return m.doc }

// Score returns the relevance score.
func (m *Match) Score() float64 { return m.score }

// Spans returns highlight ranges ordered by field, index and offset.
func (m *Match) Spans() []Span { return m.spans }

// Page is a page of ranked hits.
type Page = page.Page[Match]
