package score

import (
	"github.com/kailas-cloud/docfind/internal/domain/document"
	"github.com/kailas-cloud/docfind/internal/domain/search/normalize"
	"github.com/kailas-cloud/docfind/internal/domain/search/result"
	"github.com/kailas-cloud/docfind/internal/domain/search/token"
)

// View is the tokenized, read-only form of a document used for scoring.
// It is built once per document per search and discarded afterwards.
type View struct {
	doc    document.Document
	title  string
	fields []fieldText
}

type fieldText struct {
	field  result.Field
	index  int
	text   normalize.Text
	tokens []token.Token
}

// NewView normalizes and tokenizes the title, each tag and the body of doc.
func NewView(doc document.Document) *View {
	v := &View{doc: doc}
	title := normalize.Normalize(doc.Title())
	v.title = title.String()
	v.add(result.Title, 0, title)
	for i, tag := range doc.Tags() {
		v.add(result.Tags, i, normalize.Normalize(tag))
	}
	v.add(result.Body, 0, normalize.Normalize(doc.Body()))
	return v
}

func (v *View) add(f result.Field, index int, text normalize.Text) {
	toks := token.Tokenize(text)
	if len(toks) == 0 {
		return
	}
	v.fields = append(v.fields, fieldText{field: f, index: index, text: text, tokens: toks})
}

// Document returns the viewed document.
func (v *View) Document() document.Document { return v.doc }

// FoldedTitle returns the canonical title, used for title ordering.
func (v *View) FoldedTitle() string { return v.title }
