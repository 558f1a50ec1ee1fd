package patch

import (
	"fmt"

	"github.com/kailas-cloud/docfind/internal/domain/document"
)

// Patch is a partial document update.
// Nil fields are unchanged. A non-nil empty Tags clears all tags.
type Patch struct {
	title *string
	body  *string
	tags  *[]string
}

// New validates and creates a Patch. At least one field must be provided.
func New(title, body *string, tags *[]string) (Patch, error) {
	if title == nil && body == nil && tags == nil {
		return Patch{}, fmt.Errorf("at least one field must be provided")
	}
	if body != nil && len(*body) > document.MaxBodySize {
		return Patch{}, fmt.Errorf("body too large (max %d bytes)", document.MaxBodySize)
	}
	return Patch{title: title, body: body, tags: tags}, nil
}

// Title returns the new title, or nil if unchanged.
func (p Patch) Title() *string { return p.title }

// Body returns the new body, or nil if unchanged.
func (p Patch) Body() *string { return p.body }

// Tags returns the replacement tags, or nil if unchanged.
func (p Patch) Tags() *[]string { return p.tags }

// BodyOnly reports whether the patch touches nothing but the body.
func (p Patch) BodyOnly() bool { return p.body != nil && p.title == nil && p.tags == nil }

// Apply returns doc with the patch applied. The result goes through the
// same validation as a new document; ID, CreatedAt and the attachment are kept.
func (p Patch) Apply(doc document.Document) (document.Document, error) {
	title, body, tags := doc.Title(), doc.Body(), doc.Tags()
	if p.title != nil {
		title = *p.title
	}
	if p.body != nil {
		body = *p.body
	}
	if p.tags != nil {
		tags = *p.tags
	}
	out, err := document.New(doc.ID(), title, body, tags, doc.CreatedAt(), doc.Attachment())
	if err != nil {
		return document.Document{}, fmt.Errorf("apply patch: %w", err)
	}
	return out, nil
}
