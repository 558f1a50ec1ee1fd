package document

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Document limits.
const (
	MaxIDLength    = 256
	MaxTitleLength = 255
	MaxTagLength   = 64
	MaxTags        = 32
	// MaxBodySize is the maximum OCR body size in bytes.
	MaxBodySize = 4 << 20
)

// Document is an uploaded document as seen by search (immutable value object).
// The body may be empty while OCR extraction is still pending.
type Document struct {
	id        string
	title     string
	body      string
	tags      []string
	createdAt time.Time
	filename  string
	mimeType  string
	size      int64
}

// Attachment describes the stored file behind a document.
type Attachment struct {
	Filename string
	MimeType string
	Size     int64
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Title: required, max 255 runes.
// Tags are trimmed; empty and duplicate tags are dropped, order is kept.
func New(id, title, body string, tags []string, createdAt time.Time, att Attachment) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("document ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Document{}, fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return Document{}, fmt.Errorf("title too long (max %d characters)", MaxTitleLength)
	}
	if len(body) > MaxBodySize {
		return Document{}, fmt.Errorf("body too large (max %d bytes)", MaxBodySize)
	}
	if att.Size < 0 {
		return Document{}, fmt.Errorf("size must not be negative")
	}

	cleaned, err := cleanTags(tags)
	if err != nil {
		return Document{}, err
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return Document{
		id:        id,
		title:     title,
		body:      body,
		tags:      cleaned,
		createdAt: createdAt.UTC(),
		filename:  att.Filename,
		mimeType:  att.MimeType,
		size:      att.Size,
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(
	id, title, body string, tags []string, createdAt time.Time, att Attachment,
) Document {
	return Document{
		id: id, title: title, body: body, tags: tags, createdAt: createdAt,
		filename: att.Filename, mimeType: att.MimeType, size: att.Size,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Body returns the OCR-extracted text.
func (d *Document) Body() string { return d.body }

// Tags returns the ordered tags.
func (d *Document) Tags() []string { return d.tags }

// CreatedAt returns the creation time.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// Attachment returns the stored file metadata.
func (d *Document) Attachment() Attachment {
	return Attachment{Filename: d.filename, MimeType: d.mimeType, Size: d.size}
}

// WithBody returns a copy with the body replaced (OCR reprocessing).
func (d *Document) WithBody(body string) (Document, error) {
	if len(body) > MaxBodySize {
		return Document{}, fmt.Errorf("body too large (max %d bytes)", MaxBodySize)
	}
	c := *d
	c.body = body
	return c, nil
}

func cleanTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if utf8.RuneCountInString(t) > MaxTagLength {
			return nil, fmt.Errorf("tag %q too long (max %d characters)", t, MaxTagLength)
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) > MaxTags {
		return nil, fmt.Errorf("too many tags (max %d)", MaxTags)
	}
	return out, nil
}
