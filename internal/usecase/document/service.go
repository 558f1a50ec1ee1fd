package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/docfind/internal/domain"
	domdoc "github.com/kailas-cloud/docfind/internal/domain/document"
	"github.com/kailas-cloud/docfind/internal/domain/document/patch"
)

// DefaultMaxImportBatch caps the number of documents in one import.
const DefaultMaxImportBatch = 500

// Input holds raw document fields from a client.
type Input struct {
	ID         string
	Title      string
	Body       string
	Tags       []string
	CreatedAt  time.Time
	Attachment domdoc.Attachment
}

// Service handles document CRUD and bulk import.
type Service struct {
	repo           Repository
	maxImportBatch int
	newID          func() string
}

// New creates a document service.
func New(repo Repository) *Service {
	return &Service{
		repo:           repo,
		maxImportBatch: DefaultMaxImportBatch,
		newID:          uuid.NewString,
	}
}

// WithMaxImportBatch configures the import batch limit.
func (s *Service) WithMaxImportBatch(n int) *Service {
	if n > 0 {
		s.maxImportBatch = n
	}
	return s
}

// Create validates and stores a new document. An empty ID gets a generated UUID.
func (s *Service) Create(ctx context.Context, in Input) (domdoc.Document, error) {
	doc, err := s.build(in)
	if err != nil {
		return domdoc.Document{}, err
	}
	if err := s.repo.Create(ctx, &doc); err != nil {
		return domdoc.Document{}, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// Import validates every input, then upserts the whole batch.
// The batch is rejected on the first invalid item; nothing is written.
func (s *Service) Import(ctx context.Context, ins []Input) ([]domdoc.Document, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("%w: import batch is empty", domain.ErrInvalidDocument)
	}
	if len(ins) > s.maxImportBatch {
		return nil, fmt.Errorf("%w: import batch too large (%d, max %d)",
			domain.ErrInvalidDocument, len(ins), s.maxImportBatch)
	}

	docs := make([]domdoc.Document, 0, len(ins))
	seen := make(map[string]int, len(ins))
	for i, in := range ins {
		doc, err := s.build(in)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if j, dup := seen[doc.ID()]; dup {
			return nil, fmt.Errorf("%w: item %d repeats id %q of item %d",
				domain.ErrInvalidDocument, i, doc.ID(), j)
		}
		seen[doc.ID()] = i
		docs = append(docs, doc)
	}

	if err := s.repo.Import(ctx, docs); err != nil {
		return nil, fmt.Errorf("import documents: %w", err)
	}
	return docs, nil
}

// Get retrieves a document by ID.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// UpdateBody replaces the OCR body of an existing document and returns it.
func (s *Service) UpdateBody(ctx context.Context, id, body string) (domdoc.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	updated, err := doc.WithBody(body)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}
	if err := s.repo.UpdateBody(ctx, id, body); err != nil {
		return domdoc.Document{}, fmt.Errorf("update body: %w", err)
	}
	return updated, nil
}

// Patch applies a partial update to an existing document and returns the result.
// A body-only patch takes the single-field write path.
func (s *Service) Patch(ctx context.Context, id string, p patch.Patch) (domdoc.Document, error) {
	if p.BodyOnly() {
		return s.UpdateBody(ctx, id, *p.Body())
	}
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	updated, err := p.Apply(doc)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		return domdoc.Document{}, fmt.Errorf("update document: %w", err)
	}
	return updated, nil
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *Service) build(in Input) (domdoc.Document, error) {
	id := in.ID
	if id == "" {
		id = s.newID()
	}
	doc, err := domdoc.New(id, in.Title, in.Body, in.Tags, in.CreatedAt, in.Attachment)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}
	return doc, nil
}
