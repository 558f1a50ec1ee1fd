package document

import (
	"context"

	domdoc "github.com/kailas-cloud/docfind/internal/domain/document"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Create(ctx context.Context, doc *domdoc.Document) error
	Import(ctx context.Context, docs []domdoc.Document) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	UpdateBody(ctx context.Context, id, body string) error
	Update(ctx context.Context, doc *domdoc.Document) error
	Delete(ctx context.Context, id string) error
}
