package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/docfind/internal/domain"
	domdoc "github.com/kailas-cloud/docfind/internal/domain/document"
)

// DocumentReader lists the corpus snapshot a search runs against.
type DocumentReader interface {
	List(ctx context.Context) ([]domdoc.Document, error)
	Count(ctx context.Context) (int, error)
}

// HistoryStore records searches and reads them back.
type HistoryStore interface {
	Record(ctx context.Context, query string, hits int) error
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
	CountForDay(ctx context.Context, t time.Time) (int64, error)
}
