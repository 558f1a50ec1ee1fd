package health

import (
	"context"
	"time"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CorpusCounter checks that the document keyspace can be read.
type CorpusCounter interface {
	Count(ctx context.Context) (int, error)
}

// HistoryCounter reads the per-day search counter.
type HistoryCounter interface {
	CountForDay(ctx context.Context, t time.Time) (int64, error)
}
