package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/docfind/internal/db"
	"github.com/kailas-cloud/docfind/internal/domain"
)

// store is the consumer interface for history operations (ISP).
type store interface {
	LPush(ctx context.Context, key string, values ...string) error
	LTrim(ctx context.Context, key string, start, stop int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// entryDTO is the JSON form of a list element.
type entryDTO struct {
	Query string    `json:"query"`
	Hits  int       `json:"hits"`
	At    time.Time `json:"at"`
}

// Store keeps a capped newest-first list of searches plus per-day counters.
type Store struct {
	store      store
	prefix     string
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// New creates a history store.
// maxEntries caps the list length; ttl expires the list and the day counters.
func New(s store, prefix string, maxEntries int, ttl time.Duration) *Store {
	return &Store{
		store:      s,
		prefix:     prefix,
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Record appends a search to the history and bumps today's counter.
func (s *Store) Record(ctx context.Context, query string, hits int) error {
	at := s.now().UTC()
	data, err := json.Marshal(entryDTO{Query: query, Hits: hits, At: at})
	if err != nil {
		return fmt.Errorf("history encode: %w", err)
	}

	key := s.listKey()
	if err := s.store.LPush(ctx, key, string(data)); err != nil {
		return fmt.Errorf("history LPUSH %s: %w", key, err)
	}
	if err := s.store.LTrim(ctx, key, 0, int64(s.maxEntries-1)); err != nil {
		return fmt.Errorf("history LTRIM %s: %w", key, err)
	}
	if err := s.store.Expire(ctx, key, s.ttl, false); err != nil {
		return fmt.Errorf("history EXPIRE %s: %w", key, err)
	}

	counter := s.countKey(at)
	if err := s.store.IncrBy(ctx, counter, 1); err != nil {
		return fmt.Errorf("history INCRBY %s: %w", counter, err)
	}
	// NX so repeated searches do not push the expiry forward.
	if err := s.store.Expire(ctx, counter, s.ttl, true); err != nil {
		return fmt.Errorf("history EXPIRE %s: %w", counter, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
// Entries that fail to decode are skipped.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	key := s.listKey()
	raw, err := s.store.LRange(ctx, key, 0, int64(limit-1))
	if err != nil {
		return nil, fmt.Errorf("history LRANGE %s: %w", key, err)
	}
	out := make([]domain.HistoryEntry, 0, len(raw))
	for _, r := range raw {
		var e entryDTO
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			continue
		}
		out = append(out, domain.HistoryEntry{Query: e.Query, Hits: e.Hits, At: e.At})
	}
	return out, nil
}

// CountForDay returns the number of searches recorded on the UTC day of t.
// Returns 0 if nothing was recorded.
func (s *Store) CountForDay(ctx context.Context, t time.Time) (int64, error) {
	key := s.countKey(t.UTC())
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if db.IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("history GET %s: %w", key, err)
	}
	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("history GET %s parse: %w", key, err)
	}
	return val, nil
}

func (s *Store) listKey() string {
	return s.prefix + "history:searches"
}

// countKey follows the pattern {prefix}history:count:YYYY-MM-DD.
func (s *Store) countKey(t time.Time) string {
	return s.prefix + "history:count:" + t.Format(time.DateOnly)
}
