package document

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/docfind/internal/db"
	"github.com/kailas-cloud/docfind/internal/domain"
	domdoc "github.com/kailas-cloud/docfind/internal/domain/document"
)

// store is the consumer interface for documents (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
}

// Repo stores documents as Redis hashes under {prefix}doc:{id}.
// The set {prefix}docs indexes every stored ID so listing never scans the keyspace.
type Repo struct {
	store  store
	prefix string
}

// New creates a document repository. prefix is the global key prefix
// (e.g. "docfind:").
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Create stores a new document. Returns domain.ErrAlreadyExists if the ID is taken.
func (r *Repo) Create(ctx context.Context, doc *domdoc.Document) error {
	key := r.docKey(doc.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		return fmt.Errorf("document %s: %w", doc.ID(), domain.ErrAlreadyExists)
	}
	if err := r.store.HSet(ctx, key, buildHashFields(doc)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return r.index(ctx, doc.ID())
}

// Import stores many documents in one round-trip, overwriting existing IDs.
func (r *Repo) Import(ctx context.Context, docs []domdoc.Document) error {
	if len(docs) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(docs))
	for i := range docs {
		items[i] = db.HashSetItem{Key: r.docKey(docs[i].ID()), Fields: buildHashFields(&docs[i])}
	}
	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID()
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset multi (%d docs): %w", len(docs), err)
	}
	return r.index(ctx, ids...)
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	key := r.docKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return parseHashFields(id, m), nil
}

// List returns every stored document ordered by ID. It is the read snapshot
// a search runs against.
func (r *Repo) List(ctx context.Context) ([]domdoc.Document, error) {
	ids, err := r.store.SMembers(ctx, r.indexKey())
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", r.indexKey(), err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	slices.Sort(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(id)
	}
	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	docs := make([]domdoc.Document, 0, len(maps))
	for i, m := range maps {
		// deleted after SMEMBERS, or a stale index entry
		if len(m) == 0 {
			continue
		}
		docs = append(docs, parseHashFields(ids[i], m))
	}
	return docs, nil
}

// Count returns the number of indexed documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SCard(ctx, r.indexKey())
	if err != nil {
		return 0, fmt.Errorf("scard %s: %w", r.indexKey(), err)
	}
	return int(n), nil
}

// Reindex rebuilds the ID index from the document hashes actually present:
// missing IDs are added and IDs without a hash are dropped. It returns the
// number of indexed documents.
func (r *Repo) Reindex(ctx context.Context) (int, error) {
	pattern := r.docKey("*")
	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", pattern, err)
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	present := make(map[string]struct{}, len(keys))
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = r.idFromKey(k)
		present[ids[i]] = struct{}{}
	}

	indexed, err := r.store.SMembers(ctx, r.indexKey())
	if err != nil {
		return 0, fmt.Errorf("smembers %s: %w", r.indexKey(), err)
	}
	var stale []string
	for _, id := range indexed {
		if _, ok := present[id]; !ok {
			stale = append(stale, id)
		}
	}

	if err := r.index(ctx, ids...); err != nil {
		return 0, err
	}
	if err := r.store.SRem(ctx, r.indexKey(), stale...); err != nil {
		return 0, fmt.Errorf("srem %s: %w", r.indexKey(), err)
	}
	return len(ids), nil
}

// UpdateBody replaces the OCR body of an existing document.
func (r *Repo) UpdateBody(ctx context.Context, id, body string) error {
	key := r.docKey(id)
	if err := r.mustExist(ctx, key); err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, map[string]string{fieldBody: body}); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Update overwrites every field of an existing document.
func (r *Repo) Update(ctx context.Context, doc *domdoc.Document) error {
	key := r.docKey(doc.ID())
	if err := r.mustExist(ctx, key); err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, buildHashFields(doc)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Delete removes a document.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.docKey(id)
	if err := r.mustExist(ctx, key); err != nil {
		return err
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := r.store.SRem(ctx, r.indexKey(), id); err != nil {
		return fmt.Errorf("srem %s: %w", r.indexKey(), err)
	}
	return nil
}

func (r *Repo) mustExist(ctx context.Context, key string) error {
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *Repo) index(ctx context.Context, ids ...string) error {
	if err := r.store.SAdd(ctx, r.indexKey(), ids...); err != nil {
		return fmt.Errorf("sadd %s: %w", r.indexKey(), err)
	}
	return nil
}

func (r *Repo) indexKey() string {
	return r.prefix + "docs"
}

func (r *Repo) docKey(id string) string {
	return r.prefix + "doc:" + id
}

func (r *Repo) idFromKey(key string) string {
	return strings.TrimPrefix(key, r.prefix+"doc:")
}
