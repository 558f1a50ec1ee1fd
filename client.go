package docfind

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/docfind/internal/db"
	dbRedis "github.com/kailas-cloud/docfind/internal/db/redis"
	"github.com/kailas-cloud/docfind/internal/domain"
	"github.com/kailas-cloud/docfind/internal/domain/document/patch"
	"github.com/kailas-cloud/docfind/internal/domain/search/request"
	"github.com/kailas-cloud/docfind/internal/domain/search/result"
	documentrepo "github.com/kailas-cloud/docfind/internal/repository/document"
	historyrepo "github.com/kailas-cloud/docfind/internal/repository/history"
	documentuc "github.com/kailas-cloud/docfind/internal/usecase/document"
	searchuc "github.com/kailas-cloud/docfind/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "docfind:"
)

// Errors returned by Client operations.
var (
	ErrNotFound        = domain.ErrDocumentNotFound
	ErrAlreadyExists   = domain.ErrAlreadyExists
	ErrInvalidDocument = domain.ErrInvalidDocument
)

// HistoryEntry is a recorded search.
type HistoryEntry struct {
	Query string    `json:"query"`
	Hits  int       `json:"hits"`
	At    time.Time `json:"at"`
}

// DocumentPatch is a partial update. Nil fields are left unchanged.
type DocumentPatch struct {
	Title *string
	Body  *string
	Tags  *[]string
}

// Client is a docfind corpus persisted in Redis or Valkey.
type Client struct {
	store     db.Store
	docSvc    *documentuc.Service
	searchSvc *searchuc.Service
}

// New creates a docfind Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("docfind: database address required (use WithRedis, WithValkey or a cluster option)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("docfind: database not ready: %w", err)
	}
	if cfg.reindex {
		if _, err := documentrepo.New(store, cfg.keyPrefix).Reindex(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("docfind: rebuild document index: %w", err)
		}
	}

	return wireClient(store, cfg), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis", "valkey":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:       cfg.addrs,
			Password:    cfg.password,
			ClientName:  "docfind-client",
			DialTimeout: cfg.dialTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("docfind: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("docfind: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	docRepo := documentrepo.New(store, cfg.keyPrefix)

	// nil interface, not a typed nil pointer, when history is off
	var history searchuc.HistoryStore
	if cfg.historyEntries > 0 {
		history = historyrepo.New(store, cfg.keyPrefix, cfg.historyEntries, cfg.historyTTL)
	}

	docSvc := documentuc.New(docRepo)
	if cfg.maxImportBatch > 0 {
		docSvc = docSvc.WithMaxImportBatch(cfg.maxImportBatch)
	}
	searchSvc := searchuc.New(docRepo, history).
		WithPagination(cfg.defaultPageSize, cfg.maxPageSize)
	if cfg.weights != nil && cfg.fuzzy != nil {
		searchSvc = searchSvc.WithScoring(*cfg.weights, *cfg.fuzzy)
	}

	return &Client{store: store, docSvc: docSvc, searchSvc: searchSvc}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Add stores a new document. An empty ID is generated.
func (c *Client) Add(ctx context.Context, d Document) (Document, error) {
	doc, err := c.docSvc.Create(ctx, toInput(d))
	if err != nil {
		return Document{}, fmt.Errorf("add: %w", err)
	}
	return fromDomain(&doc), nil
}

// Import upserts docs as one batch and returns their IDs. Nothing is
// stored if any document is invalid.
func (c *Client) Import(ctx context.Context, docs []Document) ([]string, error) {
	ins := make([]documentuc.Input, len(docs))
	for i, d := range docs {
		ins[i] = toInput(d)
	}
	stored, err := c.docSvc.Import(ctx, ins)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	ids := make([]string, len(stored))
	for i := range stored {
		ids[i] = stored[i].ID()
	}
	return ids, nil
}

// Get returns a document by ID.
func (c *Client) Get(ctx context.Context, id string) (Document, error) {
	doc, err := c.docSvc.Get(ctx, id)
	if err != nil {
		return Document{}, fmt.Errorf("get: %w", err)
	}
	return fromDomain(&doc), nil
}

// UpdateBody replaces a document's OCR body.
func (c *Client) UpdateBody(ctx context.Context, id, body string) (Document, error) {
	doc, err := c.docSvc.UpdateBody(ctx, id, body)
	if err != nil {
		return Document{}, fmt.Errorf("update body: %w", err)
	}
	return fromDomain(&doc), nil
}

// Patch updates the given fields of a stored document.
func (c *Client) Patch(ctx context.Context, id string, dp DocumentPatch) (Document, error) {
	p, err := patch.New(dp.Title, dp.Body, dp.Tags)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	doc, err := c.docSvc.Patch(ctx, id, p)
	if err != nil {
		return Document{}, fmt.Errorf("patch: %w", err)
	}
	return fromDomain(&doc), nil
}

// Delete removes a document.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.docSvc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Search starts a search over the stored corpus. Executed searches with a
// non-empty query are added to the history when it is enabled.
func (c *Client) Search(query string) *SearchBuilder {
	return &SearchBuilder{
		query: query,
		run: func(ctx context.Context, req *request.Request) (result.Page, error) {
			return c.searchSvc.Search(ctx, req)
		},
	}
}

// Suggest returns stored titles, then tags, containing q.
func (c *Client) Suggest(ctx context.Context, q string, limit int) ([]Suggestion, error) {
	out, err := c.searchSvc.Suggest(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return fromSuggestions(out), nil
}

// History returns recent searches, newest first. It is empty unless
// WithHistory was given.
func (c *Client) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	entries, err := c.searchSvc.History(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntry{Query: e.Query, Hits: e.Hits, At: e.At}
	}
	return out, nil
}

func toInput(d Document) documentuc.Input {
	return documentuc.Input{
		ID:        d.ID,
		Title:     d.Title,
		Body:      d.Body,
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt,
	}
}
