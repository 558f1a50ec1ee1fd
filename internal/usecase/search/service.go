package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docfind/internal/domain"
	"github.com/kailas-cloud/docfind/internal/domain/search/engine"
	"github.com/kailas-cloud/docfind/internal/domain/search/fuzzy"
	"github.com/kailas-cloud/docfind/internal/domain/search/page"
	"github.com/kailas-cloud/docfind/internal/domain/search/request"
	"github.com/kailas-cloud/docfind/internal/domain/search/result"
	"github.com/kailas-cloud/docfind/internal/domain/search/score"
	"github.com/kailas-cloud/docfind/internal/domain/search/suggest"
	"github.com/kailas-cloud/docfind/internal/logger"
	"github.com/kailas-cloud/docfind/internal/metrics"
)

// History listing limits.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Stats summarizes the corpus at the configured page size.
type Stats struct {
	TotalDocuments int
	PageSize       int
	TotalPages     int
	SearchesToday  int64
}

// Service runs searches over the stored corpus and keeps search history.
type Service struct {
	docs         DocumentReader
	history      HistoryStore
	cfg          engine.Config
	maxPageSize  int
	suggestLimit int
	now          func() time.Time
}

// New creates a search service. history can be nil.
func New(docs DocumentReader, history HistoryStore) *Service {
	return &Service{
		docs:         docs,
		history:      history,
		cfg:          engine.DefaultConfig(),
		maxPageSize:  request.MaxPageSize,
		suggestLimit: suggest.DefaultLimit,
		now:          time.Now,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.cfg.PageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// WithScoring configures default field weights and fuzzy thresholds.
func (s *Service) WithScoring(w score.Weights, p fuzzy.Policy) *Service {
	s.cfg.Weights = w
	s.cfg.Fuzzy = p
	return s
}

// WithSuggestionLimit configures the default number of suggestions.
func (s *Service) WithSuggestionLimit(n int) *Service {
	if n > 0 {
		s.suggestLimit = min(n, suggest.MaxLimit)
	}
	return s
}

// Weights returns the configured default field weights.
func (s *Service) Weights() score.Weights { return s.cfg.Weights }

// Search lists the corpus and returns the requested page of ranked matches.
// Non-empty queries are recorded in the history on a best-effort basis.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	start := time.Now()
	sortLabel := string(req.Order())

	docs, err := s.docs.List(ctx)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(sortLabel, "error").Inc()
		return result.Page{}, fmt.Errorf("list documents: %w", err)
	}

	r := *req
	if r.PageSize() > s.maxPageSize {
		r = r.WithPageSize(s.maxPageSize)
	}

	res, err := engine.Search(ctx, docs, r, s.cfg)
	if err != nil {
		status := "error"
		if errors.Is(err, domain.ErrQuerySyntax) {
			status = "syntax_error"
		}
		metrics.SearchRequestsTotal.WithLabelValues(sortLabel, status).Inc()
		return result.Page{}, fmt.Errorf("search: %w", err)
	}

	latency := time.Since(start)
	metrics.SearchRequestsTotal.WithLabelValues(sortLabel, "ok").Inc()
	metrics.SearchDuration.WithLabelValues(sortLabel).Observe(latency.Seconds())
	metrics.SearchMatches.Observe(float64(res.TotalItems))
	if res.Clamped() {
		metrics.SearchPageClampedTotal.Inc()
	}

	domain.TraceFromContext(ctx).Record(req.Query(), res.TotalItems, res.Page, res.Clamped())
	ctx = logger.With(ctx, zap.String("query", req.Query()))
	logger.FromContext(ctx).Debug("Search completed",
		zap.Int("hits", res.TotalItems),
		zap.Int("page", res.Page),
		zap.Int("requested_page", res.RequestedPage),
		zap.Duration("latency", latency),
	)

	s.record(ctx, req.Query(), res.TotalItems)
	return res, nil
}

// record writes the query to history. A failure is logged, never returned.
func (s *Service) record(ctx context.Context, query string, hits int) {
	if s.history == nil || strings.TrimSpace(query) == "" {
		return
	}
	if err := s.history.Record(ctx, query, hits); err != nil {
		metrics.HistoryWriteErrorsTotal.Inc()
		logger.FromContext(ctx).Warn("Failed to record search history", zap.Error(err))
	}
}

// Suggest returns titles and tags containing q. limit <= 0 uses the configured default.
func (s *Service) Suggest(ctx context.Context, q string, limit int) ([]suggest.Suggestion, error) {
	if limit <= 0 {
		limit = s.suggestLimit
	}
	limit = min(limit, suggest.MaxLimit)

	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	out := suggest.Suggest(docs, q, limit)
	label := "hit"
	if len(out) == 0 {
		label = "empty"
	}
	metrics.SuggestionsTotal.WithLabelValues(label).Inc()
	return out, nil
}

// History returns recent searches, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	return entries, nil
}

// Stats returns the document total and how many pages it spans.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	n, err := s.docs.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count documents: %w", err)
	}
	metrics.DocumentsStored.Set(float64(n))

	st := Stats{
		TotalDocuments: n,
		PageSize:       s.cfg.PageSize,
		TotalPages:     page.TotalPages(n, s.cfg.PageSize),
	}
	if s.history != nil {
		today, err := s.history.CountForDay(ctx, s.now())
		if err != nil {
			// stats stay useful without the counter
			logger.FromContext(ctx).Warn("Failed to read search counter", zap.Error(err))
		}
		st.SearchesToday = today
	}
	return st, nil
}
