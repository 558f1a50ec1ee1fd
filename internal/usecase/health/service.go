package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component failed.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult is the outcome of one component check.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names as they appear in Report.Checks.
const (
	checkDatabase = "database"
	checkCorpus   = "corpus"
	checkHistory  = "history"
)

// Report aggregates health check results.
type Report struct {
	Status        Status
	Checks        map[string]CheckResult
	Latency       map[string]time.Duration
	Documents     int
	SearchesToday int64
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	corpus  CorpusCounter
	history HistoryCounter
	now     func() time.Time
}

// New creates a Service. corpus can be nil.
func New(db DBPinger, corpus CorpusCounter) *Service {
	return &Service{db: db, corpus: corpus, now: time.Now}
}

// WithHistory adds the search counter check.
func (s *Service) WithHistory(h HistoryCounter) *Service {
	s.history = h
	return s
}

// WithClock overrides the clock used for the daily counter and latencies.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Check pings the database and, when it answers, probes the corpus and the
// search counter. A failed optional probe degrades the report.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{
		Status:  Healthy,
		Checks:  make(map[string]CheckResult),
		Latency: make(map[string]time.Duration),
	}

	if !s.probe(&r, checkDatabase, func() error { return s.db.Ping(ctx) }) {
		r.Status = Unhealthy
		return r
	}

	if s.corpus != nil {
		s.probe(&r, checkCorpus, func() error {
			n, err := s.corpus.Count(ctx)
			r.Documents = n
			return err
		})
	}
	if s.history != nil {
		day := s.now()
		s.probe(&r, checkHistory, func() error {
			n, err := s.history.CountForDay(ctx, day)
			r.SearchesToday = n
			return err
		})
	}
	return r
}

// probe runs fn, records its result and latency, and reports whether it passed.
func (s *Service) probe(r *Report, name string, fn func() error) bool {
	start := s.now()
	err := fn()
	r.Latency[name] = s.now().Sub(start)
	if err != nil {
		r.Checks[name] = CheckError
		if r.Status == Healthy {
			r.Status = Degraded
		}
		return false
	}
	r.Checks[name] = CheckOK
	return true
}
