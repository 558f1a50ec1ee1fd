package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockCorpus struct {
	n     int
	err   error
	calls int
}

func (m *mockCorpus) Count(_ context.Context) (int, error) {
	m.calls++
	return m.n, m.err
}

type mockHistory struct {
	n   int64
	err error
	day time.Time
}

func (m *mockHistory) CountForDay(_ context.Context, t time.Time) (int64, error) {
	m.day = t
	return m.n, m.err
}

// steppingClock advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(step)
		return t
	}
}

var epoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// --- Tests ---

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		corpus     *mockCorpus
		history    *mockHistory
		wantStatus Status
		wantChecks map[string]CheckResult
	}{
		{
			name:       "database only",
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{"database": CheckOK},
		},
		{
			name:       "all healthy",
			corpus:     &mockCorpus{n: 12},
			history:    &mockHistory{n: 4},
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{"database": CheckOK, "corpus": CheckOK, "history": CheckOK},
		},
		{
			name:       "database down skips probes",
			dbErr:      errors.New("conn refused"),
			corpus:     &mockCorpus{},
			history:    &mockHistory{},
			wantStatus: Unhealthy,
			wantChecks: map[string]CheckResult{"database": CheckError},
		},
		{
			name:       "corpus error degrades",
			corpus:     &mockCorpus{err: errors.New("timeout")},
			history:    &mockHistory{n: 1},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{"database": CheckOK, "corpus": CheckError, "history": CheckOK},
		},
		{
			name:       "history error degrades",
			corpus:     &mockCorpus{n: 3},
			history:    &mockHistory{err: errors.New("WRONGTYPE")},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{"database": CheckOK, "corpus": CheckOK, "history": CheckError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var corpus CorpusCounter
			if tt.corpus != nil {
				corpus = tt.corpus
			}
			svc := New(&mockDBPinger{err: tt.dbErr}, corpus).
				WithClock(steppingClock(epoch, time.Millisecond))
			if tt.history != nil {
				svc.WithHistory(tt.history)
			}

			r := svc.Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", r.Status, tt.wantStatus)
			}
			if len(r.Checks) != len(tt.wantChecks) {
				t.Errorf("Checks = %v, want %v", r.Checks, tt.wantChecks)
			}
			for name, want := range tt.wantChecks {
				if r.Checks[name] != want {
					t.Errorf("Checks[%s] = %q, want %q", name, r.Checks[name], want)
				}
				if r.Latency[name] != time.Millisecond {
					t.Errorf("Latency[%s] = %v, want 1ms", name, r.Latency[name])
				}
			}
			if tt.dbErr != nil && tt.corpus != nil && tt.corpus.calls != 0 {
				t.Error("corpus must not be probed when the database is down")
			}
		})
	}
}

func TestCheck_ReportsCounts(t *testing.T) {
	hist := &mockHistory{n: 7}
	svc := New(&mockDBPinger{}, &mockCorpus{n: 12}).
		WithHistory(hist).
		WithClock(steppingClock(epoch, time.Millisecond))

	r := svc.Check(context.Background())

	if r.Documents != 12 {
		t.Errorf("Documents = %d, want 12", r.Documents)
	}
	if r.SearchesToday != 7 {
		t.Errorf("SearchesToday = %d, want 7", r.SearchesToday)
	}
	if hist.day.Before(epoch) {
		t.Errorf("history probed for %v, want a time after %v", hist.day, epoch)
	}
}

func TestWithClock_NilKeepsDefault(t *testing.T) {
	svc := New(&mockDBPinger{}, nil).WithClock(nil)
	if svc.now == nil {
		t.Fatal("clock must not be nil")
	}
}
