package domain

import "context"

type searchTraceKey struct{}

// SearchTrace collects search outcome for a single HTTP request.
// The transport puts a mutable pointer into the context before calling the
// service; the service fills it; the transport adds it to the request log line.
type SearchTrace struct {
	Query   string
	Hits    int
	Page    int
	Clamped bool
	Used    bool
}

// NewContextWithTrace returns a context carrying an empty trace.
func NewContextWithTrace(ctx context.Context) (context.Context, *SearchTrace) {
	t := &SearchTrace{}
	return context.WithValue(ctx, searchTraceKey{}, t), t
}

// TraceFromContext extracts the trace from context. Returns nil if not set.
func TraceFromContext(ctx context.Context) *SearchTrace {
	t, _ := ctx.Value(searchTraceKey{}).(*SearchTrace)
	return t
}

// Record stores a search outcome. Safe on a nil trace.
func (t *SearchTrace) Record(query string, hits, page int, clamped bool) {
	if t == nil {
		return
	}
	t.Query = query
	t.Hits = hits
	t.Page = page
	t.Clamped = clamped
	t.Used = true
}
