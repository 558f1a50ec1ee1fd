package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics() // second call must not panic on duplicate registration

	SearchRequestsTotal.WithLabelValues("relevance", "ok").Inc()
	if got := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("relevance", "ok")); got < 1 {
		t.Errorf("search_requests_total = %f, want >= 1", got)
	}

	DocumentsStored.Set(12)
	if got := testutil.ToFloat64(DocumentsStored); got != 12 {
		t.Errorf("documents_stored = %f, want 12", got)
	}
}
