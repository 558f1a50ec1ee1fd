package redis

import (
	"errors"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/docfind/internal/db"
)

var errConn = errors.New("connection reset")

// storeWith wraps c without dialing. A nil client is fine for calls that
// short-circuit before reaching Redis.
func storeWith(c rueidis.Client) *Store {
	return &Store{client: c}
}

func newMockStore(t *testing.T) (*Store, *mock.Client) {
	t.Helper()
	c := mock.NewClient(gomock.NewController(t))
	return storeWith(c), c
}

// assertOp fails unless err is a *db.Error for op.
func assertOp(t *testing.T, err error, op string) {
	t.Helper()
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected *db.Error, got %T (%v)", err, err)
	}
	if dbErr.Op != op {
		t.Errorf("Op = %s, want %s", dbErr.Op, op)
	}
}
