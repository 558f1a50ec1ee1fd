package document

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/docfind/internal/db"
	domdoc "github.com/kailas-cloud/docfind/internal/domain/document"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hsetMultiFn    func(ctx context.Context, items []db.HashSetItem) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFn          func(ctx context.Context, key string) error
	existsFn       func(ctx context.Context, key string) (bool, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)

	// index is the id set; nil until first SADD
	index map[string]bool
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) SAdd(_ context.Context, _ string, members ...string) error {
	if m.index == nil {
		m.index = map[string]bool{}
	}
	for _, id := range members {
		m.index[id] = true
	}
	return nil
}

func (m *mockStore) SRem(_ context.Context, _ string, members ...string) error {
	for _, id := range members {
		delete(m.index, id)
	}
	return nil
}

func (m *mockStore) SMembers(_ context.Context, key string) ([]string, error) {
	if key != "docfind:docs" {
		return nil, fmt.Errorf("unexpected index key %s", key)
	}
	ids := make([]string, 0, len(m.index))
	for id := range m.index {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockStore) SCard(_ context.Context, _ string) (int64, error) {
	return int64(len(m.index)), nil
}

func (m *mockStore) indexed(ids ...string) {
	_ = m.SAdd(context.Background(), "docfind:docs", ids...)
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "docfind:")
	return repo, ms
}

func testDocument(t *testing.T) domdoc.Document {
	t.Helper()
	doc, err := domdoc.New("doc-1", "Giáo trình Đại học", "Nội dung OCR",
		[]string{"giáo dục", "đại học"},
		time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC),
		domdoc.Attachment{Filename: "giao-trinh.pdf", MimeType: "application/pdf", Size: 2048},
	)
	if err != nil {
		t.Fatalf("testDocument: %v", err)
	}
	return doc
}
