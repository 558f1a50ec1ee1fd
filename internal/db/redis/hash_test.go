package redis

import (
	"context"
	"reflect"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/docfind/internal/db"
)

func TestHSet_SortsFields(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("HSET", "docfind:doc:a1", "body", "ocr", "tags", `["x"]`, "title", "Đại học")).
		Return(mock.Result(mock.RedisInt64(3)))

	err := s.HSet(context.Background(), "docfind:doc:a1", map[string]string{
		"title": "Đại học", "body": "ocr", "tags": `["x"]`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSet_NoFields(t *testing.T) {
	s := storeWith(nil)
	if err := s.HSet(context.Background(), "k", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSetMulti(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.Match("HSET", "docfind:doc:1", "title", "Đại học"),
			mock.Match("HSET", "docfind:doc:2", "title", "Go"),
		).
		Return([]rueidis.RedisResult{mock.Result(mock.RedisInt64(1)), mock.ErrorResult(errConn)})

	err := s.HSetMulti(context.Background(), []db.HashSetItem{
		{Key: "docfind:doc:1", Fields: map[string]string{"title": "Đại học"}},
		{Key: "docfind:doc:2", Fields: map[string]string{"title": "Go"}},
	})
	assertOp(t, err, db.OpHSet)

	if err := storeWith(nil).HSetMulti(context.Background(), nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
}

func TestHGetAll(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "docfind:doc:a1")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"title":      mock.RedisString("Đại học"),
			"created_at": mock.RedisString("2025-03-01T00:00:00Z"),
		})))
	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "docfind:doc:gone")).
		Return(mock.ErrorResult(errConn))

	m, err := s.HGetAll(context.Background(), "docfind:doc:a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{"title": "Đại học", "created_at": "2025-03-01T00:00:00Z"}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("got %v", m)
	}

	_, err = s.HGetAll(context.Background(), "docfind:doc:gone")
	assertOp(t, err, db.OpHGetAll)
}

func TestHGetAllMulti(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		DoMulti(gomock.Any(), mock.Match("HGETALL", "docfind:doc:1"), mock.Match("HGETALL", "docfind:doc:2")).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{"title": mock.RedisString("a")})),
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{})),
		})

	out, err := s.HGetAllMulti(context.Background(), []string{"docfind:doc:1", "docfind:doc:2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0]["title"] != "a" || len(out[1]) != 0 {
		t.Errorf("got %v", out)
	}
}

func TestHGetAllMulti_Errors(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{})),
			mock.ErrorResult(errConn),
		})

	_, err := s.HGetAllMulti(context.Background(), []string{"docfind:doc:1", "docfind:doc:2"})
	assertOp(t, err, db.OpHGetAll)

	out, err := storeWith(nil).HGetAllMulti(context.Background(), nil)
	if err != nil || out != nil {
		t.Errorf("empty keys: got %v, %v", out, err)
	}
}

func TestDelAndExists(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().Do(gomock.Any(), mock.Match("DEL", "docfind:doc:a1")).Return(mock.Result(mock.RedisInt64(1)))
	c.EXPECT().Do(gomock.Any(), mock.Match("EXISTS", "docfind:doc:a1")).Return(mock.Result(mock.RedisInt64(0)))
	c.EXPECT().Do(gomock.Any(), mock.Match("EXISTS", "docfind:doc:b2")).Return(mock.Result(mock.RedisInt64(1)))
	c.EXPECT().Do(gomock.Any(), mock.Match("EXISTS", "docfind:doc:c3")).Return(mock.ErrorResult(errConn))

	ctx := context.Background()
	if err := s.Del(ctx, "docfind:doc:a1"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if ok, err := s.Exists(ctx, "docfind:doc:a1"); err != nil || ok {
		t.Errorf("Exists(a1) = %v, %v", ok, err)
	}
	if ok, err := s.Exists(ctx, "docfind:doc:b2"); err != nil || !ok {
		t.Errorf("Exists(b2) = %v, %v", ok, err)
	}
	_, err := s.Exists(ctx, "docfind:doc:c3")
	assertOp(t, err, db.OpExists)
}

func TestScan_FollowsCursor(t *testing.T) {
	s, c := newMockStore(t)
	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("SCAN", "0", "MATCH", "docfind:doc:*", "COUNT", "500")).
			Return(mock.Result(mock.RedisArray(
				mock.RedisInt64(42),
				mock.RedisArray(mock.RedisString("docfind:doc:1")),
			))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("SCAN", "42", "MATCH", "docfind:doc:*", "COUNT", "500")).
			Return(mock.Result(mock.RedisArray(
				mock.RedisInt64(0),
				mock.RedisArray(mock.RedisString("docfind:doc:2"), mock.RedisString("docfind:doc:3")),
			))),
	)

	keys, err := s.Scan(context.Background(), "docfind:doc:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"docfind:doc:1", "docfind:doc:2", "docfind:doc:3"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestScan_Error(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().Do(gomock.Any(), gomock.Any()).Return(mock.ErrorResult(errConn))

	_, err := s.Scan(context.Background(), "docfind:doc:*")
	assertOp(t, err, db.OpScan)
}
