package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		opts    Options
		level   zapcore.Level
		wantErr bool
	}{
		{"prod defaults to info", "prod", Options{}, zapcore.InfoLevel, false},
		{"local defaults to debug", "local", Options{}, zapcore.DebugLevel, false},
		{"level override", "prod", Options{Level: "warn"}, zapcore.WarnLevel, false},
		{"json on dev", "dev", Options{Encoding: "json", Service: "docfind"}, zapcore.DebugLevel, false},
		{"unknown env", "staging", Options{}, 0, true},
		{"bad level", "prod", Options{Level: "loud"}, 0, true},
		{"bad encoding", "prod", Options{Encoding: "xml"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(tt.env, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !l.Core().Enabled(tt.level) {
				t.Errorf("level %s should be enabled", tt.level)
			}
			if tt.level > zapcore.DebugLevel && l.Core().Enabled(tt.level-1) {
				t.Errorf("level %s should be disabled", tt.level-1)
			}
		})
	}
}

func TestFromContext_Nop(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected a no-op logger")
	}
}

func TestFromContextOr(t *testing.T) {
	fallback := zap.NewExample()
	if got := FromContextOr(context.Background(), fallback); got != fallback {
		t.Error("expected the fallback without a context logger")
	}
	scoped := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), scoped)
	if got := FromContextOr(ctx, fallback); got != scoped {
		t.Error("expected the context logger")
	}
}

func TestWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))

	ctx = With(ctx, zap.String("query", "đại học"))
	FromContext(ctx).Info("searched")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["query"]; got != "đại học" {
		t.Errorf("query = %v", got)
	}
}

func TestWith_NoLogger(t *testing.T) {
	ctx := context.Background()
	if With(ctx, zap.String("k", "v")) != ctx {
		t.Error("context without logger should be returned unchanged")
	}
}
