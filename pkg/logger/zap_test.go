package logger

import (
	"context"
	"testing"

	"github.com/Gunvolt24/fastfood_storefront/pkg/ctxmeta"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	base := zap.New(core)
	return &ZapLogger{base: base, sugar: base.Sugar()}, logs
}

func TestZapLogger_AddsContextFields(t *testing.T) {
	l, logs := newObserved()

	ctx := ctxmeta.WithRequestID(context.Background(), "req-1")
	ctx = ctxmeta.WithSessionID(ctx, "sess-1")
	l.Infof(ctx, "cart refreshed lines=%d", 2)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" || fields["session_id"] != "sess-1" {
		t.Fatalf("context fields missing: %v", fields)
	}
	if entries[0].Message != "cart refreshed lines=2" {
		t.Fatalf("unexpected message %q", entries[0].Message)
	}
}

func TestZapLogger_Levels(t *testing.T) {
	l, logs := newObserved()
	ctx := context.Background()

	l.Debugf(ctx, "d")
	l.Infof(ctx, "i")
	l.Warnf(ctx, "w")
	l.Errorf(ctx, "e")

	if got := logs.Len(); got != 4 {
		t.Fatalf("want 4 entries, got %d", got)
	}
	if logs.FilterLevelExact(zap.WarnLevel).Len() != 1 || logs.FilterLevelExact(zap.ErrorLevel).Len() != 1 {
		t.Fatalf("levels not mapped correctly")
	}
}

func TestNewZapLogger_DevAndProd(t *testing.T) {
	for _, prod := range []bool{false, true} {
		l, cleanup, err := NewZapLogger(prod)
		if err != nil {
			t.Fatalf("NewZapLogger(%v): %v", prod, err)
		}
		if l.Base() == nil || l.Sugared() == nil {
			t.Fatalf("logger not initialised")
		}
		_ = cleanup()
	}
}
