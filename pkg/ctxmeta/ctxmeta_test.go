package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/fastfood_storefront/pkg/ctxmeta"
)

func TestWithRequestID_PutAndGet(t *testing.T) {
	parent := context.Background()

	ctx := ctxmeta.WithRequestID(parent, "req-123")
	got, ok := ctxmeta.RequestIDFromContext(ctx)
	if !ok || got != "req-123" {
		t.Fatalf("want ok=true, id=req-123; got ok=%v id=%q", ok, got)
	}
	if _, parentOk := ctxmeta.RequestIDFromContext(parent); parentOk {
		t.Fatalf("parent context must not contain request_id")
	}
}

func TestWithSessionID_PutAndGet(t *testing.T) {
	ctx := ctxmeta.WithSessionID(context.Background(), "sess-9")
	got, ok := ctxmeta.SessionIDFromContext(ctx)
	if !ok || got != "sess-9" {
		t.Fatalf("want sess-9, got %q ok=%v", got, ok)
	}
	// ключи не пересекаются
	if _, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		t.Fatalf("session id must not be visible as request id")
	}
}

func TestWithRequestID_EmptyID_NoChange(t *testing.T) {
	parent := context.Background()
	if ctx := ctxmeta.WithRequestID(parent, ""); ctx != parent {
		t.Fatalf("WithRequestID with empty id must return the same ctx")
	}
	if ctx := ctxmeta.WithSessionID(parent, ""); ctx != parent {
		t.Fatalf("WithSessionID with empty id must return the same ctx")
	}
}

func TestWithRequestID_NilCtx(t *testing.T) {
	var nilCtx context.Context
	if ctx := ctxmeta.WithRequestID(nilCtx, "req-1"); ctx != nil {
		t.Fatalf("WithRequestID(nil, ...) must return nil")
	}
	if id, ok := ctxmeta.RequestIDFromContext(nilCtx); ok || id != "" {
		t.Fatalf("RequestIDFromContext(nil) must be empty/false, got id=%q ok=%v", id, ok)
	}
}

func TestRequestIDFromContext_EmptyStoredValue(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxmeta.KeyRequestID, "")
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok || id != "" {
		t.Fatalf("empty stored value must be treated as absent, got id=%q ok=%v", id, ok)
	}
}

func TestRequestIDFromContext_ForeignKeyDoesNotWork(t *testing.T) {
	type otherKey struct{}
	ctx := context.WithValue(context.Background(), otherKey{}, "req-xyz")
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok || id != "" {
		t.Fatalf("foreign key must not be recognized, got id=%q ok=%v", id, ok)
	}
}
