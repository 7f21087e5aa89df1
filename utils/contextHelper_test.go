package utils

import (
	"context"
	"testing"
)

func TestContextValueRoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := GetUserIdFromContext(ctx); ok {
		t.Fatal("empty context must not report a user id")
	}

	ctx = SetUserIdInContext(ctx, 42)
	ctx = SetUserNameInContext(ctx, "ReconcileRun")
	ctx = SetCorrelationIdInContext(ctx, "run-abc123")

	if userId, ok := GetUserIdFromContext(ctx); !ok || userId != 42 {
		t.Fatalf("expected user id 42, got %d (ok=%v)", userId, ok)
	}
	if userName, ok := GetUserNameFromContext(ctx); !ok || userName != "ReconcileRun" {
		t.Fatalf("expected user name ReconcileRun, got %q (ok=%v)", userName, ok)
	}
	if correlationId, ok := GetCorrelationIdFromContext(ctx); !ok || correlationId != "run-abc123" {
		t.Fatalf("expected correlation id run-abc123, got %q (ok=%v)", correlationId, ok)
	}
}
