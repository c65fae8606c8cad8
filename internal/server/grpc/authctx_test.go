package grpcserver

import (
	"context"
	"testing"
)

func TestWithUser_AndFromCtx(t *testing.T) {
	t.Parallel()

	if _, ok := UserIDFromCtx(context.Background()); ok {
		t.Fatalf("empty ctx must have no user")
	}
	if _, ok := CompanyFromCtx(context.Background()); ok {
		t.Fatalf("empty ctx must have no company")
	}

	ctx := WithUser(context.Background(), "u1", "c1")
	if id, ok := UserIDFromCtx(ctx); !ok || id != "u1" {
		t.Fatalf("user=%q ok=%v, want u1", id, ok)
	}
	if c, ok := CompanyFromCtx(ctx); !ok || c != "c1" {
		t.Fatalf("company=%q ok=%v, want c1", c, ok)
	}

	bad := context.WithValue(context.Background(), userIDKey, 42)
	if _, ok := UserIDFromCtx(bad); ok {
		t.Fatalf("non-string user id must be ignored")
	}
}
