package middleware

import (
	"context"
	"testing"

	blog "github.com/Esteban8482/blog-platform"
)

func TestPrincipalRoundtrip(t *testing.T) {
	p := &blog.Principal{ID: "u1", DisplayName: "alice"}
	ctx := WithPrincipal(context.Background(), p)

	got := PrincipalFrom(ctx)
	if got == nil || got.ID != "u1" {
		t.Fatalf("got %+v, want the stored principal", got)
	}
}

func TestPrincipalFromAnonymousContext(t *testing.T) {
	if p := PrincipalFrom(context.Background()); p != nil {
		t.Fatalf("got %+v, want nil for an anonymous context", p)
	}
}

// The key is an unexported struct type, so a key of any spelling set by
// another package can never alias the principal entry.
func TestPrincipalKeyDoesNotCollideWithForeignKeys(t *testing.T) {
	type foreignKey string
	ctx := context.WithValue(context.Background(), foreignKey("principal"), &blog.Principal{ID: "intruder"})
	if p := PrincipalFrom(ctx); p != nil {
		t.Fatalf("got %+v, want nil for a foreign-keyed value", p)
	}
}
