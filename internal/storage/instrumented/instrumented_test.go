package instrumented

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"libris/internal/models"
	"libris/internal/storage/memory"
)

func TestInstrumentedStore(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	reg := prometheus.NewRegistry()
	s := New(mem, reg)

	if err := s.SaveUser(ctx, models.User{ID: "u1", Name: "Alice"}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if _, _, err := s.LoadUser(ctx, "u1"); err != nil {
		t.Fatalf("LoadUser failed: %v", err)
	}
	if _, _, err := s.LoadUser(ctx, "missing"); err != nil {
		t.Fatalf("LoadUser for absent id failed: %v", err)
	}

	if got := testutil.ToFloat64(s.ops.WithLabelValues("save", "user", "ok")); got != 1 {
		t.Errorf("save/user/ok = %v, want 1", got)
	}
	// An absent record is still a successful load.
	if got := testutil.ToFloat64(s.ops.WithLabelValues("load", "user", "ok")); got != 2 {
		t.Errorf("load/user/ok = %v, want 2", got)
	}

	// Writes go through to the wrapped backend.
	user, found, err := mem.LoadUser(ctx, "u1")
	if err != nil || !found {
		t.Fatalf("wrapped store LoadUser = (%v, %v), want found", found, err)
	}
	if user.Name != "Alice" {
		t.Errorf("user name %q", user.Name)
	}

	if s.Unwrap() != mem {
		t.Error("Unwrap did not return the decorated backend")
	}
}
