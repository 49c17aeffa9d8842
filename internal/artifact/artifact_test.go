package artifact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestResolveLocalPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "model.json")
	if err := os.WriteFile(p, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := NewResolver(t.TempDir())
	got, err := r.Resolve(context.Background(), Ref{Location: p})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != p {
		t.Fatalf("expected %q got %q", p, got)
	}
}

func TestResolveMissingLocal(t *testing.T) {
	r := NewResolver(t.TempDir())
	if _, err := r.Resolve(context.Background(), Ref{Location: filepath.Join(t.TempDir(), "nope.json")}); err == nil {
		t.Fatalf("expected error for missing artifact")
	}
}

func TestResolveEmptyLocation(t *testing.T) {
	r := NewResolver(t.TempDir())
	if _, err := r.Resolve(context.Background(), Ref{}); err == nil {
		t.Fatalf("expected error for empty location")
	}
}

func TestResolveRemoteCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"format":"linear"}`))
	}))
	defer srv.Close()

	r := NewResolver(t.TempDir())
	p1, err := r.Resolve(context.Background(), Ref{Location: srv.URL + "/model.json"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	b, err := os.ReadFile(p1)
	if err != nil || string(b) != `{"format":"linear"}` {
		t.Fatalf("cached content %q err=%v", b, err)
	}
	// second resolve must hit the cache, not the server
	p2, err := r.Resolve(context.Background(), Ref{Location: srv.URL + "/model.json"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("cache paths differ: %q vs %q", p1, p2)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected 1 fetch, got %d", hits)
	}
}

func TestResolveRemoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()
	r := NewResolver(t.TempDir())
	if _, err := r.Resolve(context.Background(), Ref{Location: srv.URL + "/missing.json"}); err == nil {
		t.Fatalf("expected error for 404 artifact")
	}
}
