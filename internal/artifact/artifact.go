// Package artifact resolves trained-model artifact references to local
// files. An artifact is opaque bytes; only the scorer that eventually loads
// it interprets the payload.
package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"endpointd/internal/common/fsutil"
)

// Ref points at a trained model artifact.
type Ref struct {
	// Location is a local path or an http(s) URI.
	Location string
	// JobName is the training or tuning job that produced the artifact.
	// Informational only.
	JobName string
}

// Resolver turns artifact references into local file paths, downloading
// remote artifacts into a cache directory keyed by URI hash.
type Resolver struct {
	cacheDir string
	httpc    *http.Client
}

// NewResolver creates a resolver with the given cache directory. The
// directory is created on first remote fetch, not here.
func NewResolver(cacheDir string) *Resolver {
	return &Resolver{
		cacheDir: cacheDir,
		httpc:    &http.Client{Timeout: 2 * time.Minute},
	}
}

// Resolve returns a local path for the reference. Local paths are expanded
// and verified; http(s) URIs are fetched once and served from cache after.
func (r *Resolver) Resolve(ctx context.Context, ref Ref) (string, error) {
	loc := strings.TrimSpace(ref.Location)
	if loc == "" {
		return "", fmt.Errorf("empty artifact location")
	}
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return r.fetch(ctx, loc)
	}
	p, err := fsutil.ExpandHome(loc)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}
	if !fsutil.PathExists(abs) {
		return "", fmt.Errorf("artifact not found: %s", abs)
	}
	return abs, nil
}

func (r *Resolver) fetch(ctx context.Context, uri string) (string, error) {
	dir, err := fsutil.EnsureDir(r.cacheDir)
	if err != nil {
		return "", fmt.Errorf("artifact cache: %w", err)
	}
	sum := sha256.Sum256([]byte(uri))
	dst := filepath.Join(dir, hex.EncodeToString(sum[:8])+"-"+filepath.Base(uri))
	if fsutil.PathExists(dst) {
		return dst, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch artifact: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch artifact: %s returned %d", uri, resp.StatusCode)
	}

	// Write to a temp file first so a partial download never looks cached.
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return dst, nil
}
