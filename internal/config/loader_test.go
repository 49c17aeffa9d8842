package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCfg(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	p := writeCfg(t, "c.yaml", "addr: \":9090\"\nmax_queue_depth: 8\ncors_enabled: true\ncors_origins: [\"http://localhost:5173\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.MaxQueueDepth != 8 || !cfg.CORSEnabled || len(cfg.CORSOrigins) != 1 {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	p := writeCfg(t, "c.json", `{"addr":":7070","artifact_cache_dir":"/tmp/cache"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ArtifactCacheDir != "/tmp/cache" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	p := writeCfg(t, "c.toml", "addr = \":6060\"\nmax_wait_seconds = 10\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":6060" || cfg.MaxWaitSeconds != 10 {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := Load(writeCfg(t, "c.ini", "addr=:1")); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
	if _, err := Load(writeCfg(t, "c.json", "{nope")); err == nil {
		t.Fatalf("expected parse error")
	}
}
