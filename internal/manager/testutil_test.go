package manager

import (
	"os"
	"path/filepath"
	"testing"
)

// testArtifact is a tiny boosted-tree dump with 3 input features.
// f0 < 2.0 contributes -0.2 else 0.4; base score 0.5.
const testArtifact = `{
  "format": "gbtree-json",
  "num_features": 3,
  "base_score": 0.5,
  "trees": [
    {"nodes": [
      {"feature": 0, "threshold": 2.0, "left": 1, "right": 2},
      {"leaf": -0.2},
      {"leaf": 0.4}
    ]}
  ]
}`

func writeTestArtifact(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "xgboost-model.json")
	if err := os.WriteFile(p, []byte(testArtifact), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return p
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewWithConfig(ManagerConfig{
		ArtifactCacheDir: t.TempDir(),
		WarmupDelay:      1, // effectively immediate
	})
}
