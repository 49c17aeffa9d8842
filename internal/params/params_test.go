package params

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeParams(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadFileJSON(t *testing.T) {
	p := writeParams(t, "params.json", `{"bucket":"ml-artifacts","local_model_data":"/tmp/model.json"}`)
	s, err := LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	v, err := s.Get(context.Background(), KeyBucket)
	if err != nil || v != "ml-artifacts" {
		t.Fatalf("got %q err=%v", v, err)
	}
	v, err = s.Get(context.Background(), KeyLocalModelData)
	if err != nil || v != "/tmp/model.json" {
		t.Fatalf("got %q err=%v", v, err)
	}
}

func TestLoadFileYAML(t *testing.T) {
	p := writeParams(t, "params.yaml", "bucket: ml-artifacts\ntuning_job_name: xgb-tune-42\n")
	s, err := LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	v, err := s.Get(context.Background(), KeyTuningJobName)
	if err != nil || v != "xgb-tune-42" {
		t.Fatalf("got %q err=%v", v, err)
	}
}

func TestLoadFileTOML(t *testing.T) {
	p := writeParams(t, "params.toml", "role = \"arn:aws:iam::123456789012:role/service\"\n")
	s, err := LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	v, err := s.Get(context.Background(), KeyRole)
	if err != nil || v != "arn:aws:iam::123456789012:role/service" {
		t.Fatalf("got %q err=%v", v, err)
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	p := writeParams(t, "params.ini", "bucket=x")
	if _, err := LoadFile(p); err == nil {
		t.Fatalf("expected error for .ini")
	}
}

func TestMissingKeyIsTyped(t *testing.T) {
	s := NewStaticStore(map[string]string{KeyBucket: "b"})
	_, err := s.Get(context.Background(), KeyRemoteModelData)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKeyNotFound(err) {
		t.Fatalf("expected key-not-found, got %v", err)
	}
	if IsKeyNotFound(os.ErrNotExist) {
		t.Fatalf("unrelated error misclassified")
	}
}
