package manager

import (
	"context"
	"testing"
	"time"

	"endpointd/pkg/types"
)

func TestAdmissionTooBusy(t *testing.T) {
	m := NewWithConfig(ManagerConfig{
		ArtifactCacheDir: t.TempDir(),
		WarmupDelay:      1,
		MaxQueueDepth:    1,
		MaxWait:          20 * time.Millisecond,
	})
	if _, err := m.Deploy(context.Background(), types.EndpointSpec{
		Name: "busy", ModelData: writeTestArtifact(t), InstanceCount: 1,
	}); err != nil {
		t.Fatalf("deploy: %v", err)
	}

	// Occupy the single in-flight slot and the only queue slot.
	m.mu.RLock()
	inst := m.endpoints["busy"]
	m.mu.RUnlock()
	inst.genCh <- struct{}{}
	inst.queueCh <- struct{}{}

	_, _, err := m.Invoke(context.Background(), "busy", "text/csv", "", []byte("1,2,3\n"))
	if !IsTooBusy(err) {
		t.Fatalf("expected too-busy, got %v", err)
	}

	// Free the slots; the next invocation goes through.
	<-inst.genCh
	<-inst.queueCh
	if _, _, err := m.Invoke(context.Background(), "busy", "text/csv", "", []byte("1,2,3\n")); err != nil {
		t.Fatalf("invoke after release: %v", err)
	}
}

func TestAdmissionRespectsCanceledContext(t *testing.T) {
	m := newTestManager(t)
	deployTestEndpoint(t, m, "ctx-ep")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.beginScore(ctx, "ctx-ep"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
