package manager

import (
	"context"
	"strings"
	"testing"
	"time"

	"endpointd/pkg/types"
)

func TestNewWithConfigDefaults(t *testing.T) {
	m := NewWithConfig(ManagerConfig{})
	if m.maxQueueDepth != defaultMaxQueueDepth {
		t.Fatalf("expected default maxQueueDepth=%d got %d", defaultMaxQueueDepth, m.maxQueueDepth)
	}
	if m.maxWait != defaultMaxWait {
		t.Fatalf("expected default maxWait=%v got %v", defaultMaxWait, m.maxWait)
	}
	if m.drainTimeout != defaultDrainTimeout {
		t.Fatalf("expected default drainTimeout=%v got %v", defaultDrainTimeout, m.drainTimeout)
	}
}

func TestDeployReachesRunning(t *testing.T) {
	m := newTestManager(t)
	ep, err := m.Deploy(context.Background(), types.EndpointSpec{
		Name:          "xgb-demo",
		ModelData:     writeTestArtifact(t),
		InstanceCount: 1,
	})
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if ep.State != types.StateRunning {
		t.Fatalf("state = %s", ep.State)
	}
	if ep.ContentType != "text/csv" || ep.Accept != "application/json" {
		t.Fatalf("serialization defaults not applied: %+v", ep)
	}
	got, err := m.Describe("xgb-demo")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if got.State != types.StateRunning {
		t.Fatalf("describe state = %s", got.State)
	}
}

func TestDeployValidation(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Deploy(context.Background(), types.EndpointSpec{Name: "x", ModelData: "m.json", InstanceCount: 0})
	if !IsValidation(err) {
		t.Fatalf("expected validation error for count=0, got %v", err)
	}
	_, err = m.Deploy(context.Background(), types.EndpointSpec{Name: "x", InstanceCount: 1})
	if !IsValidation(err) {
		t.Fatalf("expected validation error for missing model data, got %v", err)
	}
}

func TestDeployGeneratesName(t *testing.T) {
	m := newTestManager(t)
	ep, err := m.Deploy(context.Background(), types.EndpointSpec{
		ModelData:     writeTestArtifact(t),
		InstanceCount: 1,
	})
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if !strings.HasPrefix(ep.Name, "ep-") || len(ep.Name) <= 3 {
		t.Fatalf("unexpected generated name %q", ep.Name)
	}
}

func TestDeployDuplicateNameConflicts(t *testing.T) {
	m := newTestManager(t)
	sp := types.EndpointSpec{Name: "dup", ModelData: writeTestArtifact(t), InstanceCount: 1}
	if _, err := m.Deploy(context.Background(), sp); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	_, err := m.Deploy(context.Background(), sp)
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeployBadArtifactFails(t *testing.T) {
	m := newTestManager(t)
	ep, err := m.Deploy(context.Background(), types.EndpointSpec{
		Name:          "broken",
		ModelData:     "/does/not/exist.json",
		InstanceCount: 1,
	})
	if !IsDeployFailed(err) {
		t.Fatalf("expected deploy-failed, got %v", err)
	}
	if ep.State != types.StateFailed || ep.FailureReason == "" {
		t.Fatalf("expected failed state with reason, got %+v", ep)
	}
	// the failed endpoint stays visible for describe
	got, err := m.Describe("broken")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if got.State != types.StateFailed {
		t.Fatalf("describe state = %s", got.State)
	}
	// and its name is reusable
	if _, err := m.Deploy(context.Background(), types.EndpointSpec{
		Name: "broken", ModelData: writeTestArtifact(t), InstanceCount: 1,
	}); err != nil {
		t.Fatalf("redeploy over failed: %v", err)
	}
}

func TestRedeployFromRetainedDefinition(t *testing.T) {
	m := newTestManager(t)
	full := types.EndpointSpec{
		Name:          "keep",
		ModelData:     writeTestArtifact(t),
		InstanceType:  "local",
		InstanceCount: 2,
	}
	if _, err := m.Deploy(context.Background(), full); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if err := m.Delete(context.Background(), "keep", false); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// redeploy restating only the name
	ep, err := m.Deploy(context.Background(), types.EndpointSpec{Name: "keep"})
	if err != nil {
		t.Fatalf("redeploy: %v", err)
	}
	if ep.InstanceCount != 2 || ep.ModelData != full.ModelData {
		t.Fatalf("definition not applied: %+v", ep)
	}

	// with the definition deleted too, the sparse redeploy must fail
	if err := m.Delete(context.Background(), "keep", true); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Deploy(context.Background(), types.EndpointSpec{Name: "keep"}); !IsValidation(err) {
		t.Fatalf("expected validation error after config delete, got %v", err)
	}
}

func TestListSortedByName(t *testing.T) {
	m := newTestManager(t)
	art := writeTestArtifact(t)
	for _, name := range []string{"b-ep", "a-ep"} {
		if _, err := m.Deploy(context.Background(), types.EndpointSpec{Name: name, ModelData: art, InstanceCount: 1}); err != nil {
			t.Fatalf("deploy %s: %v", name, err)
		}
	}
	out := m.List()
	if len(out) != 2 || out[0].Name != "a-ep" || out[1].Name != "b-ep" {
		t.Fatalf("unexpected list %+v", out)
	}
}

func TestCloseRemovesEndpointsAndRefusesDeploys(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Deploy(context.Background(), types.EndpointSpec{Name: "e", ModelData: writeTestArtifact(t), InstanceCount: 1}); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if !m.Ready() {
		t.Fatalf("expected ready before close")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if m.Ready() {
		t.Fatalf("expected not ready after close")
	}
	if _, err := m.Describe("e"); !IsEndpointNotFound(err) {
		t.Fatalf("expected not-found after close, got %v", err)
	}
	if _, err := m.Deploy(context.Background(), types.EndpointSpec{Name: "f", ModelData: writeTestArtifact(t), InstanceCount: 1}); err == nil {
		t.Fatalf("expected deploy error after close")
	}
}
