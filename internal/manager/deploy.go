package manager

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"endpointd/internal/artifact"
	"endpointd/pkg/types"
)

// Deploy provisions an endpoint and blocks until it is running or failed.
// An empty spec name gets a generated one. A spec naming a retained
// definition may omit model data and instance settings; the definition
// fills them in. Failure to reach running returns a deploy-failed error and
// leaves the endpoint visible in the failed state.
func (m *Manager) Deploy(ctx context.Context, sp types.EndpointSpec) (types.Endpoint, error) {
	sp = m.applyDefinition(sp)
	if sp.Name == "" {
		sp.Name = "ep-" + uuid.NewString()[:8]
	}
	if sp.ModelData == "" {
		return types.Endpoint{}, ErrValidation("model_data is required")
	}
	if sp.InstanceCount < 1 {
		return types.Endpoint{}, ErrValidation("instance_count must be >= 1")
	}
	if sp.InstanceType == "" {
		sp.InstanceType = "local"
	}
	if sp.ContentType == "" {
		sp.ContentType = contentTypeCSV
	}
	if sp.Accept == "" {
		sp.Accept = contentTypeJSON
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return types.Endpoint{}, errors.New("manager is shut down")
	}
	if prev, ok := m.endpoints[sp.Name]; ok && prev.live() {
		m.mu.Unlock()
		return types.Endpoint{}, conflictError{name: sp.Name}
	}
	inst := &endpointInstance{
		spec:      sp,
		state:     types.StateDeploying,
		createdAt: time.Now(),
		genCh:     make(chan struct{}, 1),
		queueCh:   make(chan struct{}, m.maxQueueDepth),
	}
	m.endpoints[sp.Name] = inst
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "deploy_start", Endpoint: sp.Name, Fields: map[string]any{"model_data": sp.ModelData}})

	fail := func(reason string) (types.Endpoint, error) {
		m.mu.Lock()
		inst.state = types.StateFailed
		inst.failureReason = reason
		m.mu.Unlock()
		m.publisher.Publish(Event{Name: "deploy_failed", Endpoint: sp.Name, Fields: map[string]any{"reason": reason}})
		return inst.view(), deployFailedError{name: sp.Name, reason: reason}
	}

	// Resolve the artifact and load the model outside the lock; both can be
	// slow (remote fetch, large artifact).
	path, err := m.resolver.Resolve(ctx, artifact.Ref{Location: sp.ModelData, JobName: sp.JobName})
	if err != nil {
		return fail(err.Error())
	}
	sc, err := m.loadScorer(path)
	if err != nil {
		return fail(err.Error())
	}

	// Simulate instance warmup; real platforms take minutes here.
	select {
	case <-time.After(m.warmupDelay):
	case <-ctx.Done():
		return fail(ctx.Err().Error())
	}

	m.mu.Lock()
	inst.scorer = sc
	inst.state = types.StateRunning
	m.definitions[sp.Name] = sp
	m.deploysTotal++
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "deploy_ready", Endpoint: sp.Name, Fields: map[string]any{}})
	return inst.view(), nil
}

// applyDefinition fills a sparse spec from the retained definition for its
// name, allowing redeploy without restating instance type/count.
func (m *Manager) applyDefinition(sp types.EndpointSpec) types.EndpointSpec {
	if sp.Name == "" {
		return sp
	}
	m.mu.RLock()
	def, ok := m.definitions[sp.Name]
	m.mu.RUnlock()
	if !ok {
		return sp
	}
	if sp.ModelData == "" {
		sp.ModelData = def.ModelData
	}
	if sp.JobName == "" {
		sp.JobName = def.JobName
	}
	if sp.InstanceType == "" {
		sp.InstanceType = def.InstanceType
	}
	if sp.InstanceCount == 0 {
		sp.InstanceCount = def.InstanceCount
	}
	if sp.ContentType == "" {
		sp.ContentType = def.ContentType
	}
	if sp.Accept == "" {
		sp.Accept = def.Accept
	}
	return sp
}
