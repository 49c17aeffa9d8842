package manager

import (
	"sort"
	"sync"
	"time"

	"endpointd/internal/artifact"
	"endpointd/internal/scorer"
	"endpointd/pkg/types"
)

type Manager struct {
	mu          sync.RWMutex
	endpoints   map[string]*endpointInstance
	definitions map[string]types.EndpointSpec
	closed      bool

	resolver   *artifact.Resolver
	loadScorer func(path string) (scorer.Scorer, error)
	publisher  EventPublisher

	// Queue config
	maxQueueDepth int
	maxWait       time.Duration
	drainTimeout  time.Duration
	warmupDelay   time.Duration

	startTime time.Time

	// Counters (guarded by mu)
	deploysTotal     uint64
	deletesTotal     uint64
	invocationsTotal uint64
}

// Describe returns the wire view of one endpoint.
func (m *Manager) Describe(name string) (types.Endpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.endpoints[name]
	if !ok {
		return types.Endpoint{}, ErrEndpointNotFound(name)
	}
	return inst.view(), nil
}

// List returns all known endpoints sorted by name.
func (m *Manager) List() []types.Endpoint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Endpoint, 0, len(m.endpoints))
	for _, inst := range m.endpoints {
		out = append(out, inst.view())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Definition returns the retained deployable spec for a name, if any.
func (m *Manager) Definition(name string) (types.EndpointSpec, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	def, ok := m.definitions[name]
	return def, ok
}

// Ready reports whether the manager accepts work.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.closed
}
