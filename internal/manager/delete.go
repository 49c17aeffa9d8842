package manager

import (
	"context"
	"time"

	"endpointd/pkg/types"
)

// Delete tears down an endpoint by name. Deleting an absent or
// already-deleted endpoint is a no-op success so cleanup scripts can run
// safely. When deleteConfig is true the retained endpoint definition is
// removed too, otherwise it stays reusable for redeploy-by-name.
func (m *Manager) Delete(ctx context.Context, name string, deleteConfig bool) error {
	m.mu.Lock()
	inst, ok := m.endpoints[name]
	if !ok {
		if deleteConfig {
			delete(m.definitions, name)
		}
		m.deletesTotal++
		m.mu.Unlock()
		return nil
	}
	inst.state = types.StateDeleting
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "delete_start", Endpoint: name, Fields: map[string]any{}})

	// Drain: wait for queued and in-flight invocations, bounded.
	deadline := time.Now().Add(m.drainTimeout)
	for {
		qlen := len(inst.queueCh)
		inflight := len(inst.genCh)
		if qlen == 0 && inflight == 0 {
			break
		}
		if time.Now().After(deadline) {
			m.publisher.Publish(Event{Name: "delete_drain_timeout", Endpoint: name, Fields: map[string]any{"inflight": inflight, "queue": qlen}})
			break
		}
		// teardown proceeds even if the caller's context is done
		time.Sleep(10 * time.Millisecond)
	}

	m.mu.Lock()
	delete(m.endpoints, name)
	if deleteConfig {
		delete(m.definitions, name)
	}
	m.deletesTotal++
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "delete_done", Endpoint: name, Fields: map[string]any{}})
	return nil
}
