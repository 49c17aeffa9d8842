package manager

import (
	"context"
	"sort"
	"time"

	"endpointd/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := types.StatusResponse{
		UptimeSeconds:    int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix:   time.Now().Unix(),
		DeploysTotal:     m.deploysTotal,
		DeletesTotal:     m.deletesTotal,
		InvocationsTotal: m.invocationsTotal,
	}
	resp.Endpoints = make([]types.EndpointStatus, 0, len(m.endpoints))
	deploying := 0
	deleting := 0
	for _, inst := range m.endpoints {
		if inst.state == types.StateDeploying {
			deploying++
		}
		if inst.state == types.StateDeleting {
			deleting++
		}
		st := types.EndpointStatus{
			Name:          inst.spec.Name,
			State:         string(inst.state),
			InstanceType:  inst.spec.InstanceType,
			InstanceCount: inst.spec.InstanceCount,
			QueueLen:      len(inst.queueCh),
			Inflight:      len(inst.genCh),
			MaxQueueDepth: cap(inst.queueCh),
		}
		if !inst.lastInvoked.IsZero() {
			st.LastInvoked = inst.lastInvoked.Unix()
		}
		resp.Endpoints = append(resp.Endpoints, st)
	}
	sort.Slice(resp.Endpoints, func(i, j int) bool { return resp.Endpoints[i].Name < resp.Endpoints[j].Name })
	for name := range m.definitions {
		resp.Definitions = append(resp.Definitions, name)
	}
	sort.Strings(resp.Definitions)
	resp.DeployingCount = deploying
	resp.DeletingCount = deleting
	return resp
}

// Close drains and removes every endpoint, then refuses further work.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	names := make([]string, 0, len(m.endpoints))
	for name := range m.endpoints {
		names = append(names, name)
	}
	m.mu.Unlock()
	for _, name := range names {
		if err := m.Delete(ctx, name, false); err != nil {
			return err
		}
	}
	return nil
}
