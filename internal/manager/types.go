package manager

import (
	"time"

	"endpointd/internal/scorer"
	"endpointd/pkg/types"
)

// endpointInstance is the live record for one endpoint.
type endpointInstance struct {
	spec          types.EndpointSpec
	state         types.EndpointState
	failureReason string
	createdAt     time.Time
	lastInvoked   time.Time
	// model runtime, set once the artifact is loaded
	scorer scorer.Scorer
	// Queueing primitives
	genCh   chan struct{} // size 1: single in-flight scoring per endpoint
	queueCh chan struct{} // buffered: queue slots
}

// view projects the instance into its wire representation.
func (inst *endpointInstance) view() types.Endpoint {
	ep := types.Endpoint{
		Name:          inst.spec.Name,
		ModelData:     inst.spec.ModelData,
		JobName:       inst.spec.JobName,
		InstanceType:  inst.spec.InstanceType,
		InstanceCount: inst.spec.InstanceCount,
		ContentType:   inst.spec.ContentType,
		Accept:        inst.spec.Accept,
		State:         inst.state,
		FailureReason: inst.failureReason,
		CreatedAt:     inst.createdAt.Unix(),
	}
	if !inst.lastInvoked.IsZero() {
		ep.LastInvoked = inst.lastInvoked.Unix()
	}
	return ep
}

// live reports whether the instance occupies its name (blocks reuse).
func (inst *endpointInstance) live() bool {
	switch inst.state {
	case types.StateDeploying, types.StateRunning, types.StateDeleting:
		return true
	}
	return false
}
