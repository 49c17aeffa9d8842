package types

// EndpointsResponse wraps the list returned by GET /endpoints.
type EndpointsResponse struct {
	Endpoints []Endpoint `json:"endpoints"`
}

// InvocationResponse is the JSON body produced by an invocation when the
// endpoint's accept type is application/json.
type InvocationResponse struct {
	// One prediction per input row, in input order.
	// example: [0.87]
	Predictions []float64 `json:"predictions"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: endpoint not found: xgboost-demo
	Error string `json:"error" example:"endpoint not found: xgboost-demo"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// EndpointStatus summarizes one endpoint for GET /status.
type EndpointStatus struct {
	// Endpoint name.
	// example: xgboost-demo
	Name string `json:"name" example:"xgboost-demo"`
	// Current lifecycle state.
	// example: running
	State string `json:"state" example:"running"`
	// Backing instance type.
	// example: local
	InstanceType string `json:"instance_type" example:"local"`
	// Number of backing instances.
	// example: 1
	InstanceCount int `json:"instance_count" example:"1"`
	// Last invocation time (unix seconds), zero if never invoked.
	LastInvoked int64 `json:"last_invoked_unix,omitempty"`
	// Current queue length for pending invocations.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// In-flight invocations being scored right now.
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Maximum queued invocations before backpressure triggers.
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Live endpoints (deploying, running, deleting).
	Endpoints []EndpointStatus `json:"endpoints"`
	// Retained endpoint definitions reusable for redeploy-by-name.
	Definitions []string `json:"definitions,omitempty"`
	// Optional top-level error message.
	Error string `json:"error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	ServerTimeUnix int64 `json:"server_time_unix"`
	// Total successful deploys since start.
	// example: 3
	DeploysTotal uint64 `json:"deploys_total" example:"3"`
	// Total deletes since start (including no-op deletes).
	DeletesTotal uint64 `json:"deletes_total"`
	// Total invocations served since start.
	// example: 42
	InvocationsTotal uint64 `json:"invocations_total" example:"42"`
	// Number of endpoints currently provisioning.
	DeployingCount int `json:"deploying_count"`
	// Number of endpoints currently draining before removal.
	DeletingCount int `json:"deleting_count"`
}
