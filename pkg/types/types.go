package types

// EndpointState is the lifecycle state of a deployed endpoint.
type EndpointState string

const (
	StateUndeployed EndpointState = "undeployed"
	StateDeploying  EndpointState = "deploying"
	StateRunning    EndpointState = "running"
	StateDeleting   EndpointState = "deleting"
	StateDeleted    EndpointState = "deleted"
	StateFailed     EndpointState = "failed"
)

// EndpointSpec describes what to deploy. It is both the create-request body
// and the reusable endpoint definition retained after a delete (unless the
// caller asked for the definition to be removed too).
type EndpointSpec struct {
	// Endpoint name, unique among live endpoints. Empty lets the server
	// generate one.
	// example: xgboost-2026-08-29-10-15-01
	Name string `json:"name,omitempty" example:"xgboost-2026-08-29-10-15-01"`
	// Location of the trained model artifact: local path or http(s)/s3 URI.
	// example: /tmp/model/xgboost-model.json
	ModelData string `json:"model_data" example:"/tmp/model/xgboost-model.json"`
	// Training or tuning job that produced the artifact, informational.
	// example: xgboost-tuning-2026-08-28
	JobName string `json:"job_name,omitempty" example:"xgboost-tuning-2026-08-28"`
	// Instance type backing the endpoint.
	// example: local
	InstanceType string `json:"instance_type" example:"local"`
	// Number of instances, must be >= 1.
	// example: 1
	InstanceCount int `json:"instance_count" example:"1"`
	// Request content type the endpoint expects. Defaults to text/csv.
	// example: text/csv
	ContentType string `json:"content_type,omitempty" example:"text/csv"`
	// Response content type the endpoint produces. Defaults to application/json.
	// example: application/json
	Accept string `json:"accept,omitempty" example:"application/json"`
}

// Endpoint is the server-side view of a deployed (or deploying, or failed)
// endpoint returned by create/describe/list.
type Endpoint struct {
	Name          string        `json:"name" example:"xgboost-2026-08-29-10-15-01"`
	ModelData     string        `json:"model_data" example:"/tmp/model/xgboost-model.json"`
	JobName       string        `json:"job_name,omitempty"`
	InstanceType  string        `json:"instance_type" example:"local"`
	InstanceCount int           `json:"instance_count" example:"1"`
	ContentType   string        `json:"content_type" example:"text/csv"`
	Accept        string        `json:"accept" example:"application/json"`
	// Current lifecycle state.
	// example: running
	State EndpointState `json:"state" example:"running"`
	// Reason the endpoint entered the failed state, when it did.
	FailureReason string `json:"failure_reason,omitempty"`
	// Creation time in unix seconds.
	// example: 1756454100
	CreatedAt int64 `json:"created_at_unix" example:"1756454100"`
	// Last invocation time in unix seconds, zero if never invoked.
	LastInvoked int64 `json:"last_invoked_unix,omitempty"`
}

// Spec rebuilds the deployable definition from a server-side endpoint view.
func (e Endpoint) Spec() EndpointSpec {
	return EndpointSpec{
		Name:          e.Name,
		ModelData:     e.ModelData,
		JobName:       e.JobName,
		InstanceType:  e.InstanceType,
		InstanceCount: e.InstanceCount,
		ContentType:   e.ContentType,
		Accept:        e.Accept,
	}
}
