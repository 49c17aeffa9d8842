// Package manager owns the endpoint lifecycle for the local-mode platform:
// deploy, invoke, delete. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: internal state types (endpointInstance and views).
//   - errors.go: error types and helpers (IsEndpointNotFound, IsConflict, ...).
//   - deploy.go: Deploy lifecycle (deploying -> running | failed).
//   - invoke.go: invocation entry point; requires a running endpoint.
//   - codec.go: CSV/JSON payload decoding and prediction encoding.
//   - delete.go: Delete with drain; deleting an absent endpoint is a no-op.
//   - admission.go: per-endpoint queueing and scoring admission.
//   - status.go: Status/Ready reporting, Close for shutdown.
//   - events.go: lifecycle event publishing (noop by default).
//
// The lifecycle of one endpoint is
//
//	deploying -> running -> deleting -> (removed)
//	deploying -> failed
//
// A removed endpoint leaves behind its definition (the deployable spec)
// unless the delete asked for the definition to go too; a retained
// definition allows redeploy-by-name without restating instance type/count.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (New/NewWithConfig, Deploy, Invoke, Delete,
// Describe, List, Status, Ready, Close). Internal types are subject to change.
package manager
