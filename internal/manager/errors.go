package manager

// notFoundError signals an endpoint name with no backing resource (404).
type notFoundError struct{ name string }

func (e notFoundError) Error() string { return "endpoint not found: " + e.name }

// ErrEndpointNotFound constructs the error for a missing endpoint name.
func ErrEndpointNotFound(name string) error { return notFoundError{name: name} }

// IsEndpointNotFound reports whether err indicates a missing endpoint.
func IsEndpointNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// conflictError signals a deploy against a name already in use (409).
type conflictError struct{ name string }

func (e conflictError) Error() string { return "endpoint already exists: " + e.name }

// IsConflict reports whether err indicates a duplicate endpoint name.
func IsConflict(err error) bool {
	_, ok := err.(conflictError)
	return ok
}

// validationError signals a bad request: invalid spec or payload (400).
type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

// ErrValidation constructs a validationError.
func ErrValidation(msg string) error { return validationError{msg: msg} }

// IsValidation reports whether err indicates an invalid spec or payload.
func IsValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// notReadyError signals an invocation against an endpoint that exists but is
// not in the running state (409).
type notReadyError struct {
	name  string
	state string
}

func (e notReadyError) Error() string { return "endpoint " + e.name + " is not running (" + e.state + ")" }

// IsEndpointNotReady reports whether err indicates a non-running endpoint.
func IsEndpointNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}

// tooBusyError signals queue timeout/overflow for 429 mapping.
type tooBusyError struct{ name string }

func (e tooBusyError) Error() string { return "too busy: " + e.name }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// deployFailedError signals provisioning that did not reach running.
type deployFailedError struct {
	name   string
	reason string
}

func (e deployFailedError) Error() string { return "deploy failed for " + e.name + ": " + e.reason }

// IsDeployFailed reports whether err indicates a failed provisioning attempt.
func IsDeployFailed(err error) bool {
	_, ok := err.(deployFailedError)
	return ok
}
