// Package params reads previously persisted workflow parameters (bucket
// names, artifact locations, job names, role identifiers) keyed by string.
// The store is read-only from this process; a prior training workflow wrote
// the values. Two backends exist: a flat file (JSON/YAML/TOML by extension)
// and a redis hash.
package params

import "context"

// Well-known keys written by the training workflow.
const (
	KeyBucket          = "bucket"
	KeyS3Prefix        = "s3_prefix"
	KeyRawS3           = "raw_s3"
	KeyTrainDir        = "train_dir"
	KeyTestDir         = "test_dir"
	KeyTrainDirCSV     = "train_dir_csv"
	KeyTestDirCSV      = "test_dir_csv"
	KeyLocalModelData  = "local_model_data"
	KeyRemoteModelData = "remote_model_data"
	KeyTrainingJobName = "training_job_name"
	KeyTuningJobName   = "tuning_job_name"
	KeyS3InputTrainURI = "s3_input_train_uri"
	KeyS3InputTestURI  = "s3_input_test_uri"
	KeyRole            = "role"
)

// Store is a read-only key to string-value lookup.
type Store interface {
	// Get returns the value for key. A missing key is a keyNotFound error
	// (see IsKeyNotFound); the workflow treats it as fatal.
	Get(ctx context.Context, key string) (string, error)
}

type keyNotFoundError struct{ key string }

func (e keyNotFoundError) Error() string { return "parameter not found: " + e.key }

// ErrKeyNotFound constructs the error returned for a missing key.
func ErrKeyNotFound(key string) error { return keyNotFoundError{key: key} }

// IsKeyNotFound reports whether err indicates a missing parameter key.
func IsKeyNotFound(err error) bool {
	_, ok := err.(keyNotFoundError)
	return ok
}
