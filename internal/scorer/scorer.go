// Package scorer loads trained-model artifacts and evaluates feature
// vectors against them. It is the runtime behind local-mode endpoints; the
// rest of the system treats artifacts as opaque bytes.
package scorer

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scorer evaluates a single feature vector.
type Scorer interface {
	// NumFeatures is the input width the model expects.
	NumFeatures() int
	// Score returns the model output for one row. A row of the wrong width
	// is a DimensionError; the input is never padded or truncated.
	Score(features []float64) (float64, error)
}

// DimensionError reports a feature vector whose width disagrees with the
// model's expected input.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("feature vector has %d values, model expects %d", e.Got, e.Want)
}

// artifactHeader is the envelope shared by all supported artifact formats.
type artifactHeader struct {
	Format string `json:"format"`
}

// Load reads an artifact file and constructs the matching scorer.
// Supported formats: "gbtree-json" (boosted tree dump) and "linear".
func Load(path string) (Scorer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var hdr artifactHeader
	if err := json.Unmarshal(b, &hdr); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", path, err)
	}
	switch hdr.Format {
	case "gbtree-json":
		return loadGBTree(b, path)
	case "linear":
		return loadLinear(b, path)
	default:
		return nil, fmt.Errorf("unsupported artifact format %q in %s", hdr.Format, path)
	}
}
