package scorer

import (
	"encoding/json"
	"fmt"
)

type linearModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// linearScorer computes a plain dot product plus bias. Mostly useful as a
// cheap artifact for exercising the serving path.
type linearScorer struct {
	model linearModel
}

func loadLinear(b []byte, path string) (Scorer, error) {
	var m linearModel
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse linear artifact %s: %w", path, err)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("linear artifact %s: no weights", path)
	}
	return &linearScorer{model: m}, nil
}

func (s *linearScorer) NumFeatures() int { return len(s.model.Weights) }

func (s *linearScorer) Score(features []float64) (float64, error) {
	if len(features) != len(s.model.Weights) {
		return 0, &DimensionError{Want: len(s.model.Weights), Got: len(features)}
	}
	out := s.model.Bias
	for i, w := range s.model.Weights {
		out += w * features[i]
	}
	return out, nil
}
