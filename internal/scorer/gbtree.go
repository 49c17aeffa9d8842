package scorer

import (
	"encoding/json"
	"fmt"
)

// gbtreeNode is one node of a dumped regression tree. Leaves carry only
// Leaf; internal nodes carry Feature/Threshold and child indexes into the
// tree's node slice.
type gbtreeNode struct {
	Feature   int      `json:"feature"`
	Threshold float64  `json:"threshold"`
	Left      int      `json:"left"`
	Right     int      `json:"right"`
	Leaf      *float64 `json:"leaf,omitempty"`
}

type gbtree struct {
	Nodes []gbtreeNode `json:"nodes"`
}

type gbtreeModel struct {
	NumFeats  int      `json:"num_features"`
	BaseScore float64  `json:"base_score"`
	Trees     []gbtree `json:"trees"`
}

// gbtreeScorer sums leaf values over all trees on top of the base score,
// the usual boosted-ensemble evaluation.
type gbtreeScorer struct {
	model gbtreeModel
}

func loadGBTree(b []byte, path string) (Scorer, error) {
	var m gbtreeModel
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse gbtree artifact %s: %w", path, err)
	}
	if m.NumFeats <= 0 {
		return nil, fmt.Errorf("gbtree artifact %s: num_features must be positive", path)
	}
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("gbtree artifact %s: no trees", path)
	}
	for ti, tr := range m.Trees {
		if len(tr.Nodes) == 0 {
			return nil, fmt.Errorf("gbtree artifact %s: tree %d is empty", path, ti)
		}
		for ni, n := range tr.Nodes {
			if n.Leaf != nil {
				continue
			}
			if n.Feature < 0 || n.Feature >= m.NumFeats {
				return nil, fmt.Errorf("gbtree artifact %s: tree %d node %d references feature %d", path, ti, ni, n.Feature)
			}
			if n.Left < 0 || n.Left >= len(tr.Nodes) || n.Right < 0 || n.Right >= len(tr.Nodes) {
				return nil, fmt.Errorf("gbtree artifact %s: tree %d node %d has out-of-range children", path, ti, ni)
			}
		}
	}
	return &gbtreeScorer{model: m}, nil
}

func (s *gbtreeScorer) NumFeatures() int { return s.model.NumFeats }

func (s *gbtreeScorer) Score(features []float64) (float64, error) {
	if len(features) != s.model.NumFeats {
		return 0, &DimensionError{Want: s.model.NumFeats, Got: len(features)}
	}
	out := s.model.BaseScore
	for ti, tr := range s.model.Trees {
		i := 0
		// a well-formed tree reaches a leaf within len(nodes) hops
		for steps := 0; ; steps++ {
			if steps > len(tr.Nodes) {
				return 0, fmt.Errorf("gbtree: cycle in tree %d", ti)
			}
			n := tr.Nodes[i]
			if n.Leaf != nil {
				out += *n.Leaf
				break
			}
			if features[n.Feature] < n.Threshold {
				i = n.Left
			} else {
				i = n.Right
			}
		}
	}
	return out, nil
}
