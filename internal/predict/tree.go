// Package predict evaluates the pregnancy risk classifiers.
//
// Models are fitted offline and exported as the flat node arrays of a
// decision tree (the same layout scikit-learn keeps in tree_).
package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

var ErrFeatureCount = errors.New("predict: wrong number of features")

// Predictor turns a feature vector into a class label.
type Predictor interface {
	Predict(features []float64) (int, error)
}

// Tree is a fitted binary decision tree. Node i is a leaf when
// ChildrenLeft[i] is -1; otherwise samples with
// x[Feature[i]] <= Threshold[i] go left.
type Tree struct {
	NFeatures     int         `json:"n_features"`
	Classes       []int       `json:"classes"`
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

const leaf = -1

// LoadTree decodes and validates a tree export.
func LoadTree(r io.Reader) (*Tree, error) {
	var t Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("predict: decode tree: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTreeFile reads a tree export from path.
func LoadTreeFile(path string) (*Tree, error) {
	f, err := os.Open(path) // #nosec G304 -- operator supplied model path
	if err != nil {
		return nil, fmt.Errorf("predict: open model: %w", err)
	}
	defer f.Close()
	return LoadTree(f)
}

func (t *Tree) validate() error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return errors.New("predict: tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errors.New("predict: node arrays differ in length")
	}
	if t.NFeatures <= 0 || len(t.Classes) == 0 {
		return errors.New("predict: missing n_features or classes")
	}

	for i := range n {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == leaf {
			if len(t.Value[i]) != len(t.Classes) {
				return fmt.Errorf("predict: leaf %d has %d class weights, want %d", i, len(t.Value[i]), len(t.Classes))
			}
			continue
		}
		// Children always come after their parent, which also rules out cycles.
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("predict: node %d has bad children %d/%d", i, l, r)
		}
		if f := t.Feature[i]; f < 0 || f >= t.NFeatures {
			return fmt.Errorf("predict: node %d splits on feature %d", i, f)
		}
	}
	return nil
}

// Predict walks the tree and returns the majority class of the leaf reached.
func (t *Tree) Predict(x []float64) (int, error) {
	if len(x) != t.NFeatures {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), t.NFeatures)
	}

	node := 0
	for t.ChildrenLeft[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}

	weights := t.Value[node]
	best := slices.Index(weights, slices.Max(weights))
	return t.Classes[best], nil
}
