package predict

import (
	"errors"
	"fmt"
)

var ErrUnknownLabel = errors.New("predict: model returned an unknown label")

// Model is a Predictor bound to its feature order and label names.
type Model struct {
	Name     string
	Features []string
	Levels   []string // index is the label

	p Predictor
}

// Result is one classification.
type Result struct {
	Label int    `json:"label"`
	Level string `json:"level"`
}

// MaternalFeatures is the input order of the maternal risk model.
var MaternalFeatures = []string{"age", "diastolic_bp", "blood_sugar", "body_temp", "heart_rate"}

// FetalFeatures is the input order of the fetal health model (CTG readings).
var FetalFeatures = []string{
	"baseline_value",
	"accelerations",
	"fetal_movement",
	"uterine_contractions",
	"light_decelerations",
	"severe_decelerations",
	"prolongued_decelerations",
	"abnormal_short_term_variability",
	"mean_value_of_short_term_variability",
	"percentage_of_time_with_abnormal_long_term_variability",
	"mean_value_of_long_term_variability",
	"histogram_width",
	"histogram_min",
	"histogram_max",
	"histogram_number_of_peaks",
	"histogram_number_of_zeroes",
	"histogram_mode",
	"histogram_mean",
	"histogram_median",
	"histogram_variance",
	"histogram_tendency",
}

func NewMaternalModel(p Predictor) *Model {
	return &Model{Name: "maternal", Features: MaternalFeatures, Levels: []string{"low", "medium", "high"}, p: p}
}

func NewFetalModel(p Predictor) *Model {
	return &Model{Name: "fetal", Features: FetalFeatures, Levels: []string{"normal", "suspect", "pathological"}, p: p}
}

// Classify checks the vector length against Features before predicting.
func (m *Model) Classify(x []float64) (Result, error) {
	if len(x) != len(m.Features) {
		return Result{}, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), len(m.Features))
	}
	label, err := m.p.Predict(x)
	if err != nil {
		return Result{}, err
	}
	if label < 0 || label >= len(m.Levels) {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownLabel, label)
	}
	return Result{Label: label, Level: m.Levels[label]}, nil
}

// LoadModels builds the two models from tree files. An empty path leaves
// that model nil.
func LoadModels(maternalPath, fetalPath string) (maternal, fetal *Model, err error) {
	if maternalPath != "" {
		t, err := LoadTreeFile(maternalPath)
		if err != nil {
			return nil, nil, fmt.Errorf("maternal model: %w", err)
		}
		maternal = NewMaternalModel(t)
	}
	if fetalPath != "" {
		t, err := LoadTreeFile(fetalPath)
		if err != nil {
			return nil, nil, fmt.Errorf("fetal model: %w", err)
		}
		fetal = NewFetalModel(t)
	}
	return maternal, fetal, nil
}
