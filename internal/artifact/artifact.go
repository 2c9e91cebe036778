// Package artifact loads and applies the pre-fitted (normalizer, classifier)
// pairs produced by the offline training pipeline. Artifacts are opaque to
// the rest of the system: the core only requires deterministic, total
// functions over fixed-arity numeric vectors that fail loudly on mismatch.
package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/health-assistant-server/internal/domain"
)

// Kind identifies the serialized classifier family. The training pipeline
// exports one of three model families per disease.
type Kind string

const (
	// KindLogistic is a logistic regression: sigmoid(w.x + b).
	KindLogistic Kind = "logistic"
	// KindLinearSVC is a linear-kernel SVM with Platt-scaled probabilities.
	KindLinearSVC Kind = "linear_svc"
	// KindRBFSVC is an RBF-kernel SVM with Platt-scaled probabilities.
	KindRBFSVC Kind = "rbf_svc"
)

// Normalizer applies the per-field affine transform (x - mean) / scale
// fitted at training time. It rejects vectors of the wrong arity.
type Normalizer struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform maps a raw feature vector onto the scale the classifier was
// trained on. The input is not mutated.
func (n *Normalizer) Transform(features []float64) ([]float64, error) {
	if len(features) != len(n.Mean) {
		return nil, fmt.Errorf("%w: got %d features, normalizer fitted on %d",
			domain.ErrArityMismatch, len(features), len(n.Mean))
	}
	out := make([]float64, len(features))
	for i, x := range features {
		out[i] = (x - n.Mean[i]) / n.Scale[i]
	}
	return out, nil
}

func (n *Normalizer) validate(arity int) error {
	if len(n.Mean) != arity || len(n.Scale) != arity {
		return fmt.Errorf("%w: normalizer has %d means and %d scales, expected %d",
			domain.ErrArtifactCorrupt, len(n.Mean), len(n.Scale), arity)
	}
	for i, s := range n.Scale {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: non-positive scale %g at field %d", domain.ErrArtifactCorrupt, s, i)
		}
	}
	return nil
}

// logisticModel is a fitted logistic regression over normalized features.
type logisticModel struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

func (m *logisticModel) PositiveProbability(features []float64) (float64, error) {
	if len(features) != len(m.Weights) {
		return 0, fmt.Errorf("%w: got %d features, model has %d weights",
			domain.ErrArityMismatch, len(features), len(m.Weights))
	}
	return sigmoid(dot(m.Weights, features) + m.Intercept), nil
}

// linearSVC is a linear-kernel SVM. The decision value is calibrated into a
// probability with the Platt sigmoid fitted during training.
type linearSVC struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	PlattA    float64   `json:"platt_a"`
	PlattB    float64   `json:"platt_b"`
}

func (m *linearSVC) PositiveProbability(features []float64) (float64, error) {
	if len(features) != len(m.Weights) {
		return 0, fmt.Errorf("%w: got %d features, model has %d weights",
			domain.ErrArityMismatch, len(features), len(m.Weights))
	}
	decision := dot(m.Weights, features) + m.Intercept
	return platt(decision, m.PlattA, m.PlattB), nil
}

// rbfSVC is an RBF-kernel SVM kept as support vectors and dual
// coefficients, with Platt calibration.
type rbfSVC struct {
	SupportVectors [][]float64 `json:"support_vectors"`
	DualCoef       []float64   `json:"dual_coef"`
	Gamma          float64     `json:"gamma"`
	Intercept      float64     `json:"intercept"`
	PlattA         float64     `json:"platt_a"`
	PlattB         float64     `json:"platt_b"`
}

func (m *rbfSVC) PositiveProbability(features []float64) (float64, error) {
	if len(m.SupportVectors) > 0 && len(features) != len(m.SupportVectors[0]) {
		return 0, fmt.Errorf("%w: got %d features, support vectors have %d",
			domain.ErrArityMismatch, len(features), len(m.SupportVectors[0]))
	}
	decision := m.Intercept
	for i, sv := range m.SupportVectors {
		var dist2 float64
		for j, x := range features {
			d := x - sv[j]
			dist2 += d * d
		}
		decision += m.DualCoef[i] * math.Exp(-m.Gamma*dist2)
	}
	return platt(decision, m.PlattA, m.PlattB), nil
}

func (m *rbfSVC) validate(arity int) error {
	if len(m.SupportVectors) == 0 {
		return fmt.Errorf("%w: rbf model has no support vectors", domain.ErrArtifactCorrupt)
	}
	if len(m.DualCoef) != len(m.SupportVectors) {
		return fmt.Errorf("%w: %d dual coefficients for %d support vectors",
			domain.ErrArtifactCorrupt, len(m.DualCoef), len(m.SupportVectors))
	}
	for i, sv := range m.SupportVectors {
		if len(sv) != arity {
			return fmt.Errorf("%w: support vector %d has arity %d, expected %d",
				domain.ErrArtifactCorrupt, i, len(sv), arity)
		}
	}
	if m.Gamma <= 0 {
		return fmt.Errorf("%w: non-positive gamma %g", domain.ErrArtifactCorrupt, m.Gamma)
	}
	return nil
}

// Artifact is one disease's loaded (normalizer, classifier) pair. Loaded
// once at startup, read-only afterwards, and safe for unlimited concurrent
// use.
type Artifact struct {
	Disease    domain.Disease
	Kind       Kind
	Normalizer *Normalizer
	Classifier domain.Classifier
}

// artifactFile is the on-disk JSON layout written by the training export.
type artifactFile struct {
	Disease    string          `json:"disease"`
	Kind       Kind            `json:"kind"`
	Normalizer *Normalizer     `json:"normalizer"`
	Model      json.RawMessage `json:"model"`
}

// Load reads and validates a single artifact file. It fails on a missing
// file, malformed JSON, an unknown disease or model kind, and any arity
// disagreement with the disease's trained field count.
func Load(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("reading artifact %s: %w", path, err)
	}

	var file artifactFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrArtifactCorrupt, path, err)
	}

	disease, err := domain.ParseDisease(file.Disease)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	arity := disease.FieldCount()

	if file.Normalizer == nil {
		return nil, fmt.Errorf("%w: %s has no normalizer", domain.ErrArtifactCorrupt, path)
	}
	if err := file.Normalizer.validate(arity); err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}

	classifier, err := decodeModel(file.Kind, file.Model, arity)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}

	return &Artifact{
		Disease:    disease,
		Kind:       file.Kind,
		Normalizer: file.Normalizer,
		Classifier: classifier,
	}, nil
}

func decodeModel(kind Kind, raw json.RawMessage, arity int) (domain.Classifier, error) {
	switch kind {
	case KindLogistic:
		var m logisticModel
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrArtifactCorrupt, err)
		}
		if len(m.Weights) != arity {
			return nil, fmt.Errorf("%w: model has %d weights, expected %d",
				domain.ErrArtifactCorrupt, len(m.Weights), arity)
		}
		return &m, nil
	case KindLinearSVC:
		var m linearSVC
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrArtifactCorrupt, err)
		}
		if len(m.Weights) != arity {
			return nil, fmt.Errorf("%w: model has %d weights, expected %d",
				domain.ErrArtifactCorrupt, len(m.Weights), arity)
		}
		return &m, nil
	case KindRBFSVC:
		var m rbfSVC
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrArtifactCorrupt, err)
		}
		if err := m.validate(arity); err != nil {
			return nil, err
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("%w: unknown model kind %q", domain.ErrArtifactCorrupt, kind)
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i, x := range a {
		sum += x * b[i]
	}
	return sum
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// platt converts an SVM decision value into a calibrated probability using
// the sigmoid P(y=1|d) = 1 / (1 + exp(A*d + B)) fitted during training.
func platt(decision, a, b float64) float64 {
	return 1 / (1 + math.Exp(a*decision+b))
}
