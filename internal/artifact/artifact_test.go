package artifact

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/health-assistant-server/internal/domain"
)

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const heartArtifactJSON = `{
  "disease": "heart",
  "kind": "logistic",
  "normalizer": {
    "mean":  [54, 0.68, 0.97, 131, 246, 0.15, 0.53, 149, 0.33, 1.04, 1.40, 0.73, 2.31],
    "scale": [9.1, 0.47, 1.03, 17.5, 51.8, 0.36, 0.53, 22.9, 0.47, 1.16, 0.62, 1.02, 0.61]
  },
  "model": {
    "weights": [0.1, 0.8, -0.6, 0.3, 0.2, 0.05, -0.1, -0.5, 0.5, 0.4, -0.3, 0.7, 0.6],
    "intercept": -0.2
  }
}`

func TestNormalizerTransform(t *testing.T) {
	n := &Normalizer{Mean: []float64{10, 20}, Scale: []float64{2, 5}}

	out, err := n.Transform([]float64{14, 10})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, out[0], 1e-12)
	assert.InDelta(t, -2.0, out[1], 1e-12)
}

func TestNormalizerTransformArityMismatch(t *testing.T) {
	n := &Normalizer{Mean: []float64{10, 20}, Scale: []float64{2, 5}}

	_, err := n.Transform([]float64{1, 2, 3})
	assert.ErrorIs(t, err, domain.ErrArityMismatch)
}

func TestLoadLogisticArtifact(t *testing.T) {
	path := writeArtifact(t, "heart.json", heartArtifactJSON)

	art, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.HeartDisease, art.Disease)
	assert.Equal(t, KindLogistic, art.Kind)

	normalized, err := art.Normalizer.Transform(make([]float64, 13))
	require.NoError(t, err)
	prob, err := art.Classifier.PositiveProbability(normalized)
	require.NoError(t, err)
	assert.Greater(t, prob, 0.0)
	assert.Less(t, prob, 1.0)
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "heart.json"))
	assert.ErrorIs(t, err, domain.ErrArtifactMissing)
}

func TestLoadCorruptArtifacts(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"disease": "heart"`},
		{"unknown kind", `{"disease":"heart","kind":"forest","normalizer":{"mean":[0],"scale":[1]},"model":{}}`},
		{"wrong normalizer arity", `{"disease":"heart","kind":"logistic","normalizer":{"mean":[0,0],"scale":[1,1]},"model":{"weights":[0],"intercept":0}}`},
		{"zero scale", `{
			"disease":"diabetes","kind":"linear_svc",
			"normalizer":{"mean":[0,0,0,0,0,0,0,0],"scale":[1,1,1,0,1,1,1,1]},
			"model":{"weights":[0,0,0,0,0,0,0,0],"intercept":0,"platt_a":-1,"platt_b":0}}`},
		{"missing normalizer", `{"disease":"heart","kind":"logistic","model":{"weights":[0],"intercept":0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArtifact(t, "artifact.json", tt.content)
			_, err := Load(path)
			assert.ErrorIs(t, err, domain.ErrArtifactCorrupt)
		})
	}
}

func TestLoadUnknownDisease(t *testing.T) {
	path := writeArtifact(t, "gout.json",
		`{"disease":"gout","kind":"logistic","normalizer":{"mean":[0],"scale":[1]},"model":{"weights":[0],"intercept":0}}`)

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrUnknownDisease)
}

func TestLogisticProbability(t *testing.T) {
	m := &logisticModel{Weights: []float64{1, -1}, Intercept: 0}

	prob, err := m.PositiveProbability([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, prob, 1e-12)

	high, err := m.PositiveProbability([]float64{10, 0})
	require.NoError(t, err)
	assert.Greater(t, high, 0.99)

	low, err := m.PositiveProbability([]float64{0, 10})
	require.NoError(t, err)
	assert.Less(t, low, 0.01)
}

func TestLinearSVCPlattCalibration(t *testing.T) {
	m := &linearSVC{Weights: []float64{1}, Intercept: 0, PlattA: -1.5, PlattB: 0.1}

	// Platt sigmoid with negative A is monotonically increasing in the
	// decision value.
	lo, err := m.PositiveProbability([]float64{-2})
	require.NoError(t, err)
	hi, err := m.PositiveProbability([]float64{2})
	require.NoError(t, err)
	assert.Less(t, lo, hi)
	assert.Greater(t, lo, 0.0)
	assert.Less(t, hi, 1.0)
}

func TestRBFSVCProbability(t *testing.T) {
	m := &rbfSVC{
		SupportVectors: [][]float64{{1, 0}, {-1, 0}},
		DualCoef:       []float64{1, -1},
		Gamma:          0.5,
		Intercept:      0,
		PlattA:         -2,
		PlattB:         0,
	}

	// Equidistant from both support vectors the kernel terms cancel.
	mid, err := m.PositiveProbability([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, mid, 1e-12)

	near, err := m.PositiveProbability([]float64{1, 0})
	require.NoError(t, err)
	assert.Greater(t, near, mid)
}

func TestRBFSVCArityMismatch(t *testing.T) {
	m := &rbfSVC{SupportVectors: [][]float64{{1, 2}}, DualCoef: []float64{1}, Gamma: 1}

	_, err := m.PositiveProbability([]float64{1})
	assert.ErrorIs(t, err, domain.ErrArityMismatch)
}

func TestProbabilitiesAreFinite(t *testing.T) {
	m := &logisticModel{Weights: []float64{1000}, Intercept: 0}

	prob, err := m.PositiveProbability([]float64{1000})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(prob))
	assert.LessOrEqual(t, prob, 1.0)
}
