package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/health-assistant-server/internal/domain"
)

func writeRegistryFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"diabetes.json": `{
			"disease": "diabetes", "kind": "linear_svc",
			"normalizer": {
				"mean":  [3.8, 120.9, 69.1, 20.5, 79.8, 31.99, 0.47, 33.2],
				"scale": [3.37, 31.97, 19.36, 15.95, 115.24, 7.88, 0.33, 11.76]
			},
			"model": {
				"weights": [0.35, 1.12, -0.18, 0.02, -0.11, 0.68, 0.29, 0.20],
				"intercept": -0.84, "platt_a": -1.72, "platt_b": 0.09
			}
		}`,
		"heart.json": `{
			"disease": "heart", "kind": "logistic",
			"normalizer": {
				"mean":  [54.4, 0.68, 0.97, 131.6, 246.3, 0.15, 0.53, 149.6, 0.33, 1.04, 1.40, 0.73, 2.31],
				"scale": [9.1, 0.47, 1.03, 17.5, 51.8, 0.36, 0.53, 22.9, 0.47, 1.16, 0.62, 1.02, 0.61]
			},
			"model": {
				"weights": [-0.09, -0.71, 0.84, -0.36, -0.22, 0.03, 0.18, 0.47, -0.41, -0.52, 0.30, -0.79, -0.63],
				"intercept": 0.11
			}
		}`,
		"parkinsons.json": `{
			"disease": "parkinsons", "kind": "rbf_svc",
			"normalizer": {
				"mean":  [154.2, 197.1, 116.3, 0.0062, 0.000044, 0.0033, 0.0034, 0.0099, 0.0297, 0.282, 0.0157, 0.0179, 0.0240, 0.0470, 0.0248, 21.89, 0.498, 0.718, -5.68, 0.226, 2.38, 0.206],
				"scale": [41.3, 91.4, 43.5, 0.0048, 0.000035, 0.0030, 0.0028, 0.0089, 0.0188, 0.194, 0.0101, 0.0120, 0.0169, 0.0304, 0.0403, 4.42, 0.103, 0.055, 1.09, 0.083, 0.383, 0.090]
			},
			"model": {
				"support_vectors": [
					[0.5, -0.2, 0.8, 1.1, 0.9, 1.2, 1.0, 1.2, 0.7, 0.6, 0.8, 0.7, 0.5, 0.8, 0.3, -0.9, 0.8, 0.4, 0.9, 0.7, 0.5, 0.9],
					[-0.6, 0.3, -0.7, -0.8, -0.7, -0.9, -0.8, -0.9, -0.6, -0.5, -0.7, -0.6, -0.4, -0.7, -0.2, 0.8, -0.7, -0.3, -0.8, -0.6, -0.4, -0.8]
				],
				"dual_coef": [1.0, -1.0],
				"gamma": 0.045, "intercept": 0.12,
				"platt_a": -1.91, "platt_b": 0.04
			}
		}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadRegistry(t *testing.T) {
	dir := writeRegistryFixtures(t)
	log := logrus.New()

	registry, err := LoadRegistry(dir, log)
	require.NoError(t, err)

	for _, disease := range domain.AllDiseases() {
		art, err := registry.Artifact(disease)
		require.NoError(t, err)
		assert.Equal(t, disease, art.Disease)

		normalized, err := art.Normalizer.Transform(make([]float64, disease.FieldCount()))
		require.NoError(t, err)
		prob, err := art.Classifier.PositiveProbability(normalized)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, prob, 0.0)
		assert.LessOrEqual(t, prob, 1.0)
	}
}

func TestLoadRegistryMissingDisease(t *testing.T) {
	dir := writeRegistryFixtures(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "parkinsons.json")))

	_, err := LoadRegistry(dir, logrus.New())
	assert.ErrorIs(t, err, domain.ErrArtifactMissing)
}

func TestLoadRegistryMismatchedDisease(t *testing.T) {
	dir := writeRegistryFixtures(t)
	// A file named heart.json that declares another disease must be rejected.
	diabetes, err := os.ReadFile(filepath.Join(dir, "diabetes.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "heart.json"), diabetes, 0o644))

	_, err = LoadRegistry(dir, logrus.New())
	assert.ErrorIs(t, err, domain.ErrArtifactCorrupt)
}

func TestRegistryUnknownArtifact(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Artifact(domain.Diabetes)
	assert.ErrorIs(t, err, domain.ErrArtifactMissing)
}
