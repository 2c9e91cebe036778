package artifact

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/health-assistant-server/internal/domain"
)

// Registry holds the loaded artifact for every supported disease. It is
// built once at startup and never mutated, so lookups need no locking.
type Registry struct {
	artifacts map[domain.Disease]*Artifact
}

// LoadRegistry loads <disease>.json for every supported disease from dir.
// Startup fails if any artifact is missing or fails validation.
func LoadRegistry(dir string, log *logrus.Logger) (*Registry, error) {
	artifacts := make(map[domain.Disease]*Artifact, len(domain.AllDiseases()))
	for _, disease := range domain.AllDiseases() {
		path := filepath.Join(dir, string(disease)+".json")
		art, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s artifact: %w", disease, err)
		}
		if art.Disease != disease {
			return nil, fmt.Errorf("%w: %s declares disease %q", domain.ErrArtifactCorrupt, path, art.Disease)
		}
		log.WithFields(logrus.Fields{
			"disease": disease,
			"kind":    art.Kind,
			"fields":  disease.FieldCount(),
		}).Info("Loaded model artifact")
		artifacts[disease] = art
	}
	return &Registry{artifacts: artifacts}, nil
}

// NewRegistry builds a registry from already-constructed artifacts. Intended
// for tests that inject fitted parameters directly.
func NewRegistry(artifacts ...*Artifact) *Registry {
	m := make(map[domain.Disease]*Artifact, len(artifacts))
	for _, a := range artifacts {
		m[a.Disease] = a
	}
	return &Registry{artifacts: m}
}

// Artifact returns the loaded artifact for a disease.
func (r *Registry) Artifact(d domain.Disease) (*Artifact, error) {
	art, ok := r.artifacts[d]
	if !ok {
		return nil, fmt.Errorf("%w: no artifact loaded for %s", domain.ErrArtifactMissing, d)
	}
	return art, nil
}
