package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/health-assistant-server/internal/artifact"
	"github.com/health-assistant-server/internal/domain"
)

// RiskEngine runs the full evaluation pipeline for one submission: arity
// check, field validation, normalization, classifier inference, and the
// threshold verdict. The verdict it produces is the single source of truth
// for all downstream consumers; nothing re-derives it from the probability.
type RiskEngine struct {
	logger    *logrus.Logger
	registry  *artifact.Registry
	validator *Validator
}

// NewRiskEngine creates a risk engine backed by a loaded artifact registry.
func NewRiskEngine(logger *logrus.Logger, registry *artifact.Registry) *RiskEngine {
	return &RiskEngine{
		logger:    logger,
		registry:  registry,
		validator: NewValidator(),
	}
}

// Evaluate classifies one feature vector. Arity mismatches surface as
// InferenceError before any per-field validation runs; out-of-range fields
// surface as ValidationError and never reach the classifier. Inference
// failures are returned, never converted into a Negative verdict.
func (e *RiskEngine) Evaluate(ctx context.Context, disease domain.Disease, features domain.FeatureVector) (*domain.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !disease.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDisease, disease)
	}

	if got, want := len(features), disease.FieldCount(); got != want {
		return nil, &domain.InferenceError{
			Disease: disease,
			Stage:   "normalizer",
			Err:     fmt.Errorf("%w: got %d features, expected %d", domain.ErrArityMismatch, got, want),
		}
	}

	if err := e.validator.Validate(disease, features).Err(); err != nil {
		e.logger.WithFields(logrus.Fields{
			"disease": disease,
		}).WithError(err).Debug("Rejected invalid feature vector")
		return nil, err
	}

	art, err := e.registry.Artifact(disease)
	if err != nil {
		return nil, &domain.InferenceError{Disease: disease, Stage: "normalizer", Err: err}
	}

	normalized, err := art.Normalizer.Transform(features)
	if err != nil {
		return nil, &domain.InferenceError{Disease: disease, Stage: "normalizer", Err: err}
	}

	prob, err := art.Classifier.PositiveProbability(normalized)
	if err != nil {
		return nil, &domain.InferenceError{Disease: disease, Stage: "classifier", Err: err}
	}

	assessment := &domain.RiskAssessment{
		Disease:     disease,
		Probability: prob * 100,
		Verdict:     domain.VerdictFor(disease, prob*100),
	}

	e.logger.WithFields(logrus.Fields{
		"disease":     disease,
		"probability": assessment.Probability,
		"verdict":     assessment.Verdict,
	}).Info("Completed risk evaluation")

	return assessment, nil
}
