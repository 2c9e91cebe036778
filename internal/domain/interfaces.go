package domain

import (
	"context"
)

// Classifier exposes the probability-of-positive-class function of a
// pre-fitted binary classifier. Implementations must be deterministic,
// total over fixed-arity numeric vectors, and reject arity mismatches
// rather than silently truncating or padding.
type Classifier interface {
	// PositiveProbability returns the positive-class probability in [0,1]
	// for an already-normalized feature vector.
	PositiveProbability(features []float64) (float64, error)
}

// RiskEvaluator orchestrates validation, normalization, inference, and the
// threshold decision for one disease domain.
type RiskEvaluator interface {
	Evaluate(ctx context.Context, disease Disease, features FeatureVector) (*RiskAssessment, error)
}

// InsightGenerator produces ordered, rule-triggered guidance from raw
// feature values and a verdict.
type InsightGenerator interface {
	Generate(disease Disease, features FeatureVector, verdict Verdict) []Insight
}

// HistoryStore persists assessment records for user-facing prediction
// history.
type HistoryStore interface {
	Save(ctx context.Context, record *AssessmentRecord) error
	Get(ctx context.Context, id int64) (*AssessmentRecord, error)
	List(ctx context.Context, limit, offset int) ([]*AssessmentRecord, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}
