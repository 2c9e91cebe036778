package domain

// FeatureVector is an ordered tuple of raw numeric measurements for one
// disease domain. Field order is fixed and must match the order the
// normalizer and classifier were trained on. A vector is constructed fresh
// per submission and never mutated after validation.
type FeatureVector []float64

// Clone returns an independent copy of the vector.
func (f FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(f))
	copy(out, f)
	return out
}

// FieldViolation describes a single out-of-range field in a feature vector.
type FieldViolation struct {
	Field  string  `json:"field"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

// ValidationResult is the outcome of checking a FeatureVector against the
// per-disease constraint table. A result with no violations is valid; an
// invalid result never reaches the normalizer or the classifier.
type ValidationResult struct {
	Disease    Disease          `json:"disease"`
	Violations []FieldViolation `json:"violations,omitempty"`
}

// Valid reports whether the vector passed every field constraint.
func (r *ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns nil for a valid result and a *ValidationError carrying the
// violated fields otherwise.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Disease: r.Disease, Violations: r.Violations}
}
