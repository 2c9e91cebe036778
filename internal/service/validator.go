// Package service implements the risk evaluation pipeline: input
// validation, feature normalization, classifier inference, threshold
// verdicts, rule-based insights, and report assembly.
package service

import (
	"fmt"

	"github.com/health-assistant-server/internal/domain"
)

// Validator checks raw feature vectors against the per-disease constraint
// tables. Validation is total: every field is checked and every violation
// is reported, not just the first.
type Validator struct{}

// NewValidator creates a validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks each field of the vector against its inclusive [0, Max]
// range. The vector's arity is assumed to already match the disease; arity
// enforcement happens before validation in the evaluation pipeline.
func (v *Validator) Validate(disease domain.Disease, features domain.FeatureVector) *domain.ValidationResult {
	result := &domain.ValidationResult{Disease: disease}
	constraints := disease.Constraints()

	for i, value := range features {
		if i >= len(constraints) {
			break
		}
		c := constraints[i]
		switch {
		case value < 0:
			result.Violations = append(result.Violations, domain.FieldViolation{
				Field:  c.Label,
				Value:  value,
				Reason: "must not be negative",
			})
		case value > c.Max:
			result.Violations = append(result.Violations, domain.FieldViolation{
				Field:  c.Label,
				Value:  value,
				Reason: fmt.Sprintf("must not exceed %g", c.Max),
			})
		}
	}
	return result
}
