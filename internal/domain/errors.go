package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across the pipeline. Components wrap these with
// context; callers test with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownDisease  = errors.New("unknown disease")
	ErrArityMismatch   = errors.New("feature vector arity mismatch")
	ErrArtifactMissing = errors.New("model artifact missing")
	ErrArtifactCorrupt = errors.New("model artifact corrupt")
)

// ValidationError reports out-of-range or negative input fields. It is
// recoverable: the caller surfaces it as a user-facing rejection and no
// inference is attempted.
type ValidationError struct {
	Disease    Disease          `json:"disease"`
	Violations []FieldViolation `json:"violations"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = fmt.Sprintf("%s: %s (got %g)", v.Field, v.Reason, v.Value)
	}
	return fmt.Sprintf("invalid %s input: %s", e.Disease, strings.Join(fields, "; "))
}

// InferenceError reports that a model artifact could not be applied: wrong
// arity, a corrupt artifact, or a classifier failure. It is never silently
// converted into a Negative verdict.
type InferenceError struct {
	Disease Disease
	Stage   string // "normalizer" or "classifier"
	Err     error
}

// Error implements the error interface.
func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s inference failed at %s: %v", e.Disease, e.Stage, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *InferenceError) Unwrap() error {
	return e.Err
}

// ReportError reports a field/label misalignment during report assembly.
// The builder fails rather than emitting a truncated or misaligned report.
type ReportError struct {
	Disease Disease
	Labels  int
	Values  int
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	return fmt.Sprintf("%s report assembly failed: %d labels but %d values", e.Disease, e.Labels, e.Values)
}
