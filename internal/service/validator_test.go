package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/health-assistant-server/internal/domain"
)

func validDiabetesVector() domain.FeatureVector {
	return domain.FeatureVector{2, 120, 70, 20, 80, 25.5, 0.47, 33}
}

func validHeartVector() domain.FeatureVector {
	return domain.FeatureVector{54, 1, 0, 130, 240, 0, 1, 150, 0, 1.0, 1, 0, 2}
}

func TestValidateAcceptsInRangeVectors(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.Validate(domain.Diabetes, validDiabetesVector()).Valid())
	assert.True(t, v.Validate(domain.HeartDisease, validHeartVector()).Valid())
}

func TestValidateBoundaryValues(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		disease domain.Disease
		mutate  func(f domain.FeatureVector)
		valid   bool
		field   string
	}{
		{
			name:    "glucose at upper bound",
			disease: domain.Diabetes,
			mutate:  func(f domain.FeatureVector) { f[domain.DiabetesGlucose] = 300 },
			valid:   true,
		},
		{
			name:    "glucose above upper bound",
			disease: domain.Diabetes,
			mutate:  func(f domain.FeatureVector) { f[domain.DiabetesGlucose] = 300.1 },
			valid:   false,
			field:   "Glucose",
		},
		{
			name:    "age at upper bound",
			disease: domain.Diabetes,
			mutate:  func(f domain.FeatureVector) { f[domain.DiabetesAge] = 80 },
			valid:   true,
		},
		{
			name:    "negative insulin",
			disease: domain.Diabetes,
			mutate:  func(f domain.FeatureVector) { f[domain.DiabetesInsulin] = -1 },
			valid:   false,
			field:   "Insulin",
		},
		{
			name:    "zero everywhere",
			disease: domain.Diabetes,
			mutate: func(f domain.FeatureVector) {
				for i := range f {
					f[i] = 0
				}
			},
			valid: true,
		},
		{
			name:    "resting bp at bound",
			disease: domain.HeartDisease,
			mutate:  func(f domain.FeatureVector) { f[domain.HeartRestingBP] = 200 },
			valid:   true,
		},
		{
			name:    "resting bp above bound",
			disease: domain.HeartDisease,
			mutate:  func(f domain.FeatureVector) { f[domain.HeartRestingBP] = 201 },
			valid:   false,
			field:   "Resting Blood Pressure",
		},
		{
			name:    "cholesterol above bound",
			disease: domain.HeartDisease,
			mutate:  func(f domain.FeatureVector) { f[domain.HeartCholesterol] = 601 },
			valid:   false,
			field:   "Serum Cholestoral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f domain.FeatureVector
			if tt.disease == domain.Diabetes {
				f = validDiabetesVector()
			} else {
				f = validHeartVector()
			}
			tt.mutate(f)

			result := v.Validate(tt.disease, f)
			assert.Equal(t, tt.valid, result.Valid())
			if !tt.valid {
				require.NotEmpty(t, result.Violations)
				assert.Equal(t, tt.field, result.Violations[0].Field)
			}
		})
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	v := NewValidator()
	f := validDiabetesVector()
	f[domain.DiabetesGlucose] = 500
	f[domain.DiabetesInsulin] = -3
	f[domain.DiabetesAge] = 120

	result := v.Validate(domain.Diabetes, f)
	require.False(t, result.Valid())
	assert.Len(t, result.Violations, 3)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, result.Err(), &validationErr)
	assert.Equal(t, domain.Diabetes, validationErr.Disease)
}

func TestValidateParkinsonsUnboundedAbove(t *testing.T) {
	v := NewValidator()
	f := make(domain.FeatureVector, domain.Parkinsons.FieldCount())
	f[domain.ParkinsonsFhi] = 1e9

	assert.True(t, v.Validate(domain.Parkinsons, f).Valid())

	f[domain.ParkinsonsNHR] = -0.001
	result := v.Validate(domain.Parkinsons, f)
	require.False(t, result.Valid())
	assert.Equal(t, "NHR", result.Violations[0].Field)
}
