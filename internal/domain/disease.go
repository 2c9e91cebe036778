// Package domain contains the core entities and contracts for chronic
// disease risk assessment: the supported disease domains, their feature
// vector layouts, validation constraints, decision thresholds, and the
// error taxonomy shared by every component of the prediction pipeline.
package domain

import (
	"fmt"
	"math"
)

// Disease identifies one of the supported chronic disease domains. Each
// disease carries its own feature arity, field ordering, validation table,
// and decision threshold; dispatching on Disease replaces any stringly-typed
// branching in the evaluation pipeline.
type Disease string

const (
	Diabetes     Disease = "diabetes"
	HeartDisease Disease = "heart"
	Parkinsons   Disease = "parkinsons"
)

// Feature vector field positions. The order is fixed by the offline training
// pipeline; normalizers and classifiers are fitted against exactly this
// layout, so reordering silently corrupts predictions.
const (
	DiabetesPregnancies = iota
	DiabetesGlucose
	DiabetesBloodPressure
	DiabetesSkinThickness
	DiabetesInsulin
	DiabetesBMI
	DiabetesPedigree
	DiabetesAge
)

const (
	HeartAge = iota
	HeartSex
	HeartChestPainType
	HeartRestingBP
	HeartCholesterol
	HeartFastingBS
	HeartRestingECG
	HeartMaxHeartRate
	HeartExerciseAngina
	HeartSTDepression
	HeartSTSlope
	HeartMajorVessels
	HeartThalassemia
)

const (
	ParkinsonsFo = iota
	ParkinsonsFhi
	ParkinsonsFlo
	ParkinsonsJitterPercent
	ParkinsonsJitterAbs
	ParkinsonsRAP
	ParkinsonsPPQ
	ParkinsonsDDP
	ParkinsonsShimmer
	ParkinsonsShimmerDB
	ParkinsonsAPQ3
	ParkinsonsAPQ5
	ParkinsonsAPQ
	ParkinsonsDDA
	ParkinsonsNHR
	ParkinsonsHNR
	ParkinsonsRPDE
	ParkinsonsDFA
	ParkinsonsSpread1
	ParkinsonsSpread2
	ParkinsonsD2
	ParkinsonsPPE
)

var diabetesLabels = []string{
	"Pregnancies", "Glucose", "Blood Pressure", "Skin Thickness",
	"Insulin", "BMI", "Diabetes Pedigree Function", "Age",
}

var heartLabels = []string{
	"Age", "Sex", "Chest Pain types", "Resting Blood Pressure",
	"Serum Cholestoral", "Fasting Blood Sugar", "Resting ECG",
	"Maximum Heart Rate", "Exercise Induced Angina", "ST depression",
	"Slope of ST segment", "Major vessels", "Thalassemia",
}

var parkinsonsLabels = []string{
	"MDVP:Fo(Hz)", "MDVP:Fhi(Hz)", "MDVP:Flo(Hz)", "MDVP:Jitter(%)",
	"MDVP:Jitter(Abs)", "MDVP:RAP", "MDVP:PPQ", "Jitter:DDP",
	"MDVP:Shimmer", "MDVP:Shimmer(dB)", "Shimmer:APQ3", "Shimmer:APQ5",
	"MDVP:APQ", "Shimmer:DDA", "NHR", "HNR", "RPDE", "DFA",
	"spread1", "spread2", "D2", "PPE",
}

// AllDiseases lists every supported disease in a stable order. Used by the
// artifact registry to enforce that every disease has a loaded model pair.
func AllDiseases() []Disease {
	return []Disease{Diabetes, HeartDisease, Parkinsons}
}

// ParseDisease maps an external identifier (e.g. a URL path segment) to a
// Disease, rejecting anything outside the supported set.
func ParseDisease(s string) (Disease, error) {
	d := Disease(s)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDisease, s)
	}
	return d, nil
}

// IsValid reports whether the disease is one of the supported domains.
func (d Disease) IsValid() bool {
	switch d {
	case Diabetes, HeartDisease, Parkinsons:
		return true
	default:
		return false
	}
}

// String returns the canonical identifier of the disease.
func (d Disease) String() string {
	return string(d)
}

// DisplayName returns the human-readable disease name used in reports and
// verdict summaries.
func (d Disease) DisplayName() string {
	switch d {
	case Diabetes:
		return "Diabetes"
	case HeartDisease:
		return "Heart Disease"
	case Parkinsons:
		return "Parkinson's Disease"
	default:
		return string(d)
	}
}

// FieldCount returns the feature vector arity the disease was trained on.
func (d Disease) FieldCount() int {
	return len(d.FieldLabels())
}

// FieldLabels returns the ordered field labels for the disease. The slice
// must not be mutated; a copy is returned to protect the ordering contract.
func (d Disease) FieldLabels() []string {
	var src []string
	switch d {
	case Diabetes:
		src = diabetesLabels
	case HeartDisease:
		src = heartLabels
	case Parkinsons:
		src = parkinsonsLabels
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Threshold returns the decision threshold, in percent, above or at which a
// probability is classified Positive. The per-disease values are a
// deliberate clinical policy (diabetes is biased toward fewer false
// positives) and must not be unified.
func (d Disease) Threshold() float64 {
	switch d {
	case Diabetes:
		return 60
	case HeartDisease, Parkinsons:
		return 50
	default:
		return math.Inf(1)
	}
}

// FieldConstraint is the inclusive validation range for one feature field.
// Min is always zero; Max is +Inf for unbounded fields.
type FieldConstraint struct {
	Label string
	Max   float64
}

// Constraints returns the ordered per-field validation table for the
// disease. Every field accepts [0, Max]; values exactly at Max are valid.
func (d Disease) Constraints() []FieldConstraint {
	labels := d.FieldLabels()
	out := make([]FieldConstraint, len(labels))
	for i, label := range labels {
		out[i] = FieldConstraint{Label: label, Max: math.Inf(1)}
	}
	switch d {
	case Diabetes:
		out[DiabetesGlucose].Max = 300
		out[DiabetesBloodPressure].Max = 200
		out[DiabetesAge].Max = 80
	case HeartDisease:
		out[HeartRestingBP].Max = 200
		out[HeartCholesterol].Max = 600
		out[HeartMaxHeartRate].Max = 250
		out[HeartAge].Max = 80
	}
	return out
}
