package domain

import (
	"time"
)

// Verdict is the binary risk classification derived from a probability and
// the per-disease decision threshold.
type Verdict string

const (
	Positive Verdict = "POSITIVE"
	Negative Verdict = "NEGATIVE"
)

// IsValid reports whether the verdict is one of the two defined outcomes.
func (v Verdict) IsValid() bool {
	return v == Positive || v == Negative
}

// String returns the string form of the verdict.
func (v Verdict) String() string {
	return string(v)
}

// RiskAssessment is the result of one evaluation: the positive-class
// probability in percent and the threshold verdict derived from it. The
// probability is always reported, including for Negative verdicts.
type RiskAssessment struct {
	Disease     Disease `json:"disease"`
	Probability float64 `json:"probability"`
	Verdict     Verdict `json:"verdict"`
}

// VerdictFor applies the disease's decision threshold to a probability in
// [0,100]. Probabilities exactly at the threshold classify Positive.
func VerdictFor(d Disease, probability float64) Verdict {
	if probability >= d.Threshold() {
		return Positive
	}
	return Negative
}

// Insight is a single piece of rule-triggered guidance. Key is the stable
// localization key of the triggering rule; Text is the resolved guidance in
// the catalog's language.
type Insight struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// ReportField is one (label, raw value) pair in a report's input listing.
type ReportField struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Report is the exportable record of one evaluation: verdict summary,
// probability, the full ordered insight list, and every input field with
// its label. Built once per evaluation and not retained by the core.
type Report struct {
	ID          string        `json:"id"`
	Disease     Disease       `json:"disease"`
	GeneratedAt time.Time     `json:"generated_at"`
	Probability float64       `json:"probability"`
	Verdict     Verdict       `json:"verdict"`
	Summary     string        `json:"summary"`
	Insights    []Insight     `json:"insights"`
	Fields      []ReportField `json:"fields"`
}

// AssessmentRecord is a persisted evaluation, kept so users can review
// their prediction history. The raw features are stored alongside the
// outcome to make records self-describing.
type AssessmentRecord struct {
	ID          int64         `json:"id"`
	Disease     Disease       `json:"disease"`
	Features    FeatureVector `json:"features"`
	Probability float64       `json:"probability"`
	Verdict     Verdict       `json:"verdict"`
	CreatedAt   time.Time     `json:"created_at"`
}
