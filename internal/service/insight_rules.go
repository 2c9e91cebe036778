package service

import "github.com/health-assistant-server/internal/domain"

// insightRule is one feature-triggered recommendation. Rules are evaluated
// in declaration order and every triggered rule contributes, so the
// resulting insight list is deterministic for a given input.
type insightRule struct {
	Key       string
	Triggered func(f domain.FeatureVector) bool
}

var diabetesRules = []insightRule{
	{
		Key:       "high_glucose",
		Triggered: func(f domain.FeatureVector) bool { return f[domain.DiabetesGlucose] > 140 },
	},
	{
		Key:       "obesity_risk",
		Triggered: func(f domain.FeatureVector) bool { return f[domain.DiabetesBMI] > 30 },
	},
	{
		Key:       "age_diabetes_risk",
		Triggered: func(f domain.FeatureVector) bool { return f[domain.DiabetesAge] > 45 },
	},
	{
		Key:       "pregnancy_risk",
		Triggered: func(f domain.FeatureVector) bool { return f[domain.DiabetesPregnancies] > 3 },
	},
}

var heartRules = []insightRule{
	{
		Key:       "hypertension_risk",
		Triggered: func(f domain.FeatureVector) bool { return f[domain.HeartRestingBP] > 140 },
	},
	{
		Key:       "high_cholesterol",
		Triggered: func(f domain.FeatureVector) bool { return f[domain.HeartCholesterol] > 240 },
	},
	{
		Key:       "angina_warning",
		Triggered: func(f domain.FeatureVector) bool { return f[domain.HeartExerciseAngina] == 1 },
	},
	{
		Key:       "age_heart_risk",
		Triggered: func(f domain.FeatureVector) bool { return f[domain.HeartAge] > 55 },
	},
}

var parkinsonsRules = []insightRule{
	{
		Key:       "voice_changes",
		Triggered: func(f domain.FeatureVector) bool { return f[domain.ParkinsonsFo] < 100 },
	},
	{
		Key:       "vocal_instability",
		Triggered: func(f domain.FeatureVector) bool { return f[domain.ParkinsonsJitterPercent] > 0.05 },
	},
}

// ruleSet bundles a disease's ordered feature rules with its verdict-keyed
// and closing recommendation keys.
type ruleSet struct {
	Rules      []insightRule
	HighRisk   string
	LowRisk    string
	GeneralTip string
}

var ruleSets = map[domain.Disease]ruleSet{
	domain.Diabetes: {
		Rules:      diabetesRules,
		HighRisk:   "diabetes_high_risk",
		LowRisk:    "diabetes_low_risk",
		GeneralTip: "diabetes_general_tip",
	},
	domain.HeartDisease: {
		Rules:      heartRules,
		HighRisk:   "heart_high_risk",
		LowRisk:    "heart_low_risk",
		GeneralTip: "heart_general_tip",
	},
	domain.Parkinsons: {
		Rules:      parkinsonsRules,
		HighRisk:   "parkinsons_high_risk",
		LowRisk:    "parkinsons_low_risk",
		GeneralTip: "parkinsons_general_tip",
	},
}
