// Package i18n resolves message keys to display text. Recommendations and
// summaries are produced as stable keys so call sites stay locale-agnostic;
// the catalog currently ships English only and unknown keys fall back to
// the key itself rather than failing.
package i18n

import "github.com/health-assistant-server/internal/domain"

var catalog = map[string]string{
	// Diabetes insights.
	"high_glucose":         "Your glucose level is elevated. Consider reducing sugar intake and monitoring your blood sugar regularly.",
	"obesity_risk":         "Your BMI indicates obesity, a major risk factor for diabetes. A balanced diet and regular exercise can help.",
	"age_diabetes_risk":    "Diabetes risk increases after age 45. Schedule regular screenings with your healthcare provider.",
	"pregnancy_risk":       "Multiple pregnancies can increase the risk of gestational and type 2 diabetes. Discuss this with your doctor.",
	"diabetes_high_risk":   "Please consult a doctor for a full diabetes evaluation, including an HbA1c test.",
	"diabetes_low_risk":    "Keep up your healthy habits to maintain a low diabetes risk.",
	"diabetes_general_tip": "Stay hydrated, eat fiber-rich foods, and aim for at least 150 minutes of exercise per week.",

	// Heart disease insights.
	"hypertension_risk": "Your resting blood pressure is high. Reducing salt intake and managing stress can help lower it.",
	"high_cholesterol":  "Your cholesterol is above the recommended level. Consider a diet low in saturated fats.",
	"angina_warning":    "Exercise-induced chest pain is a serious warning sign. Please see a cardiologist promptly.",
	"age_heart_risk":    "Heart disease risk rises after age 55. Regular cardiovascular checkups are recommended.",
	"heart_high_risk":   "Please consult a cardiologist for a full cardiac evaluation as soon as possible.",
	"heart_low_risk":    "Your heart disease risk is low. Continue with heart-healthy habits.",
	"heart_general_tip": "A diet rich in vegetables, regular aerobic exercise, and not smoking protect your heart.",

	// Parkinson's insights.
	"voice_changes":          "A lowered average vocal frequency can be an early indicator. A speech evaluation may be helpful.",
	"vocal_instability":      "Elevated vocal jitter suggests voice instability. Consider a consultation with a specialist.",
	"parkinsons_high_risk":   "Please consult a neurologist for a thorough neurological examination.",
	"parkinsons_low_risk":    "No strong vocal indicators were found. Routine checkups are still recommended.",
	"parkinsons_general_tip": "Regular physical activity and mental exercises support long-term neurological health.",

	// BMI categories and advice.
	"bmi_underweight":        "Underweight",
	"bmi_normal":             "Normal weight",
	"bmi_overweight":         "Overweight",
	"bmi_obese":              "Obese",
	"bmi_underweight_advice": "You may need to gain weight. Consult a nutritionist for a healthy plan.",
	"bmi_normal_advice":      "Great! Maintain your current lifestyle.",
	"bmi_overweight_advice":  "Consider a balanced diet and more physical activity.",
	"bmi_obese_advice":       "Please consult a healthcare provider about a weight management plan.",
}

// positiveSummaries and negativeSummaries are fmt templates taking the risk
// percentage.
var positiveSummaries = map[domain.Disease]string{
	domain.Diabetes:     "You have a %.1f%% risk of Diabetes.",
	domain.HeartDisease: "You have a %.1f%% risk of Heart Disease.",
	domain.Parkinsons:   "You have a %.1f%% risk of Parkinson's Disease.",
}

var negativeSummaries = map[domain.Disease]string{
	domain.Diabetes:     "You are healthy! Low risk of Diabetes. (%.1f%% risk)",
	domain.HeartDisease: "You are healthy! Low risk of Heart Disease. (%.1f%% risk)",
	domain.Parkinsons:   "You are healthy! Low risk of Parkinson's Disease. (%.1f%% risk)",
}

// Text returns the display text for a message key, or the key itself when
// the catalog has no entry for it.
func Text(key string) string {
	if text, ok := catalog[key]; ok {
		return text
	}
	return key
}

// SummaryTemplate returns the verdict summary template for a disease. The
// template takes one argument, the risk percentage.
func SummaryTemplate(d domain.Disease, v domain.Verdict) string {
	if v == domain.Positive {
		return positiveSummaries[d]
	}
	return negativeSummaries[d]
}
