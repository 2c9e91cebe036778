package i18n

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/health-assistant-server/internal/domain"
)

func TestTextKnownKeys(t *testing.T) {
	keys := []string{
		"high_glucose", "obesity_risk", "age_diabetes_risk", "pregnancy_risk",
		"diabetes_high_risk", "diabetes_low_risk", "diabetes_general_tip",
		"hypertension_risk", "high_cholesterol", "angina_warning", "age_heart_risk",
		"heart_high_risk", "heart_low_risk", "heart_general_tip",
		"voice_changes", "vocal_instability",
		"parkinsons_high_risk", "parkinsons_low_risk", "parkinsons_general_tip",
		"bmi_underweight", "bmi_normal", "bmi_overweight", "bmi_obese",
		"bmi_underweight_advice", "bmi_normal_advice", "bmi_overweight_advice", "bmi_obese_advice",
	}

	for _, key := range keys {
		text := Text(key)
		assert.NotEmpty(t, text, key)
		assert.NotEqual(t, key, text, "key %q has no catalog entry", key)
	}
}

func TestTextFallsBackToKey(t *testing.T) {
	assert.Equal(t, "no_such_key", Text("no_such_key"))
}

func TestSummaryTemplates(t *testing.T) {
	for _, disease := range domain.AllDiseases() {
		positive := fmt.Sprintf(SummaryTemplate(disease, domain.Positive), 72.5)
		negative := fmt.Sprintf(SummaryTemplate(disease, domain.Negative), 12.5)

		assert.Contains(t, positive, "72.5%")
		assert.Contains(t, negative, "12.5%")
		assert.Contains(t, negative, "healthy")
		assert.NotContains(t, positive, "healthy")
	}
}
