package service

import (
	"fmt"

	"github.com/health-assistant-server/internal/domain"
	"github.com/health-assistant-server/internal/i18n"
)

// BMIResult is the outcome of a body mass index calculation.
type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
	Advice   string  `json:"advice"`
}

// CalculateBMI computes weight / height² with the standard WHO category
// cutoffs at 18.5, 25, and 30. Height is in meters, weight in kilograms.
func CalculateBMI(weightKg, heightM float64) (*BMIResult, error) {
	if heightM <= 0 {
		return nil, &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "height", Value: heightM, Reason: "must be positive"},
		}}
	}
	if weightKg <= 0 {
		return nil, &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "weight", Value: weightKg, Reason: "must be positive"},
		}}
	}

	bmi := weightKg / (heightM * heightM)

	var categoryKey string
	switch {
	case bmi < 18.5:
		categoryKey = "bmi_underweight"
	case bmi < 25:
		categoryKey = "bmi_normal"
	case bmi < 30:
		categoryKey = "bmi_overweight"
	default:
		categoryKey = "bmi_obese"
	}

	return &BMIResult{
		BMI:      bmi,
		Category: i18n.Text(categoryKey),
		Advice:   i18n.Text(fmt.Sprintf("%s_advice", categoryKey)),
	}, nil
}
