package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/health-assistant-server/internal/domain"
	"github.com/health-assistant-server/internal/i18n"
)

// ReportBuilder assembles the exportable record of one evaluation. Labels
// and values are zipped strictly: any length disagreement fails the build
// rather than producing a truncated field listing.
type ReportBuilder struct {
	logger *logrus.Logger
}

// NewReportBuilder creates a report builder.
func NewReportBuilder(logger *logrus.Logger) *ReportBuilder {
	return &ReportBuilder{logger: logger}
}

// Build produces a report from an assessment, its insights, and the raw
// input features. The summary is phrased from the assessment's verdict and
// probability; the builder never recomputes either.
func (b *ReportBuilder) Build(assessment *domain.RiskAssessment, insights []domain.Insight, features domain.FeatureVector) (*domain.Report, error) {
	labels := assessment.Disease.FieldLabels()
	if len(labels) != len(features) {
		return nil, &domain.ReportError{
			Disease: assessment.Disease,
			Labels:  len(labels),
			Values:  len(features),
		}
	}

	fields := make([]domain.ReportField, len(labels))
	for i, label := range labels {
		fields[i] = domain.ReportField{Label: label, Value: features[i]}
	}

	report := &domain.Report{
		ID:          uuid.NewString(),
		Disease:     assessment.Disease,
		GeneratedAt: time.Now().UTC(),
		Probability: assessment.Probability,
		Verdict:     assessment.Verdict,
		Summary:     fmt.Sprintf(i18n.SummaryTemplate(assessment.Disease, assessment.Verdict), assessment.Probability),
		Insights:    insights,
		Fields:      fields,
	}

	b.logger.WithFields(logrus.Fields{
		"report_id": report.ID,
		"disease":   report.Disease,
		"verdict":   report.Verdict,
	}).Info("Built assessment report")

	return report, nil
}
