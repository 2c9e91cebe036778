package service

import (
	"github.com/sirupsen/logrus"

	"github.com/health-assistant-server/internal/domain"
	"github.com/health-assistant-server/internal/i18n"
)

// InsightEngine produces rule-triggered guidance for an evaluation. The
// output always follows the same shape: triggered feature rules in
// declaration order, then one verdict-keyed recommendation, then one
// general tip. Every evaluation therefore yields at least two insights.
type InsightEngine struct {
	logger *logrus.Logger
}

// NewInsightEngine creates an insight engine.
func NewInsightEngine(logger *logrus.Logger) *InsightEngine {
	return &InsightEngine{logger: logger}
}

// Generate evaluates the disease's rules against the raw (unnormalized)
// feature values. The verdict must come from the risk engine; insights
// never re-derive it from a probability.
func (e *InsightEngine) Generate(disease domain.Disease, features domain.FeatureVector, verdict domain.Verdict) []domain.Insight {
	set, ok := ruleSets[disease]
	if !ok {
		return nil
	}

	insights := make([]domain.Insight, 0, len(set.Rules)+2)
	for _, rule := range set.Rules {
		if rule.Triggered(features) {
			insights = append(insights, domain.Insight{Key: rule.Key, Text: i18n.Text(rule.Key)})
		}
	}

	verdictKey := set.LowRisk
	if verdict == domain.Positive {
		verdictKey = set.HighRisk
	}
	insights = append(insights,
		domain.Insight{Key: verdictKey, Text: i18n.Text(verdictKey)},
		domain.Insight{Key: set.GeneralTip, Text: i18n.Text(set.GeneralTip)},
	)

	e.logger.WithFields(logrus.Fields{
		"disease":  disease,
		"verdict":  verdict,
		"insights": len(insights),
	}).Debug("Generated insights")

	return insights
}
