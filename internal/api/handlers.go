package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/health-assistant-server/internal/domain"
	"github.com/health-assistant-server/internal/export"
	"github.com/health-assistant-server/internal/feedback"
	"github.com/health-assistant-server/internal/service"
)

// predictRequest is the body of predict and report submissions.
type predictRequest struct {
	Features domain.FeatureVector `json:"features" binding:"required"`
}

// bmiRequest is the body of BMI calculations.
type bmiRequest struct {
	WeightKg float64 `json:"weight_kg" binding:"required"`
	HeightM  float64 `json:"height_m" binding:"required"`
}

// respondError maps pipeline errors onto HTTP statuses. Validation problems
// are the client's to fix; inference and report failures are ours.
func (s *Server) respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var inferenceErr *domain.InferenceError
	var reportErr *domain.ReportError

	switch {
	case errors.Is(err, domain.ErrUnknownDisease):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "validation failed",
			"disease":    validationErr.Disease,
			"violations": validationErr.Violations,
		})
	case errors.As(err, &inferenceErr):
		s.log.WithFields(logrus.Fields{
			"disease": inferenceErr.Disease,
			"stage":   inferenceErr.Stage,
		}).WithError(err).Error("Inference failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "risk evaluation failed"})
	case errors.As(err, &reportErr):
		s.log.WithError(err).Error("Report assembly failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report assembly failed"})
	default:
		s.log.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// evaluate runs the cached evaluation pipeline for a request.
func (s *Server) evaluate(c *gin.Context, disease domain.Disease, features domain.FeatureVector) (*domain.RiskAssessment, error) {
	if s.cache != nil {
		if assessment, ok := s.cache.Get(c.Request.Context(), disease, features); ok {
			return assessment, nil
		}
	}

	assessment, err := s.engine.Evaluate(c.Request.Context(), disease, features)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Put(c.Request.Context(), disease, features, assessment)
	}
	return assessment, nil
}

// recordAssessment persists the evaluation for the history page. Storage
// failures do not fail the prediction.
func (s *Server) recordAssessment(c *gin.Context, assessment *domain.RiskAssessment, features domain.FeatureVector) *int64 {
	if s.history == nil {
		return nil
	}

	record := &domain.AssessmentRecord{
		Disease:     assessment.Disease,
		Features:    features.Clone(),
		Probability: assessment.Probability,
		Verdict:     assessment.Verdict,
	}
	if err := s.history.Save(c.Request.Context(), record); err != nil {
		s.log.WithError(err).Warn("Failed to record assessment history")
		return nil
	}
	return &record.ID
}

// handlePredict evaluates a feature vector and returns the assessment with
// its insights.
func (s *Server) handlePredict(c *gin.Context) {
	disease, err := domain.ParseDisease(c.Param("disease"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	assessment, err := s.evaluate(c, disease, req.Features)
	if err != nil {
		s.respondError(c, err)
		return
	}

	insights := s.insights.Generate(disease, req.Features, assessment.Verdict)
	recordID := s.recordAssessment(c, assessment, req.Features)

	response := gin.H{
		"assessment": assessment,
		"insights":   insights,
	}
	if recordID != nil {
		response["record_id"] = *recordID
	}
	c.JSON(http.StatusOK, response)
}

// handleReport evaluates a feature vector and returns a full report in the
// requested format: json (default), pdf, or xlsx.
func (s *Server) handleReport(c *gin.Context) {
	disease, err := domain.ParseDisease(c.Param("disease"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "pdf" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
		return
	}

	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	assessment, err := s.evaluate(c, disease, req.Features)
	if err != nil {
		s.respondError(c, err)
		return
	}

	insights := s.insights.Generate(disease, req.Features, assessment.Verdict)
	report, err := s.reports.Build(assessment, insights, req.Features)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.recordAssessment(c, assessment, req.Features)

	switch format {
	case "pdf":
		var buf bytes.Buffer
		if err := export.RenderPDF(&buf, report); err != nil {
			s.respondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-report-%s.pdf", disease, report.ID))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	case "xlsx":
		var buf bytes.Buffer
		if err := export.RenderXLSX(&buf, report); err != nil {
			s.respondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-report-%s.xlsx", disease, report.ID))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		c.JSON(http.StatusOK, report)
	}
}

// handleBMI calculates BMI with category and advice.
func (s *Server) handleBMI(c *gin.Context) {
	var req bmiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	result, err := service.CalculateBMI(req.WeightKg, req.HeightM)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleHistoryList returns past assessments, newest first.
func (s *Server) handleHistoryList(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history storage not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 200"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must not be negative"})
		return
	}

	records, err := s.history.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	total, err := s.history.Count(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// handleHistoryGet returns one past assessment by ID.
func (s *Server) handleHistoryGet(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history storage not configured"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment id"})
		return
	}

	record, err := s.history.Get(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// handleFeedbackSubmit stores a user feedback entry.
func (s *Server) handleFeedbackSubmit(c *gin.Context) {
	if s.feedback == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feedback storage not configured"})
		return
	}

	var fb feedback.Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if fb.Category == "" {
		fb.Category = feedback.CategoryGeneral
	}
	if err := fb.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.feedback.Save(c.Request.Context(), &fb); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// handleFeedbackList returns stored feedback, newest first.
func (s *Server) handleFeedbackList(c *gin.Context) {
	if s.feedback == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feedback storage not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 200"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must not be negative"})
		return
	}

	entries, err := s.feedback.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	total, err := s.feedback.Count(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": entries,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}
