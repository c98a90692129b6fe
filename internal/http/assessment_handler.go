package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsig/internal/domain"
	"soulsig/internal/questionbank"
	"soulsig/internal/service"
)

// AssessmentHandler mantiene dependencias para endpoints de cuestionarios y
// corridas de scoring.
type AssessmentHandler struct {
	logger      *zap.Logger
	assessments *service.AssessmentService
}

// NewAssessmentHandler crea una instancia de AssessmentHandler con sus dependencias.
func NewAssessmentHandler(logger *zap.Logger, assessments *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		logger:      logger,
		assessments: assessments,
	}
}

// ListSchemes maneja GET /questionnaires.
func (h *AssessmentHandler) ListSchemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"schemes": h.assessments.Schemes()})
}

// GetQuestionnaire maneja GET /questionnaires/:scheme.
func (h *AssessmentHandler) GetQuestionnaire(c *gin.Context) {
	scheme := c.Param("scheme")

	bank, err := h.assessments.Questionnaire(scheme)
	if err != nil {
		if errors.Is(err, questionbank.ErrUnknownScheme) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown scheme"})
			return
		}
		h.logger.Error("get questionnaire failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch questionnaire"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionnaire": bank})
}

// SubmitAssessment maneja POST /assessments.
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	var req struct {
		UserID    string                    `json:"user_id" binding:"required"`
		Scheme    string                    `json:"scheme"`
		Responses []domain.QuestionResponse `json:"responses" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit assessment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	assessment, err := h.assessments.Submit(c.Request.Context(), req.UserID, req.Scheme, req.Responses)
	if err != nil {
		switch {
		case errors.Is(err, questionbank.ErrUnknownScheme):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown scheme"})
			return
		case errors.Is(err, service.ErrNoResponses):
			c.JSON(http.StatusBadRequest, gin.H{"error": "responses are required"})
			return
		case errors.Is(err, service.ErrInvalidUserID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		default:
			h.logger.Error("submit assessment failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not score assessment"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"assessment": assessment})
}

// LatestAssessment maneja GET /assessments/latest.
func (h *AssessmentHandler) LatestAssessment(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	assessment, err := h.assessments.Latest(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		case errors.Is(err, service.ErrNoAssessment):
			c.JSON(http.StatusNotFound, gin.H{"error": "no assessments yet"})
			return
		default:
			h.logger.Error("get latest assessment failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch assessment"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}

// ListAssessments maneja GET /assessments.
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	limit := parseLimit(c.Query("limit"))

	assessments, err := h.assessments.History(c.Request.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("list assessments failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list assessments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}

// parseLimit lee un limit opcional de query; 0 delega el default al repositorio.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
