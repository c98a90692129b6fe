package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsig/internal/service"
)

// InsightHandler mantiene dependencias para endpoints de insights narrativos.
type InsightHandler struct {
	logger   *zap.Logger
	insights *service.InsightService
}

// NewInsightHandler crea una instancia de InsightHandler con sus dependencias.
func NewInsightHandler(logger *zap.Logger, insights *service.InsightService) *InsightHandler {
	return &InsightHandler{
		logger:   logger,
		insights: insights,
	}
}

// GenerateInsight maneja POST /profiles/:user_id/insights.
func (h *InsightHandler) GenerateInsight(c *gin.Context) {
	userID := c.Param("user_id")

	insight, err := h.insights.Generate(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		case errors.Is(err, service.ErrNoAssessment):
			c.JSON(http.StatusNotFound, gin.H{"error": "no assessments yet"})
			return
		case errors.Is(err, service.ErrInsightRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		default:
			h.logger.Error("generate insight failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate insight"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"insight": insight})
}

// ListInsights maneja GET /profiles/:user_id/insights.
func (h *InsightHandler) ListInsights(c *gin.Context) {
	userID := c.Param("user_id")
	limit := parseLimit(c.Query("limit"))

	insights, err := h.insights.List(c.Request.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("list insights failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list insights"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}
