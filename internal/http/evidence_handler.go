package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsig/internal/service"
)

// EvidenceHandler mantiene dependencias para endpoints de evidencia
// conductual y fusión.
type EvidenceHandler struct {
	logger   *zap.Logger
	evidence *service.EvidenceService
}

// NewEvidenceHandler crea una instancia de EvidenceHandler con sus dependencias.
func NewEvidenceHandler(logger *zap.Logger, evidence *service.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{
		logger:   logger,
		evidence: evidence,
	}
}

// IngestEvidence maneja POST /evidence.
func (h *EvidenceHandler) IngestEvidence(c *gin.Context) {
	var req struct {
		UserID     string             `json:"user_id" binding:"required"`
		Platform   string             `json:"platform" binding:"required"`
		Signals    map[string]float64 `json:"signals" binding:"required"`
		ObservedAt time.Time          `json:"observed_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid ingest evidence request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	items, err := h.evidence.Ingest(c.Request.Context(), req.UserID, req.Platform, req.Signals, req.ObservedAt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPlatform):
			c.JSON(http.StatusBadRequest, gin.H{"error": "platform is not supported"})
			return
		case errors.Is(err, service.ErrNoSignals):
			c.JSON(http.StatusBadRequest, gin.H{"error": "signals are required"})
			return
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		default:
			h.logger.Error("ingest evidence failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not ingest evidence"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"evidence": items, "accepted": len(items)})
}

// ListEvidence maneja GET /evidence.
func (h *EvidenceHandler) ListEvidence(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	limit := parseLimit(c.Query("limit"))

	items, err := h.evidence.List(c.Request.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("list evidence failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list evidence"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"evidence": items})
}

// FuseEvidence maneja POST /profiles/:user_id/fusion. El body es opcional y
// solo puede traer un peso que pisa el default configurado.
func (h *EvidenceHandler) FuseEvidence(c *gin.Context) {
	userID := c.Param("user_id")

	var req struct {
		Weight *float64 `json:"weight"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid fusion request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	fused, err := h.evidence.Fuse(c.Request.Context(), userID, req.Weight)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		case errors.Is(err, service.ErrNoAssessment):
			c.JSON(http.StatusNotFound, gin.H{"error": "no assessments yet"})
			return
		default:
			h.logger.Error("fuse evidence failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fuse evidence"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"fusion": fused})
}
