package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsig/internal/service"
)

// SignatureHandler mantiene dependencias para endpoints de similitud de firmas.
type SignatureHandler struct {
	logger     *zap.Logger
	signatures *service.SignatureService
}

// NewSignatureHandler crea una instancia de SignatureHandler con sus dependencias.
func NewSignatureHandler(logger *zap.Logger, signatures *service.SignatureService) *SignatureHandler {
	return &SignatureHandler{
		logger:     logger,
		signatures: signatures,
	}
}

// SimilarProfiles maneja GET /profiles/:user_id/similar.
func (h *SignatureHandler) SimilarProfiles(c *gin.Context) {
	userID := c.Param("user_id")
	k := parseLimit(c.Query("k"))

	similar, err := h.signatures.Similar(c.Request.Context(), userID, k)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("find similar profiles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not find similar profiles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"similar": similar})
}
