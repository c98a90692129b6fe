package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsig/internal/service"
)

// ProfileHandler mantiene dependencias para endpoints de perfiles.
type ProfileHandler struct {
	logger      *zap.Logger
	profiles    *service.ProfileService
	assessments *service.AssessmentService
}

// NewProfileHandler crea una instancia de ProfileHandler con sus dependencias.
func NewProfileHandler(logger *zap.Logger, profiles *service.ProfileService, assessments *service.AssessmentService) *ProfileHandler {
	return &ProfileHandler{
		logger:      logger,
		profiles:    profiles,
		assessments: assessments,
	}
}

// CreateProfile maneja POST /profiles.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req struct {
		UserID      string `json:"user_id" binding:"required"`
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), req.UserID, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUserID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		case errors.Is(err, service.ErrProfileExists):
			c.JSON(http.StatusConflict, gin.H{"error": "profile already exists"})
			return
		default:
			h.logger.Error("create profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create profile"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// GetProfile maneja GET /profiles/:user_id. Devuelve el perfil junto con su
// última evaluación cuando existe.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.Param("user_id")

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch profile"})
		return
	}

	body := gin.H{"profile": profile}
	latest, err := h.assessments.Latest(c.Request.Context(), userID)
	switch {
	case err == nil:
		body["latest_assessment"] = latest
	case errors.Is(err, service.ErrNoAssessment):
		// Perfil sin evaluaciones todavia.
	default:
		h.logger.Error("get latest assessment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch profile"})
		return
	}

	c.JSON(http.StatusOK, body)
}
