package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsig/internal/service"
)

// ConnectionHandler mantiene dependencias para endpoints de conexiones de
// plataformas externas.
type ConnectionHandler struct {
	logger      *zap.Logger
	connections *service.ConnectionService
}

// NewConnectionHandler crea una instancia de ConnectionHandler con sus dependencias.
func NewConnectionHandler(logger *zap.Logger, connections *service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{
		logger:      logger,
		connections: connections,
	}
}

// Connect maneja POST /connections.
func (h *ConnectionHandler) Connect(c *gin.Context) {
	var req struct {
		UserID   string `json:"user_id" binding:"required"`
		Platform string `json:"platform" binding:"required"`
		Token    string `json:"token" binding:"required"`
		Scopes   string `json:"scopes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid connect request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	conn, err := h.connections.Connect(c.Request.Context(), req.UserID, req.Platform, req.Token, req.Scopes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUserID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		case errors.Is(err, service.ErrUnknownPlatform):
			c.JSON(http.StatusBadRequest, gin.H{"error": "platform is not supported"})
			return
		case errors.Is(err, service.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
			return
		default:
			h.logger.Error("connect platform failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not connect platform"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"connection": conn})
}

// ListConnections maneja GET /connections.
func (h *ConnectionHandler) ListConnections(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	conns, err := h.connections.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list connections failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list connections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": conns})
}

// Disconnect maneja DELETE /connections/:platform.
func (h *ConnectionHandler) Disconnect(c *gin.Context) {
	platform := c.Param("platform")
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	if err := h.connections.Disconnect(c.Request.Context(), userID, platform); err != nil {
		if errors.Is(err, service.ErrConnectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "connection not found"})
			return
		}
		h.logger.Error("disconnect platform failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not disconnect platform"})
		return
	}

	c.Status(http.StatusNoContent)
}
