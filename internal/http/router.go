package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	profileH *ProfileHandler,
	assessmentH *AssessmentHandler,
	evidenceH *EvidenceHandler,
	signatureH *SignatureHandler,
	insightH *InsightHandler,
	connectionH *ConnectionHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	questionnaires := r.Group("/questionnaires")
	questionnaires.GET("", assessmentH.ListSchemes)
	questionnaires.GET("/:scheme", assessmentH.GetQuestionnaire)

	profiles := r.Group("/profiles")
	profiles.POST("", profileH.CreateProfile)
	profiles.GET("/:user_id", profileH.GetProfile)
	profiles.GET("/:user_id/similar", signatureH.SimilarProfiles)
	profiles.POST("/:user_id/fusion", evidenceH.FuseEvidence)
	profiles.POST("/:user_id/insights", insightH.GenerateInsight)
	profiles.GET("/:user_id/insights", insightH.ListInsights)

	assessments := r.Group("/assessments")
	assessments.POST("", assessmentH.SubmitAssessment)
	assessments.GET("", assessmentH.ListAssessments)
	assessments.GET("/latest", assessmentH.LatestAssessment)

	evidence := r.Group("/evidence")
	evidence.POST("", evidenceH.IngestEvidence)
	evidence.GET("", evidenceH.ListEvidence)

	connections := r.Group("/connections")
	connections.POST("", connectionH.Connect)
	connections.GET("", connectionH.ListConnections)
	connections.DELETE("/:platform", connectionH.Disconnect)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
