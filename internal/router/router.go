package router

import (
	"github.com/gin-gonic/gin"

	"github.com/chaiyareokput-tech/Finsi/internal/config"
	"github.com/chaiyareokput-tech/Finsi/internal/handler"
	"github.com/chaiyareokput-tech/Finsi/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	analysisH *handler.AnalysisHandler,
	healthH *handler.HealthHandler,
	corsCfg *config.CORSConfig,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsCfg.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.POST("/analyze", analysisH.Analyze)
	v1.GET("/session", analysisH.Session)
	v1.POST("/session/reset", analysisH.ResetSession)

	return r
}
