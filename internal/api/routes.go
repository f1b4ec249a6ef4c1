package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", healthCheck)

	r.POST("/api/session/analyze", analyzeSession)
	r.GET("/api/sessions/history", getSessionHistory)
	r.GET("/api/sessions/:id", getSessionDetail)
	r.POST("/api/onboarding/analyze", analyzeOnboarding)
	r.GET("/api/profile/me", getMyProfile)
}

// healthCheck handles GET /health
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
