package routes

import (
	"hotel_feedback_back_end/internal/handlers"
	"hotel_feedback_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *handlers.ReviewHandler) {
	r.Use(cors.Default())

	// Ingestion des questionnaires (public, anti-spam par IP)
	r.POST("/api/review", middleware.SubmissionRateLimit(), h.CreateReview)

	// Statistiques cumulées (cache Redis)
	r.GET("/api/stats", middleware.APIRateLimit(), h.GetStats)

	r.GET("/healthz", h.Health)
}
