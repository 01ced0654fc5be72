package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hotel_feedback_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	SubmissionMaxRequests = 10 // soumissions par minute et par IP
	APIMaxRequests        = 100

	// Durées de cooldown
	SubmissionCooldown = 1 * time.Minute
	APICooldown        = 1 * time.Minute
)

// SubmissionRateLimit limite les soumissions de questionnaire par IP
// (anti-spam : l'endpoint est public et sans compte)
func SubmissionRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		ip := c.ClientIP()
		key := "review_submissions:" + ip

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= SubmissionMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de soumissions. Réessayez dans 1 minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		// Incrémenter le compteur
		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, SubmissionCooldown)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", SubmissionMaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", SubmissionMaxRequests-requests-1))

		c.Next()
	}
}

// APIRateLimit limite le nombre de requêtes par IP (général)
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		ip := c.ClientIP()
		key := "api_requests:" + ip

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de requêtes. Réessayez dans 1 minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, APICooldown)
		pipe.Exec(ctx)

		c.Next()
	}
}
