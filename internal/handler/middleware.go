package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// APIKeyAuth guards a route group with a static bearer token.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	expected := "Bearer " + apiKey
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// RateLimit admits at most perMinute requests per minute, rejecting the
// rest with 429. One shared limiter across clients, no queueing.
func RateLimit(perMinute int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
