package middleware

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"

	"splitup-be/internal/config"

	"github.com/gin-gonic/gin"
)

// OrderRateLimit caps how many orders an email address can place per
// hour. Reads the email from the request body and restores the body so
// the handler can bind it again.
func OrderRateLimit(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.GetConfig()
		if !cfg.Features.EnableOrderRateLimit {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var requestBody struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &requestBody); err != nil || requestBody.Email == "" {
			// Let the handler report the binding error
			c.Next()
			return
		}

		var recentCount int
		err = db.QueryRow(`
			SELECT COUNT(*)
			FROM orders
			WHERE email = $1 AND created_at > NOW() - INTERVAL '1 hour'
		`, requestBody.Email).Scan(&recentCount)
		if err != nil && err != sql.ErrNoRows {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			c.Abort()
			return
		}

		if recentCount >= cfg.Features.MaxOrdersPerHour {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many orders for this email. Please try again later",
			})
			c.Abort()
			return
		}

		c.Set("email", requestBody.Email)
		c.Next()
	}
}
